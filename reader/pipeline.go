// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/ident"
	"github.com/usdfbx/usdfbx/sdf"
)

// Pipeline converts one aspect of a node into the store.
type Pipeline func(c *Context)

// pipelines are the pipelines run, in order, for each attribute type.
// Types with no pipelines are not converted, and neither are their
// descendants.
var pipelines = [fbx.AttributeTypeN][]Pipeline{
	fbx.AttributeUnknown:  {ReadScope, ReadMetadata},
	fbx.AttributeNull:     {ReadTransform, ReadImageable, ReadUserProperties, ReadMetadata},
	fbx.AttributeMesh:     {ReadTransform, ReadImageable, ReadMesh, ReadUserProperties, ReadMetadata},
	fbx.AttributeSkeleton: {ReadSkeleton, ReadSkeletonAnimation, ReadImageable, ReadMetadata},
	fbx.AttributeCamera:   {ReadTransform, ReadImageable, ReadCamera, ReadUserProperties, ReadMetadata},
}

// Pipelines returns the pipelines for an attribute type.
func Pipelines(t fbx.AttributeType) []Pipeline {
	if t < 0 || t >= fbx.AttributeTypeN {
		return nil
	}
	return pipelines[t]
}

// converter walks a scene and fills a store.
type converter struct {
	scene *fbx.Scene
	store *sdf.Store

	// base holds the scene wide fields of every context.
	base *Context

	// names are the sanitized prim names of every node.
	names map[*fbx.Node]string

	// joints caches the joints of every skeleton root.
	joints map[*fbx.Node][]*fbx.Node
}

// nameNodes assigns a sanitized name, distinct among its siblings, to
// every node below n.
func (cv *converter) nameNodes(n *fbx.Node) {
	raw := make([]string, len(n.Children))
	for i, ch := range n.Children {
		raw[i] = ch.Name
	}
	set := ident.NewSet(raw...)
	for _, ch := range n.Children {
		cv.names[ch] = set.Clean(ch.Name, ident.DefaultTrim)
		cv.nameNodes(ch)
	}
}

// pathOf returns the prim path of n below the synthetic root.
func (cv *converter) pathOf(n *fbx.Node) sdf.Path {
	if n == nil || n == cv.scene.Root {
		return cv.base.RootPath
	}
	name, ok := cv.names[n]
	if !ok || name == "" {
		return sdf.EmptyPath
	}
	parent := cv.pathOf(n.Parent)
	if parent.IsEmpty() {
		return parent
	}
	return parent.AppendChild(name)
}

// context returns the conversion context of n at path.
func (cv *converter) context(n *fbx.Node, path sdf.Path) *Context {
	c := *cv.base
	c.Node = n
	c.Path = path
	return &c
}

// walk converts n below the prim at parent and recurses into its
// children. Skeleton nodes convert their whole hierarchy themselves.
func (cv *converter) walk(n *fbx.Node, parent sdf.Path) {
	if n.Attribute == nil {
		return
	}
	ps := Pipelines(n.Attribute.Type)
	if len(ps) == 0 {
		return
	}
	name := cv.names[n]
	if name == "" {
		cv.base.Warnf("%s node with an empty name is skipped", n.Attribute.Type)
		return
	}
	path := parent.AppendChild(name)
	c := cv.context(n, path)
	for _, p := range ps {
		p(c)
	}
	if n.IsSkeleton() {
		return
	}
	cv.store.GetOrAddPrim(parent).AddChild(name)
	cv.store.GetOrAddPrim(path)
	for _, ch := range n.Children {
		cv.walk(ch, path)
	}
}
