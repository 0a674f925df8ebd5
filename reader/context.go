// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"fmt"
	"log/slog"

	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/logx"
	"github.com/usdfbx/usdfbx/sdf"
)

// Display groups of the created attributes.
const (
	GroupGeometry      = "Geometry"
	GroupSkeleton      = "Skeleton"
	GroupShading       = "Shading"
	GroupUser          = "User"
	GroupSkelAnimation = "SkelAnimation"
	GroupCamera        = "Camera"
	GroupImageable     = "Imageable"
	GroupGenerated     = "Generated"
)

// Span is the frame range sampled for animation.
type Span struct {
	Start, Stop int64

	// FPS is the frame rate of the scene.
	FPS float64
}

// Frames returns every frame of the span, and at least the start frame.
func (s Span) Frames() []int64 {
	out := []int64{s.Start}
	for f := s.Start + 1; f <= s.Stop; f++ {
		out = append(out, f)
	}
	return out
}

// Time returns the FBX time of a frame.
func (s Span) Time(frame int64) fbx.Time {
	return fbx.FrameTime(float64(frame), s.FPS)
}

// Context is the state passed to the pipelines converting one node.
type Context struct {
	// Node is the node being converted.
	Node *fbx.Node

	// Path is the prim path of the node.
	Path sdf.Path

	Scene *fbx.Scene

	Store *sdf.Store

	// Layer is the animation layer sampled, nil for static scenes.
	Layer *fbx.AnimLayer

	Span Span

	// ScaleFactor is the unit conversion factor applied to the scene.
	ScaleFactor float64

	Logger *slog.Logger

	// RootPath is the path of the synthetic root prim.
	RootPath sdf.Path

	conv *converter
}

// Name returns the prim name of the node.
func (c *Context) Name() string {
	return c.Path.Name()
}

// Prim returns the prim of the node, creating it as needed.
func (c *Context) Prim() *sdf.Prim {
	return c.Store.GetOrAddPrim(c.Path)
}

// PathOf returns the prim path computed for any node of the scene,
// or the empty path for nodes that are not converted.
func (c *Context) PathOf(n *fbx.Node) sdf.Path {
	return c.conv.pathOf(n)
}

// Warnf logs a formatted conversion warning.
func (c *Context) Warnf(format string, args ...any) {
	c.Logger.Warn(fmt.Sprintf(format, args...))
}

// Debugf logs a formatted trace of the pipelines.
func (c *Context) Debugf(format string, args ...any) {
	c.Logger.Debug(fmt.Sprintf(format, args...), "channel", logx.ChannelPipelines)
}

// Animated returns whether there is a layer to sample.
func (c *Context) Animated() bool {
	return c.Layer != nil
}

// CreateAttribute creates or returns the attribute name on the node prim.
func (c *Context) CreateAttribute(name string, typ sdf.ValueTypeName, def any, group string) *sdf.Property {
	return c.CreateAttributeAt(c.Path, name, typ, def, group)
}

// CreateAttributeAt creates or returns the attribute name on the prim
// at path, setting its type, default value and display group.
func (c *Context) CreateAttributeAt(path sdf.Path, name string, typ sdf.ValueTypeName, def any, group string) *sdf.Property {
	p := c.Store.GetOrAddProperty(path.AppendProperty(name))
	p.TypeName = typ
	if def != nil {
		p.Default = def
	}
	if group != "" {
		p.Metadata.Add(sdf.KeyDisplayGroup, group)
	}
	return p
}

// CreateUniform creates a uniform attribute on the node prim.
func (c *Context) CreateUniform(name string, typ sdf.ValueTypeName, def any, group string) *sdf.Property {
	return c.CreateUniformAt(c.Path, name, typ, def, group)
}

// CreateUniformAt creates a uniform attribute on the prim at path.
func (c *Context) CreateUniformAt(path sdf.Path, name string, typ sdf.ValueTypeName, def any, group string) *sdf.Property {
	p := c.CreateAttributeAt(path, name, typ, def, group)
	p.Variability = sdf.VariabilityUniform
	return p
}

// CreateCustom creates a custom attribute on the node prim.
func (c *Context) CreateCustom(name string, typ sdf.ValueTypeName, def any, group string) *sdf.Property {
	p := c.CreateAttribute(name, typ, def, group)
	p.Custom = true
	return p
}

// CreateRelationship creates the relationship name on the prim at
// from, targeting to.
func (c *Context) CreateRelationship(from sdf.Path, name string, to sdf.Path, group string) *sdf.Property {
	p := c.Store.GetOrAddProperty(from.AppendProperty(name))
	p.Variability = sdf.VariabilityUniform
	p.AddTarget(to)
	if group != "" {
		p.Metadata.Add(sdf.KeyDisplayGroup, group)
	}
	return p
}

// Connect connects the consumer attribute to the producer attribute,
// creating both with the given type.
func (c *Context) Connect(producer, consumer sdf.Path, typ sdf.ValueTypeName) {
	src := c.Store.GetOrAddProperty(producer)
	if src.TypeName == "" {
		src.TypeName = typ
	}
	dst := c.Store.GetOrAddProperty(consumer)
	if dst.TypeName == "" {
		dst.TypeName = typ
	}
	conns, _ := dst.Metadata.ValueByKeyTry(sdf.FieldConnectionPaths)
	paths, _ := conns.([]sdf.Path)
	for _, p := range paths {
		if p == producer {
			return
		}
	}
	dst.Metadata.Add(sdf.FieldConnectionPaths, append(paths, producer))
}

// AddAPISchema prepends an applied API schema to the prim metadata.
func AddAPISchema(prim *sdf.Prim, schema string) {
	v, _ := prim.Metadata.ValueByKeyTry(sdf.KeyAPISchemas)
	schemas, _ := v.([]sdf.Token)
	for _, s := range schemas {
		if string(s) == schema {
			return
		}
	}
	prim.Metadata.Add(sdf.KeyAPISchemas, append(schemas, sdf.Token(schema)))
}

// SetPrimvar marks an attribute as a primvar with the given
// interpolation, and the element size when it is positive.
func SetPrimvar(p *sdf.Property, interpolation string, elementSize int) {
	p.Metadata.Add(sdf.KeyInterpolation, sdf.Token(interpolation))
	if elementSize > 0 {
		p.Metadata.Add(sdf.KeyElementSize, elementSize)
	}
}
