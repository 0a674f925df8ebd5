// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"maps"
	"slices"

	"cogentcore.org/core/math32"
	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/gf"
	"github.com/usdfbx/usdfbx/ident"
	"github.com/usdfbx/usdfbx/sdf"
)

// AnimationPrefix prefixes the name of the animation prim of a skeleton.
const AnimationPrefix = "Animation"

// Joints returns the joints of the skeleton rooted at root in depth
// first order. Children that are not skeleton nodes are skipped along
// with their descendants.
func (c *Context) Joints(root *fbx.Node) []*fbx.Node {
	if js, ok := c.conv.joints[root]; ok {
		return js
	}
	var out []*fbx.Node
	var visit func(n *fbx.Node)
	visit = func(n *fbx.Node) {
		out = append(out, n)
		for _, ch := range n.Children {
			if !ch.IsSkeleton() {
				c.Warnf("%q is not an FbxSkeleton node, but is part of a skeleton hierarchy! It and its children will be ignored", ch.Name)
				continue
			}
			visit(ch)
		}
	}
	visit(root)
	c.conv.joints[root] = out
	return out
}

// jointTokens returns the joint path of every joint.
func (c *Context) jointTokens(joints []*fbx.Node) []sdf.Token {
	tokens := make([]sdf.Token, len(joints))
	for i, j := range joints {
		tokens[i] = c.JointToken(j, joints[0])
	}
	return tokens
}

// jointLocal returns the translation and rotation of a joint relative
// to its parent at t. Joint scale is not carried over. Translations of joints below the scene
// root nodes are scaled to the scene unit, since the unit conversion
// only applies to the root nodes.
func (c *Context) jointLocal(j *fbx.Node, t fbx.Time) (gf.Vec3d, gf.Quatd) {
	tr, r, _ := fbx.LocalTransform(j, c.Layer, t).Decompose()
	if j.Parent != c.Scene.Root {
		tr = tr.MulScalar(c.ScaleFactor)
	}
	return tr, r
}

// ReadSkeleton converts the skeleton hierarchy rooted at the node into
// a single skeleton prim with its rest and bind poses.
func ReadSkeleton(c *Context) {
	n := c.Node
	if n.Parent.IsSkeleton() {
		return
	}
	c.Prim().TypeName = sdf.TypeSkeleton
	c.Store.GetOrAddPrim(c.Path.Parent()).AddChild(c.Name())

	joints := c.Joints(n)
	c.CreateUniform("joints", sdf.TokenType.Array(), c.jointTokens(joints), GroupSkeleton)

	rest := make([]gf.Matrix4d, len(joints))
	bind := make([]gf.Matrix4d, len(joints))
	for i, j := range joints {
		tr, r := c.jointLocal(j, 0)
		rest[i] = gf.Compose(tr, r, gf.Vec3d{1, 1, 1})
		bind[i] = fbx.GlobalTransform(j, c.Layer, 0).WithUnitScale()
	}
	c.CreateUniform("restTransforms", sdf.Matrix4d.Array(), rest, GroupSkeleton)
	c.CreateUniform("bindTransforms", sdf.Matrix4d.Array(), bind, GroupSkeleton)
}

// jointProperty is an animated joint property gathered across joints.
type jointProperty struct {
	typ    sdf.ValueTypeName
	owners []sdf.Token
	frames [][]any
}

// ReadSkeletonAnimation converts the animation of the skeleton rooted
// at the node into a skeleton animation prim next to the skeleton.
// Animated user properties and visibility of the joints are gathered
// into array attributes with one element per animated joint.
func ReadSkeletonAnimation(c *Context) {
	n := c.Node
	if !c.Animated() || n.Parent.IsSkeleton() {
		return
	}
	joints := c.Joints(n)
	tokens := c.jointTokens(joints)
	name := AnimationPrefix + c.Name()
	path := c.Path.Parent().AppendChild(name)
	c.Store.GetOrAddPrim(path).TypeName = sdf.TypeSkelAnimation
	c.Store.GetOrAddPrim(path.Parent()).AddChild(name)
	c.CreateUniformAt(path, "joints", sdf.TokenType.Array(), tokens, GroupSkelAnimation)

	nf := len(c.Span.Frames())
	translations := make([][]math32.Vector3, nf)
	rotations := make([][]math32.Quat, nf)
	scales := make([][]gf.Vec3h, nf)
	one := gf.NewVec3h(1, 1, 1)
	for i, f := range c.Span.Frames() {
		t := c.Span.Time(f)
		for _, j := range joints {
			tr, r := c.jointLocal(j, t)
			translations[i] = append(translations[i], tr.Float())
			rotations[i] = append(rotations[i], r.Float())
			scales[i] = append(scales[i], one)
		}
	}
	setArraySamples(c.Span, c.CreateAttributeAt(path, "translations", sdf.Float3.Array(), nil, GroupSkelAnimation), translations)
	setArraySamples(c.Span, c.CreateAttributeAt(path, "rotations", sdf.Quatf.Array(), nil, GroupSkelAnimation), rotations)
	setArraySamples(c.Span, c.CreateAttributeAt(path, "scales", sdf.Half3.Array(), nil, GroupSkelAnimation), scales)

	c.readJointProperties(path, joints, tokens)
	c.CreateRelationship(c.Path, "skel:animationSource", path, GroupSkelAnimation)
}

// readJointProperties gathers the animated user properties and
// visibility of the joints onto the animation prim at path.
func (c *Context) readJointProperties(path sdf.Path, joints []*fbx.Node, tokens []sdf.Token) {
	frames := c.Span.Frames()
	props := map[string]*jointProperty{}
	for i, j := range joints {
		for _, p := range j.Properties.All() {
			if !(p.UserDefined() || p.Name == "Visibility") || !p.HasCurves(c.Layer) {
				continue
			}
			key := UserPropertyPrefix + ident.Clean(p.Name)
			jp := props[key]
			if jp == nil {
				jp = &jointProperty{typ: UserType(p.Type), frames: make([][]any, len(frames))}
				props[key] = jp
			}
			jp.owners = append(jp.owners, tokens[i])
			for k, f := range frames {
				jp.frames[k] = append(jp.frames[k], Value(jp.typ, p.At(c.Layer, c.Span.Time(f))))
			}
		}
	}
	for _, key := range slices.Sorted(maps.Keys(props)) {
		jp := props[key]
		attr := c.CreateAttributeAt(path, key, jp.typ.Array(), jp.frames[0], GroupUser)
		attr.Custom = true
		for k, f := range frames {
			attr.SetTimeSample(float64(f), jp.frames[k])
		}
		c.CreateUniformAt(path, key+":owner", sdf.TokenType.Array(), jp.owners, GroupUser)
	}
}
