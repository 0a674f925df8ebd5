// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"cmp"
	"slices"
	"strings"

	"github.com/chewxy/math32"
	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/gf"
	"github.com/usdfbx/usdfbx/sdf"
)

// Influence is the weight of one joint on one control point.
type Influence struct {
	Joint  int32
	Weight float32
}

// SkinBinding is the joint influence data of a skinned mesh.
type SkinBinding struct {
	// Joints are the influencing joints, in cluster order.
	Joints []*fbx.Node

	// Root is the root joint of the skeleton.
	Root *fbx.Node

	// ElementSize is the number of influences per control point.
	ElementSize int

	// Influences holds ElementSize influences per control point,
	// normalized and sorted by decreasing weight.
	Influences []Influence
}

// Indices returns the joint index of every influence.
func (b *SkinBinding) Indices() []int32 {
	out := make([]int32, len(b.Influences))
	for i, in := range b.Influences {
		out[i] = in.Joint
	}
	return out
}

// Weights returns the weight of every influence.
func (b *SkinBinding) Weights() []float32 {
	out := make([]float32, len(b.Influences))
	for i, in := range b.Influences {
		out[i] = in.Weight
	}
	return out
}

// NewSkinBinding gathers the influences of the skin on the control
// points of the mesh. The binding has no joints when no cluster is
// linked to a joint.
func NewSkinBinding(m *fbx.Mesh, skin *fbx.Skin) *SkinBinding {
	b := &SkinBinding{}
	points := make([][]Influence, len(m.ControlPoints))
	for _, cl := range skin.Clusters {
		if cl.Link == nil {
			continue
		}
		joint := int32(len(b.Joints))
		b.Joints = append(b.Joints, cl.Link)
		for k, cp := range cl.Indices {
			if cp < 0 || int(cp) >= len(points) {
				continue
			}
			points[cp] = append(points[cp], Influence{Joint: joint, Weight: float32(gf.Component(cl.Weights, k))})
			b.ElementSize = max(b.ElementSize, len(points[cp]))
		}
	}
	if len(b.Joints) == 0 {
		return b
	}
	b.Root = RootJoint(b.Joints[0])

	b.Influences = make([]Influence, 0, len(points)*b.ElementSize)
	for _, infl := range points {
		for len(infl) < b.ElementSize {
			infl = append(infl, Influence{})
		}
		var sum float32
		for _, in := range infl {
			sum += in.Weight
		}
		if math32.Abs(sum) > 1e-6 {
			for i := range infl {
				infl[i].Weight /= sum
			}
		}
		slices.SortStableFunc(infl, func(a, b Influence) int {
			return cmp.Compare(b.Weight, a.Weight)
		})
		b.Influences = append(b.Influences, infl...)
	}
	return b
}

// RootJoint returns the topmost skeleton ancestor of the joint n.
func RootJoint(n *fbx.Node) *fbx.Node {
	for n.Parent != nil && n.Parent.IsSkeleton() {
		n = n.Parent
	}
	return n
}

// JointToken returns the joint path of n: the prim names of the joints
// from root down to n, separated by slashes.
func (c *Context) JointToken(n, root *fbx.Node) sdf.Token {
	var names []string
	for ; n != nil; n = n.Parent {
		names = append(names, c.conv.names[n])
		if n == root {
			break
		}
	}
	slices.Reverse(names)
	return sdf.Token(strings.Join(names, "/"))
}

// ReadSkin converts the first skin of the mesh into skeleton binding
// attributes.
func (c *Context) ReadSkin(m *fbx.Mesh) {
	if len(m.Skins) == 0 {
		return
	}
	b := NewSkinBinding(m, m.Skins[0])
	if len(b.Joints) == 0 {
		c.Warnf("A skin for %q has been defined, but no joints could be extracted!", c.Node.Name)
		return
	}
	AddAPISchema(c.Prim(), "SkelBindingAPI")

	tokens := make([]sdf.Token, len(b.Joints))
	for i, j := range b.Joints {
		tokens[i] = c.JointToken(j, b.Root)
	}
	c.CreateUniform("skel:joints", sdf.TokenType.Array(), tokens, GroupSkeleton)

	indices := c.CreateAttribute("primvars:skel:jointIndices", sdf.Int.Array(), b.Indices(), GroupSkeleton)
	SetPrimvar(indices, InterpolationVertex, b.ElementSize)
	weights := c.CreateAttribute("primvars:skel:jointWeights", sdf.Float.Array(), b.Weights(), GroupSkeleton)
	SetPrimvar(weights, InterpolationVertex, b.ElementSize)

	bind := fbx.GlobalTransform(c.Node, c.Layer, 0).WithUnitScale()
	c.CreateAttribute("primvars:skel:geomBindTransform", sdf.Matrix4d, bind, GroupSkeleton)

	if skel := c.PathOf(b.Root); !skel.IsEmpty() {
		c.CreateRelationship(c.Path, "skel:skeleton", skel, GroupSkeleton)
	}
}
