// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"github.com/usdfbx/usdfbx/gf"
)

// DefaultSettings returns the settings of a new scene: Y-up,
// centimeters and 30 frames per second.
func DefaultSettings() GlobalSettings {
	return GlobalSettings{
		Axis:               MayaYUp,
		OriginalUpAxis:     -1,
		OriginalUpAxisSign: 1,
		Unit:               Centimeter,
		OriginalUnit:       Centimeter,
		TimeMode:           TimeModeFrames30,
	}
}

// NewScene returns an empty scene with default settings.
func NewScene() *Scene {
	return &Scene{
		Root:             &Node{Object: Object{Name: "RootNode"}},
		Settings:         DefaultSettings(),
		ConversionFactor: 1,
	}
}

// AddNode adds a node with an attribute of the given type under parent,
// the scene root when parent is nil.
func (s *Scene) AddNode(parent *Node, name string, typ AttributeType) *Node {
	if parent == nil {
		parent = s.Root
	}
	n := &Node{Object: Object{Name: name}}
	if typ != AttributeUnknown {
		n.Attribute = &Attribute{Object: Object{Name: name}, Type: typ}
	}
	parent.AddChild(n)
	return n
}

// AddMesh adds a mesh node with the given control points and polygons,
// each polygon listing its control points.
func (s *Scene) AddMesh(parent *Node, name string, points []gf.Vec3d, polygons ...[]int32) *Node {
	n := s.AddNode(parent, name, AttributeMesh)
	m := &Mesh{ControlPoints: points}
	var enc []int32
	for _, p := range polygons {
		for i, v := range p {
			if i == len(p)-1 {
				v = ^v
			}
			enc = append(enc, v)
		}
	}
	m.SetPolygons(enc)
	n.Attribute.Mesh = m
	return n
}

// AddMaterial adds a material with the given shading model to n.
func (s *Scene) AddMaterial(n *Node, name, shadingModel string) *Material {
	m := &Material{Object: Object{Name: name}, ShadingModel: shadingModel, Class: shadingClass(shadingModel)}
	s.Materials = append(s.Materials, m)
	if n != nil {
		n.Materials = append(n.Materials, m)
	}
	return m
}

// AddTexture connects a new file texture to a material channel.
func (m *Material) AddTexture(channel, name, fileName string) *Texture {
	t := &Texture{Object: Object{Name: name}, FileName: fileName}
	m.Textures = append(m.Textures, &MaterialTexture{Channel: channel, Texture: t})
	return t
}

// AddAnimStack adds an animation stack spanning the given frames at
// the scene frame rate, with one base layer.
func (s *Scene) AddAnimStack(name string, start, stop float64) *AnimStack {
	fps := s.Settings.FrameRate()
	st := &AnimStack{
		Object:     Object{Name: name},
		LocalStart: FrameTime(start, fps),
		LocalStop:  FrameTime(stop, fps),
	}
	st.AddLayer("BaseLayer", BlendOverride, 100)
	s.AnimStacks = append(s.AnimStacks, st)
	return st
}

// AddLayer adds a layer on top of the stack.
func (st *AnimStack) AddLayer(name string, mode BlendMode, weight float64) *AnimLayer {
	l := &AnimLayer{Object: Object{Name: name}, Stack: st, Weight: weight, BlendMode: mode}
	st.Layers = append(st.Layers, l)
	return l
}

// Animate keys channel i of the named property on the layer with
// linear keys at the given frames, one value per frame.
func (s *Scene) Animate(ps *PropertySet, name string, layer *AnimLayer, channel int, frames []float64, values []float64) *Curve {
	p := ps.Ensure(name)
	cn := p.CurveNode(layer)
	if cn == nil {
		cn = &CurveNode{Object: Object{Name: name}, Layer: layer, Target: p}
		p.SetCurveNode(cn)
		layer.CurveNodes = append(layer.CurveNodes, cn)
		s.CurveNodes = append(s.CurveNodes, cn)
		for i, v := range p.Values {
			cn.SetDefault(channelName(len(p.Values), i, name), v)
		}
	}
	fps := s.Settings.FrameRate()
	c := &Curve{}
	for i, f := range frames {
		c.Keys = append(c.Keys, Key{Time: FrameTime(f, fps), Value: gf.Component(values, i), Interpolation: InterpolationLinear})
	}
	cn.SetCurve(channelName(max(len(p.Values), 1), channel, name), c)
	return c
}

// channelName returns the conventional name of channel i of a value
// with n components.
func channelName(n, i int, single string) string {
	if n == 1 {
		return single
	}
	return [...]string{"X", "Y", "Z", "W"}[i%4]
}
