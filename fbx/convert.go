// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"slices"

	"github.com/usdfbx/usdfbx/gf"
)

// AxisSystem is the orientation of a scene: the up, front and right
// (coord) axes, each an axis index (0 = X, 1 = Y, 2 = Z) and a sign.
type AxisSystem struct {
	Up, UpSign       int
	Front, FrontSign int
	Coord, CoordSign int
}

var (
	// MayaYUp is the right-handed Y-up system, the USD convention.
	MayaYUp = AxisSystem{Up: 1, UpSign: 1, Front: 2, FrontSign: 1, Coord: 0, CoordSign: 1}

	// MayaZUp is the right-handed Z-up system.
	MayaZUp = AxisSystem{Up: 2, UpSign: 1, Front: 1, FrontSign: -1, Coord: 0, CoordSign: 1}
)

func sign(s int) float64 {
	if s < 0 {
		return -1
	}
	return 1
}

// basis returns the matrix whose columns are the right, up and front
// directions of a, mapping coordinates in a to (right, up, front).
func (a AxisSystem) basis() gf.Matrix4d {
	m := gf.Identity()
	for i := range 3 {
		m[i][0], m[i][1], m[i][2] = 0, 0, 0
	}
	m[a.Coord%3][0] = sign(a.CoordSign)
	m[a.Up%3][1] = sign(a.UpSign)
	m[a.Front%3][2] = sign(a.FrontSign)
	return m
}

// ConversionMatrix returns the matrix that maps points expressed in a
// to the same points expressed in to.
func (a AxisSystem) ConversionMatrix(to AxisSystem) gf.Matrix4d {
	inv, _ := to.basis().Inverse()
	return a.basis().Mul(inv)
}

// UpAxisName returns "X", "Y" or "Z".
func (a AxisSystem) UpAxisName() string {
	return AxisName(a.Up)
}

// AxisName returns the letter of axis index i.
func AxisName(i int) string {
	switch i {
	case 0:
		return "X"
	case 2:
		return "Z"
	}
	return "Y"
}

// SystemUnit is a linear unit, as its size in centimeters.
type SystemUnit float64

const (
	Millimeter SystemUnit = 0.1
	Centimeter SystemUnit = 1
	Inch       SystemUnit = 2.54
	Meter      SystemUnit = 100
)

// ConversionFactorTo returns the factor converting lengths in u to lengths in to.
func (u SystemUnit) ConversionFactorTo(to SystemUnit) float64 {
	if u <= 0 || to <= 0 {
		return 1
	}
	return float64(u) / float64(to)
}

// ConvertAxisSystem reorients the scene to the given axis system by
// transforming the local transforms of the root nodes and their
// animation.
func (s *Scene) ConvertAxisSystem(to AxisSystem) {
	if s.Settings.Axis == to {
		return
	}
	c := s.Settings.Axis.ConversionMatrix(to)
	for _, n := range s.Root.Children {
		s.rewriteLocal(n, c)
	}
	s.Settings.Axis = to
}

// ConvertUnit rescales the scene to the given unit by scaling the
// local transforms of the root nodes and their animation, and records
// the factor in ConversionFactor.
func (s *Scene) ConvertUnit(to SystemUnit) {
	f := s.Settings.Unit.ConversionFactorTo(to)
	s.ConversionFactor = f
	if f == 1 {
		return
	}
	for _, n := range s.Root.Children {
		s.rewriteLocal(n, gf.Scale(gf.Vec3d{f, f, f}))
	}
	s.Settings.Unit = to
}

// HasPivots returns whether any pivot, offset or pre and post rotation
// of n is set or animated.
func (n *Node) HasPivots(layer *AnimLayer) bool {
	for _, name := range PivotProperties {
		if !n.Properties.Vec3(name).IsZero() || n.Properties.IsAnimated(layer, name) {
			return true
		}
	}
	return false
}

// ResetPivotSetAndConvertAnimation folds the pivots, offsets and pre
// and post rotations of n into its translation, rotation and scaling,
// resampling the animation of the base layer, so that the node keeps
// the same local transform with all pivots at zero.
func (s *Scene) ResetPivotSetAndConvertAnimation(n *Node) {
	if !n.HasPivots(s.AnimStack().BaseLayer()) {
		return
	}
	s.rewriteLocal(n, gf.Identity())
}

// rewriteLocal replaces the transform properties of n so that its new
// local transform is the old one multiplied by post, with all pivots
// cleared. Animated nodes are resampled at every frame of the base layer.
func (s *Scene) rewriteLocal(n *Node, post gf.Matrix4d) {
	stack := s.AnimStack()
	layer := stack.BaseLayer()
	ps := &n.Properties
	order := n.RotationOrder().Axes()
	decompose := func(l *AnimLayer, t Time) (tr, rot, scl gf.Vec3d) {
		m := LocalTransform(n, l, t).Mul(post)
		tt, q, ss := m.Decompose()
		return tt, q.Matrix().ToEuler(order), ss
	}

	tr, rot, scl := decompose(nil, 0)
	if layer != nil && ps.IsAnimated(layer, TransformProperties...) {
		times := stack.FrameTimes(s.Settings.FrameRate())
		trs := make([]gf.Vec3d, len(times))
		rots := make([]gf.Vec3d, len(times))
		scls := make([]gf.Vec3d, len(times))
		for i, t := range times {
			trs[i], rots[i], scls[i] = decompose(layer, t)
			if i > 0 {
				rots[i] = unwrapEuler(rots[i-1], rots[i])
			}
		}
		index := func(t Time) int { return max(slices.Index(times, t), 0) }
		s.setSampled(ps.Ensure("Lcl Translation"), layer, times, func(t Time) []float64 { return trs[index(t)][:] })
		s.setSampled(ps.Ensure("Lcl Rotation"), layer, times, func(t Time) []float64 { return rots[index(t)][:] })
		s.setSampled(ps.Ensure("Lcl Scaling"), layer, times, func(t Time) []float64 { return scls[index(t)][:] })
		if len(times) > 0 {
			tr, rot, scl = trs[0], rots[0], scls[0]
		}
	}
	ps.Ensure("Lcl Translation").Values = []float64{tr[0], tr[1], tr[2]}
	ps.Ensure("Lcl Rotation").Values = []float64{rot[0], rot[1], rot[2]}
	ps.Ensure("Lcl Scaling").Values = []float64{scl[0], scl[1], scl[2]}
	for _, name := range PivotProperties {
		p := ps.Ensure(name)
		p.Values = []float64{0, 0, 0}
		s.dropCurves(p)
	}
}

// unwrapEuler returns angles equivalent to cur that are closest to prev.
func unwrapEuler(prev, cur gf.Vec3d) gf.Vec3d {
	for i := range 3 {
		for cur[i]-prev[i] > 180 {
			cur[i] -= 360
		}
		for cur[i]-prev[i] < -180 {
			cur[i] += 360
		}
	}
	return cur
}

// setSampled replaces the animation of p on the layer with one key per time.
func (s *Scene) setSampled(p *Property, layer *AnimLayer, times []Time, fn func(t Time) []float64) {
	if old := p.CurveNode(layer); old != nil {
		s.removeCurveNode(old)
	}
	cn := Sampled(layer, p, times, fn)
	p.SetCurveNode(cn)
	layer.CurveNodes = append(layer.CurveNodes, cn)
	s.CurveNodes = append(s.CurveNodes, cn)
}

// dropCurves removes all animation of p.
func (s *Scene) dropCurves(p *Property) {
	for _, cn := range p.Curves {
		s.removeCurveNode(cn)
	}
	p.Curves = nil
}

func (s *Scene) removeCurveNode(cn *CurveNode) {
	s.CurveNodes = slices.DeleteFunc(s.CurveNodes, func(c *CurveNode) bool { return c == cn })
	if cn.Layer != nil {
		cn.Layer.CurveNodes = slices.DeleteFunc(cn.Layer.CurveNodes, func(c *CurveNode) bool { return c == cn })
	}
	if cn.Target != nil && cn.Target.Curves[cn.Layer] == cn {
		delete(cn.Target.Curves, cn.Layer)
	}
}

// Blend returns the value of p at t combining the given layers, the
// first of which is the base: override layers interpolate toward their
// value by the layer weight and additive layers add their weighted value.
func (p *Property) Blend(layers []*AnimLayer, t Time) []float64 {
	v := slices.Clone(p.Values)
	for i, l := range layers {
		cn := p.CurveNode(l)
		if cn == nil || !cn.HasCurves() {
			continue
		}
		lv := cn.Evaluate(t, v)
		w := l.Weight / 100
		if i == 0 {
			w = 1
		}
		for _, c := range cn.keyedChannels() {
			for len(v) <= c {
				v = append(v, 0)
			}
			if i == 0 || l.BlendMode != BlendAdditive {
				v[c] += (lv[c] - v[c]) * w
			} else {
				v[c] += lv[c] * w
			}
		}
	}
	return v
}

// BakeLayers collapses all layers of the stack into the base layer by
// sampling the blended value of every animated property at each frame.
func (s *Scene) BakeLayers(stack *AnimStack) {
	if stack == nil || len(stack.Layers) <= 1 {
		return
	}
	base := stack.Layers[0]
	var props []*Property
	for _, l := range stack.Layers[1:] {
		for _, cn := range l.CurveNodes {
			if cn.Target != nil && cn.HasCurves() && !slices.Contains(props, cn.Target) {
				props = append(props, cn.Target)
			}
		}
	}
	times := stack.FrameTimes(s.Settings.FrameRate())
	layers := slices.Clone(stack.Layers)
	for _, p := range props {
		vals := make([][]float64, len(times))
		for i, t := range times {
			vals[i] = p.Blend(layers, t)
		}
		s.dropCurves(p)
		s.setSampled(p, base, times, func(t Time) []float64 {
			return vals[max(slices.Index(times, t), 0)]
		})
	}
	for _, l := range stack.Layers[1:] {
		for _, cn := range slices.Clone(l.CurveNodes) {
			s.removeCurveNode(cn)
		}
	}
	stack.Layers = stack.Layers[:1]
}
