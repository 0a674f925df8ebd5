// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"github.com/usdfbx/usdfbx/gf"
)

// RotationOrder is the Euler order of a node rotation.
type RotationOrder int32

const (
	EulerXYZ RotationOrder = iota
	EulerXZY
	EulerYZX
	EulerYXZ
	EulerZXY
	EulerZYX
	SphericXYZ
)

var rotationAxes = [...][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 2, 0}, {1, 0, 2}, {2, 0, 1}, {2, 1, 0}, {0, 1, 2},
}

var rotationNames = [...]string{"XYZ", "XZY", "YZX", "YXZ", "ZXY", "ZYX", "XYZ"}

// Axes returns the axes in application order, for [gf.Euler].
func (o RotationOrder) Axes() [3]int {
	if o < 0 || int(o) >= len(rotationAxes) {
		return gf.EulerXYZ
	}
	return rotationAxes[o]
}

// String returns the axis letters in application order, such as "XYZ".
func (o RotationOrder) String() string {
	if o < 0 || int(o) >= len(rotationNames) {
		return "XYZ"
	}
	return rotationNames[o]
}

// RotationOrder returns the rotation order of the node.
func (n *Node) RotationOrder() RotationOrder {
	return RotationOrder(n.Properties.Double("RotationOrder"))
}

// At returns the value of p at t on the layer, or the static value
// when the layer does not animate it.
func (p *Property) At(layer *AnimLayer, t Time) []float64 {
	if cn := p.CurveNode(layer); cn != nil && cn.HasCurves() {
		return cn.Evaluate(t, p.Values)
	}
	return p.Values
}

// At returns the value of the named property at t on the layer,
// falling back to the template and built-in defaults.
func (ps *PropertySet) At(name string, layer *AnimLayer, t Time) []float64 {
	if p := ps.Find(name); p != nil {
		return p.At(layer, t)
	}
	return builtinDefaults[name].values
}

// Vec3At returns the first three components of the named property at t.
func (ps *PropertySet) Vec3At(name string, layer *AnimLayer, t Time) gf.Vec3d {
	v := ps.At(name, layer, t)
	return gf.Vec3d{gf.Component(v, 0), gf.Component(v, 1), gf.Component(v, 2)}
}

// DoubleAt returns the first component of the named property at t.
func (ps *PropertySet) DoubleAt(name string, layer *AnimLayer, t Time) float64 {
	return gf.Component(ps.At(name, layer, t), 0)
}

// IsAnimated returns whether any of the named properties is keyed on the layer.
func (ps *PropertySet) IsAnimated(layer *AnimLayer, names ...string) bool {
	for _, name := range names {
		if ps.Own(name).HasCurves(layer) {
			return true
		}
	}
	return false
}

// TransformProperties are the node properties that make up the local transform.
var TransformProperties = []string{
	"Lcl Translation", "Lcl Rotation", "Lcl Scaling",
	"RotationOffset", "RotationPivot", "ScalingOffset", "ScalingPivot",
	"PreRotation", "PostRotation",
}

// PivotProperties are the transform properties that [Scene.ResetPivots] clears.
var PivotProperties = []string{
	"RotationOffset", "RotationPivot", "ScalingOffset", "ScalingPivot",
	"PreRotation", "PostRotation",
}

// LocalTransform returns the transform of n relative to its parent at t
// on the layer, including pivots and pre and post rotation.
func LocalTransform(n *Node, layer *AnimLayer, t Time) gf.Matrix4d {
	ps := &n.Properties
	tr := ps.Vec3At("Lcl Translation", layer, t)
	rot := ps.Vec3At("Lcl Rotation", layer, t)
	scl := ps.Vec3At("Lcl Scaling", layer, t)
	roff := ps.Vec3At("RotationOffset", layer, t)
	rp := ps.Vec3At("RotationPivot", layer, t)
	soff := ps.Vec3At("ScalingOffset", layer, t)
	sp := ps.Vec3At("ScalingPivot", layer, t)
	pre := ps.Vec3At("PreRotation", layer, t)
	post := ps.Vec3At("PostRotation", layer, t)

	postInv, _ := gf.Euler(post, gf.EulerXYZ).Inverse()
	m := gf.Translate(sp.Negate())
	m = m.Mul(gf.Scale(scl))
	m = m.Mul(gf.Translate(sp))
	m = m.Mul(gf.Translate(soff))
	m = m.Mul(gf.Translate(rp.Negate()))
	m = m.Mul(postInv)
	m = m.Mul(gf.Euler(rot, n.RotationOrder().Axes()))
	m = m.Mul(gf.Euler(pre, gf.EulerXYZ))
	m = m.Mul(gf.Translate(rp))
	m = m.Mul(gf.Translate(roff))
	return m.Mul(gf.Translate(tr))
}

// GlobalTransform returns the transform of n relative to the scene at t.
func GlobalTransform(n *Node, layer *AnimLayer, t Time) gf.Matrix4d {
	m := LocalTransform(n, layer, t)
	for p := n.Parent; p != nil; p = p.Parent {
		m = m.Mul(LocalTransform(p, layer, t))
	}
	return m
}

// GeometricTransform returns the offset of the node attribute from the
// node, which does not propagate to children.
func GeometricTransform(n *Node) gf.Matrix4d {
	ps := &n.Properties
	m := gf.Scale(ps.Vec3("GeometricScaling"))
	m = m.Mul(gf.Euler(ps.Vec3("GeometricRotation"), gf.EulerXYZ))
	return m.Mul(gf.Translate(ps.Vec3("GeometricTranslation")))
}

// HasGeometricTransform returns whether the geometric transform of n is
// not the identity.
func HasGeometricTransform(n *Node) bool {
	ps := &n.Properties
	return !ps.Vec3("GeometricTranslation").IsZero() ||
		!ps.Vec3("GeometricRotation").IsZero() ||
		ps.Vec3("GeometricScaling") != gf.Vec3d{1, 1, 1}
}
