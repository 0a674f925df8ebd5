// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"cogentcore.org/core/math32"
	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/ident"
	"github.com/usdfbx/usdfbx/sdf"
)

// Primvar interpolations.
const (
	InterpolationConstant    = "constant"
	InterpolationUniform     = "uniform"
	InterpolationVertex      = "vertex"
	InterpolationFaceVarying = "faceVarying"
)

// ReadMesh converts the mesh attribute of the node: points, topology,
// normals, tangents, colors, texture coordinates, material bindings
// and skinning.
func ReadMesh(c *Context) {
	m := c.Node.Mesh()
	if m == nil {
		return
	}
	c.Prim().TypeName = sdf.TypeMesh

	uvSets := c.readUVs(m)
	c.readPoints(m)
	c.readVectors("primvars:normals", m.Normals, m)
	c.readVectors("primvars:tangents", m.Tangents, m)
	c.readColors(m)
	c.readTopology(m)
	c.ReadMeshMaterials(m, uvSets)
	c.ReadSkin(m)

	c.CreateUniform("orientation", sdf.TokenType, sdf.Token("rightHanded"), GroupGeometry)
	c.CreateUniform("subdivisionScheme", sdf.TokenType, sdf.Token("none"), GroupGeometry)
}

// faceVarying returns the element value of every polygon vertex.
func faceVarying(m *fbx.Mesh, e *fbx.LayerElement, typ sdf.ValueTypeName) []math32.Vector3 {
	var out []math32.Vector3
	for p := range m.PolygonCount() {
		start := m.PolygonStarts[p]
		for v := range m.PolygonSize(p) {
			ch := e.Resolve(start+v, m.PolygonVertex(p, v), p)
			out = append(out, Value(typ, ch).(math32.Vector3))
		}
	}
	return out
}

func (c *Context) readPoints(m *fbx.Mesh) {
	geo := fbx.GeometricTransform(c.Node)
	apply := fbx.HasGeometricTransform(c.Node)
	points := make([]math32.Vector3, len(m.ControlPoints))
	for i, p := range m.ControlPoints {
		if apply {
			p = geo.TransformPoint(p)
		}
		points[i] = p.Float()
	}
	c.CreateAttribute("points", sdf.Point3f.Array(), points, GroupGeometry)
}

// readVectors converts the first normal or tangent layer to a face
// varying primvar.
func (c *Context) readVectors(name string, layers []*fbx.LayerElement, m *fbx.Mesh) {
	if len(layers) == 0 {
		return
	}
	attr := c.CreateAttribute(name, sdf.Normal3f.Array(), faceVarying(m, layers[0], sdf.Normal3f), GroupGeometry)
	SetPrimvar(attr, InterpolationFaceVarying, 0)
}

func (c *Context) readTopology(m *fbx.Mesh) {
	counts := make([]int32, m.PolygonCount())
	for p := range counts {
		counts[p] = int32(m.PolygonSize(p))
	}
	c.CreateAttribute("faceVertexCounts", sdf.Int.Array(), counts, GroupGeometry)
	c.CreateAttribute("faceVertexIndices", sdf.Int.Array(), append([]int32(nil), m.PolygonVertices...), GroupGeometry)
}

// readColors converts the color sets laid out per control point or per
// polygon vertex. The first becomes the display color.
func (c *Context) readColors(m *fbx.Mesh) {
	names := ident.NewSet()
	emitted := 0
	for _, e := range m.Colors {
		var vals []math32.Vector3
		var interp string
		switch e.Mapping {
		case fbx.MappingByControlPoint:
			interp = InterpolationVertex
			for i := range m.ControlPoints {
				vals = append(vals, Value(sdf.Color3f, e.Resolve(0, i, 0)).(math32.Vector3))
			}
		case fbx.MappingByPolygonVertex:
			interp = InterpolationFaceVarying
			vals = faceVarying(m, e, sdf.Color3f)
		default:
			c.Debugf("color set %q of %q is skipped: unsupported mapping", e.Name, c.Node.Name)
			continue
		}
		name := "primvars:displayColor"
		if emitted > 0 {
			name = "primvars:" + names.Clean("displayColor_"+e.Name, ident.DefaultTrim)
		}
		emitted++
		attr := c.CreateAttribute(name, sdf.Color3f.Array(), vals, GroupGeometry)
		SetPrimvar(attr, interp, 0)
	}
	if emitted > 1 {
		c.Warnf("%q has %d color sets, only the first one is used as the display color", c.Node.Name, emitted)
	}
}

// readUVs converts the UV sets laid out per polygon vertex and returns
// the primvar name of each converted set by source name.
func (c *Context) readUVs(m *fbx.Mesh) map[string]string {
	current := c.Node.Properties.String("currentUVSet")
	names := ident.NewSet("st")
	uvSets := map[string]string{}
	for _, e := range m.UVs {
		if e.Mapping != fbx.MappingByPolygonVertex || e.Reference == fbx.ReferenceIndex {
			c.Debugf("UV set %q of %q is skipped: not laid out per polygon vertex", e.Name, c.Node.Name)
			continue
		}
		name := names.Clean("st_"+e.Name, ident.DefaultTrim)
		uvSets[e.Name] = name
		vals := uvValues(m, e)
		attr := c.CreateAttribute("primvars:"+name, sdf.TexCoord2f.Array(), vals, GroupGeometry)
		SetPrimvar(attr, InterpolationFaceVarying, 0)
		if e.Name == current {
			attr := c.CreateAttribute("primvars:st", sdf.TexCoord2f.Array(), vals, GroupGeometry)
			SetPrimvar(attr, InterpolationFaceVarying, 0)
		}
	}
	return uvSets
}

func uvValues(m *fbx.Mesh, e *fbx.LayerElement) []math32.Vector2 {
	var out []math32.Vector2
	for p := range m.PolygonCount() {
		start := m.PolygonStarts[p]
		for v := range m.PolygonSize(p) {
			ch := e.Resolve(start+v, m.PolygonVertex(p, v), p)
			out = append(out, Value(sdf.TexCoord2f, ch).(math32.Vector2))
		}
	}
	return out
}
