// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"github.com/usdfbx/usdfbx/gf"
)

// MappingMode is how the elements of a layer element map onto a mesh.
type MappingMode int32

const (
	MappingNone MappingMode = iota
	MappingByControlPoint
	MappingByPolygonVertex
	MappingByPolygon
	MappingByEdge
	MappingAllSame
)

var mappingModes = map[string]MappingMode{
	"ByControlPoint":       MappingByControlPoint,
	"ByVertice":            MappingByControlPoint,
	"ByVertex":             MappingByControlPoint,
	"ByPolygonVertex":      MappingByPolygonVertex,
	"ByPolygon":            MappingByPolygon,
	"ByEdge":               MappingByEdge,
	"AllSame":              MappingAllSame,
	"NoMappingInformation": MappingNone,
}

// ReferenceMode is how a layer element addresses its direct array.
type ReferenceMode int32

const (
	ReferenceDirect ReferenceMode = iota
	ReferenceIndex
	ReferenceIndexToDirect
)

var referenceModes = map[string]ReferenceMode{
	"Direct":        ReferenceDirect,
	"Index":         ReferenceIndex,
	"IndexToDirect": ReferenceIndexToDirect,
}

// LayerElement is per-element mesh data such as normals or UVs.
type LayerElement struct {
	Name string

	Mapping MappingMode

	Reference ReferenceMode

	// Size is the number of components of one element.
	Size int

	// Direct holds the element values, Size components each.
	Direct []float64

	// Index maps elements to Direct entries for the indexed reference modes.
	Index []int32
}

// Len returns the number of direct elements.
func (e *LayerElement) Len() int {
	if e.Size == 0 {
		return 0
	}
	return len(e.Direct) / e.Size
}

// DirectAt returns direct element i, or nil when out of range.
func (e *LayerElement) DirectAt(i int) []float64 {
	if i < 0 || i >= e.Len() {
		return nil
	}
	return e.Direct[i*e.Size : (i+1)*e.Size]
}

// Resolve returns the element for the given polygon vertex, control
// point and polygon, according to the mapping and reference modes.
func (e *LayerElement) Resolve(polygonVertex, controlPoint, polygon int) []float64 {
	i := 0
	switch e.Mapping {
	case MappingByControlPoint:
		i = controlPoint
	case MappingByPolygonVertex:
		i = polygonVertex
	case MappingByPolygon:
		i = polygon
	case MappingAllSame:
		i = 0
	default:
		return nil
	}
	if e.Reference != ReferenceDirect {
		if i < 0 || i >= len(e.Index) {
			return nil
		}
		i = int(e.Index[i])
	}
	return e.DirectAt(i)
}

// MaterialElement assigns materials to polygons.
type MaterialElement struct {
	Mapping MappingMode

	// Indexes are material indexes into the node materials.
	Indexes []int32
}

// Mesh is polygonal geometry.
type Mesh struct {
	ControlPoints []gf.Vec3d

	// PolygonVertices holds the control point index of each polygon vertex.
	PolygonVertices []int32

	// PolygonStarts holds the first polygon vertex of each polygon.
	PolygonStarts []int

	Normals  []*LayerElement
	Tangents []*LayerElement
	Colors   []*LayerElement
	UVs      []*LayerElement

	Materials *MaterialElement

	Skins []*Skin
}

// ControlPoint returns control point i of the mesh, or the origin.
func (m *Mesh) ControlPoint(i int) gf.Vec3d {
	if i < 0 || i >= len(m.ControlPoints) {
		return gf.Vec3d{}
	}
	return m.ControlPoints[i]
}

// SetPolygons sets the polygon vertices from the FBX encoding in which
// the last index of every polygon is stored as its bitwise complement.
func (m *Mesh) SetPolygons(indexes []int32) {
	m.PolygonVertices = make([]int32, len(indexes))
	m.PolygonStarts = m.PolygonStarts[:0]
	start := true
	for i, v := range indexes {
		if start {
			m.PolygonStarts = append(m.PolygonStarts, i)
			start = false
		}
		if v < 0 {
			v = ^v
			start = true
		}
		m.PolygonVertices[i] = v
	}
}

// PolygonCount returns the number of polygons.
func (m *Mesh) PolygonCount() int {
	return len(m.PolygonStarts)
}

// PolygonSize returns the number of vertices of polygon p.
func (m *Mesh) PolygonSize(p int) int {
	end := len(m.PolygonVertices)
	if p+1 < len(m.PolygonStarts) {
		end = m.PolygonStarts[p+1]
	}
	return end - m.PolygonStarts[p]
}

// PolygonVertex returns the control point of vertex v of polygon p.
func (m *Mesh) PolygonVertex(p, v int) int {
	return int(m.PolygonVertices[m.PolygonStarts[p]+v])
}

// PolygonMaterial returns the material index of polygon p, or -1.
func (m *Mesh) PolygonMaterial(p int) int {
	me := m.Materials
	if me == nil || len(me.Indexes) == 0 {
		return -1
	}
	switch me.Mapping {
	case MappingAllSame:
		return int(me.Indexes[0])
	case MappingByPolygon:
		if p < len(me.Indexes) {
			return int(me.Indexes[p])
		}
	}
	return -1
}

// Skin binds mesh control points to skeleton nodes.
type Skin struct {
	Object

	Clusters []*Cluster
}

// Cluster holds the influence of one skeleton node on control points.
type Cluster struct {
	Object

	// Link is the influencing node.
	Link *Node

	// Indices are the influenced control points, with matching Weights.
	Indices []int32
	Weights []float64

	// Transform is the global transform of the mesh at bind time.
	Transform gf.Matrix4d

	// TransformLink is the global transform of Link at bind time.
	TransformLink gf.Matrix4d
}
