// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fbx is an in-memory FBX scene: the node hierarchy with its
// attributes, geometry, skins, materials and animation, built from
// parsed FBX records, plus the evaluator that computes animated
// property values and node transforms at a given time.
package fbx

// AttributeType is the kind of a node attribute.
type AttributeType int32

const (
	AttributeUnknown AttributeType = iota
	AttributeNull
	AttributeMarker
	AttributeSkeleton
	AttributeMesh
	AttributeNurbs
	AttributePatch
	AttributeCamera
	AttributeCameraStereo
	AttributeCameraSwitcher
	AttributeLight
	AttributeOpticalReference
	AttributeOpticalMarker
	AttributeNurbsCurve
	AttributeTrimNurbsSurface
	AttributeBoundary
	AttributeNurbsSurface
	AttributeShape
	AttributeLODGroup
	AttributeSubDiv
	AttributeCachedEffect
	AttributeLine

	// AttributeTypeN is the number of attribute types.
	AttributeTypeN
)

var attributeTypeNames = [...]string{
	"Unknown", "Null", "Marker", "Skeleton", "Mesh", "Nurbs", "Patch", "Camera",
	"CameraStereo", "CameraSwitcher", "Light", "OpticalReference", "OpticalMarker",
	"NurbsCurve", "TrimNurbsSurface", "Boundary", "NurbsSurface", "Shape", "LODGroup",
	"SubDiv", "CachedEffect", "Line",
}

func (a AttributeType) String() string {
	if a >= 0 && a < AttributeTypeN {
		return attributeTypeNames[a]
	}
	return "Unknown"
}

// Object holds what every FBX object has: an id, a name and properties.
type Object struct {
	// ID is the unique object id from the file, 0 for the scene root.
	ID int64

	Name string

	Properties PropertySet
}

// Attribute is the node attribute that gives a node its kind.
type Attribute struct {
	Object

	Type AttributeType

	// Mesh is the geometry of mesh attributes.
	Mesh *Mesh
}

// Node is one node of the scene hierarchy.
type Node struct {
	Object

	Parent   *Node
	Children []*Node

	// Attribute is nil for nodes without a classifiable attribute.
	Attribute *Attribute

	// Materials are the materials connected to the node, in material
	// index order.
	Materials []*Material
}

// AttributeType returns the type of the node attribute, or
// AttributeUnknown when there is none.
func (n *Node) AttributeType() AttributeType {
	if n.Attribute == nil {
		return AttributeUnknown
	}
	return n.Attribute.Type
}

// IsSkeleton returns whether n has a skeleton attribute.
func (n *Node) IsSkeleton() bool {
	return n != nil && n.AttributeType() == AttributeSkeleton
}

// Mesh returns the mesh of n, or nil.
func (n *Node) Mesh() *Mesh {
	if n.Attribute == nil {
		return nil
	}
	return n.Attribute.Mesh
}

// AddChild appends c to the children of n.
func (n *Node) AddChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Walk calls fn for n and its descendants depth-first, skipping the
// children of any node for which fn returns false.
func (n *Node) Walk(fn func(n *Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// GlobalSettings are the scene wide settings.
type GlobalSettings struct {
	// Axis is the axis system the scene is expressed in.
	Axis AxisSystem

	// OriginalUpAxis is the up axis the scene was authored in, -1 when
	// it is the same as the exported one.
	OriginalUpAxis int

	// OriginalUpAxisSign is the sign of OriginalUpAxis.
	OriginalUpAxisSign int

	// Unit is the size of one scene unit in centimeters.
	Unit SystemUnit

	// OriginalUnit is the unit the scene was authored in.
	OriginalUnit SystemUnit

	TimeMode TimeMode

	// CustomFrameRate is used when TimeMode is TimeModeCustom.
	CustomFrameRate float64

	TimeSpanStart, TimeSpanStop Time
}

// FrameRate returns the frames per second of the scene.
func (gs *GlobalSettings) FrameRate() float64 {
	return gs.TimeMode.FrameRate(gs.CustomFrameRate)
}

// Scene is an imported FBX scene.
type Scene struct {
	// FileName is the path the scene was imported from.
	FileName string

	// Version is the file format version, such as 7400.
	Version uint32

	Settings GlobalSettings

	// Root is the unnamed scene root node.
	Root *Node

	AnimStacks []*AnimStack

	// Materials are all materials in the file.
	Materials []*Material

	// CurveNodes are all animation curve nodes in the file.
	CurveNodes []*CurveNode

	// ConversionFactor is the linear factor applied by [Scene.ConvertUnit],
	// 1 before conversion.
	ConversionFactor float64
}

// HasSkeleton returns whether any node of the scene is a skeleton.
func (s *Scene) HasSkeleton() bool {
	found := false
	s.Root.Walk(func(n *Node) bool {
		if n.IsSkeleton() {
			found = true
		}
		return !found
	})
	return found
}

// AnimStack returns the first animation stack, or nil.
func (s *Scene) AnimStack() *AnimStack {
	if len(s.AnimStacks) == 0 {
		return nil
	}
	return s.AnimStacks[0]
}

// Nodes returns all nodes except the root, depth-first.
func (s *Scene) Nodes() []*Node {
	var out []*Node
	s.Root.Walk(func(n *Node) bool {
		if n != s.Root {
			out = append(out, n)
		}
		return true
	})
	return out
}
