// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"fmt"

	"github.com/usdfbx/usdfbx/fbx/record"
	"github.com/usdfbx/usdfbx/gf"
)

// implementation is a shader implementation object, only kept to
// detect hardware shaders.
type implementation struct {
	Object

	language string
}

// binding is a curve node to property connection resolved after all
// connections are known.
type binding struct {
	node  *CurveNode
	owner *PropertySet
	name  string
}

type builder struct {
	doc       *record.Document
	scene     *Scene
	objects   map[int64]any
	classes   map[int64]string
	templates map[string]*PropertySet
	bindings  []binding
}

// Build converts a parsed FBX document into a scene.
func Build(doc *record.Document) (*Scene, error) {
	if doc.Version != 0 && doc.Version < 7000 {
		return nil, fmt.Errorf("fbx: file version %d predates FBX 7 and is not supported", doc.Version)
	}
	b := &builder{
		doc:       doc,
		scene:     NewScene(),
		objects:   map[int64]any{},
		classes:   map[int64]string{},
		templates: map[string]*PropertySet{},
	}
	b.scene.Version = doc.Version
	b.settings()
	b.definitions()
	objs := doc.Root.Child("Objects")
	if objs == nil {
		return nil, fmt.Errorf("fbx: document has no Objects section")
	}
	for _, r := range objs.Children {
		b.object(r)
	}
	for _, c := range doc.Root.Child("Connections").ChildrenNamed("C") {
		prop := ""
		if c.String(0) == "OP" {
			prop = c.String(3)
		}
		b.connect(c.Int(1), c.Int(2), prop)
	}
	b.finish()
	return b.scene, nil
}

// properties reads the Properties70 block of r into ps.
func properties(ps *PropertySet, r *record.Record) {
	for _, p := range r.Child("Properties70").ChildrenNamed("P") {
		prop := &Property{
			Name:     p.String(0),
			TypeName: p.String(1),
			Flags:    p.String(3),
		}
		prop.Type = ParseDataType(prop.TypeName)
		if prop.Type == TypeUnknown {
			prop.Type = ParseDataType(p.String(2))
		}
		switch prop.Type {
		case TypeString, TypeReference, TypeBlob, TypeDateTime:
			prop.Str = p.String(4)
		default:
			for i := 4; i < len(p.Props); i++ {
				prop.Values = append(prop.Values, p.Float(i))
			}
			if prop.Type == TypeUnknown && len(p.Props) > 4 {
				if _, ok := p.Props[4].(string); ok {
					prop.Type = TypeString
					prop.Str = p.String(4)
					prop.Values = nil
				}
			}
		}
		ps.Add(prop)
	}
}

func (b *builder) settings() {
	var ps PropertySet
	properties(&ps, b.doc.Root.Child("GlobalSettings"))
	or := func(name string, def float64) float64 {
		if p := ps.Own(name); p != nil && len(p.Values) > 0 {
			return p.Values[0]
		}
		return def
	}
	gs := &b.scene.Settings
	gs.Axis = AxisSystem{
		Up: int(or("UpAxis", 1)), UpSign: int(or("UpAxisSign", 1)),
		Front: int(or("FrontAxis", 2)), FrontSign: int(or("FrontAxisSign", 1)),
		Coord: int(or("CoordAxis", 0)), CoordSign: int(or("CoordAxisSign", 1)),
	}
	gs.OriginalUpAxis = int(or("OriginalUpAxis", -1))
	gs.OriginalUpAxisSign = int(or("OriginalUpAxisSign", 1))
	gs.Unit = SystemUnit(or("UnitScaleFactor", 1))
	gs.OriginalUnit = SystemUnit(or("OriginalUnitScaleFactor", float64(gs.Unit)))
	gs.TimeMode = TimeMode(or("TimeMode", 0))
	gs.CustomFrameRate = or("CustomFrameRate", -1)
	gs.TimeSpanStart = Time(or("TimeSpanStart", 0))
	gs.TimeSpanStop = Time(or("TimeSpanStop", 0))
}

// definitions reads the property templates holding the class defaults.
func (b *builder) definitions() {
	for _, ot := range b.doc.Root.Child("Definitions").ChildrenNamed("ObjectType") {
		tmpl := ot.Child("PropertyTemplate")
		if tmpl == nil {
			continue
		}
		ps := &PropertySet{}
		properties(ps, tmpl)
		b.templates[ot.String(0)] = ps
	}
}

// attributeTypes maps node attribute and geometry classes to attribute types.
var attributeTypes = map[string]AttributeType{
	"Null":             AttributeNull,
	"Marker":           AttributeMarker,
	"LimbNode":         AttributeSkeleton,
	"Limb":             AttributeSkeleton,
	"Root":             AttributeSkeleton,
	"Mesh":             AttributeMesh,
	"Nurb":             AttributeNurbs,
	"Nurbs":            AttributeNurbs,
	"Patch":            AttributePatch,
	"Camera":           AttributeCamera,
	"CameraStereo":     AttributeCameraStereo,
	"CameraSwitcher":   AttributeCameraSwitcher,
	"Light":            AttributeLight,
	"OpticalReference": AttributeOpticalReference,
	"OpticalMarker":    AttributeOpticalMarker,
	"NurbsCurve":       AttributeNurbsCurve,
	"TrimNurbsSurface": AttributeTrimNurbsSurface,
	"Boundary":         AttributeBoundary,
	"NurbsSurface":     AttributeNurbsSurface,
	"Shape":            AttributeShape,
	"LodGroup":         AttributeLODGroup,
	"SubDiv":           AttributeSubDiv,
	"CachedEffect":     AttributeCachedEffect,
	"Line":             AttributeLine,
}

func (b *builder) object(r *record.Record) {
	id := r.Int(0)
	class := r.String(2)
	obj := Object{ID: id, Name: record.ObjectName(r.String(1))}
	properties(&obj.Properties, r)
	obj.Properties.Template = b.templates[r.Name]
	b.classes[id] = class

	switch r.Name {
	case "Model":
		b.objects[id] = &Node{Object: obj}
	case "NodeAttribute":
		b.objects[id] = &Attribute{Object: obj, Type: attributeTypes[class]}
	case "Geometry":
		attr := &Attribute{Object: obj, Type: attributeTypes[class]}
		if attr.Type == AttributeMesh {
			attr.Mesh = buildMesh(r)
		}
		b.objects[id] = attr
	case "Material":
		model := r.ChildString("ShadingModel")
		m := &Material{Object: obj, ShadingModel: model, Class: shadingClass(model)}
		b.objects[id] = m
		b.scene.Materials = append(b.scene.Materials, m)
	case "Texture":
		b.objects[id] = &Texture{
			Object:           obj,
			FileName:         r.ChildString("FileName"),
			RelativeFileName: r.ChildString("RelativeFilename"),
		}
	case "LayeredTexture":
		b.objects[id] = &Texture{Object: obj, Layered: true}
	case "Implementation":
		b.objects[id] = &implementation{Object: obj, language: obj.Properties.String("ShaderLanguage")}
	case "Deformer":
		switch class {
		case "Skin":
			b.objects[id] = &Skin{Object: obj}
		case "Cluster":
			b.objects[id] = buildCluster(obj, r)
		}
	case "AnimationStack":
		st := &AnimStack{Object: obj}
		b.objects[id] = st
		b.scene.AnimStacks = append(b.scene.AnimStacks, st)
	case "AnimationLayer":
		l := &AnimLayer{Object: obj, BlendMode: BlendMode(obj.Properties.Double("BlendMode"))}
		l.Weight = obj.Properties.Double("Weight")
		b.objects[id] = l
	case "AnimationCurveNode":
		cn := &CurveNode{Object: obj}
		for _, p := range obj.Properties.All() {
			if len(p.Name) > 2 && p.Name[:2] == "d|" {
				cn.SetDefault(p.Name, p.Value(0))
			}
		}
		b.objects[id] = cn
		b.scene.CurveNodes = append(b.scene.CurveNodes, cn)
	case "AnimationCurve":
		b.objects[id] = buildCurve(obj, r)
	}
}

func layerElement(r *record.Record, direct, index string, size int) *LayerElement {
	e := &LayerElement{
		Name:      r.ChildString("Name"),
		Mapping:   mappingModes[r.ChildString("MappingInformationType")],
		Reference: referenceModes[r.ChildString("ReferenceInformationType")],
		Size:      size,
		Direct:    r.ChildFloat64s(direct),
		Index:     r.ChildInt32s(index),
	}
	return e
}

func buildMesh(r *record.Record) *Mesh {
	m := &Mesh{}
	v := r.ChildFloat64s("Vertices")
	for i := 0; i+2 < len(v); i += 3 {
		m.ControlPoints = append(m.ControlPoints, gf.Vec3d{v[i], v[i+1], v[i+2]})
	}
	m.SetPolygons(r.ChildInt32s("PolygonVertexIndex"))
	for _, le := range r.ChildrenNamed("LayerElementNormal") {
		m.Normals = append(m.Normals, layerElement(le, "Normals", "NormalsIndex", 3))
	}
	for _, le := range r.ChildrenNamed("LayerElementTangent") {
		index := "TangentsIndex"
		if le.Child(index) == nil {
			index = "TangentIndex"
		}
		m.Tangents = append(m.Tangents, layerElement(le, "Tangents", index, 3))
	}
	for _, le := range r.ChildrenNamed("LayerElementColor") {
		m.Colors = append(m.Colors, layerElement(le, "Colors", "ColorIndex", 4))
	}
	for _, le := range r.ChildrenNamed("LayerElementUV") {
		m.UVs = append(m.UVs, layerElement(le, "UV", "UVIndex", 2))
	}
	if le := r.Child("LayerElementMaterial"); le != nil {
		m.Materials = &MaterialElement{
			Mapping: mappingModes[le.ChildString("MappingInformationType")],
			Indexes: le.ChildInt32s("Materials"),
		}
	}
	return m
}

func buildCluster(obj Object, r *record.Record) *Cluster {
	c := &Cluster{
		Object:        obj,
		Indices:       r.ChildInt32s("Indexes"),
		Weights:       r.ChildFloat64s("Weights"),
		Transform:     gf.Identity(),
		TransformLink: gf.Identity(),
	}
	if v := r.ChildFloat64s("Transform"); len(v) == 16 {
		c.Transform = gf.MatrixFromSlice(v)
	}
	if v := r.ChildFloat64s("TransformLink"); len(v) == 16 {
		c.TransformLink = gf.MatrixFromSlice(v)
	}
	return c
}

func buildCurve(obj Object, r *record.Record) *Curve {
	c := &Curve{Object: obj, Default: r.Child("Default").Float(0)}
	times := r.Child("KeyTime").Int64s(0)
	values := r.ChildFloat64s("KeyValueFloat")
	flags := r.ChildInt32s("KeyAttrFlags")
	data := r.ChildFloat64s("KeyAttrDataFloat")
	refs := r.ChildInt32s("KeyAttrRefCount")

	// attr returns the attribute index of key k, expanding the ref counts.
	attr := func(k int) int {
		n := 0
		for j, rc := range refs {
			n += int(rc)
			if k < n {
				return j
			}
		}
		return max(len(refs)-1, 0)
	}
	for k, t := range times {
		key := Key{Time: Time(t), Value: gf.Component(values, k), Interpolation: InterpolationLinear}
		a := attr(k)
		if a < len(flags) {
			f := flags[a]
			switch {
			case f&int32(InterpolationCubic) != 0:
				key.Interpolation = InterpolationCubic
			case f&int32(InterpolationLinear) != 0:
				key.Interpolation = InterpolationLinear
			case f&int32(InterpolationConstant) != 0:
				key.Interpolation = InterpolationConstant
			}
			key.ConstantNext = f&constantNext != 0
		}
		key.RightSlope = gf.Component(data, a*4)
		key.NextLeftSlope = gf.Component(data, a*4+1)
		c.Keys = append(c.Keys, key)
	}
	return c
}

// owner is anything with properties that can be animated.
type owner interface {
	props() *PropertySet
}

func (o *Object) props() *PropertySet { return &o.Properties }

// connect applies one connection of child to parent, through the
// parent property prop for object-property connections.
func (b *builder) connect(childID, parentID int64, prop string) {
	child := b.objects[childID]
	parent, hasParent := b.objects[parentID]
	if parentID == 0 {
		parent, hasParent = b.scene.Root, true
	}
	if child == nil || !hasParent {
		return
	}
	switch c := child.(type) {
	case *Node:
		switch p := parent.(type) {
		case *Node:
			if c.Parent == nil {
				p.AddChild(c)
			}
		case *Cluster:
			p.Link = c
		}
	case *Attribute:
		if n, ok := parent.(*Node); ok && n.Attribute == nil {
			n.Attribute = c
		}
	case *Material:
		switch p := parent.(type) {
		case *Node:
			p.Materials = append(p.Materials, c)
		case *implementation:
			c.HardwareShader = p.language
		}
	case *implementation:
		if m, ok := parent.(*Material); ok {
			m.HardwareShader = c.language
		}
	case *Texture:
		switch p := parent.(type) {
		case *Material:
			p.Textures = append(p.Textures, &MaterialTexture{Channel: prop, Texture: c})
		case *Texture:
			if p.Layered {
				p.Layers = append(p.Layers, c)
			}
		}
	case *Skin:
		if a, ok := parent.(*Attribute); ok && a.Mesh != nil {
			a.Mesh.Skins = append(a.Mesh.Skins, c)
		}
	case *Cluster:
		if s, ok := parent.(*Skin); ok {
			s.Clusters = append(s.Clusters, c)
		}
	case *AnimLayer:
		if s, ok := parent.(*AnimStack); ok {
			c.Stack = s
			s.Layers = append(s.Layers, c)
		}
	case *CurveNode:
		if l, ok := parent.(*AnimLayer); ok {
			c.Layer = l
			l.CurveNodes = append(l.CurveNodes, c)
			return
		}
		if o, ok := parent.(owner); ok && prop != "" {
			b.bindings = append(b.bindings, binding{node: c, owner: o.props(), name: prop})
		}
	case *Curve:
		if cn, ok := parent.(*CurveNode); ok && prop != "" {
			cn.SetCurve(prop, c)
		}
	}
}

// finish resolves what depends on all connections being known.
func (b *builder) finish() {
	for _, bd := range b.bindings {
		if bd.node.Layer == nil {
			continue
		}
		p := bd.owner.Ensure(bd.name)
		bd.node.Target = p
		p.SetCurveNode(bd.node)
	}
	for _, o := range b.objects {
		n, ok := o.(*Node)
		if !ok || n.Attribute != nil {
			continue
		}
		switch t := attributeTypes[b.classes[n.ID]]; t {
		case AttributeNull, AttributeSkeleton, AttributeCamera:
			n.Attribute = &Attribute{Object: Object{Name: n.Name}, Type: t}
		}
	}
	gs := &b.scene.Settings
	for _, st := range b.scene.AnimStacks {
		ps := &st.Properties
		st.LocalStart, st.LocalStop = Time(ps.Double("LocalStart")), Time(ps.Double("LocalStop"))
		if st.LocalStart == 0 && st.LocalStop == 0 {
			st.LocalStart, st.LocalStop = Time(ps.Double("ReferenceStart")), Time(ps.Double("ReferenceStop"))
		}
		if st.LocalStart == 0 && st.LocalStop == 0 {
			st.LocalStart, st.LocalStop = gs.TimeSpanStart, gs.TimeSpanStop
		}
	}
}
