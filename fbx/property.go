// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"slices"
	"strings"

	"github.com/usdfbx/usdfbx/gf"
)

// DataType is the data type of a property.
type DataType int32

const (
	TypeUnknown DataType = iota
	TypeChar
	TypeUChar
	TypeShort
	TypeUShort
	TypeUInt
	TypeLongLong
	TypeULongLong
	TypeHalf
	TypeBool
	TypeInt
	TypeFloat
	TypeDouble
	TypeDouble2
	TypeDouble3
	TypeDouble4
	TypeDouble4x4
	TypeEnum
	TypeString
	TypeTime
	TypeReference
	TypeBlob
	TypeDistance
	TypeDateTime
)

// Channels returns the number of animation channels of the type.
func (t DataType) Channels() int {
	switch t {
	case TypeDouble2:
		return 2
	case TypeDouble3:
		return 3
	case TypeDouble4:
		return 4
	case TypeDouble4x4:
		return 16
	case TypeString, TypeReference, TypeBlob, TypeUnknown, TypeDateTime:
		return 0
	}
	return 1
}

// dataTypes maps the FBX property type strings to data types.
var dataTypes = map[string]DataType{
	"char": TypeChar, "Char": TypeChar, "UChar": TypeUChar, "uchar": TypeUChar,
	"Short": TypeShort, "short": TypeShort, "UShort": TypeUShort, "ushort": TypeUShort,
	"UInt": TypeUInt, "uint": TypeUInt, "LongLong": TypeLongLong, "Int64": TypeLongLong,
	"ULongLong": TypeULongLong, "UInt64": TypeULongLong, "Half": TypeHalf, "half": TypeHalf,
	"bool": TypeBool, "Bool": TypeBool, "int": TypeInt, "Integer": TypeInt,
	"float": TypeFloat, "Float": TypeFloat,
	"double": TypeDouble, "Number": TypeDouble, "Double": TypeDouble, "FieldOfView": TypeDouble,
	"FieldOfViewX": TypeDouble, "FieldOfViewY": TypeDouble, "Visibility": TypeDouble, "Roll": TypeDouble,
	"OpticalCenterX": TypeDouble, "OpticalCenterY": TypeDouble,
	"Vector2D": TypeDouble2, "Vector2": TypeDouble2,
	"Vector3D": TypeDouble3, "Vector": TypeDouble3, "Vector3": TypeDouble3, "ColorRGB": TypeDouble3, "Color": TypeDouble3,
	"Lcl Translation": TypeDouble3, "Lcl Rotation": TypeDouble3, "Lcl Scaling": TypeDouble3,
	"Vector4D": TypeDouble4, "Vector4": TypeDouble4, "ColorAndAlpha": TypeDouble4, "ColorRGBA": TypeDouble4,
	"Matrix": TypeDouble4x4, "matrix4x4": TypeDouble4x4, "Matrix4x4": TypeDouble4x4,
	"enum": TypeEnum, "Enum": TypeEnum,
	"KString": TypeString, "String": TypeString, "string": TypeString, "Url": TypeString, "XRefUrl": TypeString,
	"KTime": TypeTime, "Time": TypeTime,
	"object": TypeReference, "Reference": TypeReference,
	"Blob": TypeBlob, "Distance": TypeDistance, "DateTime": TypeDateTime,
	"Visibility Inheritance": TypeBool,
}

// ParseDataType returns the data type for an FBX property type string.
func ParseDataType(s string) DataType {
	return dataTypes[s]
}

// Property is one named property of an object.
type Property struct {
	Name string

	Type DataType

	// TypeName is the FBX type string of the property.
	TypeName string

	// Flags are the FBX property flags, such as "A" (animatable) and "U" (user defined).
	Flags string

	// Values are the numeric components.
	Values []float64

	// Str is the value of string properties.
	Str string

	// Curves are the curve nodes animating the property, per layer.
	Curves map[*AnimLayer]*CurveNode
}

// UserDefined returns whether the property was added by a user.
func (p *Property) UserDefined() bool {
	return strings.Contains(p.Flags, "U")
}

// Animatable returns whether the property can be animated.
func (p *Property) Animatable() bool {
	return strings.Contains(p.Flags, "A")
}

// Value returns component i of the static value, 0 when absent.
func (p *Property) Value(i int) float64 {
	return gf.Component(p.Values, i)
}

// Vec3 returns the first three components of the static value.
func (p *Property) Vec3() gf.Vec3d {
	return gf.Vec3d{p.Value(0), p.Value(1), p.Value(2)}
}

// CurveNode returns the curve node animating the property on the
// layer, or nil.
func (p *Property) CurveNode(layer *AnimLayer) *CurveNode {
	if p == nil || layer == nil || p.Curves == nil {
		return nil
	}
	return p.Curves[layer]
}

// HasCurves returns whether the property has at least one curve on the layer.
func (p *Property) HasCurves(layer *AnimLayer) bool {
	cn := p.CurveNode(layer)
	return cn != nil && cn.HasCurves()
}

// SetCurveNode connects a curve node to the property on the node's layer.
func (p *Property) SetCurveNode(cn *CurveNode) {
	if p.Curves == nil {
		p.Curves = map[*AnimLayer]*CurveNode{}
	}
	p.Curves[cn.Layer] = cn
}

// PropertySet is an ordered set of properties with an optional template
// providing the class defaults for properties that are not set.
type PropertySet struct {
	list  []*Property
	index map[string]*Property

	// Template holds the class defaults, may be nil.
	Template *PropertySet
}

// Add adds p, replacing any property with the same name.
func (ps *PropertySet) Add(p *Property) {
	if ps.index == nil {
		ps.index = map[string]*Property{}
	}
	if old, ok := ps.index[p.Name]; ok {
		ps.list[slices.Index(ps.list, old)] = p
	} else {
		ps.list = append(ps.list, p)
	}
	ps.index[p.Name] = p
}

// Own returns the property explicitly set on the object, or nil.
func (ps *PropertySet) Own(name string) *Property {
	if ps == nil {
		return nil
	}
	return ps.index[name]
}

// Modified returns whether the property is explicitly set on the
// object rather than inherited from the class defaults.
func (ps *PropertySet) Modified(name string) bool {
	return ps.Own(name) != nil
}

// Find returns the property set on the object or its template, or nil.
func (ps *PropertySet) Find(name string) *Property {
	if p := ps.Own(name); p != nil {
		return p
	}
	if ps != nil && ps.Template != nil {
		return ps.Template.Find(name)
	}
	return nil
}

// All returns the properties explicitly set on the object, in order.
func (ps *PropertySet) All() []*Property {
	return ps.list
}

// Ensure returns the property set on the object, creating it from the
// template or built-in default when missing, so that it can be animated
// or modified without touching the template.
func (ps *PropertySet) Ensure(name string) *Property {
	if p := ps.Own(name); p != nil {
		return p
	}
	p := &Property{Name: name, Flags: "A"}
	if t := ps.Find(name); t != nil {
		p.Type, p.TypeName, p.Flags, p.Str = t.Type, t.TypeName, t.Flags, t.Str
		p.Values = slices.Clone(t.Values)
	} else if d, ok := builtinDefaults[name]; ok {
		p.Type = d.typ
		p.Values = slices.Clone(d.values)
	}
	ps.Add(p)
	return p
}

// Set sets the static value of the named property, creating it as needed.
func (ps *PropertySet) Set(name string, typ DataType, vals ...float64) *Property {
	p := ps.Ensure(name)
	p.Type = typ
	p.Values = vals
	return p
}

// SetString sets a string property.
func (ps *PropertySet) SetString(name, s string) *Property {
	p := ps.Ensure(name)
	p.Type = TypeString
	p.Str = s
	return p
}

// Values returns the static value of the named property, falling back
// to the template and then the built-in defaults.
func (ps *PropertySet) Values(name string) []float64 {
	if p := ps.Find(name); p != nil {
		return p.Values
	}
	return builtinDefaults[name].values
}

// Double returns the first component of the named property.
func (ps *PropertySet) Double(name string) float64 {
	return gf.Component(ps.Values(name), 0)
}

// Bool returns whether the named property is non-zero.
func (ps *PropertySet) Bool(name string) bool {
	return ps.Double(name) != 0
}

// Vec3 returns the first three components of the named property.
func (ps *PropertySet) Vec3(name string) gf.Vec3d {
	v := ps.Values(name)
	return gf.Vec3d{gf.Component(v, 0), gf.Component(v, 1), gf.Component(v, 2)}
}

// String returns the value of a string property.
func (ps *PropertySet) String(name string) string {
	if p := ps.Find(name); p != nil {
		return p.Str
	}
	return ""
}

type propertyDefault struct {
	typ    DataType
	values []float64
}

// builtinDefaults are the FBX SDK defaults of the properties the
// converter reads, used when neither the object nor its template set them.
var builtinDefaults = map[string]propertyDefault{
	"Lcl Translation":      {TypeDouble3, []float64{0, 0, 0}},
	"Lcl Rotation":         {TypeDouble3, []float64{0, 0, 0}},
	"Lcl Scaling":          {TypeDouble3, []float64{1, 1, 1}},
	"RotationOffset":       {TypeDouble3, []float64{0, 0, 0}},
	"RotationPivot":        {TypeDouble3, []float64{0, 0, 0}},
	"ScalingOffset":        {TypeDouble3, []float64{0, 0, 0}},
	"ScalingPivot":         {TypeDouble3, []float64{0, 0, 0}},
	"PreRotation":          {TypeDouble3, []float64{0, 0, 0}},
	"PostRotation":         {TypeDouble3, []float64{0, 0, 0}},
	"GeometricTranslation": {TypeDouble3, []float64{0, 0, 0}},
	"GeometricRotation":    {TypeDouble3, []float64{0, 0, 0}},
	"GeometricScaling":     {TypeDouble3, []float64{1, 1, 1}},
	"RotationOrder":        {TypeEnum, []float64{0}},
	"Visibility":           {TypeDouble, []float64{1}},
	"FocalLength":          {TypeDouble, []float64{34.89327}},
	"FieldOfView":          {TypeDouble, []float64{25.114999}},
	"FilmWidth":            {TypeDouble, []float64{0.816}},
	"FilmHeight":           {TypeDouble, []float64{0.612}},
	"FilmSqueezeRatio":     {TypeDouble, []float64{1}},
	"NearPlane":            {TypeDouble, []float64{10}},
	"FarPlane":             {TypeDouble, []float64{4000}},
	"FocusDistance":        {TypeDouble, []float64{200}},
	"CameraProjectionType": {TypeEnum, []float64{0}},
	"UseDepthOfField":      {TypeBool, []float64{0}},
	"DiffuseColor":         {TypeDouble3, []float64{0.8, 0.8, 0.8}},
	"EmissiveColor":        {TypeDouble3, []float64{0, 0, 0}},
	"SpecularColor":        {TypeDouble3, []float64{0.2, 0.2, 0.2}},
	"ShininessExponent":    {TypeDouble, []float64{20}},
	"ReflectionFactor":     {TypeDouble, []float64{1}},
	"Weight":               {TypeDouble, []float64{100}},
}
