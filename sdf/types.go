// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import "strings"

// Token is an interned-style string value (the "token" value type).
type Token string

// AssetPath is an "asset" value: a reference to an external file.
type AssetPath struct {
	Path string
}

// TimeCode is a "timecode" value.
type TimeCode float64

// ValueTypeName is the declared type of an attribute value.
type ValueTypeName string

// Value type names used by the reader.
const (
	Bool         ValueTypeName = "bool"
	UChar        ValueTypeName = "uchar"
	Int          ValueTypeName = "int"
	UInt         ValueTypeName = "uint"
	Int64        ValueTypeName = "int64"
	UInt64       ValueTypeName = "uint64"
	Half         ValueTypeName = "half"
	Float        ValueTypeName = "float"
	Double       ValueTypeName = "double"
	TimeCodeType ValueTypeName = "timecode"
	String       ValueTypeName = "string"
	TokenType    ValueTypeName = "token"
	Asset        ValueTypeName = "asset"
	Float2       ValueTypeName = "float2"
	Float3       ValueTypeName = "float3"
	Float4       ValueTypeName = "float4"
	Double2      ValueTypeName = "double2"
	Double3      ValueTypeName = "double3"
	Double4      ValueTypeName = "double4"
	Half3        ValueTypeName = "half3"
	Quatf        ValueTypeName = "quatf"
	Point3f      ValueTypeName = "point3f"
	Normal3f     ValueTypeName = "normal3f"
	Color3f      ValueTypeName = "color3f"
	TexCoord2f   ValueTypeName = "texCoord2f"
	Matrix4d     ValueTypeName = "matrix4d"
)

// Array returns the array type of t.
func (t ValueTypeName) Array() ValueTypeName {
	if t.IsArray() {
		return t
	}
	return t + "[]"
}

// IsArray returns whether t is an array type.
func (t ValueTypeName) IsArray() bool {
	return strings.HasSuffix(string(t), "[]")
}

// Scalar returns the element type of an array type.
func (t ValueTypeName) Scalar() ValueTypeName {
	return ValueTypeName(strings.TrimSuffix(string(t), "[]"))
}

// Specifier is the specifier of a prim.
type Specifier int32

const (
	SpecifierDef Specifier = iota
	SpecifierOver
	SpecifierClass
)

func (s Specifier) String() string {
	switch s {
	case SpecifierOver:
		return "over"
	case SpecifierClass:
		return "class"
	}
	return "def"
}

// Variability says whether an attribute may be time sampled.
type Variability int32

const (
	// VariabilityVarying attributes may carry time samples.
	VariabilityVarying Variability = iota

	// VariabilityUniform attributes have a single value.
	VariabilityUniform
)

func (v Variability) String() string {
	if v == VariabilityUniform {
		return "uniform"
	}
	return "varying"
}

// SpecType is the kind of spec found at a path.
type SpecType int32

const (
	SpecTypeUnknown SpecType = iota
	SpecTypePseudoRoot
	SpecTypePrim
	SpecTypeAttribute
	SpecTypeRelationship
)

func (s SpecType) String() string {
	switch s {
	case SpecTypePseudoRoot:
		return "PseudoRoot"
	case SpecTypePrim:
		return "Prim"
	case SpecTypeAttribute:
		return "Attribute"
	case SpecTypeRelationship:
		return "Relationship"
	}
	return "Unknown"
}

// Prim type names produced by the reader.
const (
	TypeXform         = "Xform"
	TypeScope         = "Scope"
	TypeMesh          = "Mesh"
	TypeGeomSubset    = "GeomSubset"
	TypeCamera        = "Camera"
	TypeSkelRoot      = "SkelRoot"
	TypeSkeleton      = "Skeleton"
	TypeSkelAnimation = "SkelAnimation"
	TypeMaterial      = "Material"
	TypeShader        = "Shader"
)
