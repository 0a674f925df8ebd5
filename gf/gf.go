// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf provides the value types stored in scene description
// properties: double precision vectors and matrices, half floats,
// and conversions to the float32 types of [math32].
package gf

import (
	"cogentcore.org/core/math32"
	"golang.org/x/exp/constraints"
)

// Vec2d is a double2 value.
type Vec2d [2]float64

// Vec3d is a double3 value.
type Vec3d [3]float64

// Vec4d is a double4 value.
type Vec4d [4]float64

// Add returns v + o.
func (v Vec3d) Add(o Vec3d) Vec3d {
	return Vec3d{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3d) Sub(o Vec3d) Vec3d {
	return Vec3d{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// MulScalar returns v * s.
func (v Vec3d) MulScalar(s float64) Vec3d {
	return Vec3d{v[0] * s, v[1] * s, v[2] * s}
}

// Negate returns -v.
func (v Vec3d) Negate() Vec3d {
	return Vec3d{-v[0], -v[1], -v[2]}
}

// IsZero returns whether all components are exactly zero.
func (v Vec3d) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// Float returns v as a float32 vector.
func (v Vec3d) Float() math32.Vector3 {
	return math32.Vector3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])}
}

// Vec2f returns a float2 value.
func Vec2f[T constraints.Float | constraints.Integer](x, y T) math32.Vector2 {
	return math32.Vector2{X: float32(x), Y: float32(y)}
}

// Vec3f returns a float3 value.
func Vec3f[T constraints.Float | constraints.Integer](x, y, z T) math32.Vector3 {
	return math32.Vector3{X: float32(x), Y: float32(y), Z: float32(z)}
}

// Vec4f returns a float4 value.
func Vec4f[T constraints.Float | constraints.Integer](x, y, z, w T) math32.Vector4 {
	return math32.Vector4{X: float32(x), Y: float32(y), Z: float32(z), W: float32(w)}
}

// Component returns element i of vals, or 0 when vals is too short.
func Component[T constraints.Float | constraints.Integer](vals []T, i int) T {
	if i < len(vals) {
		return vals[i]
	}
	return 0
}

// Convert converts every element of vals to type O.
func Convert[O, T constraints.Float | constraints.Integer](vals []T) []O {
	out := make([]O, len(vals))
	for i, v := range vals {
		out[i] = O(v)
	}
	return out
}
