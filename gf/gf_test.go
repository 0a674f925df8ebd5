// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func assertMatrix(t *testing.T, want, got Matrix4d) {
	t.Helper()
	assert.InDeltaSlice(t, want.Slice(), got.Slice(), 1e-9)
}

func TestHalf(t *testing.T) {
	assert.Equal(t, Half(0x3c00), NewHalf(1))
	assert.Equal(t, Half(0xc000), NewHalf(-2))
	assert.Equal(t, Half(0x3800), NewHalf(0.5))
	assert.Equal(t, Half(0x7bff), NewHalf(65504))
	assert.Equal(t, Half(0x7c00), NewHalf(1e6))
	assert.Equal(t, Half(0x0001), NewHalf(5.9604645e-8))

	for _, f := range []float32{0, 1, -2, 0.5, 0.25, 1024, 65504} {
		assert.Equal(t, f, NewHalf(f).Float32())
	}
	assert.Equal(t, float32(5.9604645e-8), Half(1).Float32())
	assert.Equal(t, Vec3h{0x3c00, 0x3800, 0}, NewVec3h(1, 0.5, 0))
}

func TestVectors(t *testing.T) {
	v := Vec3d{1, 2, 3}
	assert.Equal(t, Vec3d{2, 4, 6}, v.Add(v))
	assert.Equal(t, Vec3d{}, v.Sub(v))
	assert.True(t, v.Sub(v).IsZero())
	assert.Equal(t, Vec3d{-1, -2, -3}, v.Negate())
	assert.Equal(t, Vec3d{0.5, 1, 1.5}, v.MulScalar(0.5))
	assert.Equal(t, math32.Vec3(1, 2, 3), v.Float())
	assert.Equal(t, math32.Vec2(1, 2), Vec2f(1, 2))
}

func TestComponentConvert(t *testing.T) {
	vals := []float64{1.5, 2.5}
	assert.Equal(t, 2.5, Component(vals, 1))
	assert.Equal(t, 0.0, Component(vals, 2))
	assert.Equal(t, []float32{1.5, 2.5}, Convert[float32](vals))
	assert.Equal(t, []int32{1, 2}, Convert[int32](vals))
}

func TestMatrixOrder(t *testing.T) {
	m := Translate(Vec3d{1, 2, 3}).Mul(Scale(Vec3d{2, 2, 2}))
	assert.Equal(t, Vec3d{2, 4, 6}, m.TransformPoint(Vec3d{}))

	r := Rotate(2, 90)
	dir := r.TransformDir(Vec3d{1, 0, 0})
	assert.InDeltaSlice(t, []float64{0, 1, 0}, dir[:], 1e-12)
	assertMatrix(t, Identity(), r.Mul(r.Transpose()))
}

func TestInverse(t *testing.T) {
	inv, ok := Translate(Vec3d{1, 2, 3}).Inverse()
	assert.True(t, ok)
	assertMatrix(t, Translate(Vec3d{-1, -2, -3}), inv)

	m := Euler(Vec3d{10, 20, 30}, EulerXYZ).Mul(Translate(Vec3d{4, 5, 6}))
	inv, ok = m.Inverse()
	assert.True(t, ok)
	assertMatrix(t, Identity(), m.Mul(inv))
	assert.InDelta(t, 1.0, m.Determinant(), 1e-12)

	_, ok = Scale(Vec3d{1, 0, 1}).Inverse()
	assert.False(t, ok)
}

func TestEulerRoundTrip(t *testing.T) {
	deg := Vec3d{10, 20, 30}
	got := Euler(deg, EulerXYZ).ToEuler(EulerXYZ)
	assert.InDeltaSlice(t, deg[:], got[:], 1e-9)

	zyx := [3]int{2, 1, 0}
	got = Euler(deg, zyx).ToEuler(zyx)
	assert.InDeltaSlice(t, deg[:], got[:], 1e-9)
}

func TestDecompose(t *testing.T) {
	q := QuatFromMatrix(Rotate(2, 90))
	m := Compose(Vec3d{1, 2, 3}, q, Vec3d{2, 3, 4})
	tr, r, s := m.Decompose()
	assert.InDeltaSlice(t, []float64{1, 2, 3}, tr[:], 1e-12)
	assert.InDeltaSlice(t, []float64{2, 3, 4}, s[:], 1e-12)
	assertMatrix(t, q.Matrix(), r.Matrix())

	assertMatrix(t, Compose(Vec3d{1, 2, 3}, q, Vec3d{1, 1, 1}), m.WithUnitScale())
	assertMatrix(t, Rotate(2, 90), m.Rotation())
}

func TestMatrixSlice(t *testing.T) {
	vals := make([]float64, 16)
	for i := range vals {
		vals[i] = float64(i)
	}
	m := MatrixFromSlice(vals)
	assert.Equal(t, 6.0, m[1][2])
	assert.Equal(t, vals, m.Slice())
	assert.Equal(t, Identity(), MatrixFromSlice(nil))
}
