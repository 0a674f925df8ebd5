// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf

import (
	"math"

	"cogentcore.org/core/math32"
)

// Matrix4d is a 4x4 double matrix stored row-major. It uses the
// row-vector convention: a point p transforms as p * M, translation
// lives in row 3, and A.Mul(B) applies A first and B second.
type Matrix4d [4][4]float64

// Identity returns the identity matrix.
func Identity() Matrix4d {
	return Matrix4d{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// MatrixFromSlice returns the matrix whose row-major elements are vals.
// Missing elements are taken from the identity.
func MatrixFromSlice(vals []float64) Matrix4d {
	m := Identity()
	for i := 0; i < 16 && i < len(vals); i++ {
		m[i/4][i%4] = vals[i]
	}
	return m
}

// Slice returns the 16 elements of m in row-major order.
func (m Matrix4d) Slice() []float64 {
	out := make([]float64, 0, 16)
	for r := range 4 {
		out = append(out, m[r][:]...)
	}
	return out
}

// Mul returns m * o.
func (m Matrix4d) Mul(o Matrix4d) Matrix4d {
	var r Matrix4d
	for i := range 4 {
		for j := range 4 {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j] + m[i][3]*o[3][j]
		}
	}
	return r
}

// Transpose returns the transpose of m.
func (m Matrix4d) Transpose() Matrix4d {
	var r Matrix4d
	for i := range 4 {
		for j := range 4 {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Determinant returns the determinant of m.
func (m Matrix4d) Determinant() float64 {
	_, det := m.adjugate()
	return det
}

// Inverse returns the inverse of m, and false if m is singular.
func (m Matrix4d) Inverse() (Matrix4d, bool) {
	adj, det := m.adjugate()
	if math.Abs(det) < 1e-300 {
		return Identity(), false
	}
	inv := 1 / det
	for i := range 4 {
		for j := range 4 {
			adj[i][j] *= inv
		}
	}
	return adj, true
}

// adjugate returns the transposed cofactor matrix and the determinant.
func (m Matrix4d) adjugate() (Matrix4d, float64) {
	a := m
	s0 := a[0][0]*a[1][1] - a[1][0]*a[0][1]
	s1 := a[0][0]*a[1][2] - a[1][0]*a[0][2]
	s2 := a[0][0]*a[1][3] - a[1][0]*a[0][3]
	s3 := a[0][1]*a[1][2] - a[1][1]*a[0][2]
	s4 := a[0][1]*a[1][3] - a[1][1]*a[0][3]
	s5 := a[0][2]*a[1][3] - a[1][2]*a[0][3]

	c5 := a[2][2]*a[3][3] - a[3][2]*a[2][3]
	c4 := a[2][1]*a[3][3] - a[3][1]*a[2][3]
	c3 := a[2][1]*a[3][2] - a[3][1]*a[2][2]
	c2 := a[2][0]*a[3][3] - a[3][0]*a[2][3]
	c1 := a[2][0]*a[3][2] - a[3][0]*a[2][2]
	c0 := a[2][0]*a[3][1] - a[3][0]*a[2][1]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0

	var r Matrix4d
	r[0][0] = a[1][1]*c5 - a[1][2]*c4 + a[1][3]*c3
	r[0][1] = -a[0][1]*c5 + a[0][2]*c4 - a[0][3]*c3
	r[0][2] = a[3][1]*s5 - a[3][2]*s4 + a[3][3]*s3
	r[0][3] = -a[2][1]*s5 + a[2][2]*s4 - a[2][3]*s3

	r[1][0] = -a[1][0]*c5 + a[1][2]*c2 - a[1][3]*c1
	r[1][1] = a[0][0]*c5 - a[0][2]*c2 + a[0][3]*c1
	r[1][2] = -a[3][0]*s5 + a[3][2]*s2 - a[3][3]*s1
	r[1][3] = a[2][0]*s5 - a[2][2]*s2 + a[2][3]*s1

	r[2][0] = a[1][0]*c4 - a[1][1]*c2 + a[1][3]*c0
	r[2][1] = -a[0][0]*c4 + a[0][1]*c2 - a[0][3]*c0
	r[2][2] = a[3][0]*s4 - a[3][1]*s2 + a[3][3]*s0
	r[2][3] = -a[2][0]*s4 + a[2][1]*s2 - a[2][3]*s0

	r[3][0] = -a[1][0]*c3 + a[1][1]*c1 - a[1][2]*c0
	r[3][1] = a[0][0]*c3 - a[0][1]*c1 + a[0][2]*c0
	r[3][2] = -a[3][0]*s3 + a[3][1]*s1 - a[3][2]*s0
	r[3][3] = a[2][0]*s3 - a[2][1]*s1 + a[2][2]*s0
	return r, det
}

// Translate returns a translation matrix.
func Translate(t Vec3d) Matrix4d {
	m := Identity()
	m[3][0], m[3][1], m[3][2] = t[0], t[1], t[2]
	return m
}

// Scale returns a scaling matrix.
func Scale(s Vec3d) Matrix4d {
	m := Identity()
	m[0][0], m[1][1], m[2][2] = s[0], s[1], s[2]
	return m
}

// Rotate returns the rotation by deg degrees about the given axis
// (0 = X, 1 = Y, 2 = Z).
func Rotate(axis int, deg float64) Matrix4d {
	s, c := math.Sincos(deg * math.Pi / 180)
	m := Identity()
	i, j := (axis+1)%3, (axis+2)%3
	m[i][i], m[i][j] = c, s
	m[j][i], m[j][j] = -s, c
	return m
}

// Euler returns the rotation by the per-axis angles deg (degrees),
// applied in the given axis order. order lists the axes (0 = X,
// 1 = Y, 2 = Z) in application order, so {0, 1, 2} rotates about X
// first and Z last.
func Euler(deg Vec3d, order [3]int) Matrix4d {
	m := Rotate(order[0], deg[order[0]])
	m = m.Mul(Rotate(order[1], deg[order[1]]))
	return m.Mul(Rotate(order[2], deg[order[2]]))
}

// EulerXYZ is the X then Y then Z rotation order.
var EulerXYZ = [3]int{0, 1, 2}

// ToEuler decomposes the rotation part of m, which must be
// orthonormal, into angles in degrees for the given order. It is the
// inverse of [Euler].
func (m Matrix4d) ToEuler(order [3]int) Vec3d {
	// r is the column-vector form of the rotation: R = Rk * Rj * Ri.
	r := func(row, col int) float64 { return m[col][row] }
	i, j, k := order[0], order[1], order[2]
	parity := 1.0
	if (j-i+3)%3 != 1 {
		parity = -1
	}
	var ai, aj, ak float64
	sj := -parity * r(k, i)
	if sj >= 1-1e-12 || sj <= -1+1e-12 {
		aj = math.Copysign(math.Pi/2, sj)
		ai = 0
		ak = math.Atan2(-parity*r(i, j), r(j, j))
	} else {
		aj = math.Asin(sj)
		ai = math.Atan2(parity*r(k, j), r(k, k))
		ak = math.Atan2(parity*r(j, i), r(i, i))
	}
	var out Vec3d
	out[i] = ai * 180 / math.Pi
	out[j] = aj * 180 / math.Pi
	out[k] = ak * 180 / math.Pi
	return out
}

// TransformPoint returns p * m with the homogeneous divide.
func (m Matrix4d) TransformPoint(p Vec3d) Vec3d {
	x := p[0]*m[0][0] + p[1]*m[1][0] + p[2]*m[2][0] + m[3][0]
	y := p[0]*m[0][1] + p[1]*m[1][1] + p[2]*m[2][1] + m[3][1]
	z := p[0]*m[0][2] + p[1]*m[1][2] + p[2]*m[2][2] + m[3][2]
	w := p[0]*m[0][3] + p[1]*m[1][3] + p[2]*m[2][3] + m[3][3]
	if w != 0 && w != 1 {
		x, y, z = x/w, y/w, z/w
	}
	return Vec3d{x, y, z}
}

// TransformDir returns v * m ignoring translation.
func (m Matrix4d) TransformDir(v Vec3d) Vec3d {
	return Vec3d{
		v[0]*m[0][0] + v[1]*m[1][0] + v[2]*m[2][0],
		v[0]*m[0][1] + v[1]*m[1][1] + v[2]*m[2][1],
		v[0]*m[0][2] + v[1]*m[1][2] + v[2]*m[2][2],
	}
}

// Translation returns the translation row of m.
func (m Matrix4d) Translation() Vec3d {
	return Vec3d{m[3][0], m[3][1], m[3][2]}
}

// SetTranslation returns m with its translation row replaced.
func (m Matrix4d) SetTranslation(t Vec3d) Matrix4d {
	m[3][0], m[3][1], m[3][2] = t[0], t[1], t[2]
	return m
}

// Decompose splits an affine m into translation, rotation and scale,
// such that m == Compose(t, r, s) when m has no shear. A negative
// determinant is folded into the X scale.
func (m Matrix4d) Decompose() (t Vec3d, r Quatd, s Vec3d) {
	t = m.Translation()
	rows := [3]Vec3d{}
	for i := range 3 {
		rows[i] = Vec3d{m[i][0], m[i][1], m[i][2]}
		s[i] = math.Sqrt(rows[i][0]*rows[i][0] + rows[i][1]*rows[i][1] + rows[i][2]*rows[i][2])
	}
	if m.Determinant() < 0 {
		s[0] = -s[0]
	}
	rm := Identity()
	for i := range 3 {
		if s[i] == 0 {
			continue
		}
		for j := range 3 {
			rm[i][j] = rows[i][j] / s[i]
		}
	}
	r = QuatFromMatrix(rm)
	return
}

// Compose returns Scale(s) * Rotation(r) * Translate(t).
func Compose(t Vec3d, r Quatd, s Vec3d) Matrix4d {
	m := Scale(s).Mul(r.Matrix())
	return m.SetTranslation(t)
}

// WithUnitScale returns m with its scale replaced by (1, 1, 1),
// keeping rotation and translation.
func (m Matrix4d) WithUnitScale() Matrix4d {
	t, r, _ := m.Decompose()
	return Compose(t, r, Vec3d{1, 1, 1})
}

// Rotation returns the rotation part of m as a matrix.
func (m Matrix4d) Rotation() Matrix4d {
	_, r, _ := m.Decompose()
	return r.Matrix()
}

// Quatd is a double precision quaternion with real part W.
type Quatd struct {
	W, X, Y, Z float64
}

// QuatIdentity is the identity rotation.
var QuatIdentity = Quatd{W: 1}

// QuatFromMatrix returns the rotation of the orthonormal upper 3x3
// of m (row-vector convention).
func QuatFromMatrix(m Matrix4d) Quatd {
	tr := m[0][0] + m[1][1] + m[2][2]
	var q Quatd
	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q.W = 0.25 * s
		q.X = (m[1][2] - m[2][1]) / s
		q.Y = (m[2][0] - m[0][2]) / s
		q.Z = (m[0][1] - m[1][0]) / s
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		q.W = (m[1][2] - m[2][1]) / s
		q.X = 0.25 * s
		q.Y = (m[1][0] + m[0][1]) / s
		q.Z = (m[2][0] + m[0][2]) / s
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		q.W = (m[2][0] - m[0][2]) / s
		q.X = (m[1][0] + m[0][1]) / s
		q.Y = 0.25 * s
		q.Z = (m[2][1] + m[1][2]) / s
	default:
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		q.W = (m[0][1] - m[1][0]) / s
		q.X = (m[2][0] + m[0][2]) / s
		q.Y = (m[2][1] + m[1][2]) / s
		q.Z = 0.25 * s
	}
	return q.Normalized()
}

// Normalized returns q scaled to unit length.
func (q Quatd) Normalized() Quatd {
	l := math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
	if l == 0 {
		return QuatIdentity
	}
	return Quatd{q.W / l, q.X / l, q.Y / l, q.Z / l}
}

// Matrix returns the rotation matrix of q (row-vector convention).
func (q Quatd) Matrix() Matrix4d {
	w, x, y, z := q.W, q.X, q.Y, q.Z
	m := Identity()
	m[0][0] = 1 - 2*(y*y+z*z)
	m[0][1] = 2 * (x*y + w*z)
	m[0][2] = 2 * (x*z - w*y)
	m[1][0] = 2 * (x*y - w*z)
	m[1][1] = 1 - 2*(x*x+z*z)
	m[1][2] = 2 * (y*z + w*x)
	m[2][0] = 2 * (x*z + w*y)
	m[2][1] = 2 * (y*z - w*x)
	m[2][2] = 1 - 2*(x*x+y*y)
	return m
}

// Float returns q as a quatf value.
func (q Quatd) Float() math32.Quat {
	return math32.Quat{X: float32(q.X), Y: float32(q.Y), Z: float32(q.Z), W: float32(q.W)}
}
