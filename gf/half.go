// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf

import (
	"github.com/chewxy/math32"
)

// Half is an IEEE 754 binary16 value.
type Half uint16

// Vec3h is a half3 value.
type Vec3h [3]Half

// NewHalf rounds f to the nearest half value.
func NewHalf(f float32) Half {
	bits := math32.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23&0xff) - 127 + 15
	mant := bits & 0x7fffff

	switch {
	case math32.IsNaN(f):
		return Half(sign | 0x7e00)
	case exp >= 0x1f:
		return Half(sign | 0x7c00)
	case exp <= 0:
		if exp < -10 {
			return Half(sign)
		}
		mant |= 0x800000
		shift := uint32(14 - exp)
		h := mant >> shift
		if mant>>(shift-1)&1 != 0 {
			h++
		}
		return Half(sign | uint16(h))
	}
	h := uint32(exp)<<10 | mant>>13
	if mant&0x1000 != 0 {
		h++
	}
	return Half(uint32(sign) | h)
}

// Float32 returns h as a float32.
func (h Half) Float32() float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h & 0x3ff)
	switch exp {
	case 0:
		if mant == 0 {
			return math32.Float32frombits(sign)
		}
		e := uint32(127 - 15 + 1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3ff
		return math32.Float32frombits(sign | e<<23 | mant<<13)
	case 0x1f:
		return math32.Float32frombits(sign | 0x7f800000 | mant<<13)
	}
	return math32.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
}

// NewVec3h rounds each component of (x, y, z) to half precision.
func NewVec3h(x, y, z float32) Vec3h {
	return Vec3h{NewHalf(x), NewHalf(y), NewHalf(z)}
}
