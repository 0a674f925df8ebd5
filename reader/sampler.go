// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"fmt"

	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/gf"
	"github.com/usdfbx/usdfbx/sdf"
)

// userTypes maps FBX data types to the attribute types of user properties.
var userTypes = map[fbx.DataType]sdf.ValueTypeName{
	fbx.TypeChar:      sdf.UChar,
	fbx.TypeUChar:     sdf.UChar,
	fbx.TypeShort:     sdf.Int,
	fbx.TypeUShort:    sdf.UInt,
	fbx.TypeLongLong:  sdf.Int64,
	fbx.TypeULongLong: sdf.UInt64,
	fbx.TypeHalf:      sdf.Half,
	fbx.TypeBool:      sdf.Bool,
	fbx.TypeInt:       sdf.Int,
	fbx.TypeEnum:      sdf.Int,
	fbx.TypeUInt:      sdf.UInt,
	fbx.TypeFloat:     sdf.Float,
	fbx.TypeDistance:  sdf.Float,
	fbx.TypeDouble:    sdf.Double,
	fbx.TypeDouble2:   sdf.Double2,
	fbx.TypeDouble3:   sdf.Double3,
	fbx.TypeDouble4:   sdf.Double4,
	fbx.TypeDouble4x4: sdf.Matrix4d,
	fbx.TypeTime:      sdf.TimeCodeType,
}

// UserType returns the attribute type for an FBX data type, token for
// strings and anything without a numeric representation.
func UserType(t fbx.DataType) sdf.ValueTypeName {
	if v, ok := userTypes[t]; ok {
		return v
	}
	return sdf.TokenType
}

// Value converts the channels of an FBX value to a value of type typ.
// Missing channels are zero.
func Value(typ sdf.ValueTypeName, ch []float64) any {
	c := func(i int) float64 { return gf.Component(ch, i) }
	switch typ {
	case sdf.Bool:
		return c(0) != 0
	case sdf.UChar:
		return uint8(c(0))
	case sdf.Int:
		return int32(c(0))
	case sdf.UInt:
		return uint32(c(0))
	case sdf.Int64:
		return int64(c(0))
	case sdf.UInt64:
		return uint64(c(0))
	case sdf.Half:
		return gf.NewHalf(float32(c(0)))
	case sdf.Float:
		return float32(c(0))
	case sdf.Double:
		return c(0)
	case sdf.TimeCodeType:
		return sdf.TimeCode(c(0))
	case sdf.Double2:
		return gf.Vec2d{c(0), c(1)}
	case sdf.Double3:
		return gf.Vec3d{c(0), c(1), c(2)}
	case sdf.Double4:
		return gf.Vec4d{c(0), c(1), c(2), c(3)}
	case sdf.Float2, sdf.TexCoord2f:
		return gf.Vec2f(c(0), c(1))
	case sdf.Float3, sdf.Color3f, sdf.Point3f, sdf.Normal3f:
		return gf.Vec3f(c(0), c(1), c(2))
	case sdf.Float4:
		return gf.Vec4f(c(0), c(1), c(2), c(3))
	case sdf.Half3:
		return gf.NewVec3h(float32(c(0)), float32(c(1)), float32(c(2)))
	case sdf.Matrix4d:
		return gf.MatrixFromSlice(ch)
	}
	return sdf.Token(fmt.Sprint(ch))
}

// StaticValue returns the static value of an FBX property as type typ.
func (c *Context) StaticValue(p *fbx.Property, typ sdf.ValueTypeName) any {
	switch {
	case typ == sdf.TokenType || typ == sdf.String:
		if p.Type == fbx.TypeString || p.Type == fbx.TypeBlob || len(p.Values) == 0 {
			return sdf.Token(p.Str)
		}
	case typ == sdf.TimeCodeType:
		return sdf.TimeCode(fbx.Time(gf.Component(p.Values, 0)).Frame(c.Span.FPS))
	}
	return Value(typ, p.Values)
}

// SampleProperty sets the samples of dst from the animation of p on the
// layer, one per frame of the span. Nothing is sampled when p is not
// animated on the layer.
func (c *Context) SampleProperty(dst *sdf.Property, p *fbx.Property) {
	if p == nil || !p.HasCurves(c.Layer) {
		return
	}
	typ := dst.TypeName
	for _, f := range c.Span.Frames() {
		ch := p.At(c.Layer, c.Span.Time(f))
		var v any
		if typ == sdf.TimeCodeType {
			v = sdf.TimeCode(fbx.Time(gf.Component(ch, 0)).Frame(c.Span.FPS))
		} else {
			v = Value(typ, ch)
		}
		dst.SetTimeSample(float64(f), v)
	}
}

// SampleFunc sets the samples of dst from fn evaluated at every frame
// of the span, when any of the named properties of ps is animated.
func (c *Context) SampleFunc(dst *sdf.Property, ps *fbx.PropertySet, names []string, fn func(t fbx.Time) any) {
	if !c.Animated() || !ps.IsAnimated(c.Layer, names...) {
		return
	}
	for _, f := range c.Span.Frames() {
		dst.SetTimeSample(float64(f), fn(c.Span.Time(f)))
	}
}

// sampleFrames evaluates fn at every frame of the span.
func sampleFrames[T any](s Span, fn func(t fbx.Time) T) []T {
	frames := s.Frames()
	out := make([]T, len(frames))
	for i, f := range frames {
		out[i] = fn(s.Time(f))
	}
	return out
}

// constant returns whether every frame holds the same values.
func constant[T comparable](frames [][]T) bool {
	for _, f := range frames[1:] {
		if len(f) != len(frames[0]) {
			return false
		}
		for i := range f {
			if f[i] != frames[0][i] {
				return false
			}
		}
	}
	return true
}

// setArraySamples sets an array attribute from per-frame values: the
// first frame is always the default, and the frames become samples
// unless they are all the same.
func setArraySamples[T comparable](s Span, p *sdf.Property, frames [][]T) {
	if len(frames) == 0 {
		return
	}
	p.Default = frames[0]
	if constant(frames) {
		return
	}
	for i, f := range s.Frames() {
		p.SetTimeSample(float64(f), frames[i])
	}
}
