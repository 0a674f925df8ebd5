// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"math"

	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/sdf"
)

// Visibility tokens.
const (
	VisibilityInherited = sdf.Token("inherited")
	VisibilityInvisible = sdf.Token("invisible")
)

// visibilityEpsilon is the largest visibility value treated as hidden.
const visibilityEpsilon = 1e-6

// VisibilityToken returns the visibility token for an FBX visibility value.
func VisibilityToken(v float64) sdf.Token {
	if math.Abs(v) <= visibilityEpsilon || v < 0 {
		return VisibilityInvisible
	}
	return VisibilityInherited
}

// ReadImageable converts the visibility of the node, keeping the raw
// value in a custom attribute.
func ReadImageable(c *Context) {
	ps := &c.Node.Properties
	names := []string{"Visibility"}
	vis := ps.DoubleAt("Visibility", c.Layer, c.Span.Time(c.Span.Start))

	attr := c.CreateAttribute("visibility", sdf.TokenType, VisibilityToken(vis), GroupImageable)
	c.SampleFunc(attr, ps, names, func(t fbx.Time) any {
		return VisibilityToken(ps.DoubleAt("Visibility", c.Layer, t))
	})
	c.CreateUniform("purpose", sdf.TokenType, sdf.Token("default"), GroupImageable)

	raw := c.CreateCustom("generated:visibility", sdf.Double, ps.Double("Visibility"), GroupGenerated)
	c.SampleProperty(raw, ps.Own("Visibility"))
}
