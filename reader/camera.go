// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/gf"
	"github.com/usdfbx/usdfbx/sdf"
)

// inchToMillimeter converts film sizes, which FBX stores in inches.
const inchToMillimeter = 25.4

// TenthOfSceneUnit converts a length in millimeters to tenths of the
// given scene unit, the unit of camera lens and film attributes.
func TenthOfSceneUnit(mm float64, unit fbx.SystemUnit) float64 {
	return mm * fbx.Millimeter.ConversionFactorTo(unit) * 10
}

// ReadCamera converts the camera attribute of the node.
func ReadCamera(c *Context) {
	if c.Node.Attribute == nil {
		return
	}
	c.Prim().TypeName = sdf.TypeCamera
	ps := &c.Node.Attribute.Properties
	unit := c.Scene.Settings.Unit
	tenth := func(mm float64) float32 { return float32(TenthOfSceneUnit(mm, unit)) }

	focal := c.CreateAttribute("focalLength", sdf.Float, tenth(ps.Double("FocalLength")), GroupCamera)
	c.SampleFunc(focal, ps, []string{"FocalLength"}, func(t fbx.Time) any {
		return tenth(ps.DoubleAt("FocalLength", c.Layer, t))
	})

	focus := c.CreateAttribute("focusDistance", sdf.Float, float32(ps.Double("FocusDistance")), GroupCamera)
	c.SampleProperty(focus, ps.Own("FocusDistance"))

	squeeze := ps.Double("FilmSqueezeRatio")
	c.CreateAttribute("horizontalAperture", sdf.Float, tenth(ps.Double("FilmWidth")*squeeze*inchToMillimeter), GroupCamera)
	c.CreateAttribute("verticalAperture", sdf.Float, tenth(ps.Double("FilmHeight")*squeeze*inchToMillimeter), GroupCamera)

	projection := sdf.Token("perspective")
	if ps.Double("CameraProjectionType") == 1 {
		projection = "orthographic"
	}
	c.CreateAttribute("projection", sdf.TokenType, projection, GroupCamera)

	if ps.Bool("UseDepthOfField") {
		c.CreateAttribute("fStop", sdf.Float, float32(0), GroupCamera)
	}
	c.CreateAttribute("clippingRange", sdf.Float2, gf.Vec2f(ps.Double("NearPlane"), ps.Double("FarPlane")), GroupCamera)

	fov := c.CreateCustom("generated:fov", sdf.Float, float32(ps.Double("FieldOfView")), GroupGenerated)
	c.SampleProperty(fov, ps.Own("FieldOfView"))
}
