// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reader

import (
	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/sdf"
)

// Transform operation attribute names.
const (
	OpTranslate      = "xformOp:translate"
	OpTranslatePivot = "xformOp:translate:pivot"
	OpScale          = "xformOp:scale"
	OpOrder          = "xformOpOrder"
)

// ReadTransform converts the local transform of the node to transform
// operations, after folding its pivots into translation and rotation.
func ReadTransform(c *Context) {
	n := c.Node
	c.Scene.ResetPivotSetAndConvertAnimation(n)
	c.Prim().TypeName = sdf.TypeXform

	order := n.RotationOrder()
	if order == fbx.SphericXYZ {
		c.Warnf("SphericXYZ is not supported! A standard XYZ rotation order will be used instead, this could result in unwanted behavior!")
	}
	rotate := "xformOp:rotate" + order.String()

	ps := &n.Properties
	c.transformOp(OpTranslate, sdf.Double3, ps, "Lcl Translation")
	c.transformOp(OpTranslatePivot, sdf.Double3, ps, "RotationPivot")
	c.transformOp(rotate, sdf.Float3, ps, "Lcl Rotation")
	c.transformOp(OpScale, sdf.Float3, ps, "Lcl Scaling")

	c.CreateUniform(OpOrder, sdf.TokenType.Array(), []sdf.Token{
		OpTranslate, OpTranslatePivot, sdf.Token(rotate), OpScale, "!invert!" + OpTranslatePivot,
	}, "")
}

// transformOp creates one transform operation from a vector property.
func (c *Context) transformOp(op string, typ sdf.ValueTypeName, ps *fbx.PropertySet, name string) {
	attr := c.CreateAttribute(op, typ, Value(typ, ps.Values(name)), "")
	c.SampleProperty(attr, ps.Own(name))
}
