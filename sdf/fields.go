// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

// Field keys understood by [Data].
const (
	FieldTypeName        = "typeName"
	FieldSpecifier       = "specifier"
	FieldPrimChildren    = "primChildren"
	FieldProperties      = "properties"
	FieldPrimOrder       = "primOrder"
	FieldPropertyOrder   = "propertyOrder"
	FieldReferences      = "references"
	FieldDefault         = "default"
	FieldTimeSamples     = "timeSamples"
	FieldTargetPaths     = "targetPaths"
	FieldVariability     = "variability"
	FieldCustom          = "custom"
	FieldConnectionPaths = "connectionPaths"
)

// Metadata keys set by the reader.
const (
	KeyDocumentation      = "documentation"
	KeyUpAxis             = "upAxis"
	KeyMetersPerUnit      = "metersPerUnit"
	KeyDefaultPrim        = "defaultPrim"
	KeyStartTimeCode      = "startTimeCode"
	KeyEndTimeCode        = "endTimeCode"
	KeyTimeCodesPerSecond = "timeCodesPerSecond"
	KeyFramesPerSecond    = "framesPerSecond"
	KeyKind               = "kind"
	KeyAPISchemas         = "apiSchemas"
	KeyComment            = "comment"
	KeyActive             = "active"
	KeyHidden             = "hidden"
	KeyDisplayGroup       = "displayGroup"
	KeyInterpolation      = "interpolation"
	KeyElementSize        = "elementSize"
)
