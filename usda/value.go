// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package usda

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/usdfbx/usdfbx/gf"
	"github.com/usdfbx/usdfbx/sdf"
)

func formatFloat(f float64, bits int) string {
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func tuple(parts ...string) string {
	return "(" + strings.Join(parts, ", ") + ")"
}

func floats32(vals ...float32) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatFloat(float64(v), 32)
	}
	return tuple(parts...)
}

func floats64(vals ...float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = formatFloat(v, 64)
	}
	return tuple(parts...)
}

// FormatValue returns the usda text of a property or metadata value.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "None"
	case sdf.Token:
		return strconv.Quote(string(x))
	case string:
		return strconv.Quote(x)
	case sdf.AssetPath:
		return "@" + x.Path + "@"
	case sdf.Path:
		return "<" + string(x) + ">"
	case sdf.TimeCode:
		return formatFloat(float64(x), 64)
	case sdf.Specifier, sdf.Variability, sdf.ValueTypeName:
		return fmt.Sprint(x)
	case bool:
		return strconv.FormatBool(x)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x)
	case gf.Half:
		return formatFloat(float64(x.Float32()), 32)
	case gf.Vec3h:
		return floats32(x[0].Float32(), x[1].Float32(), x[2].Float32())
	case gf.Vec2d:
		return floats64(x[:]...)
	case gf.Vec3d:
		return floats64(x[:]...)
	case gf.Vec4d:
		return floats64(x[:]...)
	case math32.Vector2:
		return floats32(x.X, x.Y)
	case math32.Vector3:
		return floats32(x.X, x.Y, x.Z)
	case math32.Vector4:
		return floats32(x.X, x.Y, x.Z, x.W)
	case math32.Quat:
		return floats32(x.W, x.X, x.Y, x.Z)
	case gf.Matrix4d:
		rows := make([]string, 4)
		for i := range 4 {
			rows[i] = floats64(x[i][:]...)
		}
		return tuple(rows...)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return strconv.Quote(fmt.Sprint(v))
}
