// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package usda writes the contents of any [sdf.AbstractReader] as a
// human readable usda text layer.
package usda

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/usdfbx/usdfbx/sdf"
)

// layerMetadataOrder is the order in which known layer metadata is written;
// other keys follow in their stored order.
var layerMetadataOrder = []string{
	sdf.KeyDocumentation, sdf.KeyDefaultPrim, sdf.KeyUpAxis, sdf.KeyMetersPerUnit,
	sdf.KeyStartTimeCode, sdf.KeyEndTimeCode, sdf.KeyTimeCodesPerSecond, sdf.KeyFramesPerSecond,
}

// listOpKeys are prim metadata written as prepend list ops.
var listOpKeys = map[string]bool{sdf.KeyAPISchemas: true}

// writer accumulates output and the first write error.
type writer struct {
	w      *bufio.Writer
	d      sdf.AbstractReader
	indent int
	err    error
}

func (w *writer) line(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, "%s%s\n", strings.Repeat("    ", w.indent), fmt.Sprintf(format, args...))
}

// Write writes d to out as a usda layer.
func Write(out io.Writer, d sdf.AbstractReader) error {
	w := &writer{w: bufio.NewWriter(out), d: d}
	w.line("#usda 1.0")
	w.layerMetadata()
	for _, child := range w.children(sdf.AbsoluteRoot) {
		w.line("")
		w.prim(sdf.AbsoluteRoot.AppendChild(child))
	}
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

// String returns d as usda text.
func String(d sdf.AbstractReader) (string, error) {
	var b strings.Builder
	err := Write(&b, d)
	return b.String(), err
}

func (w *writer) children(p sdf.Path) []string {
	var out []string
	if v, ok := w.d.Has(p, sdf.FieldPrimChildren); ok {
		for _, c := range v.([]sdf.Token) {
			out = append(out, string(c))
		}
	}
	return out
}

func (w *writer) layerMetadata() {
	fields := w.d.List(sdf.AbsoluteRoot)
	keys := []string{}
	for _, k := range layerMetadataOrder {
		if slices.Contains(fields, k) {
			keys = append(keys, k)
		}
	}
	for _, k := range fields {
		if k != sdf.FieldPrimChildren && !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return
	}
	w.line("(")
	w.indent++
	for _, k := range keys {
		v := w.d.Get(sdf.AbsoluteRoot, k)
		if k == sdf.KeyDocumentation {
			w.line("doc = %s", FormatValue(v))
			continue
		}
		w.line("%s = %s", k, FormatValue(v))
	}
	w.indent--
	w.line(")")
}

var primFields = map[string]bool{
	sdf.FieldTypeName: true, sdf.FieldSpecifier: true, sdf.FieldProperties: true,
	sdf.FieldPrimOrder: true, sdf.FieldPropertyOrder: true, sdf.FieldReferences: true,
	sdf.FieldPrimChildren: true,
}

func (w *writer) prim(p sdf.Path) {
	spec := sdf.SpecifierDef
	if v, ok := w.d.Has(p, sdf.FieldSpecifier); ok {
		spec = v.(sdf.Specifier)
	}
	head := spec.String()
	if v, ok := w.d.Has(p, sdf.FieldTypeName); ok {
		head += " " + string(v.(sdf.Token))
	}
	head += fmt.Sprintf(" %q", p.Name())

	var meta []string
	for _, k := range w.d.List(p) {
		if primFields[k] {
			continue
		}
		v := w.d.Get(p, k)
		if listOpKeys[k] {
			meta = append(meta, fmt.Sprintf("prepend %s = %s", k, FormatValue(v)))
			continue
		}
		meta = append(meta, fmt.Sprintf("%s = %s", k, FormatValue(v)))
	}
	if len(meta) == 0 {
		w.line("%s", head)
	} else {
		w.line("%s (", head)
		w.indent++
		for _, m := range meta {
			w.line("%s", m)
		}
		w.indent--
		w.line(")")
	}
	w.line("{")
	w.indent++
	if v, ok := w.d.Has(p, sdf.FieldProperties); ok {
		for _, name := range v.([]sdf.Token) {
			w.property(p.AppendProperty(string(name)))
		}
	}
	for i, child := range w.children(p) {
		if i > 0 || w.d.Get(p, sdf.FieldProperties) != nil {
			w.line("")
		}
		w.prim(p.AppendChild(child))
	}
	w.indent--
	w.line("}")
}

var propertyFields = map[string]bool{
	sdf.FieldCustom: true, sdf.FieldVariability: true, sdf.FieldTimeSamples: true,
	sdf.FieldTargetPaths: true, sdf.FieldTypeName: true, sdf.FieldDefault: true,
	sdf.FieldConnectionPaths: true,
}

func (w *writer) property(p sdf.Path) {
	prefix := ""
	if v, _ := w.d.Get(p, sdf.FieldCustom).(bool); v {
		prefix = "custom "
	}
	if w.d.SpecType(p) == sdf.SpecTypeRelationship {
		targets := w.d.Get(p, sdf.FieldTargetPaths).([]sdf.Path)
		w.line("%srel %s = %s", prefix, p.Name(), formatTargets(targets))
		return
	}
	if v, _ := w.d.Get(p, sdf.FieldVariability).(sdf.Variability); v == sdf.VariabilityUniform {
		prefix += "uniform "
	}
	typeName, _ := w.d.Get(p, sdf.FieldTypeName).(sdf.ValueTypeName)
	decl := fmt.Sprintf("%s%s %s", prefix, typeName, p.Name())

	var meta []string
	for _, k := range w.d.List(p) {
		if propertyFields[k] {
			continue
		}
		meta = append(meta, fmt.Sprintf("%s = %s", k, FormatValue(w.d.Get(p, k))))
	}
	metaStr := ""
	if len(meta) > 0 {
		metaStr = " (\n" + strings.Repeat("    ", w.indent+1) +
			strings.Join(meta, "\n"+strings.Repeat("    ", w.indent+1)) + "\n" +
			strings.Repeat("    ", w.indent) + ")"
	}

	def, hasDefault := w.d.Has(p, sdf.FieldDefault)
	conn, hasConn := w.d.Has(p, sdf.FieldConnectionPaths)
	samples, hasSamples := w.d.Has(p, sdf.FieldTimeSamples)
	switch {
	case hasDefault:
		w.line("%s = %s%s", decl, FormatValue(def), metaStr)
	case !hasConn && !hasSamples:
		w.line("%s%s", decl, metaStr)
	}
	if hasConn {
		w.line("%s.connect = %s", decl, formatTargets(conn.([]sdf.Path)))
	}
	if hasSamples {
		w.line("%s.timeSamples = {", decl)
		w.indent++
		for _, s := range samples.([]sdf.TimeSample) {
			w.line("%s: %s,", formatFloat(s.Time, 64), FormatValue(s.Value))
		}
		w.indent--
		w.line("}")
	}
}

func formatTargets(targets []sdf.Path) string {
	if len(targets) == 1 {
		return "<" + string(targets[0]) + ">"
	}
	parts := make([]string, len(targets))
	for i, t := range targets {
		parts[i] = "<" + string(t) + ">"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
