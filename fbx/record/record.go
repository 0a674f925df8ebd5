// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package record parses binary and ASCII FBX files into a tree of
// generic node records, the common structure of both encodings.
package record

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Record is one FBX node record: a name, a list of typed property
// values and nested records. Property values are one of int16, bool,
// int32, int64, float32, float64, string, []byte, []bool, []int32,
// []int64, []float32 or []float64.
type Record struct {
	Name     string
	Props    []any
	Children []*Record
}

// Document is a parsed FBX file.
type Document struct {
	// Version is the file format version, such as 7400.
	Version uint32

	// Binary is whether the file used the binary encoding.
	Binary bool

	// Root holds the top level records.
	Root *Record
}

// Parse reads an FBX document in either encoding.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if IsBinary(data) {
		return parseBinary(data)
	}
	return parseASCII(data)
}

// Child returns the first child record with the given name, or nil.
func (r *Record) Child(name string) *Record {
	if r == nil {
		return nil
	}
	for _, c := range r.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all child records with the given name.
func (r *Record) ChildrenNamed(name string) []*Record {
	if r == nil {
		return nil
	}
	var out []*Record
	for _, c := range r.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Prop returns property i, or nil.
func (r *Record) Prop(i int) any {
	if r == nil || i < 0 || i >= len(r.Props) {
		return nil
	}
	return r.Props[i]
}

// Int returns property i as an integer.
func (r *Record) Int(i int) int64 {
	return toInt(r.Prop(i))
}

// Float returns property i as a float64.
func (r *Record) Float(i int) float64 {
	return toFloat(r.Prop(i))
}

// String returns property i as a string. Numbers are formatted, so
// bare ASCII tokens and binary strings read the same.
func (r *Record) String(i int) string {
	switch v := r.Prop(i).(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Float64s returns property i as a float64 slice.
func (r *Record) Float64s(i int) []float64 {
	switch v := r.Prop(i).(type) {
	case []float64:
		return v
	case []float32:
		out := make([]float64, len(v))
		for j, x := range v {
			out[j] = float64(x)
		}
		return out
	case []int32:
		out := make([]float64, len(v))
		for j, x := range v {
			out[j] = float64(x)
		}
		return out
	case []int64:
		out := make([]float64, len(v))
		for j, x := range v {
			out[j] = float64(x)
		}
		return out
	}
	return nil
}

// Int32s returns property i as an int32 slice.
func (r *Record) Int32s(i int) []int32 {
	switch v := r.Prop(i).(type) {
	case []int32:
		return v
	case []int64:
		out := make([]int32, len(v))
		for j, x := range v {
			out[j] = int32(x)
		}
		return out
	case []float64:
		out := make([]int32, len(v))
		for j, x := range v {
			out[j] = int32(x)
		}
		return out
	}
	return nil
}

// Int64s returns property i as an int64 slice.
func (r *Record) Int64s(i int) []int64 {
	switch v := r.Prop(i).(type) {
	case []int64:
		return v
	case []int32:
		out := make([]int64, len(v))
		for j, x := range v {
			out[j] = int64(x)
		}
		return out
	case []float64:
		out := make([]int64, len(v))
		for j, x := range v {
			out[j] = int64(x)
		}
		return out
	}
	return nil
}

// ChildFloat64s returns the array of the named child, the layout of
// FBX array records such as "Vertices" or "KeyTime".
func (r *Record) ChildFloat64s(name string) []float64 {
	return r.Child(name).Float64s(0)
}

// ChildInt32s returns the int32 array of the named child.
func (r *Record) ChildInt32s(name string) []int32 {
	return r.Child(name).Int32s(0)
}

// ChildString returns the first string property of the named child.
func (r *Record) ChildString(name string) string {
	return r.Child(name).String(0)
}

func toInt(v any) int64 {
	switch x := v.(type) {
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case float32:
		return int64(x)
	case float64:
		return int64(x)
	case bool:
		if x {
			return 1
		}
	case string:
		if x == "Y" || x == "T" {
			return 1
		}
	}
	return 0
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return float64(toInt(v))
}

// ObjectName splits an FBX object name of the form "Class::Name" into
// its name part. Binary files store "Name\x00\x01Class", which the
// parser already rewrites to the ASCII form.
func ObjectName(s string) string {
	if i := strings.Index(s, "::"); i >= 0 {
		return s[i+2:]
	}
	return s
}

// binaryName rewrites a binary "Name\x00\x01Class" string to "Class::Name".
func binaryName(b []byte) string {
	if i := bytes.Index(b, []byte{0, 1}); i >= 0 {
		return string(b[i+2:]) + "::" + string(b[:i])
	}
	return string(b)
}
