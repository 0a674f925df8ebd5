// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"cogentcore.org/core/base/iox/jsonx"
	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/core/base/iox/yamlx"
	"github.com/gobwas/glob"
	"github.com/usdfbx/usdfbx/config"
	"github.com/usdfbx/usdfbx/fileformat"
	"github.com/usdfbx/usdfbx/sdf"
)

// PrimInfo summarizes one converted prim.
type PrimInfo struct {
	Path       string         `json:"path" yaml:"path" toml:"path"`
	Type       string         `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Properties []PropertyInfo `json:"properties,omitempty" yaml:"properties,omitempty" toml:"properties,omitempty"`
}

// PropertyInfo summarizes one converted property.
type PropertyInfo struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Type    string `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Samples int    `json:"samples,omitempty" yaml:"samples,omitempty" toml:"samples,omitempty"`
}

// LayerInfo summarizes one converted layer.
type LayerInfo struct {
	File  string     `json:"file" yaml:"file" toml:"file"`
	Prims []PrimInfo `json:"prims" yaml:"prims" toml:"prims"`
}

// Inspect prints the prim tree converted from each input file.
func Inspect(c *config.Config) error { //cli:cmd
	if err := c.OnConfig("inspect"); err != nil {
		return err
	}
	inputs, err := expandInputs(c.Inputs)
	if err != nil {
		return err
	}
	var filter glob.Glob
	if c.Filter != "" {
		filter, err = glob.Compile(c.Filter, '/')
		if err != nil {
			return fmt.Errorf("invalid filter %q: %w", c.Filter, err)
		}
	}
	var layers []LayerInfo
	for _, in := range inputs {
		l, err := fileformat.OpenLayer(in)
		if err != nil {
			return err
		}
		layers = append(layers, LayerInfo{File: in, Prims: Summarize(l.Data(), filter)})
	}
	slog.Debug("inspected", "layers", len(layers))
	return Encode(os.Stdout, c.Format, layers)
}

// Summarize lists the prims of d in creation order with their
// properties. Only prims whose path matches filter are listed when
// filter is non-nil.
func Summarize(d sdf.AbstractReader, filter glob.Glob) []PrimInfo {
	var prims []PrimInfo
	var cur *PrimInfo
	d.VisitSpecs(func(p sdf.Path) bool {
		switch d.SpecType(p) {
		case sdf.SpecTypePrim:
			cur = nil
			if filter != nil && !filter.Match(p.String()) {
				return true
			}
			pi := PrimInfo{Path: p.String()}
			if t, ok := d.Get(p, sdf.FieldTypeName).(sdf.Token); ok {
				pi.Type = string(t)
			}
			prims = append(prims, pi)
			cur = &prims[len(prims)-1]
		case sdf.SpecTypeAttribute, sdf.SpecTypeRelationship:
			if cur == nil {
				return true
			}
			info := PropertyInfo{Name: p.Name(), Samples: d.NumTimeSamplesForPath(p)}
			if t, ok := d.Get(p, sdf.FieldTypeName).(sdf.ValueTypeName); ok {
				info.Type = string(t)
			}
			cur.Properties = append(cur.Properties, info)
		}
		return true
	})
	return prims
}

// Encode writes the layers to w in the given format.
// TOML has no top level arrays, so the layers are wrapped in a table.
func Encode(w io.Writer, format string, layers []LayerInfo) error {
	switch format {
	case "yaml":
		return yamlx.Write(layers, w)
	case "toml":
		return tomlx.Write(TOMLLayers{layers}, w)
	case "json":
		return jsonx.WriteIndent(layers, w)
	}
	return fmt.Errorf("unsupported inspect format %q", format)
}

// TOMLLayers is the TOML document written by [Encode].
type TOMLLayers struct {
	Layers []LayerInfo `toml:"layers"`
}
