// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"slices"
	"sort"
	"sync"
)

// AbstractReader is the read side of the abstract data contract that a
// host runtime uses to query a layer's backing data.
type AbstractReader interface {
	// HasSpec returns whether a spec exists at the path.
	HasSpec(p Path) bool

	// SpecType returns the kind of spec at the path.
	SpecType(p Path) SpecType

	// Has returns the value of a field and whether it is present.
	Has(p Path, field string) (any, bool)

	// Get returns the value of a field, nil if it is not present.
	Get(p Path, field string) any

	// List returns the names of the fields present at the path.
	List(p Path) []string

	// ListAllTimeSamples returns the sorted union of all sample times.
	ListAllTimeSamples() []float64

	// ListTimeSamplesForPath returns the sorted sample times of a property.
	ListTimeSamplesForPath(p Path) []float64

	// BracketingTimeSamples returns the sample times around t across all properties.
	BracketingTimeSamples(t float64) (lo, hi float64, ok bool)

	// BracketingTimeSamplesForPath returns the sample times around t for a property.
	BracketingTimeSamplesForPath(p Path, t float64) (lo, hi float64, ok bool)

	// NumTimeSamplesForPath returns the number of samples of a property.
	NumTimeSamplesForPath(p Path) int

	// QueryTimeSample returns the value of a property sampled at exactly t.
	QueryTimeSample(p Path, t float64) (any, bool)

	// VisitSpecs calls fn for every spec until fn returns false.
	VisitSpecs(fn func(p Path) bool)
}

// AbstractData is the full abstract data contract. The mutating
// methods exist to satisfy hosts that expect them.
type AbstractData interface {
	AbstractReader

	StreamsData() bool
	IsEmpty() bool
	CreateSpec(p Path, t SpecType)
	EraseSpec(p Path)
	MoveSpec(from, to Path)
	Set(p Path, field string, v any)
	Erase(p Path, field string)
	SetTimeSample(p Path, t float64, v any)
	EraseTimeSample(p Path, t float64)
}

// Data answers abstract data queries from a finished [Store]. All of
// its methods are safe for concurrent use, and all mutating methods
// panic with an [*UnsupportedError].
type Data struct {
	store *Store

	timesOnce sync.Once
	times     []float64
}

var _ AbstractData = (*Data)(nil)

// NewData returns a [Data] reading from s. The store must not be
// modified after this call.
func NewData(s *Store) *Data {
	return &Data{store: s}
}

// Store returns the underlying store.
func (d *Data) Store() *Store {
	return d.store
}

// StreamsData reports that values are answered on demand.
func (d *Data) StreamsData() bool { return true }

// IsEmpty returns whether the data holds nothing but an empty pseudo-root.
func (d *Data) IsEmpty() bool {
	root := d.store.PseudoRoot()
	return d.store.Len() <= 1 && len(root.Children) == 0 && root.Metadata.Len() == 0
}

func (d *Data) HasSpec(p Path) bool {
	return d.SpecType(p) != SpecTypeUnknown
}

func (d *Data) SpecType(p Path) SpecType {
	switch {
	case p.IsAbsoluteRoot():
		return SpecTypePseudoRoot
	case p.IsPrimPath():
		if _, ok := d.store.Prim(p); ok {
			return SpecTypePrim
		}
	case p.IsPropertyPath():
		if prop, ok := d.store.Property(p); ok {
			if prop.IsRelationship() {
				return SpecTypeRelationship
			}
			return SpecTypeAttribute
		}
	}
	return SpecTypeUnknown
}

func tokens(names []string) []Token {
	out := make([]Token, len(names))
	for i, n := range names {
		out[i] = Token(n)
	}
	return out
}

func (d *Data) Has(p Path, field string) (any, bool) {
	if p.IsAbsoluteRoot() || p.IsPrimPath() {
		prim, ok := d.store.Prim(p)
		if !ok {
			return nil, false
		}
		return primField(prim, field)
	}
	prop, ok := d.store.Property(p)
	if !ok {
		return nil, false
	}
	return propertyField(prop, field)
}

func primField(prim *Prim, field string) (any, bool) {
	root := prim.Path.IsAbsoluteRoot()
	switch field {
	case FieldTypeName:
		if prim.TypeName != "" {
			return Token(prim.TypeName), true
		}
		return nil, false
	case FieldSpecifier:
		if root {
			return nil, false
		}
		return prim.Specifier, true
	case FieldPrimChildren:
		if len(prim.Children) > 0 {
			return tokens(prim.Children), true
		}
		return nil, false
	case FieldProperties:
		if prim.properties.Len() > 0 {
			return tokens(prim.PropertyNames()), true
		}
		return nil, false
	case FieldPrimOrder:
		if root {
			return nil, false
		}
		return tokens(prim.Children), true
	case FieldPropertyOrder:
		if root {
			return nil, false
		}
		return tokens(prim.PropertyNames()), true
	case FieldReferences:
		if root {
			return nil, false
		}
		return []Path{}, true
	}
	return prim.Metadata.ValueByKeyTry(field)
}

func propertyField(prop *Property, field string) (any, bool) {
	rel := prop.IsRelationship()
	switch field {
	case FieldCustom:
		return prop.Custom, true
	case FieldVariability:
		return prop.Variability, true
	case FieldTimeSamples:
		if len(prop.TimeSamples) > 0 {
			return slices.Clone(prop.TimeSamples), true
		}
		return nil, false
	case FieldTargetPaths:
		if rel {
			return slices.Clone(prop.TargetPaths), true
		}
		return nil, false
	case FieldTypeName:
		if !rel {
			return prop.TypeName, true
		}
		return nil, false
	case FieldDefault:
		if !rel && prop.Default != nil {
			return prop.Default, true
		}
		return nil, false
	}
	return prop.Metadata.ValueByKeyTry(field)
}

func (d *Data) Get(p Path, field string) any {
	v, _ := d.Has(p, field)
	return v
}

func (d *Data) List(p Path) []string {
	var fields []string
	add := func(ok bool, f string) {
		if ok {
			fields = append(fields, f)
		}
	}
	if p.IsAbsoluteRoot() || p.IsPrimPath() {
		prim, ok := d.store.Prim(p)
		if !ok {
			return nil
		}
		if prim.Path.IsAbsoluteRoot() {
			add(len(prim.Children) > 0, FieldPrimChildren)
			return append(fields, prim.Metadata.Keys()...)
		}
		add(prim.TypeName != "", FieldTypeName)
		add(true, FieldSpecifier)
		add(prim.properties.Len() > 0, FieldProperties)
		add(true, FieldPrimOrder)
		add(true, FieldPropertyOrder)
		add(true, FieldReferences)
		add(len(prim.Children) > 0, FieldPrimChildren)
		return append(fields, prim.Metadata.Keys()...)
	}
	prop, ok := d.store.Property(p)
	if !ok {
		return nil
	}
	rel := prop.IsRelationship()
	add(true, FieldCustom)
	add(true, FieldVariability)
	add(len(prop.TimeSamples) > 0, FieldTimeSamples)
	add(rel, FieldTargetPaths)
	add(!rel, FieldTypeName)
	add(!rel && prop.Default != nil, FieldDefault)
	return append(fields, prop.Metadata.Keys()...)
}

func (d *Data) ListAllTimeSamples() []float64 {
	d.timesOnce.Do(func() {
		seen := map[float64]bool{}
		for _, prim := range d.store.Prims() {
			for _, prop := range prim.Properties() {
				for _, s := range prop.TimeSamples {
					if !seen[s.Time] {
						seen[s.Time] = true
						d.times = append(d.times, s.Time)
					}
				}
			}
		}
		slices.Sort(d.times)
	})
	return slices.Clone(d.times)
}

func (d *Data) ListTimeSamplesForPath(p Path) []float64 {
	prop, ok := d.store.Property(p)
	if !ok {
		return nil
	}
	return prop.SampleTimes()
}

// Bracket returns the sample times around t in the sorted times:
// both bounds are the nearest sample when t is before the first or
// after the last sample or exactly on a sample, otherwise they are
// the samples immediately below and above t.
func Bracket(times []float64, t float64) (lo, hi float64, ok bool) {
	if len(times) == 0 {
		return 0, 0, false
	}
	i := sort.SearchFloat64s(times, t)
	switch {
	case i == len(times):
		last := times[len(times)-1]
		return last, last, true
	case i == 0 || times[i] == t:
		return times[i], times[i], true
	}
	return times[i-1], times[i], true
}

func (d *Data) BracketingTimeSamples(t float64) (lo, hi float64, ok bool) {
	return Bracket(d.ListAllTimeSamples(), t)
}

func (d *Data) BracketingTimeSamplesForPath(p Path, t float64) (lo, hi float64, ok bool) {
	return Bracket(d.ListTimeSamplesForPath(p), t)
}

func (d *Data) NumTimeSamplesForPath(p Path) int {
	prop, ok := d.store.Property(p)
	if !ok {
		return 0
	}
	return len(prop.TimeSamples)
}

func (d *Data) QueryTimeSample(p Path, t float64) (any, bool) {
	prop, ok := d.store.Property(p)
	if !ok {
		return nil, false
	}
	return prop.Sample(t)
}

func (d *Data) VisitSpecs(fn func(p Path) bool) {
	for _, prim := range d.store.Prims() {
		if !fn(prim.Path) {
			return
		}
		for _, prop := range prim.Properties() {
			if !fn(prop.Path) {
				return
			}
		}
	}
}

func (d *Data) CreateSpec(p Path, t SpecType)          { panic(&UnsupportedError{Op: "CreateSpec"}) }
func (d *Data) EraseSpec(p Path)                       { panic(&UnsupportedError{Op: "EraseSpec"}) }
func (d *Data) MoveSpec(from, to Path)                 { panic(&UnsupportedError{Op: "MoveSpec"}) }
func (d *Data) Set(p Path, field string, v any)        { panic(&UnsupportedError{Op: "Set"}) }
func (d *Data) Erase(p Path, field string)             { panic(&UnsupportedError{Op: "Erase"}) }
func (d *Data) SetTimeSample(p Path, t float64, v any) { panic(&UnsupportedError{Op: "SetTimeSample"}) }
func (d *Data) EraseTimeSample(p Path, t float64)      { panic(&UnsupportedError{Op: "EraseTimeSample"}) }

// UnsupportedError is the panic value of every mutating [Data] method.
type UnsupportedError struct {
	Op string
}

func (e *UnsupportedError) Error() string {
	return "Fbx " + e.Op + "() not supported"
}
