// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"cogentcore.org/core/base/ordmap"
)

// TimeSample is one (time, value) pair of an animated attribute.
type TimeSample struct {
	Time  float64
	Value any
}

// Property is one attribute or relationship of a [Prim]. A property
// with TargetPaths is a relationship, and its TypeName is advisory only.
type Property struct {
	// Path is the property path.
	Path Path

	// TypeName is the declared value type.
	TypeName ValueTypeName

	// Default is the static value, nil if none.
	Default any

	// TimeSamples are the animated values, sorted by time.
	TimeSamples []TimeSample

	// TargetPaths are the relationship targets.
	TargetPaths []Path

	Variability Variability

	// Custom marks properties that are not part of a schema.
	Custom bool

	Metadata ordmap.Map[string, any]
}

// IsRelationship returns whether the property has relationship targets.
func (p *Property) IsRelationship() bool {
	return len(p.TargetPaths) > 0
}

// SetTimeSample sets the value at time t, replacing any existing
// sample at exactly t and keeping the samples sorted.
func (p *Property) SetTimeSample(t float64, v any) {
	i, found := slices.BinarySearchFunc(p.TimeSamples, t, func(s TimeSample, t float64) int {
		switch {
		case s.Time < t:
			return -1
		case s.Time > t:
			return 1
		}
		return 0
	})
	if found {
		p.TimeSamples[i].Value = v
		return
	}
	p.TimeSamples = slices.Insert(p.TimeSamples, i, TimeSample{Time: t, Value: v})
}

// SampleTimes returns the sorted sample times.
func (p *Property) SampleTimes() []float64 {
	times := make([]float64, len(p.TimeSamples))
	for i, s := range p.TimeSamples {
		times[i] = s.Time
	}
	return times
}

// Sample returns the value sampled at exactly time t.
func (p *Property) Sample(t float64) (any, bool) {
	i := sort.Search(len(p.TimeSamples), func(i int) bool { return p.TimeSamples[i].Time >= t })
	if i < len(p.TimeSamples) && p.TimeSamples[i].Time == t {
		return p.TimeSamples[i].Value, true
	}
	return nil, false
}

// AddTarget appends a relationship target if it is not already present.
func (p *Property) AddTarget(t Path) {
	if !slices.Contains(p.TargetPaths, t) {
		p.TargetPaths = append(p.TargetPaths, t)
	}
}

// Prim is one converted scene node or synthetic container.
type Prim struct {
	// Path is the prim path.
	Path Path

	// TypeName is the schema type, empty for typeless prims.
	TypeName string

	Specifier Specifier

	// Children are the names of the child prims, in order. They are
	// maintained explicitly by whoever adds a child prim.
	Children []string

	Metadata ordmap.Map[string, any]

	properties ordmap.Map[Path, *Property]
}

// AddChild appends a child name if it is not already present.
func (p *Prim) AddChild(name string) {
	if !slices.Contains(p.Children, name) {
		p.Children = append(p.Children, name)
	}
}

// Property returns the property at the given path.
func (p *Prim) Property(path Path) (*Property, bool) {
	return p.properties.ValueByKeyTry(path)
}

// Properties returns the properties in creation order.
func (p *Prim) Properties() []*Property {
	return p.properties.Values()
}

// PropertyNames returns the property names in creation order.
func (p *Prim) PropertyNames() []string {
	names := make([]string, 0, p.properties.Len())
	for _, kv := range p.properties.Order {
		names = append(names, kv.Key.Name())
	}
	return names
}

// Store is the in-memory tree of prims keyed by path. It is built
// once by a single goroutine and only read afterwards.
type Store struct {
	prims ordmap.Map[Path, *Prim]
}

// NewStore returns a store holding only the pseudo-root.
func NewStore() *Store {
	s := &Store{}
	s.prims.Add(AbsoluteRoot, &Prim{Path: AbsoluteRoot})
	return s
}

// PseudoRoot returns the pseudo-root prim.
func (s *Store) PseudoRoot() *Prim {
	p, _ := s.prims.ValueByKeyTry(AbsoluteRoot)
	return p
}

// Prim returns the prim at path.
func (s *Store) Prim(path Path) (*Prim, bool) {
	return s.prims.ValueByKeyTry(path)
}

// Prims returns all prims, including the pseudo-root, in creation order.
func (s *Store) Prims() []*Prim {
	return s.prims.Values()
}

// Len returns the number of prims including the pseudo-root.
func (s *Store) Len() int {
	return s.prims.Len()
}

// GetOrAddPrim returns the prim at path, creating a defined, typeless
// prim if there is none. It does not register the prim as a child of
// its parent; see [Prim.AddChild].
func (s *Store) GetOrAddPrim(path Path) *Prim {
	if p, ok := s.prims.ValueByKeyTry(path); ok {
		return p
	}
	p := &Prim{Path: path, Specifier: SpecifierDef}
	s.prims.Add(path, p)
	return p
}

// Property returns the property at path.
func (s *Store) Property(path Path) (*Property, bool) {
	prim, ok := s.Prim(path.PrimPath())
	if !ok {
		return nil, false
	}
	return prim.Property(path)
}

// GetOrAddProperty returns the property at path, creating it and its
// owning prim as needed.
func (s *Store) GetOrAddProperty(path Path) *Property {
	prim := s.GetOrAddPrim(path.PrimPath())
	if p, ok := prim.Property(path); ok {
		return p
	}
	p := &Property{Path: path}
	prim.properties.Add(path, p)
	return p
}

// Validate checks that every prim's Children exactly match the prims
// stored directly below it.
func (s *Store) Validate() error {
	actual := map[Path][]string{}
	for _, p := range s.prims.Values() {
		if p.Path.IsAbsoluteRoot() {
			continue
		}
		parent := p.Path.Parent()
		actual[parent] = append(actual[parent], p.Path.Name())
	}
	var errs []string
	for _, p := range s.prims.Values() {
		got := slices.Clone(p.Children)
		want := slices.Clone(actual[p.Path])
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			errs = append(errs, fmt.Sprintf("%s: children %v, prims %v", p.Path, got, want))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("sdf: inconsistent children:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
