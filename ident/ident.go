// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ident turns arbitrary source names into valid scene
// description identifiers: a letter or underscore followed by letters,
// digits and underscores, deduplicated against a set of sibling names.
package ident

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultTrim is the set of characters stripped from the left of a
// name that needs mangling.
const DefaultTrim = " _"

// Placeholder replaces an empty name.
const Placeholder = "_"

// IsValid returns whether s is a valid identifier.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || isAlpha(c) || (i > 0 && isDigit(c)) {
			continue
		}
		return false
	}
	return true
}

func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// stripMarks decomposes s and drops the combining marks, so that
// accented letters keep their base letter.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// MakeValid returns s with every character that is not allowed in an
// identifier replaced by an underscore. Accented Latin letters are
// replaced by their base letter. An empty s gives [Placeholder].
func MakeValid(s string) string {
	if s == "" {
		return Placeholder
	}
	if t, _, err := transform.String(stripMarks, s); err == nil {
		s = t
	}
	var b strings.Builder
	b.Grow(len(s))
	first := true
	for _, r := range s {
		switch {
		case r < 0x80 && (r == '_' || isAlpha(byte(r))):
			b.WriteRune(r)
		case r < 0x80 && isDigit(byte(r)) && !first:
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
		first = false
	}
	return b.String()
}

// Clean sanitizes a name that has no siblings to collide with.
func Clean(name string) string {
	return NewSet().Clean(name, DefaultTrim)
}

// Set is the set of names already in use among siblings. It must be
// populated with every sibling name before any of them is cleaned, so
// that a mangled name never takes a name that a sibling already has.
type Set struct {
	// reserved are the raw sibling names.
	reserved map[string]bool

	// claimed are the names already returned by Clean.
	claimed map[string]bool
}

// NewSet returns a Set reserving the given sibling names.
func NewSet(names ...string) *Set {
	s := &Set{reserved: map[string]bool{}, claimed: map[string]bool{}}
	s.Reserve(names...)
	return s
}

// Reserve adds names to the reserved set.
func (s *Set) Reserve(names ...string) {
	for _, n := range names {
		s.reserved[n] = true
	}
}

// Has returns whether name is reserved or has been claimed.
func (s *Set) Has(name string) bool {
	return s.reserved[name] || s.claimed[name]
}

// Clean returns a valid identifier for name that is distinct from every
// name previously returned by this set. A name that is already valid
// is returned unchanged the first time it is seen. Otherwise the
// characters in trim are stripped from the left, the remainder is made
// valid, and an "_<n>" suffix with the smallest free n is appended
// when the result is taken.
func (s *Set) Clean(name, trim string) string {
	if IsValid(name) && !s.claimed[name] {
		s.claimed[name] = true
		return name
	}
	base := name
	if !IsValid(name) {
		if t := strings.TrimLeft(name, trim); t != "" {
			base = t
		}
		base = MakeValid(base)
	}
	if !s.claimed[base] && (base == name || !s.reserved[base]) {
		s.claimed[base] = true
		return base
	}
	for n := 1; ; n++ {
		c := base + "_" + strconv.Itoa(n)
		if !s.Has(c) {
			s.claimed[c] = true
			return c
		}
	}
}
