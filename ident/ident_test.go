// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("Cube"))
	assert.True(t, IsValid("_a1"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("1a"))
	assert.False(t, IsValid("a b"))
	assert.False(t, IsValid("Ñu"))
}

func TestMakeValid(t *testing.T) {
	tests := map[string]string{
		"":          "_",
		"a b":       "a_b",
		"1abc":      "_abc",
		"a:b|c":     "a_b_c",
		"Ñandú":     "Nandu",
		"mesh.001":  "mesh_001",
		"日本":        "__",
		"ok_name_9": "ok_name_9",
	}
	for in, want := range tests {
		assert.Equal(t, want, MakeValid(in), in)
	}
}

func TestCleanValidUnchanged(t *testing.T) {
	s := NewSet("Cube", "Sphere")
	assert.Equal(t, "Cube", s.Clean("Cube", DefaultTrim))
	assert.Equal(t, "Sphere", s.Clean("Sphere", DefaultTrim))
}

func TestCleanTrimAndSuffix(t *testing.T) {
	assert.Equal(t, "name", Clean("  name"))
	assert.Equal(t, "na_me", Clean("_ na me"))
	assert.Equal(t, "_", Clean(""))

	// the mangled "a b" must not take the sibling's valid "a_b"
	s := NewSet("a b", "a_b", "a-b")
	assert.Equal(t, "a_b_1", s.Clean("a b", DefaultTrim))
	assert.Equal(t, "a_b", s.Clean("a_b", DefaultTrim))
	assert.Equal(t, "a_b_2", s.Clean("a-b", DefaultTrim))
}

func TestCleanDistinct(t *testing.T) {
	names := []string{"x", "x ", " x", "x-", "x_", "x_1", "x.1", "", " ", "x"}
	s := NewSet(names...)
	seen := map[string]bool{}
	for _, n := range names {
		c := s.Clean(n, DefaultTrim)
		assert.True(t, IsValid(c), c)
		assert.False(t, seen[c], "duplicate %q for %q", c, n)
		seen[c] = true
	}
}
