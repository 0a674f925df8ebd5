// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"strings"
)

// Path is an absolute scene description path. Prim paths are
// slash-delimited identifiers ("/ROOT/Cube"), property paths append a
// dot and a namespaced name ("/ROOT/Cube.xformOp:translate"), and
// target paths append a bracketed path ("/ROOT/Cube.material:binding[/ROOT/M]").
// Paths are plain comparable values and are never mutated.
type Path string

const (
	// AbsoluteRoot is the path of the pseudo-root.
	AbsoluteRoot Path = "/"

	// EmptyPath is the invalid, empty path.
	EmptyPath Path = ""
)

// NewPath returns the path for s, which must already be well formed.
func NewPath(s string) Path {
	return Path(s)
}

func (p Path) String() string { return string(p) }

// IsEmpty returns whether p is the empty path.
func (p Path) IsEmpty() bool { return p == EmptyPath }

// IsAbsoluteRoot returns whether p is the pseudo-root path.
func (p Path) IsAbsoluteRoot() bool { return p == AbsoluteRoot }

// split returns the prim part, the property name and the target of p.
func (p Path) split() (prim, prop, target string) {
	s := string(p)
	if i := strings.IndexByte(s, '['); i >= 0 && strings.HasSuffix(s, "]") {
		target = s[i+1 : len(s)-1]
		s = s[:i]
	}
	last := strings.LastIndexByte(s, '/')
	if i := strings.IndexByte(s[last+1:], '.'); i >= 0 {
		return s[:last+1+i], s[last+2+i:], target
	}
	return s, "", target
}

// IsPrimPath returns whether p names a prim (not the pseudo-root).
func (p Path) IsPrimPath() bool {
	if p.IsEmpty() || p.IsAbsoluteRoot() {
		return false
	}
	_, prop, _ := p.split()
	return prop == ""
}

// IsPropertyPath returns whether p names a property.
func (p Path) IsPropertyPath() bool {
	_, prop, target := p.split()
	return prop != "" && target == ""
}

// IsTargetPath returns whether p names a relationship target.
func (p Path) IsTargetPath() bool {
	_, _, target := p.split()
	return target != ""
}

// PrimPath returns the prim part of p.
func (p Path) PrimPath() Path {
	prim, _, _ := p.split()
	return Path(prim)
}

// Name returns the last element of p: the prim name for prim paths and
// the full property name for property paths.
func (p Path) Name() string {
	prim, prop, _ := p.split()
	if prop != "" {
		return prop
	}
	if prim == "/" {
		return ""
	}
	return prim[strings.LastIndexByte(prim, '/')+1:]
}

// Parent returns the owning prim of a property path, or the parent
// prim of a prim path.
func (p Path) Parent() Path {
	prim, prop, target := p.split()
	switch {
	case target != "":
		return Path(prim + "." + prop)
	case prop != "":
		return Path(prim)
	case prim == "/" || prim == "":
		return EmptyPath
	}
	i := strings.LastIndexByte(prim, '/')
	if i == 0 {
		return AbsoluteRoot
	}
	return Path(prim[:i])
}

// AppendChild returns the path of the child prim name under p.
func (p Path) AppendChild(name string) Path {
	if p.IsAbsoluteRoot() {
		return Path("/" + name)
	}
	return Path(string(p) + "/" + name)
}

// AppendProperty returns the path of property name on prim p.
func (p Path) AppendProperty(name string) Path {
	return Path(string(p) + "." + name)
}

// AppendTarget returns the path of target t of property p.
func (p Path) AppendTarget(t Path) Path {
	return Path(string(p) + "[" + string(t) + "]")
}

// Elements returns the prim names of p from the root down.
func (p Path) Elements() []string {
	prim, _, _ := p.split()
	prim = strings.Trim(prim, "/")
	if prim == "" {
		return nil
	}
	return strings.Split(prim, "/")
}

// HasPrefix returns whether p is pre or a descendant of pre.
func (p Path) HasPrefix(pre Path) bool {
	if pre.IsAbsoluteRoot() {
		return strings.HasPrefix(string(p), "/")
	}
	s := string(p)
	if !strings.HasPrefix(s, string(pre)) {
		return false
	}
	if len(s) == len(pre) {
		return true
	}
	switch s[len(pre)] {
	case '/', '.', '[':
		return true
	}
	return false
}

// Compare orders paths element by element, so that a prim sorts
// before its properties and its properties before its children.
func Compare(a, b Path) int {
	ae, be := a.Elements(), b.Elements()
	for i := 0; i < len(ae) && i < len(be); i++ {
		if c := strings.Compare(ae[i], be[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ae) < len(be):
		return -1
	case len(ae) > len(be):
		return 1
	}
	_, ap, at := a.split()
	_, bp, bt := b.split()
	if c := strings.Compare(ap, bp); c != 0 {
		return c
	}
	return strings.Compare(at, bt)
}

// Less returns whether a sorts before b. See [Compare].
func (p Path) Less(b Path) bool {
	return Compare(p, b) < 0
}
