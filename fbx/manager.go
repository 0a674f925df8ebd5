// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fbx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cogentcore.org/core/base/errors"
	"github.com/usdfbx/usdfbx/fbx/record"
)

var (
	// ErrUnableToOpen is returned when a file cannot be read or parsed.
	ErrUnableToOpen = errors.New("unable to open file")

	// ErrIncompatibleVersion is returned for files newer than [SDKVersion].
	ErrIncompatibleVersion = errors.New("incompatible file version")
)

// Importer reads a scene from a stream.
type Importer interface {
	Import(r io.Reader) (*Scene, error)
}

// ImporterFunc adapts a function to the [Importer] interface.
type ImporterFunc func(r io.Reader) (*Scene, error)

func (f ImporterFunc) Import(r io.Reader) (*Scene, error) { return f(r) }

// Importers is the master list of importers, indexed by the lower case
// file extension including the dot.
var Importers = map[string]Importer{
	".fbx": ImporterFunc(ImportDocument),
}

// ImportDocument parses an FBX stream in either encoding and builds its scene.
func ImportDocument(r io.Reader) (*Scene, error) {
	doc, err := record.Parse(r)
	if err != nil {
		return nil, err
	}
	return Build(doc)
}

// Manager owns scene importing. Imports are serialized by one mutex, so
// a single manager can be shared by concurrent readers.
type Manager struct {
	mu sync.Mutex
}

// NewManager returns a new manager.
func NewManager() *Manager {
	return &Manager{}
}

// DefaultManager returns the process wide manager, creating it on first use.
var DefaultManager = sync.OnceValue(NewManager)

// Import imports the scene at path, choosing the importer by extension.
// The returned error wraps [ErrUnableToOpen] or [ErrIncompatibleVersion].
func (m *Manager) Import(path string) (*Scene, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	imp, ok := Importers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w %q: no importer for extension %q", ErrUnableToOpen, path, filepath.Ext(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnableToOpen, path, err)
	}
	defer f.Close()
	scene, err := imp.Import(f)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnableToOpen, path, err)
	}
	if err := CheckVersion(scene.Version); err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	scene.FileName = path
	return scene, nil
}
