// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fileformat exposes the FBX reader as a layer file format: a
// host opens a layer by path, the format reads it into a store and binds
// the store to the layer as its data.
package fileformat

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"cogentcore.org/core/base/errors"
	"github.com/usdfbx/usdfbx/fbx"
	"github.com/usdfbx/usdfbx/logx"
	"github.com/usdfbx/usdfbx/reader"
	"github.com/usdfbx/usdfbx/sdf"
	"github.com/usdfbx/usdfbx/usda"
)

var (
	// ErrInvalidLayer is returned by Read for a nil layer.
	ErrInvalidLayer = errors.New("input layer is invalid (nil)")

	// ErrWriteNotSupported is returned by WriteToFile.
	ErrWriteNotSupported = errors.New("Writing to Fbx is not implemented!")
)

// Layer is the host side of a layer: it has an identifier, file format
// arguments, and data that the format replaces on read.
type Layer interface {
	Identifier() string
	Arguments() map[string]string
	Data() sdf.AbstractData
	SetData(d sdf.AbstractData)
}

// FileFormat is the interface for layer file formats.
type FileFormat interface {
	// CanRead returns whether the format can read the file at path.
	CanRead(path string) bool

	// Read reads the file at resolvedPath into the layer.
	Read(layer Layer, resolvedPath string, metadataOnly bool) error

	// WriteToFile writes the layer to path in this format.
	WriteToFile(layer Layer, path, comment string, args map[string]string) error

	// WriteToString returns the layer as text.
	WriteToString(layer Layer, comment string) (string, error)

	// WriteToStream writes the layer as text to w.
	WriteToStream(layer Layer, w io.Writer) error
}

// Formats is the master list of file formats, indexed by the primary
// lower case extension including the dot.
var Formats = map[string]FileFormat{}

func init() {
	f := NewFormat()
	for _, ext := range f.Extensions {
		Formats["."+ext] = f
	}
}

// FormatForPath returns the registered format for the extension of path.
func FormatForPath(path string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := Formats[ext]
	if !ok {
		return nil, fmt.Errorf("fileformat.FormatForPath: file extension: %q not found in Formats list for file %q", ext, path)
	}
	return f, nil
}

// Format is the FBX file format.
type Format struct {
	// ID is the format identifier.
	ID string

	// Version is the format version.
	Version string

	// Target is the format family this format produces data for.
	Target string

	// Extensions are the lower case extensions read by the format, without the dot.
	Extensions []string

	// Manager imports files, [fbx.DefaultManager] if nil.
	Manager *fbx.Manager

	// Logger receives diagnostics, [slog.Default] if nil.
	Logger *slog.Logger
}

// NewFormat returns the FBX format.
func NewFormat() *Format {
	return &Format{ID: "fbx", Version: "1.0", Target: "usd", Extensions: []string{"fbx"}}
}

func (f *Format) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.Default()
}

// CanRead returns whether the extension of path matches the format id,
// ignoring case.
func (f *Format) CanRead(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	f.logger().Debug("testing file extension", "extension", ext, "format", f.ID, "channel", logx.ChannelReader)
	if ext == "" {
		f.logger().Debug("file extension is empty", "path", path, "channel", logx.ChannelReader)
		return false
	}
	return strings.EqualFold(ext, f.ID)
}

// Read converts the file at resolvedPath and binds the result to the
// layer. The layer keeps its previous data when reading fails.
// The whole file is read even when metadataOnly is set.
func (f *Format) Read(layer Layer, resolvedPath string, metadataOnly bool) error {
	if layer == nil {
		return ErrInvalidLayer
	}
	logger := f.logger()
	logger.Debug("read", "layer", layer.Identifier(), "resolvedPath", resolvedPath,
		"metadataOnly", metadataOnly, "channel", logx.ChannelReader)
	if args := layer.Arguments(); len(args) > 0 {
		pairs := make([]string, 0, len(args))
		for _, k := range slices.Sorted(maps.Keys(args)) {
			pairs = append(pairs, k+" -> "+args[k])
		}
		logger.Debug("file format arguments", "args", strings.Join(pairs, ", "), "channel", logx.ChannelReader)
	}
	store, err := reader.Open(resolvedPath, reader.Options{Manager: f.Manager, Logger: logger})
	if err != nil {
		return err
	}
	layer.SetData(sdf.NewData(store))
	return nil
}

// WriteToFile always fails: the format is read only.
func (f *Format) WriteToFile(layer Layer, path, comment string, args map[string]string) error {
	return ErrWriteNotSupported
}

// WriteToString returns the layer data as usda text.
func (f *Format) WriteToString(layer Layer, comment string) (string, error) {
	f.logger().Warn("fileformat.WriteToString will only output usda data for Fbx layers!")
	if layer == nil || layer.Data() == nil {
		return "", ErrInvalidLayer
	}
	return usda.String(layer.Data())
}

// WriteToStream writes the layer data as usda text to w.
func (f *Format) WriteToStream(layer Layer, w io.Writer) error {
	f.logger().Warn("fileformat.WriteToStream will only output usda data for Fbx layers!")
	if layer == nil || layer.Data() == nil {
		return ErrInvalidLayer
	}
	return usda.Write(w, layer.Data())
}

// MemLayer is an in-memory [Layer].
type MemLayer struct {
	ID   string
	Args map[string]string
	data sdf.AbstractData
}

// NewMemLayer returns an empty layer with the given identifier.
func NewMemLayer(id string) *MemLayer {
	return &MemLayer{ID: id}
}

func (l *MemLayer) Identifier() string           { return l.ID }
func (l *MemLayer) Arguments() map[string]string { return l.Args }
func (l *MemLayer) Data() sdf.AbstractData       { return l.data }
func (l *MemLayer) SetData(d sdf.AbstractData)   { l.data = d }

// OpenLayer reads the file at path into a new [MemLayer] using the
// format registered for its extension.
func OpenLayer(path string) (*MemLayer, error) {
	f, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	l := NewMemLayer(path)
	if err := f.Read(l, path, false); err != nil {
		return nil, err
	}
	return l, nil
}
