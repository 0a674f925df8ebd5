// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
	"github.com/mitchellh/go-homedir"
	"github.com/usdfbx/usdfbx/config"
	"github.com/usdfbx/usdfbx/fileformat"
	"github.com/usdfbx/usdfbx/logx"
	"github.com/usdfbx/usdfbx/usda"
	"golang.org/x/sync/errgroup"
)

// Convert converts the input FBX files to usda layers,
// in parallel.
func Convert(c *config.Config) error { //cli:cmd -root
	if err := c.OnConfig("convert"); err != nil {
		return err
	}
	inputs, err := expandInputs(c.Inputs)
	if err != nil {
		return err
	}
	rec := logx.NewRecorder(slog.Default().Handler())
	logger := rec.Logger()

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, in := range inputs {
		g.Go(func() error {
			_, err := convertFile(c, in, logger)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if n := len(rec.Warnings()); c.Strict && n > 0 {
		return fmt.Errorf("conversion logged %d warnings", n)
	}
	return nil
}

// expandInputs expands a leading ~ in every input and checks that the
// inputs exist.
func expandInputs(inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, errors.New("no input files given")
	}
	out := make([]string, len(inputs))
	for i, in := range inputs {
		p, err := homedir.Expand(in)
		if err != nil {
			return nil, err
		}
		if !errors.Log1(fsx.FileExists(p)) {
			return nil, fmt.Errorf("input file %q not found", in)
		}
		out[i] = p
	}
	return out, nil
}

// OutputPath returns the path of the layer converted from in: the input
// base name with the configured extension, in the output directory or
// next to the input.
func OutputPath(c *config.Config, in string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + c.Ext
	if c.Output == "" {
		return filepath.Join(filepath.Dir(in), name), nil
	}
	dir, err := homedir.Expand(c.Output)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// convertFile converts one input and returns the written path.
func convertFile(c *config.Config, in string, logger *slog.Logger) (string, error) {
	f := fileformat.NewFormat()
	f.Logger = logger.With("file", filepath.Base(in))
	if !f.CanRead(in) {
		return "", fmt.Errorf("unsupported input file %q", in)
	}
	layer := fileformat.NewMemLayer(in)
	if err := f.Read(layer, in, false); err != nil {
		return "", err
	}
	out, err := OutputPath(c, in)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}
	w, err := os.Create(out)
	if err != nil {
		return "", err
	}
	if err := usda.Write(w, layer.Data()); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	logger.Info("converted", "input", in, "output", out)
	return out, nil
}
