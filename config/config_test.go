// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/base/logx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := Defaults()
	assert.Equal(t, ".usda", c.Ext)
	assert.Equal(t, "yaml", c.Format)
	assert.Equal(t, 200, c.Debounce)
	assert.NoError(t, c.Validate())
}

func TestLoadMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("Format = \"json\"\nDebounce = 50\nStrict = true\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", c.Format)
	assert.Equal(t, 50, c.Debounce)
	assert.True(t, c.Strict)
	assert.Equal(t, ".usda", c.Ext)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("Format = \"xml\"\n"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, `unsupported inspect format "xml"`)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	c := Defaults()
	c.Output = "out"
	c.Verbose = true
	require.NoError(t, c.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "out", got.Output)
	assert.False(t, got.Verbose)
}

func TestValidate(t *testing.T) {
	c := Defaults()
	c.Ext = "usda"
	assert.Error(t, c.Validate())
	c = Defaults()
	c.Debounce = -1
	assert.Error(t, c.Validate())
}

func TestOnConfigSetsLevel(t *testing.T) {
	old := logx.UserLevel
	defer func() { logx.UserLevel = old }()

	c := Defaults()
	c.Quiet = true
	require.NoError(t, c.OnConfig(""))
	assert.Equal(t, slog.LevelError, logx.UserLevel)
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))

	c.VeryVerbose = true
	require.NoError(t, c.OnConfig(""))
	assert.Equal(t, slog.LevelDebug, logx.UserLevel)
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}
