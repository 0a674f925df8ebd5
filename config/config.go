// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// struct for the fbx2usd tool.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is the config file read from the working directory
// when it exists.
const DefaultFile = "fbx2usd.toml"

// Formats are the supported inspect output formats.
var Formats = []string{"yaml", "toml", "json"}

// Config is the main config struct
// that contains all of the configuration
// options for the fbx2usd tool.
type Config struct {

	// Inputs are the FBX files to convert or inspect.
	Inputs []string `posarg:"leftover" required:"-" toml:"-"`

	// Output is the directory converted layers are written to.
	// Layers are written next to their input when it is empty.
	Output string `flag:"o,output"`

	// Ext is the extension of converted layers.
	Ext string `default:".usda"`

	// Strict makes conversion fail when any warning was logged.
	Strict bool

	// Format is the output format of inspect: yaml, toml or json.
	Format string `cmd:"inspect" default:"yaml"`

	// Filter is a glob that inspected prim paths must match.
	Filter string `cmd:"inspect"`

	// Debounce is the number of milliseconds watch waits after the
	// last change to a file before converting it again.
	Debounce int `cmd:"watch" default:"200"`

	// VeryVerbose shows debug messages.
	VeryVerbose bool `flag:"vv,very-verbose" toml:"-"`

	// Verbose shows info messages.
	Verbose bool `flag:"v,verbose" toml:"-"`

	// Quiet only shows errors.
	Quiet bool `flag:"q,quiet" toml:"-"`
}

// Defaults returns a config with all default values set.
func Defaults() *Config {
	c := &Config{}
	cli.SetFromDefaults(c)
	return c
}

// Load reads the config file at path over the defaults. A missing
// file gives the defaults.
func Load(path string) (*Config, error) {
	c := Defaults()
	if !errors.Log1(fsx.FileExists(path)) {
		return c, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := toml.Unmarshal(b, c); err != nil {
		return c, fmt.Errorf("config.Load %q: %w", path, err)
	}
	return c, c.Validate()
}

// Save writes the config to path.
func (c *Config) Save(path string) error {
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Validate returns an error for unsupported values.
func (c *Config) Validate() error {
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("unsupported inspect format %q; must be one of %s", c.Format, strings.Join(Formats, ", "))
	}
	if !strings.HasPrefix(c.Ext, ".") {
		return fmt.Errorf("output extension %q must start with a dot", c.Ext)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative, got %d", c.Debounce)
	}
	return nil
}

// OnConfig validates the config and sets up logging at the verbosity
// given by the flags.
func (c *Config) OnConfig(cmd string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	logx.UserLevel = logx.LevelFromFlags(c.VeryVerbose, c.Verbose, c.Quiet)
	logx.SetDefaultLogger()
	return nil
}
