// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fbx2usd converts FBX scenes to usda layers, prints the
// converted prim tree, and reconverts files as they change.
package main

import (
	"cogentcore.org/core/cli"
	"github.com/usdfbx/usdfbx/config"
)

//go:generate core generate -add-funcs

func main() { //types:skip
	opts := cli.DefaultOptions("fbx2usd", "Fbx2usd converts FBX scenes to usda layers.")
	opts.DefaultFiles = []string{config.DefaultFile}
	cli.Run(opts, &config.Config{}, Convert, Inspect, Watch)
}
