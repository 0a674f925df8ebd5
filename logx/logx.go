// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx holds the debug channels used by the reader and an
// in-memory [Recorder] of diagnostics. Verbosity and terminal output
// come from [cogentcore.org/core/base/logx].
package logx

// Debug channels. Debug records carry a "channel" attribute with one
// of these values so that reader traces can be filtered.
const (
	// ChannelReader traces file level reader steps.
	ChannelReader = "usdfbx"

	// ChannelPipelines traces the per-node conversion pipelines.
	ChannelPipelines = "readers"
)
