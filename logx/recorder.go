// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"context"
	"log/slog"
	"sync"
)

// Recorder is a [slog.Handler] that keeps every record it handles,
// optionally forwarding them to another handler.
type Recorder struct {
	// Next, if non-nil, also receives every record.
	Next slog.Handler

	state *recorderState
	attrs []slog.Attr
}

type recorderState struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewRecorder returns a new [Recorder] forwarding to next, which may be nil.
func NewRecorder(next slog.Handler) *Recorder {
	return &Recorder{Next: next, state: &recorderState{}}
}

// Logger returns a logger writing to the recorder.
func (r *Recorder) Logger() *slog.Logger {
	return slog.New(r)
}

func (r *Recorder) Enabled(ctx context.Context, l slog.Level) bool {
	return true
}

func (r *Recorder) Handle(ctx context.Context, rec slog.Record) error {
	rec = rec.Clone()
	if len(r.attrs) > 0 {
		rec.AddAttrs(r.attrs...)
	}
	r.state.mu.Lock()
	r.state.records = append(r.state.records, rec)
	r.state.mu.Unlock()
	if r.Next != nil && r.Next.Enabled(ctx, rec.Level) {
		return r.Next.Handle(ctx, rec)
	}
	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	nr := *r
	nr.attrs = append(append([]slog.Attr{}, r.attrs...), attrs...)
	return &nr
}

func (r *Recorder) WithGroup(name string) slog.Handler {
	return r
}

// Records returns a copy of the records at or above the given level.
func (r *Recorder) Records(min slog.Level) []slog.Record {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []slog.Record
	for _, rec := range r.state.records {
		if rec.Level >= min {
			out = append(out, rec)
		}
	}
	return out
}

// Messages returns the messages of the records at exactly the given level.
func (r *Recorder) Messages(l slog.Level) []string {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	var out []string
	for _, rec := range r.state.records {
		if rec.Level == l {
			out = append(out, rec.Message)
		}
	}
	return out
}

// Warnings returns the warning messages.
func (r *Recorder) Warnings() []string {
	return r.Messages(slog.LevelWarn)
}

// Reset discards all records.
func (r *Recorder) Reset() {
	r.state.mu.Lock()
	r.state.records = nil
	r.state.mu.Unlock()
}
