// Copyright (c) 2026, The UsdFbx Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/usdfbx/usdfbx/config"
)

// Watch converts the input files, then converts them again
// whenever they change, until interrupted.
func Watch(c *config.Config) error { //cli:cmd
	if err := c.OnConfig("watch"); err != nil {
		return err
	}
	inputs, err := expandInputs(c.Inputs)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return watch(ctx, c, inputs, slog.Default())
}

// watch converts the inputs once and then on every write or create
// event, waiting for the debounce delay after the last event of a file.
func watch(ctx context.Context, c *config.Config, inputs []string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := map[string]bool{}
	dirs := map[string]bool{}
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		watched[abs] = true
		if _, err := convertFile(c, abs, logger); err != nil {
			logger.Error("convert", "input", abs, "err", err)
		}
		// directories are watched and events filtered by name
		if dir := filepath.Dir(abs); !dirs[dir] {
			dirs[dir] = true
			if err := w.Add(dir); err != nil {
				return err
			}
		}
	}

	var mu sync.Mutex
	timers := map[string]*time.Timer{}
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()
	delay := time.Duration(c.Debounce) * time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch", "err", err)
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if !watched[name] {
				continue
			}
			mu.Lock()
			if t, ok := timers[name]; ok {
				t.Reset(delay)
			} else {
				timers[name] = time.AfterFunc(delay, func() {
					if _, err := convertFile(c, name, logger); err != nil {
						logger.Error("convert", "input", name, "err", err)
					}
				})
			}
			mu.Unlock()
		}
	}
}
