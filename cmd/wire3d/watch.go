package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/taigrr/wire3d/pkg/scene"
)

// watchScene reloads the scene at path and calls onChange each time the
// file is written, until ctx is done. Load and render errors are logged and
// watching continues.
func watchScene(ctx context.Context, path string, onChange func(*scene.Scene) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	slog.Info("watching scene", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			s, err := loadScene(path)
			if err != nil {
				slog.Error("reload scene", "err", err)
				continue
			}
			if err := onChange(s); err != nil {
				slog.Error("render scene", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher", "err", err)
		}
	}
}
