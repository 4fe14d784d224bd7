package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/macropower/lintsel/pkg/log"
)

// DefaultDebounce coalesces bursts of file events, e.g. from editors
// that truncate and then write.
const DefaultDebounce = 100 * time.Millisecond

// Watcher invokes a callback whenever the contents of a single
// configuration file change on disk.
//
// The parent directory is watched rather than the file itself, so that
// atomic replaces (write to a temporary file, rename over the original)
// are observed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	onChange func(ctx context.Context)
	path     string
	debounce time.Duration
}

// WatcherOpt configures a [Watcher].
type WatcherOpt func(w *Watcher)

// WithDebounce sets the interval used to coalesce bursts of file events.
func WithDebounce(d time.Duration) WatcherOpt {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a [Watcher] for the file at the given path.
// The callback runs on the goroutine executing [Watcher.Watch].
func NewWatcher(filePath string, onChange func(ctx context.Context), opts ...WatcherOpt) (*Watcher, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("get absolute path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	err = fw.Add(filepath.Dir(absPath))
	if err != nil {
		fw.Close() //nolint:errcheck // Ignore errors.

		return nil, fmt.Errorf("add path to watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		onChange: onChange,
		path:     absPath,
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Watch dispatches change callbacks until ctx is canceled or
// [Watcher.Close] is called.
func (w *Watcher) Watch(ctx context.Context) {
	logger := log.WithContext(ctx)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return

		case evt, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(evt.Name) != w.path {
				continue
			}

			// Ignore events that are not related to file content changes.
			if evt.Has(fsnotify.Chmod) {
				continue
			}

			logger.DebugContext(ctx, "config file event",
				slog.String("event", evt.String()),
			)

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			w.onChange(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}

			logger.ErrorContext(ctx, "watch config file", slog.Any("err", err))
		}
	}
}

// Close stops the watcher. Any active [Watcher.Watch] call returns
// after Close.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	if err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}

	return nil
}
