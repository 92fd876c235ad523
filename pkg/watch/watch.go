// Package watch re-extracts a model's parameter schema whenever the source
// file changes on disk. Useful for live-preview workflows where the form
// must follow the model file being edited.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	internalExtractor "github.com/goliatone/go-customizer/internal/scad/extractor"
	internalLoader "github.com/goliatone/go-customizer/internal/scad/loader"
	"github.com/goliatone/go-customizer/pkg/scad"
)

const defaultDebounce = 150 * time.Millisecond

// Handler receives the freshly extracted schema after each change. A non-nil
// err means the source could not be loaded; extraction itself never fails.
type Handler func(schema scad.Schema, err error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithLoader replaces the default file loader.
func WithLoader(loader scad.Loader) Option {
	return func(w *Watcher) {
		if loader != nil {
			w.loader = loader
		}
	}
}

// WithExtractor replaces the default extractor.
func WithExtractor(extractor scad.Extractor) Option {
	return func(w *Watcher) {
		if extractor != nil {
			w.extractor = extractor
		}
	}
}

// WithDebounce sets how long to wait after the last write before
// re-extracting. Editors often emit bursts of events per save.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// Watcher observes one model file at a time.
type Watcher struct {
	loader    scad.Loader
	extractor scad.Extractor
	debounce  time.Duration
}

// New constructs a watcher with the built-in loader and extractor.
func New(options ...Option) *Watcher {
	w := &Watcher{
		loader:    internalLoader.New(scad.NewLoaderOptions()),
		extractor: internalExtractor.New(scad.NewExtractorOptions()),
		debounce:  defaultDebounce,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// Watch extracts the schema once immediately, then re-extracts after every
// change until the context is cancelled. It blocks; run it in a goroutine
// when the caller needs to keep working.
func (w *Watcher) Watch(ctx context.Context, path string, handler Handler) error {
	if handler == nil {
		return errors.New("watch: handler is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: resolve %q: %w", path, err)
	}

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer func() {
		_ = notifier.Close()
	}()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a watch installed on the inode itself.
	if err := notifier.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: add %q: %w", filepath.Dir(abs), err)
	}

	w.emit(ctx, abs, handler)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-notifier.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.emit(ctx, abs, handler)

		case err, ok := <-notifier.Errors:
			if !ok {
				return nil
			}
			handler(scad.Schema{}, fmt.Errorf("watch: %w", err))
		}
	}
}

func (w *Watcher) emit(ctx context.Context, path string, handler Handler) {
	doc, err := w.loader.Load(ctx, scad.SourceFromFile(path))
	if err != nil {
		handler(scad.Schema{}, err)
		return
	}
	schema, err := w.extractor.Extract(ctx, doc)
	handler(schema, err)
}
