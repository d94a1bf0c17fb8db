package typegen

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/logger"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 300 * time.Millisecond

// ChangeCallback is called once per debounced burst of changes.
// Calls never overlap. Errors are logged and watching continues.
type ChangeCallback func() error

// SchemaWatcher watches input files (schema, templates, license) and
// triggers regeneration when any of them changes.
//
// The parent directories are watched rather than the files, so editors
// that save by renaming a new file over the old one keep triggering.
//
// A single goroutine runs the callback. Changes that settle while a run is
// in progress are coalesced into exactly one more run.
type SchemaWatcher struct {
	files          map[string]bool
	watcher        *fsnotify.Watcher
	onChange       ChangeCallback
	logger         *zap.SugaredLogger
	pending        chan struct{}
	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
}

// NewSchemaWatcher creates a watcher for the given files.
// Empty paths are ignored.
func NewSchemaWatcher(onChange ChangeCallback, paths ...string) (*SchemaWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	sw := &SchemaWatcher{
		files:          make(map[string]bool),
		watcher:        watcher,
		onChange:       onChange,
		logger:         logger.ComponentLogger("typegen.watch"),
		pending:        make(chan struct{}, 1),
		debouncePeriod: DefaultDebounce,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		sw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	if len(sw.files) == 0 {
		watcher.Close()
		return nil, errors.New("no files to watch")
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return sw, nil
}

// SetDebounce changes the debounce period (before Run)
func (sw *SchemaWatcher) SetDebounce(d time.Duration) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.debouncePeriod = d
}

// Run processes file events until ctx is done or the watcher is closed.
// It returns after any regeneration in progress has finished.
func (sw *SchemaWatcher) Run(ctx context.Context) error {
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sw.runChanges(stop)
	}()
	defer func() {
		sw.stopTimer()
		close(stop)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			if !sw.relevant(event) {
				continue
			}
			sw.logger.Debugw("Watcher detected change",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			sw.scheduleChange()

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			sw.logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// relevant keeps writes, creates and renames of watched files
func (sw *SchemaWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return sw.files[abs]
}

// scheduleChange debounces rapid file changes and triggers the callback
func (sw *SchemaWatcher) scheduleChange() {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	if sw.debounceTimer != nil {
		sw.debounceTimer.Stop()
	}

	sw.debounceTimer = time.AfterFunc(sw.debouncePeriod, func() {
		select {
		case sw.pending <- struct{}{}:
		default:
			// a run is already queued
		}
	})
}

// runChanges calls onChange once per queued change until stop is closed
func (sw *SchemaWatcher) runChanges(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-sw.pending:
			if err := sw.onChange(); err != nil {
				sw.logger.Errorw("Regeneration failed", logger.FieldError, err)
			}
		}
	}
}

func (sw *SchemaWatcher) stopTimer() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.debounceTimer != nil {
		sw.debounceTimer.Stop()
	}
}

// Stop stops watching
func (sw *SchemaWatcher) Stop() error {
	sw.stopTimer()
	return sw.watcher.Close()
}
