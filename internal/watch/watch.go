// Package watch re-runs checks when input documents change on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Logger receives watcher diagnostics.
type Logger interface {
	LogWarn(message string)
}

// Watcher reports batches of changed input files.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]bool
	roots    []string
	match    func(path string) bool
	debounce time.Duration
	logger   Logger
}

// New watches paths. Files are watched through their parent directory so
// atomic saves that replace the inode are still seen. Directories are watched
// recursively and match selects which files inside them count as inputs.
func New(paths []string, match func(path string) bool, debounce time.Duration, logger Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if match == nil {
		match = func(string) bool { return true }
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fw,
		files:    make(map[string]bool),
		match:    match,
		debounce: debounce,
		logger:   logger,
	}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	if !info.IsDir() {
		w.files[abs] = true
		return w.addDir(filepath.Dir(abs))
	}

	w.roots = append(w.roots, abs)
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != abs && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.addDir(p)
	})
}

func (w *Watcher) addDir(dir string) error {
	if err := w.fs.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	return nil
}

// relevant reports whether a change to path should trigger a re-run.
func (w *Watcher) relevant(path string) bool {
	if w.files[path] {
		return true
	}
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	for _, root := range w.roots {
		if strings.HasPrefix(path, root+string(filepath.Separator)) {
			return w.match(path)
		}
	}
	return false
}

// Run delivers changed files to onChange, at most once per debounce window,
// until ctx is cancelled. It closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func(changed []string)) error {
	defer w.fs.Close()

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			// New subdirectories under a watched root.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.underRoot(event.Name) {
					if err := w.addDir(event.Name); err != nil {
						w.warn(err.Error())
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.relevant(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			slices.Sort(changed)
			clear(pending)
			onChange(changed)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.warn(fmt.Sprintf("watcher error: %v", err))
		}
	}
}

func (w *Watcher) underRoot(path string) bool {
	for _, root := range w.roots {
		if strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) warn(msg string) {
	if w.logger != nil {
		w.logger.LogWarn(msg)
	}
}
