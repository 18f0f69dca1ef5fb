// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when files in a skill directory change.
//
// Events are coalesced over a quiet period so an editor save that touches
// several files produces a single callback with every changed path.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is unset.
const DefaultDebounce = 300 * time.Millisecond

// clearScreen moves the cursor home after clearing the terminal.
const clearScreen = "\033[2J\033[H"

var (
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watcher already running")

	// builtinIgnores never trigger a callback. Archives are listed because
	// packaging into the skill directory would otherwise re-trigger itself.
	builtinIgnores = []string{
		".git",
		"**/.git/**",
		"**/node_modules/**",
		"**/__pycache__/**",
		"**/*.zip",
		"**/*.swp",
		"**/*.swo",
		"**/*~",
		"**/.DS_Store",
	}
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dir is the skill directory to watch recursively.
		Dir string
		// Ignore adds doublestar patterns, relative to Dir, to the built-in ignores.
		Ignore []string
		// Debounce is the quiet period before OnChange fires.
		Debounce time.Duration
		// ClearScreen clears the terminal on Stdout before each callback.
		ClearScreen bool
		// OnChange receives the sorted, de-duplicated paths (relative to Dir)
		// that changed since the previous call.
		OnChange func(ctx context.Context, changed []string) error
		Stdout   io.Writer
		Logger   *log.Logger
	}

	// Watcher watches one skill directory. Run may be called once.
	Watcher struct {
		cfg     Config
		dir     string
		fsw     *fsnotify.Watcher
		ignores []string
		logger  *log.Logger
		stdout  io.Writer
		started atomic.Bool
	}

	// debouncer collects pending paths and fires once per quiet period,
	// skipping a tick while the previous callback is still running.
	debouncer struct {
		mu      sync.Mutex
		pending map[string]struct{}
		timer   *time.Timer
		delay   time.Duration
		busy    atomic.Bool
		fire    func([]string)
		logger  *log.Logger
	}
)

// New validates cfg and registers every non-ignored directory under Dir.
func New(cfg Config) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, errors.New("watch: no directory given")
	}
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", cfg.Dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory", dir)
	}

	for _, pat := range cfg.Ignore {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("watch: invalid ignore pattern %q", pat)
		}
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}

	w := &Watcher{
		cfg:     cfg,
		dir:     dir,
		fsw:     fsw,
		ignores: slices.Concat(builtinIgnores, cfg.Ignore),
		logger:  logger,
		stdout:  stdout,
	}
	if err := w.addTree(dir); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Dir returns the absolute directory being watched.
func (w *Watcher) Dir() string { return w.dir }

// Run processes events until ctx is done. It returns nil on cancellation and
// an error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	d := newDebouncer(w.cfg.Debounce, func(changed []string) {
		if ctx.Err() != nil {
			return
		}
		if w.cfg.ClearScreen {
			fmt.Fprint(w.stdout, clearScreen)
		}
		if w.cfg.OnChange == nil {
			return
		}
		if err := w.cfg.OnChange(ctx, changed); err != nil {
			w.logger.Error("watch callback failed", "err", err)
		}
	}, w.logger)

	defer func() {
		d.stop()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("closing watcher", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			rel := w.rel(evt.Name)
			if w.ignored(rel) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				w.addIfDir(evt.Name)
			}
			w.logger.Debug("change", "path", rel, "op", evt.Op.String())
			d.add(rel)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: %w", err)
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (w *Watcher) ignored(rel string) bool {
	for _, pat := range w.ignores {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// addTree registers root and every directory below it that is not ignored.
// Unreadable directories are logged and skipped.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping unreadable path", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.dir && w.ignored(w.rel(path)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) addIfDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(path); err != nil {
		w.logger.Warn("watching new directory", "path", path, "err", err)
	}
}

func newDebouncer(delay time.Duration, fire func([]string), logger *log.Logger) *debouncer {
	return &debouncer{
		pending: make(map[string]struct{}),
		delay:   delay,
		fire:    fire,
		logger:  logger,
	}
}

func (d *debouncer) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending[path] = struct{}{}
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.tick)
		return
	}
	d.timer.Reset(d.delay)
}

// tick runs on the timer goroutine. When the previous callback is still
// running the timer is re-armed so the pending set is not lost.
func (d *debouncer) tick() {
	if !d.busy.CompareAndSwap(false, true) {
		d.logger.Debug("previous run still in progress, deferring")
		d.mu.Lock()
		if d.timer != nil {
			d.timer.Reset(d.delay)
		}
		d.mu.Unlock()
		return
	}
	defer d.busy.Store(false)

	d.mu.Lock()
	if len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	changed := slices.Sorted(maps.Keys(d.pending))
	clear(d.pending)
	d.mu.Unlock()

	d.fire(changed)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}
