package bibliography

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"gopkg.in/fsnotify.v1"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 200 * time.Millisecond

// ChangeFunc receives the re-rendered bibliography, or the error that
// prevented loading it.
type ChangeFunc func(results []Result, err error)

// Watcher re-renders a bibliography file whenever it is written.
// The parent directory is watched so that editors which save by
// renaming a temporary file are picked up.
type Watcher struct {
	path     string
	renderer *Renderer
	logger   *zap.Logger
	debounce time.Duration
	onChange ChangeFunc

	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for path. Call Start to begin watching.
func NewWatcher(path string, renderer *Renderer, logger *zap.Logger, onChange ChangeFunc) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     absPath,
		renderer: renderer,
		logger:   logger,
		debounce: DefaultDebounce,
		onChange: onChange,
	}, nil
}

// SetDebounce changes the settle delay. Must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Start begins watching. It returns once the watch is registered; changes
// are delivered on a background goroutine until ctx is done or Stop is called.
// The fsnotify handle is released when that goroutine exits.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", filepath.Dir(w.path), err)
	}

	w.watcher = watcher
	w.stopChan = make(chan struct{})
	w.done = make(chan struct{})

	go w.watchLoop(ctx)
	w.logger.Info("Watching bibliography", zap.String("path", w.path))
	return nil
}

// Stop ends watching and waits for the background goroutine to exit.
func (w *Watcher) Stop() {
	if w.watcher == nil {
		return
	}
	w.stopOnce.Do(func() {
		close(w.stopChan)
		<-w.done
	})
}

// Done is closed when the watch loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.done)
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// Renaming the file away leaves nothing to render; a rename
			// onto the path arrives as Create.
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			w.logger.Debug("Bibliography changed", zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.rerender(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) rerender(ctx context.Context) {
	file, err := Load(w.path)
	if err != nil {
		w.logger.Warn("Reload failed", zap.String("path", w.path), zap.Error(err))
		w.onChange(nil, err)
		return
	}
	results, err := w.renderer.Render(ctx, file)
	w.logger.Info("Bibliography re-rendered",
		zap.Int("entries", len(results)),
		zap.Int("failed", Failed(results)))
	w.onChange(results, err)
}
