package source

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/vertexpath/internal/logger"
)

// DefaultDebounce is used when a Watcher is given a non-positive debounce.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a single file, collapsing bursts of events
// within the debounce window into one callback.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename keep being observed.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func()
}

// NewWatcher creates a watcher calling onChange after path changes.
func NewWatcher(path string, debounce time.Duration, onChange func()) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
	}
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			logger.Debug("path source changed", zap.String("source", w.path))
			w.onChange()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("path source watch error", zap.String("source", w.path), zap.Error(err))
		}
	}
}
