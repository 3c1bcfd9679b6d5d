package source

import (
	"errors"
	"fmt"
	gomath "math"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/vertexpath/internal/logger"
	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

// lengthTolerance bounds the difference between an explicit length and the
// last cumulative length before the writer reports it.
const lengthTolerance = 1e-6

// Writer is the producer side of a vertex path store. It copies the baked
// polyline from a source file into the store whenever the upstream changes.
//
// Initialize and OnUpstreamChanged are driven by an external loop; Writer
// never polls on its own.
type Writer struct {
	path       string
	store      *vertexpath.Store
	localFrame bool

	mu    sync.Mutex
	inert bool
	ready bool
}

// NewWriter creates a writer copying the source at path into store.
// With localFrame set commits carry the source's parent-relative frame.
func NewWriter(path string, store *vertexpath.Store, localFrame bool) *Writer {
	return &Writer{
		path:       path,
		store:      store,
		localFrame: localFrame,
	}
}

// Path returns the source file path.
func (w *Writer) Path() string {
	return w.path
}

// Initialize locates the source and performs the first commit.
// A missing source is logged as a warning and leaves the writer inert:
// later upstream changes are ignored and ErrMissingSource is returned.
func (w *Writer) Initialize() error {
	w.mu.Lock()
	if _, err := os.Stat(w.path); err != nil {
		w.inert = true
		w.mu.Unlock()
		logger.Warn("path source missing, writer disabled",
			zap.String("source", w.path), zap.Error(err))
		return fmt.Errorf("%w: %s", ErrMissingSource, w.path)
	}
	w.inert = false
	w.ready = true
	w.mu.Unlock()

	return w.OnUpstreamChanged()
}

// OnUpstreamChanged re-reads the source and commits it. It is a no-op on an
// inert or uninitialized writer. On error the store keeps its previous path.
func (w *Writer) OnUpstreamChanged() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inert || !w.ready {
		return nil
	}

	f, err := Load(w.path)
	if err != nil {
		if errors.Is(err, ErrMissingSource) {
			logger.Warn("path source disappeared, keeping last commit", zap.String("source", w.path))
		}
		return err
	}
	data, err := f.CommitData(w.localFrame)
	if err != nil {
		return err
	}
	if n := len(data.CumulativeLengths); n > 0 && gomath.Abs(data.Length-data.CumulativeLengths[n-1]) > lengthTolerance {
		logger.Debug("path length disagrees with cumulative lengths",
			zap.String("source", w.path),
			zap.Float64("length", data.Length),
			zap.Float64("cumulative", data.CumulativeLengths[n-1]))
	}
	if err := w.store.Commit(data); err != nil {
		return fmt.Errorf("committing %s: %w", w.path, err)
	}

	logger.Debug("path committed",
		zap.String("source", w.path),
		zap.Int("points", len(data.Points)),
		zap.Float64("length", data.Length),
		zap.Bool("local_frame", w.localFrame))
	return nil
}

// Inert reports whether Initialize found no source.
func (w *Writer) Inert() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inert
}
