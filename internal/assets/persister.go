package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/vertexpath/internal/logger"
	"github.com/Faultbox/vertexpath/pkg/formats"
	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

// Persister keeps an asset file in step with a store. Every commit marks it
// dirty; Flush writes the asset and its sidecar.
type Persister struct {
	store     *vertexpath.Store
	assetPath string
	source    string
	sub       vertexpath.Subscription

	dirty atomic.Bool
	mu    sync.Mutex // serializes Flush
}

// NewPersister subscribes to store and writes to assetPath on Flush.
// source is recorded in the sidecar and may be empty.
func NewPersister(store *vertexpath.Store, assetPath, source string) *Persister {
	p := &Persister{
		store:     store,
		assetPath: assetPath,
		source:    source,
	}
	p.sub = store.Subscribe(p.markDirty)
	if store.IsInitialized() {
		p.dirty.Store(true)
	}
	return p
}

func (p *Persister) markDirty() {
	p.dirty.Store(true)
}

// Dirty reports whether a commit happened since the last Flush.
func (p *Persister) Dirty() bool {
	return p.dirty.Load()
}

// MarkClean forgets pending commits, e.g. after the store was filled from
// the asset itself.
func (p *Persister) MarkClean() {
	p.dirty.Store(false)
}

// Flush writes the asset if it is dirty. It reports whether anything was
// written.
func (p *Persister) Flush() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.dirty.Swap(false) {
		return false, nil
	}

	path, err := p.store.Path()
	if err != nil {
		p.dirty.Store(true)
		return false, err
	}
	if err := p.write(path); err != nil {
		p.dirty.Store(true)
		return false, err
	}
	return true, nil
}

func (p *Persister) write(path *vertexpath.Path) error {
	if err := os.MkdirAll(filepath.Dir(p.assetPath), 0755); err != nil {
		return err
	}

	encoded, err := formats.EncodeVPA(VPAFromCommitData(path.CommitData()))
	if err != nil {
		return fmt.Errorf("encoding %s: %w", p.assetPath, err)
	}
	if err := writeFileAtomic(p.assetPath, encoded); err != nil {
		return err
	}

	meta, err := loadOrCreateMeta(p.assetPath)
	if err != nil {
		return err
	}
	meta.Format = "vpa " + formats.CurrentVPAVersion.String()
	meta.Source = p.source
	meta.Updated = time.Now().UTC().Truncate(time.Second)
	if err := meta.save(p.assetPath); err != nil {
		return err
	}

	logger.Info("asset written",
		zap.String("asset", p.assetPath),
		zap.String("guid", meta.GUID),
		zap.Int("points", path.NumPoints()),
		zap.Int("bytes", len(encoded)))
	return nil
}

// Close unsubscribes from the store.
func (p *Persister) Close() {
	p.store.Unsubscribe(p.sub)
}

// writeFileAtomic writes through a temp file so readers never see a partial
// asset.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
