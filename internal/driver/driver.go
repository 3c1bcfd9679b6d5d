// Package driver runs the producer, persistence and follower loop for one
// vertex path.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/vertexpath/internal/assets"
	"github.com/Faultbox/vertexpath/internal/config"
	"github.com/Faultbox/vertexpath/internal/follower"
	"github.com/Faultbox/vertexpath/internal/logger"
	"github.com/Faultbox/vertexpath/internal/source"
	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

// State is the follower pose reported after every tick.
type State struct {
	Distance float64
	Position math.Vec3
	Rotation math.Quat
}

// Options configures a Driver.
type Options struct {
	Source       string
	Asset        string
	LocalFrame   bool
	Debounce     time.Duration
	Speed        float64
	EndOfPath    vertexpath.EndOfPath
	TickInterval time.Duration

	// OnTick, if set, receives the follower state after every update.
	OnTick func(State)
}

// OptionsFromConfig builds driver options from a loaded config.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	eop, err := vertexpath.ParseEndOfPath(cfg.Follower.EndOfPath)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Source:       cfg.Path.Source,
		Asset:        cfg.Path.Asset,
		LocalFrame:   cfg.Path.LocalFrame,
		Debounce:     cfg.Path.WatchDebounce,
		Speed:        cfg.Follower.Speed,
		EndOfPath:    eop,
		TickInterval: cfg.Follower.TickInterval(),
	}, nil
}

// Driver owns a store and the collaborators around it.
type Driver struct {
	opts      Options
	store     *vertexpath.Store
	writer    *source.Writer
	persister *assets.Persister
	follower  *follower.Follower
	log       *zap.Logger
}

// New wires a driver. Nothing runs until Run.
func New(opts Options) *Driver {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / 60
	}
	store := vertexpath.NewStore()
	d := &Driver{
		opts:   opts,
		store:  store,
		writer: source.NewWriter(opts.Source, store, opts.LocalFrame),
		log:    logger.Named("driver"),
	}
	if opts.Asset != "" {
		d.persister = assets.NewPersister(store, opts.Asset, opts.Source)
	}
	d.follower = follower.New(store, opts.Speed, opts.EndOfPath)
	return d
}

// Store returns the driven store.
func (d *Driver) Store() *vertexpath.Store {
	return d.store
}

// Follower returns the driven follower.
func (d *Driver) Follower() *follower.Follower {
	return d.follower
}

// Run initializes the producer and runs until ctx is done. A missing source
// falls back to the existing asset, if any, without watching.
func (d *Driver) Run(ctx context.Context) error {
	defer d.close()

	watch := true
	if err := d.writer.Initialize(); err != nil {
		if !errors.Is(err, source.ErrMissingSource) {
			return fmt.Errorf("initializing source: %w", err)
		}
		watch = false
		if d.opts.Asset != "" {
			if err := assets.LoadInto(d.store, d.opts.Asset); err != nil {
				d.log.Warn("no source and no usable asset", zap.String("asset", d.opts.Asset), zap.Error(err))
			} else if d.persister != nil {
				d.persister.MarkClean()
			}
		}
	} else {
		d.flush()
	}

	g, ctx := errgroup.WithContext(ctx)

	if watch {
		w := source.NewWatcher(d.opts.Source, d.opts.Debounce, d.onSourceChanged)
		g.Go(func() error {
			return w.Run(ctx)
		})
	}

	g.Go(func() error {
		return d.tickLoop(ctx)
	})

	err := g.Wait()
	d.flush()
	return err
}

func (d *Driver) onSourceChanged() {
	if err := d.writer.OnUpstreamChanged(); err != nil {
		d.log.Warn("reloading source failed", zap.String("source", d.opts.Source), zap.Error(err))
		return
	}
	d.flush()
}

func (d *Driver) flush() (bool, error) {
	if d.persister == nil {
		return false, nil
	}
	written, err := d.persister.Flush()
	if err != nil {
		d.log.Error("writing asset failed", zap.String("asset", d.opts.Asset), zap.Error(err))
	}
	return written, err
}

func (d *Driver) tickLoop(ctx context.Context) error {
	ticker := time.NewTicker(d.opts.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			if err := d.follower.Update(dt); err != nil {
				if errors.Is(err, vertexpath.ErrUninitialized) || errors.Is(err, vertexpath.ErrDegenerateLength) {
					continue
				}
				return fmt.Errorf("follower update: %w", err)
			}
			if d.opts.OnTick != nil {
				d.opts.OnTick(State{
					Distance: d.follower.Distance(),
					Position: d.follower.Position(),
					Rotation: d.follower.Rotation(),
				})
			}
		}
	}
}

func (d *Driver) close() {
	d.follower.Close()
	if d.persister != nil {
		d.persister.Close()
	}
}
