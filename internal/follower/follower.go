// Package follower moves a point along a vertex path at constant speed.
package follower

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/vertexpath/internal/logger"
	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

// Follower advances along a store's path by Speed units per second.
// When the path is recommitted the follower snaps to the closest point on
// the new path instead of keeping a now meaningless distance.
type Follower struct {
	store *vertexpath.Store
	sub   vertexpath.Subscription

	mu        sync.Mutex
	speed     float64
	endOfPath vertexpath.EndOfPath
	distance  float64
	position  math.Vec3
	rotation  math.Quat
}

// New creates a follower on store and subscribes to its updates.
func New(store *vertexpath.Store, speed float64, eop vertexpath.EndOfPath) *Follower {
	f := &Follower{
		store:     store,
		speed:     speed,
		endOfPath: eop,
		rotation:  math.QuatIdentity(),
	}
	f.sub = store.Subscribe(f.onPathUpdated)
	if store.IsInitialized() {
		f.mu.Lock()
		f.place()
		f.mu.Unlock()
	}
	return f
}

// Update advances the follower by dt seconds and recomputes its pose.
// It returns vertexpath.ErrUninitialized until the store has a path.
func (f *Follower) Update(dt float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.store.IsInitialized() {
		return vertexpath.ErrUninitialized
	}
	f.distance += f.speed * dt
	return f.place()
}

// place sets position and rotation from the current distance. Caller holds mu.
func (f *Follower) place() error {
	pos, err := f.store.PointAtDistance(f.distance, f.endOfPath)
	if err != nil {
		return err
	}
	rot, err := f.store.RotationAtDistance(f.distance, f.endOfPath)
	if err != nil {
		return err
	}
	f.position = pos
	f.rotation = rot
	return nil
}

func (f *Follower) onPathUpdated() {
	f.mu.Lock()
	defer f.mu.Unlock()

	d, err := f.store.ClosestDistanceAlongPath(f.position)
	if err != nil {
		logger.Warn("follower re-projection failed", zap.Error(err))
		return
	}
	f.distance = d
	if err := f.place(); err != nil && !errors.Is(err, vertexpath.ErrDegenerateLength) {
		logger.Warn("follower placement failed", zap.Error(err))
	}
}

// Position returns the world position.
func (f *Follower) Position() math.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

// Rotation returns the world rotation.
func (f *Follower) Rotation() math.Quat {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rotation
}

// Distance returns the distance travelled.
func (f *Follower) Distance() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.distance
}

// SetSpeed changes the speed in units per second.
func (f *Follower) SetSpeed(speed float64) {
	f.mu.Lock()
	f.speed = speed
	f.mu.Unlock()
}

// SetEndOfPath changes what happens past the ends of the path.
func (f *Follower) SetEndOfPath(eop vertexpath.EndOfPath) {
	f.mu.Lock()
	f.endOfPath = eop
	f.mu.Unlock()
}

// Close unsubscribes from the store.
func (f *Follower) Close() {
	f.store.Unsubscribe(f.sub)
}
