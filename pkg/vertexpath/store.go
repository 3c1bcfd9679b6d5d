// Package vertexpath stores a baked polyline together with the frame it was
// baked in, and answers position, orientation and projection queries
// against it.
//
// A Store is written by a single producer through Commit and read by any
// number of goroutines. Every commit builds a fresh immutable Path and
// publishes it with one atomic pointer swap, so readers always see a
// consistent set of arrays.
package vertexpath

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/pathmath"
)

// CommitData is the full contents of one commit.
// Times and CumulativeLengths must already be non-decreasing; the store
// checks array lengths but trusts the producer on ordering.
type CommitData struct {
	Points            []math.Vec3
	Tangents          []math.Vec3
	Normals           []math.Vec3
	Times             []float64
	CumulativeLengths []float64
	Length            float64
	Bounds            math.Bounds
	Up                math.Vec3
	Space             pathmath.Space
	IsClosedLoop      bool
	LocalFrame        bool // Frame is relative to a parent, not world space
	Frame             Frame
}

// Validate checks the structural constraints a commit must satisfy.
func (d *CommitData) Validate() error {
	n := len(d.Points)
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 points, got %d", ErrMismatchedCommit, n)
	}
	if len(d.Tangents) != n || len(d.Normals) != n || len(d.Times) != n || len(d.CumulativeLengths) != n {
		return fmt.Errorf("%w: points=%d tangents=%d normals=%d times=%d lengths=%d",
			ErrMismatchedCommit, n, len(d.Tangents), len(d.Normals), len(d.Times), len(d.CumulativeLengths))
	}
	if !d.Space.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidSpace, d.Space)
	}
	return nil
}

// Subscription identifies a registered observer.
type Subscription struct {
	id uint64
}

type observer struct {
	id uint64
	fn func()
}

// Store holds the latest committed Path and notifies observers on change.
type Store struct {
	current atomic.Pointer[Path]

	mu        sync.Mutex
	observers []observer
	nextID    uint64
}

// NewStore creates an empty store. Queries fail with ErrUninitialized until
// the first successful Commit.
func NewStore() *Store {
	return &Store{}
}

// Commit validates data, copies it into a new Path and swaps it in.
// On error the previously committed path stays in place. Observers are
// notified synchronously after the swap, in subscription order.
func (s *Store) Commit(data CommitData) error {
	if err := data.Validate(); err != nil {
		return err
	}

	p := &Path{
		space:             data.Space,
		isClosedLoop:      data.IsClosedLoop,
		localFrame:        data.LocalFrame,
		localPoints:       cloneSlice(data.Points),
		localTangents:     cloneSlice(data.Tangents),
		localNormals:      cloneSlice(data.Normals),
		times:             cloneSlice(data.Times),
		cumulativeLengths: cloneSlice(data.CumulativeLengths),
		length:            data.Length,
		bounds:            data.Bounds,
		up:                data.Up,
		frame:             data.Frame,
	}

	s.mu.Lock()
	s.current.Store(p)
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn()
	}
	return nil
}

// Path returns the most recently committed path.
func (s *Store) Path() (*Path, error) {
	p := s.current.Load()
	if p == nil {
		return nil, ErrUninitialized
	}
	return p, nil
}

// IsInitialized reports whether at least one commit has succeeded.
func (s *Store) IsInitialized() bool {
	return s.current.Load() != nil
}

// Subscribe registers fn to be called after every successful commit.
// fn runs on the committing goroutine and may query the store or
// unsubscribe.
func (s *Store) Subscribe(fn func()) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.observers = append(s.observers, observer{id: s.nextID, fn: fn})
	return Subscription{id: s.nextID}
}

// Unsubscribe removes a registered observer. Unknown subscriptions are
// ignored.
func (s *Store) Unsubscribe(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o.id == sub.id {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// NumObservers returns the number of registered observers.
func (s *Store) NumObservers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}
