package vertexpath

import (
	"fmt"

	"github.com/Faultbox/vertexpath/pkg/math"
)

// The Store query methods load the current Path once and answer from it, so
// each call sees a single commit even while the producer is swapping in a
// new one.

// NumPoints returns the vertex count, or 0 before the first commit.
func (s *Store) NumPoints() int {
	if p := s.current.Load(); p != nil {
		return p.NumPoints()
	}
	return 0
}

// Point returns vertex i in world space.
func (s *Store) Point(i int) (math.Vec3, error) {
	p, err := s.indexed(i)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.Point(i), nil
}

// Tangent returns the tangent at vertex i in world space.
func (s *Store) Tangent(i int) (math.Vec3, error) {
	p, err := s.indexed(i)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.Tangent(i), nil
}

// Normal returns the normal at vertex i in world space.
func (s *Store) Normal(i int) (math.Vec3, error) {
	p, err := s.indexed(i)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.Normal(i), nil
}

func (s *Store) indexed(i int) (*Path, error) {
	p, err := s.Path()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= p.NumPoints() {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, p.NumPoints())
	}
	return p, nil
}

// LocateBracket finds the vertices surrounding time t.
func (s *Store) LocateBracket(t float64, eop EndOfPath) (Bracket, error) {
	p, err := s.Path()
	if err != nil {
		return Bracket{}, err
	}
	return p.LocateBracket(t, eop)
}

// PointAtTime returns the world position at time t.
func (s *Store) PointAtTime(t float64, eop EndOfPath) (math.Vec3, error) {
	p, err := s.Path()
	if err != nil {
		return math.Vec3{}, err
	}
	return p.PointAtTime(t, eop)
}

// DirectionAtTime returns the world forward direction at time t.
func (s *Store) DirectionAtTime(t float64, eop EndOfPath) (math.Vec3, error) {
	p, err := s.Path()
	if err != nil {
		return math.Vec3{}, err
	}
	return p.DirectionAtTime(t, eop)
}

// NormalAtTime returns the world normal at time t.
func (s *Store) NormalAtTime(t float64, eop EndOfPath) (math.Vec3, error) {
	p, err := s.Path()
	if err != nil {
		return math.Vec3{}, err
	}
	return p.NormalAtTime(t, eop)
}

// RotationAtTime returns the path orientation at time t.
func (s *Store) RotationAtTime(t float64, eop EndOfPath) (math.Quat, error) {
	p, err := s.Path()
	if err != nil {
		return math.Quat{}, err
	}
	return p.RotationAtTime(t, eop)
}

// PointAtDistance returns the world position after travelling dst.
func (s *Store) PointAtDistance(dst float64, eop EndOfPath) (math.Vec3, error) {
	p, err := s.Path()
	if err != nil {
		return math.Vec3{}, err
	}
	return p.PointAtDistance(dst, eop)
}

// DirectionAtDistance returns the world forward direction after travelling dst.
func (s *Store) DirectionAtDistance(dst float64, eop EndOfPath) (math.Vec3, error) {
	p, err := s.Path()
	if err != nil {
		return math.Vec3{}, err
	}
	return p.DirectionAtDistance(dst, eop)
}

// NormalAtDistance returns the world normal after travelling dst.
func (s *Store) NormalAtDistance(dst float64, eop EndOfPath) (math.Vec3, error) {
	p, err := s.Path()
	if err != nil {
		return math.Vec3{}, err
	}
	return p.NormalAtDistance(dst, eop)
}

// RotationAtDistance returns the path orientation after travelling dst.
func (s *Store) RotationAtDistance(dst float64, eop EndOfPath) (math.Quat, error) {
	p, err := s.Path()
	if err != nil {
		return math.Quat{}, err
	}
	return p.RotationAtDistance(dst, eop)
}

// ClosestPointOnPath returns the point on the path nearest to worldPoint.
func (s *Store) ClosestPointOnPath(worldPoint math.Vec3) (math.Vec3, error) {
	p, err := s.Path()
	if err != nil {
		return math.Vec3{}, err
	}
	return p.ClosestPointOnPath(worldPoint)
}

// ClosestTimeOnPath returns the path time nearest to worldPoint.
func (s *Store) ClosestTimeOnPath(worldPoint math.Vec3) (float64, error) {
	p, err := s.Path()
	if err != nil {
		return 0, err
	}
	return p.ClosestTimeOnPath(worldPoint)
}

// ClosestDistanceAlongPath returns the distance along the path nearest to
// worldPoint.
func (s *Store) ClosestDistanceAlongPath(worldPoint math.Vec3) (float64, error) {
	p, err := s.Path()
	if err != nil {
		return 0, err
	}
	return p.ClosestDistanceAlongPath(worldPoint)
}
