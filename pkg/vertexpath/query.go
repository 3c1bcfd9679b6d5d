package vertexpath

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/vertexpath/pkg/math"
)

// Bracket is a pair of adjacent vertices around a position on the path.
// Percent is how far the position lies from Prev towards Next, in [0, 1].
type Bracket struct {
	Prev    int
	Next    int
	Percent float64
}

// LocateBracket normalizes t under eop and finds the vertices whose times
// surround it.
//
// The search starts from the vertex a uniformly spaced path would put t at
// and bisects from there, so it does not depend on even spacing. With
// repeated times the smallest qualifying Next wins.
func (p *Path) LocateBracket(t float64, eop EndOfPath) (Bracket, error) {
	t, err := eop.Normalize(t)
	if err != nil {
		return Bracket{}, err
	}

	n := len(p.times)
	if n == 0 {
		return Bracket{}, ErrUninitialized
	}
	prev, next := 0, n-1
	i := int(gomath.Round(t * float64(n-1)))

	for {
		if t <= p.times[i] {
			next = i
		} else {
			prev = i
		}
		i = (next + prev) / 2

		if next-prev <= 1 {
			break
		}
	}

	return Bracket{
		Prev:    prev,
		Next:    next,
		Percent: math.InverseLerp(p.times[prev], p.times[next], t),
	}, nil
}

func (p *Path) lerpPoint(b Bracket) math.Vec3 {
	return p.localPoints[b.Prev].Lerp(p.localPoints[b.Next], b.Percent)
}

func (p *Path) lerpTangent(b Bracket) math.Vec3 {
	return p.localTangents[b.Prev].Lerp(p.localTangents[b.Next], b.Percent)
}

func (p *Path) lerpNormal(b Bracket) math.Vec3 {
	return p.localNormals[b.Prev].Lerp(p.localNormals[b.Next], b.Percent)
}

// PointAtTime returns the world position at time t (0 start, 1 end).
func (p *Path) PointAtTime(t float64, eop EndOfPath) (math.Vec3, error) {
	b, err := p.LocateBracket(t, eop)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.frame.TransformPoint(p.lerpPoint(b), p.space), nil
}

// DirectionAtTime returns the world forward direction at time t.
func (p *Path) DirectionAtTime(t float64, eop EndOfPath) (math.Vec3, error) {
	b, err := p.LocateBracket(t, eop)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.frame.TransformDirection(p.lerpTangent(b), p.space), nil
}

// NormalAtTime returns the world normal at time t.
func (p *Path) NormalAtTime(t float64, eop EndOfPath) (math.Vec3, error) {
	b, err := p.LocateBracket(t, eop)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.frame.TransformDirection(p.lerpNormal(b), p.space), nil
}

// RotationAtTime returns an orientation facing along the path at time t,
// with its up axis along the path normal.
func (p *Path) RotationAtTime(t float64, eop EndOfPath) (math.Quat, error) {
	b, err := p.LocateBracket(t, eop)
	if err != nil {
		return math.Quat{}, err
	}
	forward := p.frame.TransformDirection(p.lerpTangent(b), p.space)
	up := p.frame.TransformDirection(p.lerpNormal(b), p.space)
	return math.QuatLookRotation(forward, up), nil
}

// TimeAtDistance converts a distance travelled into a path time.
func (p *Path) TimeAtDistance(dst float64) (float64, error) {
	if p.length <= 0 {
		return 0, ErrDegenerateLength
	}
	t := dst / p.length
	if gomath.IsNaN(t) || gomath.IsInf(t, 0) {
		return 0, fmt.Errorf("%w: distance %v", ErrNonFiniteTime, dst)
	}
	return t, nil
}

// PointAtDistance returns the world position after travelling dst.
func (p *Path) PointAtDistance(dst float64, eop EndOfPath) (math.Vec3, error) {
	t, err := p.TimeAtDistance(dst)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.PointAtTime(t, eop)
}

// DirectionAtDistance returns the world forward direction after travelling dst.
func (p *Path) DirectionAtDistance(dst float64, eop EndOfPath) (math.Vec3, error) {
	t, err := p.TimeAtDistance(dst)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.DirectionAtTime(t, eop)
}

// NormalAtDistance returns the world normal after travelling dst.
func (p *Path) NormalAtDistance(dst float64, eop EndOfPath) (math.Vec3, error) {
	t, err := p.TimeAtDistance(dst)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.NormalAtTime(t, eop)
}

// RotationAtDistance returns the path orientation after travelling dst.
func (p *Path) RotationAtDistance(dst float64, eop EndOfPath) (math.Quat, error) {
	t, err := p.TimeAtDistance(dst)
	if err != nil {
		return math.Quat{}, err
	}
	return p.RotationAtTime(t, eop)
}
