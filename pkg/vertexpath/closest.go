package vertexpath

import (
	gomath "math"

	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/pathmath"
)

// LocateClosestSegment finds the segment nearest to a local-space point.
// Every segment is tested, including the one from the last vertex back to
// the first on closed loops. Ties go to the lowest segment index. Percent is
// the projected point's distance from the segment start over the segment
// length, 0 for zero-length segments.
func (p *Path) LocateClosestSegment(localPoint math.Vec3) (Bracket, error) {
	n := len(p.localPoints)
	if n == 0 {
		return Bracket{}, ErrUninitialized
	}
	minSqrDst := gomath.MaxFloat64
	var closest math.Vec3
	a, b := 0, 0

	for i := 0; i < n; i++ {
		next := i + 1
		if next >= n {
			if !p.isClosedLoop {
				break
			}
			next %= n
		}

		onSegment := pathmath.ClosestPointOnLineSegment(localPoint, p.localPoints[i], p.localPoints[next])
		if sqrDst := localPoint.Sub(onSegment).SqrLength(); sqrDst < minSqrDst {
			minSqrDst = sqrDst
			closest = onSegment
			a, b = i, next
		}
	}

	var percent float64
	if segLen := p.localPoints[b].Distance(p.localPoints[a]); segLen > 0 {
		percent = closest.Distance(p.localPoints[a]) / segLen
	}
	return Bracket{Prev: a, Next: b, Percent: percent}, nil
}

func (p *Path) closestBracket(worldPoint math.Vec3) (Bracket, error) {
	return p.LocateClosestSegment(p.frame.InverseTransformPoint(worldPoint, p.space))
}

// ClosestPointOnPath returns the point on the path nearest to worldPoint.
func (p *Path) ClosestPointOnPath(worldPoint math.Vec3) (math.Vec3, error) {
	b, err := p.closestBracket(worldPoint)
	if err != nil {
		return math.Vec3{}, err
	}
	return p.frame.TransformPoint(p.lerpPoint(b), p.space), nil
}

// ClosestTimeOnPath returns the path time nearest to worldPoint.
func (p *Path) ClosestTimeOnPath(worldPoint math.Vec3) (float64, error) {
	b, err := p.closestBracket(worldPoint)
	if err != nil {
		return 0, err
	}
	return math.Lerp(p.times[b.Prev], p.times[b.Next], b.Percent), nil
}

// ClosestDistanceAlongPath returns the distance along the path nearest to
// worldPoint.
func (p *Path) ClosestDistanceAlongPath(worldPoint math.Vec3) (float64, error) {
	b, err := p.closestBracket(worldPoint)
	if err != nil {
		return 0, err
	}
	return math.Lerp(p.cumulativeLengths[b.Prev], p.cumulativeLengths[b.Next], b.Percent), nil
}
