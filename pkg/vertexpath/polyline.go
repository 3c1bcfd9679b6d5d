package vertexpath

import (
	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/pathmath"
)

// FromPolyline fills in the per-vertex bookkeeping for an already sampled
// polyline: central-difference tangents, normals from the space's up vector,
// cumulative lengths, normalized times and bounds.
//
// Length and times cover the open polyline from the first to the last point.
// For a closed loop the segment back to the first point is only used by
// closest-point queries, so callers wanting it measured should repeat the
// first point at the end.
func FromPolyline(points []math.Vec3, space pathmath.Space, closed bool, frame Frame) CommitData {
	n := len(points)
	data := CommitData{
		Points:            cloneSlice(points),
		Tangents:          make([]math.Vec3, n),
		Normals:           make([]math.Vec3, n),
		Times:             make([]float64, n),
		CumulativeLengths: make([]float64, n),
		Bounds:            math.BoundsFromPoints(points),
		Up:                space.Up(),
		Space:             space,
		IsClosedLoop:      closed,
		Frame:             frame,
	}
	if n == 0 {
		return data
	}

	for i := 1; i < n; i++ {
		data.CumulativeLengths[i] = data.CumulativeLengths[i-1] + points[i].Distance(points[i-1])
	}
	data.Length = data.CumulativeLengths[n-1]
	for i := range data.Times {
		if data.Length > 0 {
			data.Times[i] = data.CumulativeLengths[i] / data.Length
		}
	}
	if n > 1 {
		data.Times[n-1] = 1
	}

	for i := range points {
		prev, next := i-1, i+1
		if prev < 0 {
			prev = 0
			if closed {
				prev = n - 1
			}
		}
		if next >= n {
			next = n - 1
			if closed {
				next = 0
			}
		}
		tangent := points[next].Sub(points[prev]).Normalize()
		data.Tangents[i] = tangent
		data.Normals[i] = normalFor(tangent, data.Up)
	}
	return data
}

// normalFor returns up made perpendicular to tangent, falling back to any
// perpendicular when the two are parallel.
func normalFor(tangent, up math.Vec3) math.Vec3 {
	n := up.Sub(tangent.Scale(up.Dot(tangent)))
	if n.SqrLength() < 1e-12 {
		n = tangent.Cross(math.Vec3Right)
		if n.SqrLength() < 1e-12 {
			n = tangent.Cross(math.Vec3Forward)
		}
	}
	return n.Normalize()
}
