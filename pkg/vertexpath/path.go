package vertexpath

import (
	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/pathmath"
)

// Path is one committed, immutable vertex path.
// All per-vertex slices share the same length N >= 2. Path values are never
// modified after construction, so they can be shared freely between
// goroutines.
type Path struct {
	space        pathmath.Space
	isClosedLoop bool
	localFrame   bool

	localPoints   []math.Vec3
	localTangents []math.Vec3
	localNormals  []math.Vec3

	// Fraction of the way along the path at each vertex, 0 at the first and
	// 1 at the last.
	times []float64
	// Distance from the first vertex up to each vertex.
	cumulativeLengths []float64
	length            float64

	bounds math.Bounds // of the local points
	up     math.Vec3
	frame  Frame
}

// NumPoints returns the number of vertices.
func (p *Path) NumPoints() int { return len(p.localPoints) }

// Length returns the total length of the polyline in local units.
func (p *Path) Length() float64 { return p.length }

// Space returns the space the path was baked in.
func (p *Path) Space() pathmath.Space { return p.space }

// IsClosedLoop reports whether the last vertex connects back to the first.
func (p *Path) IsClosedLoop() bool { return p.isClosedLoop }

// IsLocalFrame reports whether the frame was committed relative to a parent
// rather than in world space.
func (p *Path) IsLocalFrame() bool { return p.localFrame }

// Bounds returns the bounding box of the local points.
func (p *Path) Bounds() math.Bounds { return p.bounds }

// LocalToWorld returns the matrix that maps local points to world space.
func (p *Path) LocalToWorld() math.Mat4 { return p.frame.Matrix(p.space) }

// WorldBounds returns the bounding box of the local bounds after
// LocalToWorld. It encloses every world point of the path.
func (p *Path) WorldBounds() math.Bounds { return p.bounds.Transform(p.LocalToWorld()) }

// Up returns the reference up vector.
func (p *Path) Up() math.Vec3 { return p.up }

// Frame returns the committed transform frame.
func (p *Path) Frame() Frame { return p.frame }

// Point returns vertex i in world space. It panics if i is out of range.
func (p *Path) Point(i int) math.Vec3 {
	return p.frame.TransformPoint(p.localPoints[i], p.space)
}

// Tangent returns the tangent at vertex i in world space.
// It panics if i is out of range.
func (p *Path) Tangent(i int) math.Vec3 {
	return p.frame.TransformDirection(p.localTangents[i], p.space)
}

// Normal returns the normal at vertex i in world space.
// It panics if i is out of range.
func (p *Path) Normal(i int) math.Vec3 {
	return p.frame.TransformDirection(p.localNormals[i], p.space)
}

// Time returns the normalized time of vertex i.
func (p *Path) Time(i int) float64 { return p.times[i] }

// CumulativeLength returns the distance along the path at vertex i.
func (p *Path) CumulativeLength(i int) float64 { return p.cumulativeLengths[i] }

// CommitData returns a deep copy of the path in the form Commit accepts.
func (p *Path) CommitData() CommitData {
	return CommitData{
		Points:            cloneSlice(p.localPoints),
		Tangents:          cloneSlice(p.localTangents),
		Normals:           cloneSlice(p.localNormals),
		Times:             cloneSlice(p.times),
		CumulativeLengths: cloneSlice(p.cumulativeLengths),
		Length:            p.length,
		Bounds:            p.bounds,
		Up:                p.up,
		Space:             p.space,
		IsClosedLoop:      p.isClosedLoop,
		LocalFrame:        p.localFrame,
		Frame:             p.frame,
	}
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
