package pathmath

import "github.com/Faultbox/vertexpath/pkg/math"

// TransformPoint maps a local point to world space: scale, then rotate, then
// translate, with the frame first locked to space.
func TransformPoint(p, position math.Vec3, rotation math.Quat, scale math.Vec3, space Space) math.Vec3 {
	pos, rot := space.lock(position, rotation)
	return rot.Rotate(p.Mul(scale)).Add(pos)
}

// TransformDirection rotates a local direction into world space. Translation
// and scale are ignored.
func TransformDirection(d math.Vec3, rotation math.Quat, space Space) math.Vec3 {
	_, rot := space.lock(math.Vec3{}, rotation)
	return rot.Rotate(d)
}

// InverseTransformPoint maps a world point back to local space. It undoes
// TransformPoint for the same frame and space. A zero scale component maps
// that axis to 0.
func InverseTransformPoint(p, position math.Vec3, rotation math.Quat, scale math.Vec3, space Space) math.Vec3 {
	pos, rot := space.lock(position, rotation)
	return rot.Conjugate().Rotate(p.Sub(pos)).Div(scale)
}

// InverseTransformDirection rotates a world direction into local space.
func InverseTransformDirection(d math.Vec3, rotation math.Quat, space Space) math.Vec3 {
	_, rot := space.lock(math.Vec3{}, rotation)
	return rot.Conjugate().Rotate(d)
}

// ClosestPointOnLineSegment returns the point on segment [a, b] nearest to p.
// A zero-length segment returns a.
func ClosestPointOnLineSegment(p, a, b math.Vec3) math.Vec3 {
	ab := b.Sub(a)
	sqrLen := ab.SqrLength()
	if sqrLen == 0 {
		return a
	}
	t := math.Clamp01(p.Sub(a).Dot(ab) / sqrLen)
	return a.Add(ab.Scale(t))
}
