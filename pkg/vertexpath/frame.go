package vertexpath

import (
	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/pathmath"
)

// Frame is a position/rotation/scale decomposition of the transform that maps
// the path's local samples to world space.
type Frame struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3 // lossy: non-uniform scale without shear
}

// IdentityFrame returns the frame that leaves local coordinates unchanged.
func IdentityFrame() Frame {
	return Frame{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3One,
	}
}

// Compose returns the world frame of child placed under f.
// Scale is combined component-wise, matching a lossy scale: any shear a
// rotated non-uniform parent would introduce is dropped.
func (f Frame) Compose(child Frame) Frame {
	return Frame{
		Position: f.Rotation.Rotate(child.Position.Mul(f.Scale)).Add(f.Position),
		Rotation: f.Rotation.Mul(child.Rotation).Normalize(),
		Scale:    f.Scale.Mul(child.Scale),
	}
}

// Matrix returns the frame as a translation * rotation * scale matrix,
// locked to space.
func (f Frame) Matrix(space pathmath.Space) math.Mat4 {
	return space.Matrix(f.Position, f.Rotation, f.Scale)
}

// TransformPoint maps a local point to world space under space.
func (f Frame) TransformPoint(p math.Vec3, space pathmath.Space) math.Vec3 {
	return pathmath.TransformPoint(p, f.Position, f.Rotation, f.Scale, space)
}

// TransformDirection rotates a local direction into world space under space.
func (f Frame) TransformDirection(d math.Vec3, space pathmath.Space) math.Vec3 {
	return pathmath.TransformDirection(d, f.Rotation, space)
}

// InverseTransformPoint maps a world point to local space under space.
func (f Frame) InverseTransformPoint(p math.Vec3, space pathmath.Space) math.Vec3 {
	return pathmath.InverseTransformPoint(p, f.Position, f.Rotation, f.Scale, space)
}
