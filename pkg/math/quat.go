package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	halfAngle := angle / 2
	s := math.Sin(halfAngle)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(halfAngle),
	}
}

// QuatFromToRotation returns the shortest rotation taking direction from onto
// direction to.
func QuatFromToRotation(from, to Vec3) Quat {
	a := from.Normalize()
	b := to.Normalize()
	if a == (Vec3{}) || b == (Vec3{}) {
		return QuatIdentity()
	}

	d := a.Dot(b)
	if d >= 1-1e-12 {
		return QuatIdentity()
	}
	if d <= -1+1e-12 {
		// Opposite directions: any perpendicular axis works.
		axis := Vec3Right.Cross(a)
		if axis.SqrLength() < 1e-12 {
			axis = Vec3Up.Cross(a)
		}
		return QuatFromAxisAngle(axis.Normalize(), math.Pi)
	}

	c := a.Cross(b)
	return Quat{X: c.X, Y: c.Y, Z: c.Z, W: 1 + d}.Normalize()
}

// QuatLookRotation returns the rotation whose +Z axis points along forward and
// whose +Y axis is as close to up as possible.
// A zero forward yields the identity. When up is parallel to forward the
// shortest rotation from +Z to forward is used.
func QuatLookRotation(forward, up Vec3) Quat {
	f := forward.Normalize()
	if f == (Vec3{}) {
		return QuatIdentity()
	}

	r := up.Cross(f)
	if r.SqrLength() < 1e-12 {
		return QuatFromToRotation(Vec3Forward, f)
	}
	r = r.Normalize()
	u := f.Cross(r)

	return quatFromBasis(r, u, f)
}

// quatFromBasis converts an orthonormal basis (the columns of a rotation
// matrix) into a quaternion.
func quatFromBasis(x, y, z Vec3) Quat {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	trace := m00 + m11 + m22
	var q Quat
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quat{
			X: (m21 - m12) * s,
			Y: (m02 - m20) * s,
			Z: (m10 - m01) * s,
			W: 0.25 / s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = Quat{
			X: 0.25 * s,
			Y: (m01 + m10) / s,
			Z: (m02 + m20) / s,
			W: (m21 - m12) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = Quat{
			X: (m01 + m10) / s,
			Y: 0.25 * s,
			Z: (m12 + m21) / s,
			W: (m02 - m20) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = Quat{
			X: (m02 + m20) / s,
			Y: (m12 + m21) / s,
			Z: 0.25 * s,
			W: (m10 - m01) / s,
		}
	}
	return q.Normalize()
}

// Normalize returns a normalized quaternion.
func (q Quat) Normalize() Quat {
	length := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length < 0.0001 {
		return QuatIdentity()
	}
	invLen := 1.0 / length
	return Quat{
		X: q.X * invLen,
		Y: q.Y * invLen,
		Z: q.Z * invLen,
		W: q.W * invLen,
	}
}

// Dot returns the dot product of two quaternions.
func (q Quat) Dot(other Quat) float64 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Conjugate returns the conjugate. For unit quaternions this is the inverse.
func (q Quat) Conjugate() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Inverse returns the multiplicative inverse.
func (q Quat) Inverse() Quat {
	n := q.Dot(q)
	if n == 0 {
		return QuatIdentity()
	}
	c := q.Conjugate()
	return Quat{X: c.X / n, Y: c.Y / n, Z: c.Z / n, W: c.W / n}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Twist returns the component of q that rotates about axis (swing-twist
// decomposition). axis must be normalized.
func (q Quat) Twist(axis Vec3) Quat {
	p := axis.Scale(Vec3{q.X, q.Y, q.Z}.Dot(axis))
	tw := Quat{X: p.X, Y: p.Y, Z: p.Z, W: q.W}
	if tw.Dot(tw) < 1e-12 {
		return QuatIdentity()
	}
	return tw.Normalize()
}

// ApproxEqual reports whether q and other describe the same rotation within
// eps, treating q and -q as equal.
func (q Quat) ApproxEqual(other Quat, eps float64) bool {
	return math.Abs(math.Abs(q.Normalize().Dot(other.Normalize()))-1) <= eps
}

// ToMat4 converts the quaternion to a 4x4 rotation matrix.
func (q Quat) ToMat4() Mat4 {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Mat4{
		1 - 2*(yy+zz), 2 * (xy + zw), 2 * (xz - yw), 0,
		2 * (xy - zw), 1 - 2*(xx+zz), 2 * (yz + xw), 0,
		2 * (xz + yw), 2 * (yz - xw), 1 - 2*(xx+yy), 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}
