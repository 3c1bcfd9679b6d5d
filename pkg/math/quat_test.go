package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)
	if math.Abs(length-1.0) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	for i := 0; i < 16; i++ {
		if math.Abs(m[i]-identity[i]) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, math.Pi/2)

	expectedW := math.Cos(math.Pi / 4)
	expectedY := math.Sin(math.Pi / 4)

	if math.Abs(q.W-expectedW) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(q.Y-expectedY) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatRotateMatchesMathGL(t *testing.T) {
	axes := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}, {-2, 0.5, 3}}
	angles := []float64{0, 0.3, math.Pi / 2, 2.5, -1.2}
	v := Vec3{1.5, -2, 0.75}

	for _, axis := range axes {
		for _, angle := range angles {
			n := axis.Normalize()
			got := QuatFromAxisAngle(n, angle).Rotate(v)
			ref := mgl64.QuatRotate(angle, mgl64.Vec3{n.X, n.Y, n.Z}).Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
			if !got.ApproxEqual(Vec3{ref[0], ref[1], ref[2]}, 1e-9) {
				t.Errorf("Rotate axis=%v angle=%v: got %v, want %v", axis, angle, got, ref)
			}
		}
	}
}

func TestQuatRotateMatchesMat4(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0.2, 0.9, -0.4}.Normalize(), 1.7)
	v := Vec3{3, 1, -2}
	if got, want := q.Rotate(v), q.ToMat4().TransformPoint(v); !got.ApproxEqual(want, 1e-9) {
		t.Errorf("Rotate: got %v, matrix gives %v", got, want)
	}
}

func TestQuatInverse(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 2, 3}.Normalize(), 0.9)
	v := Vec3{4, -1, 2}
	back := q.Inverse().Rotate(q.Rotate(v))
	if !back.ApproxEqual(v, 1e-9) {
		t.Errorf("Inverse round trip: got %v, want %v", back, v)
	}
	if !q.Mul(q.Conjugate()).ApproxEqual(QuatIdentity(), 1e-9) {
		t.Error("q * conj(q) should be identity for unit q")
	}
}

func TestQuatLookRotation(t *testing.T) {
	tests := []struct {
		name    string
		forward Vec3
		up      Vec3
	}{
		{"identity", Vec3{0, 0, 1}, Vec3{0, 1, 0}},
		{"right", Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"back", Vec3{0, 0, -1}, Vec3{0, 1, 0}},
		{"tilted", Vec3{1, 1, 0}, Vec3{0, 0, -1}},
		{"skewed up", Vec3{0.3, -0.2, 0.9}, Vec3{0.1, 1, 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuatLookRotation(tt.forward, tt.up)

			f := q.Rotate(Vec3Forward)
			if !f.ApproxEqual(tt.forward.Normalize(), 1e-9) {
				t.Errorf("forward axis: got %v, want %v", f, tt.forward.Normalize())
			}
			u := q.Rotate(Vec3Up)
			if math.Abs(u.Dot(f)) > 1e-9 {
				t.Errorf("up axis %v not perpendicular to forward %v", u, f)
			}
			if u.Dot(tt.up) < 0 {
				t.Errorf("up axis %v points away from %v", u, tt.up)
			}
		})
	}
}

func TestQuatLookRotationDegenerate(t *testing.T) {
	if q := QuatLookRotation(Vec3{}, Vec3Up); q != QuatIdentity() {
		t.Errorf("zero forward should give identity, got %v", q)
	}

	q := QuatLookRotation(Vec3{0, 1, 0}, Vec3{0, 1, 0})
	if f := q.Rotate(Vec3Forward); !f.ApproxEqual(Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("parallel up: forward axis got %v, want (0, 1, 0)", f)
	}
}

func TestQuatFromToRotation(t *testing.T) {
	pairs := [][2]Vec3{
		{{1, 0, 0}, {0, 1, 0}},
		{{0, 0, 1}, {0, 0, -1}},
		{{1, 0, 0}, {-1, 0, 0}},
		{{1, 2, 3}, {-3, 1, 0.5}},
	}
	for _, p := range pairs {
		got := QuatFromToRotation(p[0], p[1]).Rotate(p[0].Normalize())
		if !got.ApproxEqual(p[1].Normalize(), 1e-9) {
			t.Errorf("FromTo %v -> %v: rotated to %v", p[0], p[1], got)
		}
	}
}

func TestQuatTwist(t *testing.T) {
	yaw := QuatFromAxisAngle(Vec3Up, 0.7)
	pitch := QuatFromAxisAngle(Vec3Right, 0.4)

	if tw := yaw.Twist(Vec3Up); !tw.ApproxEqual(yaw, 1e-9) {
		t.Errorf("twist of pure yaw should be itself, got %v", tw)
	}
	if tw := pitch.Twist(Vec3Up); !tw.ApproxEqual(QuatIdentity(), 1e-9) {
		t.Errorf("twist of pure pitch about Y should be identity, got %v", tw)
	}

	// swing * twist reassembles the rotation
	q := yaw.Mul(pitch)
	tw := q.Twist(Vec3Up)
	swing := q.Mul(tw.Inverse())
	if !swing.Mul(tw).ApproxEqual(q, 1e-9) {
		t.Error("swing * twist should equal the original rotation")
	}
	if axis := tw.Rotate(Vec3Up); !axis.ApproxEqual(Vec3Up, 1e-9) {
		t.Errorf("twist should leave its axis fixed, got %v", axis)
	}
}
