// Package pathmath holds the stateless transform and segment helpers shared by
// the vertex path store and its queries.
package pathmath

import (
	"fmt"
	"strings"

	"github.com/Faultbox/vertexpath/pkg/math"
)

// Space constrains how a path frame is applied.
type Space uint8

// Path spaces.
const (
	SpaceXYZ Space = iota // Full 3D, frame applied as is
	SpaceXY               // Planar, path lies in XY, frame keeps only its Z twist
	SpaceXZ               // Planar, path lies in XZ, frame keeps only its Y twist
)

// String returns the space name as used in config and asset files.
func (s Space) String() string {
	switch s {
	case SpaceXYZ:
		return "xyz"
	case SpaceXY:
		return "xy"
	case SpaceXZ:
		return "xz"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Valid reports whether s is one of the defined spaces.
func (s Space) Valid() bool {
	return s <= SpaceXZ
}

// ParseSpace parses a space name. Matching is case-insensitive and accepts
// "3d" as an alias for "xyz".
func ParseSpace(name string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "xyz", "3d":
		return SpaceXYZ, nil
	case "xy":
		return SpaceXY, nil
	case "xz":
		return SpaceXZ, nil
	default:
		return 0, fmt.Errorf("unknown path space %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Space) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid path space %d", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Space) UnmarshalText(text []byte) error {
	v, err := ParseSpace(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Up returns the reference up vector for the space:
// (0,0,-1) for XY paths and (0,1,0) otherwise.
func (s Space) Up() math.Vec3 {
	if s == SpaceXY {
		return math.Vec3{X: 0, Y: 0, Z: -1}
	}
	return math.Vec3Up
}

// lock reduces a frame to what the space allows. XY keeps the rotation about
// Z and drops the Z offset; XZ keeps the rotation about Y and drops the Y
// offset. Scale is never constrained.
//
// The kept rotation is the twist of a swing-twist decomposition, not an
// Euler angle. For a tilted compound rotation the result can differ from
// zeroing the other two Euler angles.
func (s Space) lock(position math.Vec3, rotation math.Quat) (math.Vec3, math.Quat) {
	switch s {
	case SpaceXY:
		position.Z = 0
		return position, rotation.Twist(math.Vec3Forward)
	case SpaceXZ:
		position.Y = 0
		return position, rotation.Twist(math.Vec3Up)
	default:
		return position, rotation.Normalize()
	}
}

// Matrix returns the translation * rotation * scale matrix of a frame after
// it is locked to s. It maps points the same way TransformPoint does.
func (s Space) Matrix(position math.Vec3, rotation math.Quat, scale math.Vec3) math.Mat4 {
	pos, rot := s.lock(position, rotation)
	return math.TRS(pos, rot, scale)
}
