package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/vertexpath/pkg/math"
)

// VPA format errors.
var (
	ErrInvalidVPAMagic       = errors.New("invalid VPA magic: expected 'VPTH'")
	ErrUnsupportedVPAVersion = errors.New("unsupported VPA version")
	ErrTruncatedVPAData      = errors.New("truncated VPA data")
)

const (
	vpaMagic      = "VPTH"
	vpaHeaderSize = 6 // magic + minor + major

	// MaxVPAVertices caps the vertex count accepted when parsing.
	MaxVPAVertices = 1 << 22
)

// VPA flag bits.
const (
	VPAFlagClosedLoop uint8 = 1 << 0
	VPAFlagLocalFrame uint8 = 1 << 1
)

// VPAVersion represents the VPA file version.
type VPAVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v VPAVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentVPAVersion is the version written by EncodeVPA.
var CurrentVPAVersion = VPAVersion{Major: 1, Minor: 0}

// VPA is a serialized vertex path asset.
//
// Layout (little endian):
//
//	"VPTH" minor major
//	flags:u8 space:u8 count:u32
//	length:f64 up:3f64 boundsMin:3f64 boundsMax:3f64
//	position:3f64 rotation:4f64 (x,y,z,w) scale:3f64
//	points:count*3f64 tangents:count*3f64 normals:count*3f64
//	times:count*f64 cumulative:count*f64
type VPA struct {
	Version VPAVersion
	Flags   uint8
	Space   uint8

	Length    float64
	Up        math.Vec3
	BoundsMin math.Vec3
	BoundsMax math.Vec3

	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	Points            []math.Vec3
	Tangents          []math.Vec3
	Normals           []math.Vec3
	Times             []float64
	CumulativeLengths []float64
}

// IsClosedLoop reports whether the closed-loop flag is set.
func (v *VPA) IsClosedLoop() bool { return v.Flags&VPAFlagClosedLoop != 0 }

// IsLocalFrame reports whether the frame is parent-relative.
func (v *VPA) IsLocalFrame() bool { return v.Flags&VPAFlagLocalFrame != 0 }

// vpaFixed is the fixed-size block following the header.
type vpaFixed struct {
	Flags     uint8
	Space     uint8
	Count     uint32
	Length    float64
	Up        [3]float64
	BoundsMin [3]float64
	BoundsMax [3]float64
	Position  [3]float64
	Rotation  [4]float64
	Scale     [3]float64
}

// ParseVPA parses a VPA asset from raw bytes.
func ParseVPA(data []byte) (*VPA, error) {
	if len(data) < vpaHeaderSize {
		return nil, ErrTruncatedVPAData
	}

	if string(data[0:4]) != vpaMagic {
		return nil, ErrInvalidVPAMagic
	}

	// Version is stored as [minor, major]
	version := VPAVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != CurrentVPAVersion.Major {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVPAVersion, version)
	}

	r := bytes.NewReader(data[vpaHeaderSize:])

	var fixed vpaFixed
	if err := binary.Read(r, binary.LittleEndian, &fixed); err != nil {
		return nil, fmt.Errorf("%w: reading header block", ErrTruncatedVPAData)
	}

	count := int(fixed.Count)
	if count < 2 || count > MaxVPAVertices {
		return nil, fmt.Errorf("invalid VPA vertex count: %d", fixed.Count)
	}
	// 3 vector arrays of 3 floats plus 2 scalar arrays, 8 bytes each.
	if need := count * 11 * 8; r.Len() < need {
		return nil, fmt.Errorf("%w: need %d bytes of vertex data, have %d", ErrTruncatedVPAData, need, r.Len())
	}

	v := &VPA{
		Version:   version,
		Flags:     fixed.Flags,
		Space:     fixed.Space,
		Length:    fixed.Length,
		Up:        vec3(fixed.Up),
		BoundsMin: vec3(fixed.BoundsMin),
		BoundsMax: vec3(fixed.BoundsMax),
		Position:  vec3(fixed.Position),
		Rotation:  math.Quat{X: fixed.Rotation[0], Y: fixed.Rotation[1], Z: fixed.Rotation[2], W: fixed.Rotation[3]},
		Scale:     vec3(fixed.Scale),
	}

	var err error
	if v.Points, err = readVec3s(r, count, "points"); err != nil {
		return nil, err
	}
	if v.Tangents, err = readVec3s(r, count, "tangents"); err != nil {
		return nil, err
	}
	if v.Normals, err = readVec3s(r, count, "normals"); err != nil {
		return nil, err
	}
	v.Times = make([]float64, count)
	if err := binary.Read(r, binary.LittleEndian, v.Times); err != nil {
		return nil, fmt.Errorf("%w: reading times", ErrTruncatedVPAData)
	}
	v.CumulativeLengths = make([]float64, count)
	if err := binary.Read(r, binary.LittleEndian, v.CumulativeLengths); err != nil {
		return nil, fmt.Errorf("%w: reading cumulative lengths", ErrTruncatedVPAData)
	}

	return v, nil
}

func readVec3s(r *bytes.Reader, count int, what string) ([]math.Vec3, error) {
	raw := make([][3]float64, count)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("%w: reading %s", ErrTruncatedVPAData, what)
	}
	out := make([]math.Vec3, count)
	for i, c := range raw {
		out[i] = vec3(c)
	}
	return out, nil
}

func vec3(c [3]float64) math.Vec3 {
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

func arr3(v math.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// ParseVPAFile parses a VPA asset from disk.
func ParseVPAFile(path string) (*VPA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading VPA file: %w", err)
	}
	return ParseVPA(data)
}

// WriteVPA encodes v to w using CurrentVPAVersion.
func WriteVPA(w io.Writer, v *VPA) error {
	count := len(v.Points)
	if len(v.Tangents) != count || len(v.Normals) != count ||
		len(v.Times) != count || len(v.CumulativeLengths) != count {
		return fmt.Errorf("VPA arrays disagree in length: points=%d tangents=%d normals=%d times=%d lengths=%d",
			count, len(v.Tangents), len(v.Normals), len(v.Times), len(v.CumulativeLengths))
	}

	var buf bytes.Buffer
	buf.WriteString(vpaMagic)
	buf.WriteByte(CurrentVPAVersion.Minor)
	buf.WriteByte(CurrentVPAVersion.Major)

	fixed := vpaFixed{
		Flags:     v.Flags,
		Space:     v.Space,
		Count:     uint32(count),
		Length:    v.Length,
		Up:        arr3(v.Up),
		BoundsMin: arr3(v.BoundsMin),
		BoundsMax: arr3(v.BoundsMax),
		Position:  arr3(v.Position),
		Rotation:  [4]float64{v.Rotation.X, v.Rotation.Y, v.Rotation.Z, v.Rotation.W},
		Scale:     arr3(v.Scale),
	}
	if err := binary.Write(&buf, binary.LittleEndian, fixed); err != nil {
		return err
	}

	for _, arr := range [][]math.Vec3{v.Points, v.Tangents, v.Normals} {
		for _, p := range arr {
			if err := binary.Write(&buf, binary.LittleEndian, arr3(p)); err != nil {
				return err
			}
		}
	}
	if err := binary.Write(&buf, binary.LittleEndian, v.Times); err != nil {
		return err
	}
	if err := binary.Write(&buf, binary.LittleEndian, v.CumulativeLengths); err != nil {
		return err
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// EncodeVPA returns the encoded bytes of v.
func EncodeVPA(v *VPA) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteVPA(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
