package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/vertexpath/pkg/math"
)

// createTestVPA creates a small valid asset: a 3-point path along +X.
func createTestVPA() *VPA {
	return &VPA{
		Flags:             VPAFlagClosedLoop,
		Space:             2,
		Length:            2,
		Up:                math.Vec3{Y: 1},
		BoundsMin:         math.Vec3{},
		BoundsMax:         math.Vec3{X: 2},
		Position:          math.Vec3{X: 1, Y: 2, Z: 3},
		Rotation:          math.Quat{W: 1},
		Scale:             math.Vec3{X: 1, Y: 1, Z: 1},
		Points:            []math.Vec3{{}, {X: 1}, {X: 2}},
		Tangents:          []math.Vec3{{X: 1}, {X: 1}, {X: 1}},
		Normals:           []math.Vec3{{Y: 1}, {Y: 1}, {Y: 1}},
		Times:             []float64{0, 0.5, 1},
		CumulativeLengths: []float64{0, 1, 2},
	}
}

func TestParseVPA_ValidFile(t *testing.T) {
	src := createTestVPA()
	data, err := EncodeVPA(src)
	if err != nil {
		t.Fatalf("EncodeVPA failed: %v", err)
	}

	if string(data[:4]) != "VPTH" {
		t.Errorf("expected magic VPTH, got %q", data[:4])
	}

	v, err := ParseVPA(data)
	if err != nil {
		t.Fatalf("ParseVPA failed: %v", err)
	}

	if v.Version != CurrentVPAVersion {
		t.Errorf("expected version %s, got %s", CurrentVPAVersion, v.Version)
	}
	if !v.IsClosedLoop() || v.IsLocalFrame() {
		t.Errorf("unexpected flags %08b", v.Flags)
	}
	if v.Space != 2 {
		t.Errorf("expected space 2, got %d", v.Space)
	}
	if v.Position != src.Position || v.Rotation != src.Rotation || v.Scale != src.Scale {
		t.Errorf("frame mismatch: %v %v %v", v.Position, v.Rotation, v.Scale)
	}
	if len(v.Points) != 3 || v.Points[2] != (math.Vec3{X: 2}) {
		t.Errorf("points mismatch: %v", v.Points)
	}
	if v.Times[1] != 0.5 || v.CumulativeLengths[2] != 2 {
		t.Errorf("scalar arrays mismatch: %v %v", v.Times, v.CumulativeLengths)
	}
	if v.BoundsMax != (math.Vec3{X: 2}) || v.Up != (math.Vec3{Y: 1}) {
		t.Errorf("bounds/up mismatch: %v %v", v.BoundsMax, v.Up)
	}
}

func TestParseVPA_InvalidMagic(t *testing.T) {
	data := []byte("GRAT\x00\x01")
	if _, err := ParseVPA(data); !errors.Is(err, ErrInvalidVPAMagic) {
		t.Errorf("expected ErrInvalidVPAMagic, got %v", err)
	}
}

func TestParseVPA_UnsupportedVersion(t *testing.T) {
	data, _ := EncodeVPA(createTestVPA())
	data[5] = 9 // major
	if _, err := ParseVPA(data); !errors.Is(err, ErrUnsupportedVPAVersion) {
		t.Errorf("expected ErrUnsupportedVPAVersion, got %v", err)
	}
}

func TestParseVPA_Truncated(t *testing.T) {
	data, _ := EncodeVPA(createTestVPA())

	for _, n := range []int{3, 10, len(data) - 8} {
		if _, err := ParseVPA(data[:n]); !errors.Is(err, ErrTruncatedVPAData) {
			t.Errorf("length %d: expected ErrTruncatedVPAData, got %v", n, err)
		}
	}
}

func TestParseVPA_InvalidCount(t *testing.T) {
	buf := new(bytes.Buffer)
	buf.WriteString("VPTH")
	buf.WriteByte(0) // minor
	buf.WriteByte(1) // major
	buf.WriteByte(0) // flags
	buf.WriteByte(0) // space
	binary.Write(buf, binary.LittleEndian, uint32(1))
	buf.Write(make([]byte, 160))

	if _, err := ParseVPA(buf.Bytes()); err == nil {
		t.Error("expected error for a single-vertex asset")
	}
}

func TestWriteVPA_MismatchedArrays(t *testing.T) {
	v := createTestVPA()
	v.Normals = v.Normals[:2]
	if _, err := EncodeVPA(v); err == nil {
		t.Error("expected error for mismatched arrays")
	}
}

func TestParseVPAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "path.vpa")
	data, _ := EncodeVPA(createTestVPA())
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	v, err := ParseVPAFile(path)
	if err != nil {
		t.Fatalf("ParseVPAFile failed: %v", err)
	}
	if len(v.Points) != 3 {
		t.Errorf("expected 3 points, got %d", len(v.Points))
	}

	if _, err := ParseVPAFile(filepath.Join(t.TempDir(), "missing.vpa")); err == nil {
		t.Error("expected error for missing file")
	}
}
