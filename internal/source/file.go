// Package source reads baked polylines produced by an upstream curve tool and
// commits them into a vertex path store.
package source

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/pathmath"
	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

// Source errors.
var (
	ErrMissingSource = errors.New("path source not found")
	ErrInvalidSource = errors.New("invalid path source")
)

// FrameSpec is a YAML position/rotation/scale triple. Rotation is x,y,z,w.
type FrameSpec struct {
	Position []float64 `yaml:"position,omitempty"`
	Rotation []float64 `yaml:"rotation,omitempty"`
	Scale    []float64 `yaml:"scale,omitempty"`
}

// File is the on-disk form of a baked polyline.
//
// Only points are required. When tangents, normals, times and cumulative
// lengths are all omitted they are derived from the points; when any of them
// is present all of them must be, and length defaults to the last cumulative
// length.
type File struct {
	Space  pathmath.Space `yaml:"space"`
	Closed bool           `yaml:"closed"`
	Frame  FrameSpec      `yaml:"frame"`
	// Parent places Frame in the world. Omitted means Frame is already world
	// space.
	Parent *FrameSpec `yaml:"parent,omitempty"`

	Points            [][]float64 `yaml:"points"`
	Tangents          [][]float64 `yaml:"tangents,omitempty"`
	Normals           [][]float64 `yaml:"normals,omitempty"`
	Times             []float64   `yaml:"times,omitempty"`
	CumulativeLengths []float64   `yaml:"cumulative_lengths,omitempty"`
	Length            *float64    `yaml:"length,omitempty"`
}

// Load reads a source file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSource, path)
		}
		return nil, fmt.Errorf("reading source: %w", err)
	}
	return Parse(data)
}

// Parse decodes a source file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	return &f, nil
}

// Save writes f as YAML.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WorldFrame returns the frame in world space, composing Parent when set.
func (f *File) WorldFrame() (vertexpath.Frame, error) {
	local, err := f.Frame.toFrame()
	if err != nil {
		return vertexpath.Frame{}, fmt.Errorf("frame: %w", err)
	}
	if f.Parent == nil {
		return local, nil
	}
	parent, err := f.Parent.toFrame()
	if err != nil {
		return vertexpath.Frame{}, fmt.Errorf("parent: %w", err)
	}
	return parent.Compose(local), nil
}

// CommitData converts f into a store commit. With localFrame set the commit
// carries Frame relative to Parent; otherwise it carries the world frame.
func (f *File) CommitData(localFrame bool) (vertexpath.CommitData, error) {
	if !f.Space.Valid() {
		return vertexpath.CommitData{}, fmt.Errorf("%w: space %d", ErrInvalidSource, f.Space)
	}
	points, err := toVecs(f.Points, "points")
	if err != nil {
		return vertexpath.CommitData{}, err
	}

	var frame vertexpath.Frame
	if localFrame {
		frame, err = f.Frame.toFrame()
	} else {
		frame, err = f.WorldFrame()
	}
	if err != nil {
		return vertexpath.CommitData{}, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	if f.Tangents == nil && f.Normals == nil && f.Times == nil && f.CumulativeLengths == nil {
		data := vertexpath.FromPolyline(points, f.Space, f.Closed, frame)
		if f.Length != nil {
			data.Length = *f.Length
		}
		data.LocalFrame = localFrame
		return data, nil
	}

	tangents, err := toVecs(f.Tangents, "tangents")
	if err != nil {
		return vertexpath.CommitData{}, err
	}
	normals, err := toVecs(f.Normals, "normals")
	if err != nil {
		return vertexpath.CommitData{}, err
	}

	data := vertexpath.CommitData{
		Points:            points,
		Tangents:          tangents,
		Normals:           normals,
		Times:             f.Times,
		CumulativeLengths: f.CumulativeLengths,
		Bounds:            math.BoundsFromPoints(points),
		Up:                f.Space.Up(),
		Space:             f.Space,
		IsClosedLoop:      f.Closed,
		LocalFrame:        localFrame,
		Frame:             frame,
	}
	switch {
	case f.Length != nil:
		data.Length = *f.Length
	case len(f.CumulativeLengths) > 0:
		data.Length = f.CumulativeLengths[len(f.CumulativeLengths)-1]
	}
	return data, nil
}

// FromCommitData builds a source file holding every array of data.
func FromCommitData(data vertexpath.CommitData) *File {
	length := data.Length
	f := &File{
		Space:             data.Space,
		Closed:            data.IsClosedLoop,
		Frame:             frameSpec(data.Frame),
		Points:            fromVecs(data.Points),
		Tangents:          fromVecs(data.Tangents),
		Normals:           fromVecs(data.Normals),
		Times:             data.Times,
		CumulativeLengths: data.CumulativeLengths,
		Length:            &length,
	}
	return f
}

func (s FrameSpec) toFrame() (vertexpath.Frame, error) {
	frame := vertexpath.IdentityFrame()
	if s.Position != nil {
		v, err := toVec(s.Position)
		if err != nil {
			return frame, fmt.Errorf("position: %w", err)
		}
		frame.Position = v
	}
	if s.Rotation != nil {
		if len(s.Rotation) != 4 {
			return frame, fmt.Errorf("rotation: want 4 components, got %d", len(s.Rotation))
		}
		frame.Rotation = math.Quat{X: s.Rotation[0], Y: s.Rotation[1], Z: s.Rotation[2], W: s.Rotation[3]}.Normalize()
	}
	if s.Scale != nil {
		v, err := toVec(s.Scale)
		if err != nil {
			return frame, fmt.Errorf("scale: %w", err)
		}
		frame.Scale = v
	}
	return frame, nil
}

func frameSpec(f vertexpath.Frame) FrameSpec {
	return FrameSpec{
		Position: []float64{f.Position.X, f.Position.Y, f.Position.Z},
		Rotation: []float64{f.Rotation.X, f.Rotation.Y, f.Rotation.Z, f.Rotation.W},
		Scale:    []float64{f.Scale.X, f.Scale.Y, f.Scale.Z},
	}
}

func toVec(c []float64) (math.Vec3, error) {
	if len(c) != 3 {
		return math.Vec3{}, fmt.Errorf("want 3 components, got %d", len(c))
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

func toVecs(rows [][]float64, what string) ([]math.Vec3, error) {
	out := make([]math.Vec3, len(rows))
	for i, row := range rows {
		v, err := toVec(row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrInvalidSource, what, i, err)
		}
		out[i] = v
	}
	return out, nil
}

func fromVecs(vs []math.Vec3) [][]float64 {
	out := make([][]float64, len(vs))
	for i, v := range vs {
		out[i] = []float64{v.X, v.Y, v.Z}
	}
	return out
}
