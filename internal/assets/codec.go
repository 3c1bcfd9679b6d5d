package assets

import (
	"fmt"

	"github.com/Faultbox/vertexpath/pkg/formats"
	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/pathmath"
	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

// VPAFromCommitData converts commit contents to the on-disk form.
func VPAFromCommitData(data vertexpath.CommitData) *formats.VPA {
	var flags uint8
	if data.IsClosedLoop {
		flags |= formats.VPAFlagClosedLoop
	}
	if data.LocalFrame {
		flags |= formats.VPAFlagLocalFrame
	}
	return &formats.VPA{
		Version:           formats.CurrentVPAVersion,
		Flags:             flags,
		Space:             uint8(data.Space),
		Length:            data.Length,
		Up:                data.Up,
		BoundsMin:         data.Bounds.Min,
		BoundsMax:         data.Bounds.Max,
		Position:          data.Frame.Position,
		Rotation:          data.Frame.Rotation,
		Scale:             data.Frame.Scale,
		Points:            data.Points,
		Tangents:          data.Tangents,
		Normals:           data.Normals,
		Times:             data.Times,
		CumulativeLengths: data.CumulativeLengths,
	}
}

// CommitDataFromVPA converts a parsed asset back into commit contents.
func CommitDataFromVPA(v *formats.VPA) (vertexpath.CommitData, error) {
	space := pathmath.Space(v.Space)
	if !space.Valid() {
		return vertexpath.CommitData{}, fmt.Errorf("%w: %d", vertexpath.ErrInvalidSpace, v.Space)
	}
	return vertexpath.CommitData{
		Points:            v.Points,
		Tangents:          v.Tangents,
		Normals:           v.Normals,
		Times:             v.Times,
		CumulativeLengths: v.CumulativeLengths,
		Length:            v.Length,
		Bounds:            math.Bounds{Min: v.BoundsMin, Max: v.BoundsMax},
		Up:                v.Up,
		Space:             space,
		IsClosedLoop:      v.IsClosedLoop(),
		LocalFrame:        v.IsLocalFrame(),
		Frame: vertexpath.Frame{
			Position: v.Position,
			Rotation: v.Rotation,
			Scale:    v.Scale,
		},
	}, nil
}

// LoadInto parses the asset at path and commits it to store.
func LoadInto(store *vertexpath.Store, path string) error {
	vpa, err := formats.ParseVPAFile(path)
	if err != nil {
		return err
	}
	data, err := CommitDataFromVPA(vpa)
	if err != nil {
		return err
	}
	return store.Commit(data)
}
