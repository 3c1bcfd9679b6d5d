package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Faultbox/vertexpath/internal/assets"
	"github.com/Faultbox/vertexpath/pkg/formats"
	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info [asset.vpa]",
		Short: "Show asset header, frame and extent",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, p, err := a.openPath(a.assetArg(args))
			if err != nil {
				return err
			}
			vpa, err := formats.ParseVPAFile(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Asset:    %s\n", path)
			fmt.Fprintf(out, "Version:  %s\n", vpa.Version)
			if meta, err := assets.LoadMeta(path); err == nil {
				fmt.Fprintf(out, "GUID:     %s\n", meta.GUID)
				if meta.Source != "" {
					fmt.Fprintf(out, "Source:   %s\n", meta.Source)
				}
			}
			printPath(out, p)
			return nil
		},
	}
}

func printPath(out io.Writer, p *vertexpath.Path) {
	frame := p.Frame()
	bounds := p.Bounds()
	world := p.WorldBounds()
	fmt.Fprintf(out, "Space:    %s\n", p.Space())
	fmt.Fprintf(out, "Closed:   %t\n", p.IsClosedLoop())
	fmt.Fprintf(out, "Local:    %t\n", p.IsLocalFrame())
	fmt.Fprintf(out, "Points:   %d\n", p.NumPoints())
	fmt.Fprintf(out, "Length:   %.4f\n", p.Length())
	fmt.Fprintf(out, "Up:       %s\n", fmtVec(p.Up()))
	fmt.Fprintf(out, "Bounds:   %s .. %s\n", fmtVec(bounds.Min), fmtVec(bounds.Max))
	fmt.Fprintf(out, "World:    %s .. %s\n", fmtVec(world.Min), fmtVec(world.Max))
	fmt.Fprintf(out, "Position: %s\n", fmtVec(frame.Position))
	fmt.Fprintf(out, "Rotation: %s\n", fmtQuat(frame.Rotation))
	fmt.Fprintf(out, "Scale:    %s\n", fmtVec(frame.Scale))

	m := p.LocalToWorld()
	for row := 0; row < 4; row++ {
		label := ""
		if row == 0 {
			label = "Matrix:"
		}
		fmt.Fprintf(out, "%-9s [%9.4f %9.4f %9.4f %9.4f]\n", label, m[row], m[4+row], m[8+row], m[12+row])
	}
}

func fmtVec(v math.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func fmtQuat(q math.Quat) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f, %.4f)", q.X, q.Y, q.Z, q.W)
}

// assetArg returns the asset named on the command line or the configured
// one.
func (a *app) assetArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.Path.Asset
}

// openPath opens name through the shared manager and returns the resolved
// file with its committed path.
func (a *app) openPath(name string) (string, *vertexpath.Path, error) {
	resolved := a.assets.Resolve(name)
	store, err := a.assets.Open(resolved)
	if err != nil {
		return "", nil, err
	}
	p, err := store.Path()
	if err != nil {
		return "", nil, err
	}
	return resolved, p, nil
}
