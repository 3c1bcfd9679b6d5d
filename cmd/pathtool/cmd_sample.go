package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/vertexpath/pkg/math"
	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

func newSampleCmd(a *app) *cobra.Command {
	var (
		t        float64
		distance float64
		policy   string
	)

	cmd := &cobra.Command{
		Use:   "sample [asset.vpa]",
		Short: "Sample position and orientation by time or distance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			byTime := cmd.Flags().Changed("time")
			byDistance := cmd.Flags().Changed("distance")
			if byTime == byDistance {
				return errors.New("exactly one of --time or --distance is required")
			}
			eop, err := vertexpath.ParseEndOfPath(policy)
			if err != nil {
				return err
			}

			_, p, err := a.openPath(a.assetArg(args))
			if err != nil {
				return err
			}

			if byDistance {
				if t, err = p.TimeAtDistance(distance); err != nil {
					return err
				}
			}

			point, err := p.PointAtTime(t, eop)
			if err != nil {
				return err
			}
			dir, err := p.DirectionAtTime(t, eop)
			if err != nil {
				return err
			}
			normal, err := p.NormalAtTime(t, eop)
			if err != nil {
				return err
			}
			rot, err := p.RotationAtTime(t, eop)
			if err != nil {
				return err
			}
			bracket, err := p.LocateBracket(t, eop)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Time:      %.6f\n", t)
			fmt.Fprintf(out, "Segment:   %d -> %d (%.4f)\n", bracket.Prev, bracket.Next, bracket.Percent)
			fmt.Fprintf(out, "Point:     %s\n", fmtVec(point))
			fmt.Fprintf(out, "Direction: %s\n", fmtVec(dir))
			fmt.Fprintf(out, "Normal:    %s\n", fmtVec(normal))
			fmt.Fprintf(out, "Rotation:  %s\n", fmtQuat(rot))
			fmt.Fprintf(out, "Forward:   %s\n", fmtVec(rot.Rotate(math.Vec3Forward)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&t, "time", 0, "Normalized time along the path")
	cmd.Flags().Float64Var(&distance, "distance", 0, "Distance along the path")
	cmd.Flags().StringVar(&policy, "policy", "loop", "End-of-path policy (loop, reverse, stop)")
	return cmd
}
