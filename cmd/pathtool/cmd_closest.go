package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Faultbox/vertexpath/pkg/math"
)

func newClosestCmd(a *app) *cobra.Command {
	var assetPath string

	cmd := &cobra.Command{
		Use:   "closest x y z",
		Short: "Project a world point onto the path",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c [3]float64
			for i, s := range args {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return fmt.Errorf("coordinate %d: %w", i, err)
				}
				c[i] = v
			}
			query := math.Vec3{X: c[0], Y: c[1], Z: c[2]}

			if assetPath == "" {
				assetPath = a.cfg.Path.Asset
			}
			_, p, err := a.openPath(assetPath)
			if err != nil {
				return err
			}

			point, err := p.ClosestPointOnPath(query)
			if err != nil {
				return err
			}
			tm, err := p.ClosestTimeOnPath(query)
			if err != nil {
				return err
			}
			dst, err := p.ClosestDistanceAlongPath(query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Query:    %s\n", fmtVec(query))
			fmt.Fprintf(out, "Point:    %s\n", fmtVec(point))
			fmt.Fprintf(out, "Time:     %.6f\n", tm)
			fmt.Fprintf(out, "Distance: %.6f\n", dst)
			fmt.Fprintf(out, "Offset:   %.6f\n", point.Distance(query))
			return nil
		},
	}

	cmd.Flags().StringVarP(&assetPath, "file", "f", "", "Asset to query (default from config)")
	return cmd
}
