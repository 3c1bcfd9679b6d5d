package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/vertexpath/internal/assets"
	"github.com/Faultbox/vertexpath/internal/source"
	"github.com/Faultbox/vertexpath/pkg/vertexpath"
)

func newBakeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bake [source.yaml] [asset.vpa]",
		Short: "Convert a baked polyline source into a path asset",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := a.cfg.Path.Source, a.cfg.Path.Asset
			if len(args) > 0 {
				src = args[0]
			}
			if len(args) > 1 {
				dst = args[1]
			}

			store := vertexpath.NewStore()
			persister := assets.NewPersister(store, dst, src)
			defer persister.Close()

			if err := source.NewWriter(src, store, a.cfg.Path.LocalFrame).Initialize(); err != nil {
				return err
			}
			if _, err := persister.Flush(); err != nil {
				return err
			}

			p, err := store.Path()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Baked %s -> %s\n", src, dst)
			printPath(out, p)
			return nil
		},
	}
}
