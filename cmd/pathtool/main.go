// pathtool inspects, bakes and replays serialized vertex paths.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/vertexpath/internal/assets"
	"github.com/Faultbox/vertexpath/internal/config"
	"github.com/Faultbox/vertexpath/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Sync()
}

// app carries the loaded configuration and the shared asset manager to
// subcommands.
type app struct {
	flags  *config.Flags
	cfg    *config.Config
	assets *assets.Manager
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "pathtool",
		Short:         "Inspect, bake and replay serialized vertex paths",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.flags)
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.LogFile); err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			logger.Sugar.Debugf("Config: %+v", cfg)
			a.cfg = cfg

			a.assets = assets.NewManager()
			for _, root := range cfg.Path.AssetRoots {
				a.assets.AddRoot(root)
			}
			return nil
		},
	}
	a.flags = config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newInfoCmd(a),
		newSampleCmd(a),
		newClosestCmd(a),
		newBakeCmd(a),
		newFollowCmd(a),
	)
	return root
}
