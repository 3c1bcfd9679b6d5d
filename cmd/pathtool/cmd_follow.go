package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Faultbox/vertexpath/internal/driver"
	"github.com/Faultbox/vertexpath/internal/logger"
)

func newFollowCmd(a *app) *cobra.Command {
	var (
		duration   time.Duration
		printEvery time.Duration
	)

	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Follow the configured path, re-baking when the source changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := driver.OptionsFromConfig(a.cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var lastPrint time.Time
			opts.OnTick = func(s driver.State) {
				if now := time.Now(); now.Sub(lastPrint) >= printEvery {
					lastPrint = now
					fmt.Fprintf(out, "d=%.3f pos=%s rot=%s\n", s.Distance, fmtVec(s.Position), fmtQuat(s.Rotation))
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			logger.Info("following path")
			return driver.New(opts).Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (0 runs until interrupted)")
	cmd.Flags().DurationVar(&printEvery, "print-every", 500*time.Millisecond, "Minimum interval between printed poses")
	return cmd
}
