package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pacerdev/pacer/internal/engine/watch"
	"github.com/pacerdev/pacer/internal/platform/logger"
)

var flagWatchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch repositories and commit when edits settle",
	Long: `Watch the configured repositories' working trees. When a repository's file
events go quiet for the debounce interval, run one commit cycle for it.
Stops on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if cfg.LogFile != "" {
			l, err := logger.NewWithFile(flagVerbose, flagJSON, cfg.LogFile)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			ctx = logger.WithContext(ctx, l)
		}

		cycle := newCycle(cfg)
		opts := cycleOpts(cfg, false)

		svc := watch.NewService(func(ctx context.Context, repoPath string) error {
			return cycle.ExecuteAll(ctx, []string{repoPath}, opts)
		})
		if flagWatchDebounce > 0 {
			svc.Debounce = flagWatchDebounce
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		err = svc.Run(ctx, cfg.Repositories)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().DurationVar(&flagWatchDebounce, "debounce", 0, "Quiet period before a cycle fires (default 2s)")
	rootCmd.AddCommand(watchCmd)
}
