package commands

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pacerdev/pacer/internal/engine/schedule"
	"github.com/pacerdev/pacer/internal/platform/logger"
)

var flagRunSynthesize bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the commit scheduler daemon",
	Long: `Plan randomized commit times inside the configured work hours and run one
commit cycle at each. Replans every day at the window start. Stops on
SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		// Long-running daemon: upgrade to the file-backed logger when
		// one is configured.
		if cfg.LogFile != "" {
			l, err := logger.NewWithFile(flagVerbose, flagJSON, cfg.LogFile)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			ctx = logger.WithContext(ctx, l)
		}

		window, err := schedule.ParseWindow(cfg.WorkHours.Start, cfg.WorkHours.End)
		if err != nil {
			return err
		}

		cycle := newCycle(cfg)
		opts := cycleOpts(cfg, flagRunSynthesize)
		planner := schedule.NewPlanner(window,
			cfg.CommitFrequency.MinPerDay, cfg.CommitFrequency.MaxPerDay,
			rand.New(rand.NewSource(time.Now().UnixNano())))

		scheduler := &schedule.Scheduler{
			Planner: planner,
			Trigger: func(ctx context.Context) error {
				return cycle.ExecuteAll(ctx, cfg.Repositories, opts)
			},
		}

		ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.FromContext(ctx).Info("scheduler started",
			"repositories", len(cfg.Repositories),
			"window", cfg.WorkHours.Start+"-"+cfg.WorkHours.End)

		err = scheduler.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	runCmd.Flags().BoolVar(&flagRunSynthesize, "synthesize", false, "Generate an edit when nothing is staged")
	rootCmd.AddCommand(runCmd)
}
