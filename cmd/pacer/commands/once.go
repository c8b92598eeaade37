package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagOnceRepo       string
	flagOnceSynthesize bool
)

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Run a single commit cycle now",
	Long: `Run one commit cycle immediately: for each configured repository, commit
the first hunk of one staged modification and restore the rest. With --repo
only that repository is processed; with --synthesize an edit is generated
when nothing is staged.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		repos := cfg.Repositories
		if flagOnceRepo != "" {
			repos = []string{flagOnceRepo}
		}

		cycle := newCycle(cfg)
		return cycle.ExecuteAll(cmd.Context(), repos, cycleOpts(cfg, flagOnceSynthesize))
	},
}

func init() {
	onceCmd.Flags().StringVar(&flagOnceRepo, "repo", "", "Process only this repository")
	onceCmd.Flags().BoolVar(&flagOnceSynthesize, "synthesize", false, "Generate an edit when nothing is staged")
	rootCmd.AddCommand(onceCmd)
}
