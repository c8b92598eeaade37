// Package commands implements the CLI commands for pacer.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacerdev/pacer/internal/engine/config"
	"github.com/pacerdev/pacer/internal/platform/logger"
)

// Global flag values accessible to all commands.
var (
	flagConfig  string
	flagJSON    bool
	flagVerbose bool
)

// rootCmd is the base command for the pacer CLI.
var rootCmd = &cobra.Command{
	Use:   "pacer",
	Short: "Paced git auto-committer",
	Long: `Pacer turns a working tree's pending edits into a steady stream of small
commits. Each cycle commits only the first hunk of one file's staged
modification and restores every other pending change, so a large edit is
paid out one hunk at a time instead of landing as a single commit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		l := logger.New(flagVerbose, flagJSON)
		ctx := logger.WithContext(cmd.Context(), l)
		cmd.SetContext(ctx)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the config file (default ~/.config/pacer/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

// configPath resolves the --config flag, falling back to the default
// user-level location.
func configPath(loader *config.Loader) (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return loader.DefaultPath()
}

// loadConfig reads the active configuration using the real file system.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewLoader(&config.RealFileSystem{})
	path, err := configPath(loader)
	if err != nil {
		return nil, err
	}
	cfg, err := loader.Load(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the root command. Returns an error if the command fails.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pacer: %v\n", err)
	}
	return err
}
