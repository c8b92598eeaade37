package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pacerdev/pacer/internal/engine/config"
	"github.com/pacerdev/pacer/internal/platform/logger"
)

var flagInitForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long:  `Write a commented starter configuration to ~/.config/pacer/config.yaml (or the --config path). Refuses to overwrite an existing file unless --force is given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.FromContext(cmd.Context())

		loader := config.NewLoader(&config.RealFileSystem{})
		path, err := configPath(loader)
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !flagInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultYAML), 0o600); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		log.Info("config written", "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		fmt.Fprintln(cmd.OutOrStdout(), "edit the repositories list, then run 'pacer once' to try a cycle")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
