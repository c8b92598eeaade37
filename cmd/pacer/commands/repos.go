package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pacerdev/pacer/internal/engine/config"
	"github.com/pacerdev/pacer/internal/engine/repo"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Manage the watched repository list",
}

var reposListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured repositories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(cfg.Repositories) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no repositories configured")
			return nil
		}
		for _, r := range cfg.Repositories {
			fmt.Fprintln(cmd.OutOrStdout(), r)
		}
		return nil
	},
}

var reposAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a repository to the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		if err := repo.Validate(path); err != nil {
			return err
		}

		return updateConfig(cmd, func(cfg *config.Config) error {
			for _, r := range cfg.Repositories {
				if r == path {
					return fmt.Errorf("%s is already configured", path)
				}
			}
			cfg.Repositories = append(cfg.Repositories, path)
			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", path)
			return nil
		})
	},
}

var reposRemoveCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Remove a repository from the config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		return updateConfig(cmd, func(cfg *config.Config) error {
			kept := cfg.Repositories[:0]
			removed := false
			for _, r := range cfg.Repositories {
				if r == path {
					removed = true
					continue
				}
				kept = append(kept, r)
			}
			if !removed {
				return fmt.Errorf("%s is not configured", path)
			}
			cfg.Repositories = kept
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", path)
			return nil
		})
	},
}

// updateConfig loads the config, applies mutate, and saves it back.
func updateConfig(cmd *cobra.Command, mutate func(cfg *config.Config) error) error {
	loader := config.NewLoader(&config.RealFileSystem{})
	path, err := configPath(loader)
	if err != nil {
		return err
	}
	cfg, err := loader.Load(cmd.Context(), path)
	if err != nil {
		return err
	}
	if err := mutate(cfg); err != nil {
		return err
	}
	return loader.Save(cmd.Context(), path, cfg)
}

func init() {
	reposCmd.AddCommand(reposListCmd)
	reposCmd.AddCommand(reposAddCmd)
	reposCmd.AddCommand(reposRemoveCmd)
	rootCmd.AddCommand(reposCmd)
}
