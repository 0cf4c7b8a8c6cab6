package cmd

import (
	"fmt"

	"github.com/byterings/ghp/internal/config"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

var (
	setupFlagSSHConfig string
	setupFlagStore     string
	setupFlagForce     bool
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initial setup for paths to config files",
	Long: `Write an empty ghp store recording where the SSH config and the store live.

Without flags the SSH config is ~/.ssh/config and the store is ~/.ghp
(or the --config location).`,
	Example: `  ghp setup
  ghp setup --ssh-config ~/.ssh/config.d/github --ghp-config ~/.config/ghp`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().StringVarP(&setupFlagSSHConfig, "ssh-config", "s", "", "Path to the SSH config file")
	setupCmd.Flags().StringVarP(&setupFlagStore, "ghp-config", "g", "", "Path to store the ghp config file")
	setupCmd.Flags().BoolVar(&setupFlagForce, "force", false, "Reset an existing store that holds profiles")
}

func runSetup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	defaultSSH, defaultStore, err := config.DefaultPaths()
	if err != nil {
		return err
	}

	sshPath := defaultSSH
	if setupFlagSSHConfig != "" {
		if sshPath, err = absPath(setupFlagSSHConfig); err != nil {
			return err
		}
	}

	path := setupFlagStore
	if path == "" {
		if path, err = storePath(); err != nil {
			return err
		}
	}
	if path == "" {
		path = defaultStore
	}
	if path, err = absPath(path); err != nil {
		return err
	}

	exists, err := config.Exists(path)
	if err != nil {
		return fmt.Errorf("failed to check config: %w", err)
	}
	if exists && !setupFlagForce {
		existing, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if n := len(existing.Profiles); n > 0 {
			reset, err := prompter.Confirm(fmt.Sprintf("%s holds %d profile(s). Reset it?", path, n))
			if err != nil {
				return err
			}
			if !reset {
				return fmt.Errorf("%s already holds %d profile(s)\nRerun with --force to reset it", path, n)
			}
		}
	}

	store := config.NewStore(sshPath, path)
	if err := store.Save(); err != nil {
		return err
	}

	ui.Success(out, "Configuration saved.")
	fmt.Fprintf(out, "SSH config path: %s\n", sshPath)
	fmt.Fprintf(out, "GHP config path: %s\n", path)

	current, _ := storePath()
	if current == "" {
		current = defaultStore
	}
	if path != current {
		fmt.Fprintf(out, "\nOther commands read %s. Pass --config %s or set %s=%s\n",
			current, path, EnvConfig, path)
	}
	fmt.Fprintln(out, "\nNext: ghp add <profile>")

	return nil
}
