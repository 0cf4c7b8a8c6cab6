package cmd

import (
	"fmt"

	"github.com/byterings/ghp/internal/config"
	"github.com/byterings/ghp/internal/sshconfig"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

var removeFlagPruneSSH bool

var removeCmd = &cobra.Command{
	Use:     "remove <profile>",
	Aliases: []string{"rm"},
	Short:   "Remove an existing GitHub profile",
	Long: `Remove a profile from the ghp store.

The SSH config is left as it is: the "Host github.com-<profile>" alias
written by 'ghp add' stays unless --prune-ssh is given.`,
	Example: `  ghp remove work
  ghp remove work --prune-ssh`,
	Args: profileArg,
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVar(&removeFlagPruneSSH, "prune-ssh", false, "Also remove the profile's Host alias from the SSH config")
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	store, err := loadStore()
	if err != nil {
		return err
	}

	wasActive := store.Active == name
	if !store.RemoveProfile(name) {
		return fmt.Errorf("%w: '%s'", config.ErrProfileNotFound, name)
	}

	// Read before saving so a failure leaves the profile in place.
	alias := sshconfig.AliasHost(name)
	content, err := sshconfig.ReadFile(store.SSHConfigPath)
	if err != nil {
		return err
	}

	if err := store.Save(); err != nil {
		return err
	}
	if wasActive {
		ui.Info(out, "Active profile cleared")
	}

	if sshconfig.HasHostBlock(content, alias) {
		if removeFlagPruneSSH {
			pruned, _ := sshconfig.RemoveHostBlock(content, alias)
			if err := sshconfig.WriteFile(store.SSHConfigPath, pruned); err != nil {
				return err
			}
			ui.Success(out, fmt.Sprintf("Removed Host %s from %s", alias, store.SSHConfigPath))
		} else {
			ui.Info(out, fmt.Sprintf("Host %s is still in %s (use --prune-ssh to remove it)", alias, store.SSHConfigPath))
		}
	}

	ui.Success(out, fmt.Sprintf("Profile '%s' removed successfully!", name))
	return nil
}
