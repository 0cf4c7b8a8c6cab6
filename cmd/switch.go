package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/byterings/ghp/internal/config"
	"github.com/byterings/ghp/internal/git"
	"github.com/byterings/ghp/internal/sshconfig"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

// now is replaced in tests
var now = time.Now

var switchCmd = &cobra.Command{
	Use:   "switch <profile>",
	Short: "Switch to an existing GitHub profile",
	Long: `Point "Host github.com" in the SSH config at the profile's key and set
the global git user.name and user.email.`,
	Example: `  ghp switch work`,
	Args:    profileArg,
	RunE:    runSwitch,
}

func init() {
	rootCmd.AddCommand(switchCmd)
}

func runSwitch(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	store, err := loadStore()
	if err != nil {
		return err
	}

	profile, err := store.Profile(name)
	if err != nil {
		return fmt.Errorf("%w\nRun: ghp list", err)
	}

	backend, err := newIdentityBackend()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Switching to: %s (%s)\n", name, profile.Email)

	if err := applyProfile(cmd.Context(), backend, store, name, profile); err != nil {
		return err
	}

	ui.Success(out, fmt.Sprintf("Switched to profile '%s'", name))
	return nil
}

// applyProfile rewrites the github.com stanza, sets the global git identity
// and records the switch. The SSH config stays written if git fails.
func applyProfile(ctx context.Context, setter git.IdentitySetter, store *config.Store, name string, profile config.Profile) error {
	block := sshconfig.GitHubHostBlock(profile.Username, profile.SSHKeyPath)
	if err := sshconfig.Edit(store.SSHConfigPath, sshconfig.GitHubHost, block); err != nil {
		return err
	}

	if err := setter.SetGlobalIdentity(ctx, profile.Username, profile.Email); err != nil {
		return fmt.Errorf("%w\nSSH config %s was already updated", err, store.SSHConfigPath)
	}

	store.MarkActive(name, now())
	return store.Save()
}
