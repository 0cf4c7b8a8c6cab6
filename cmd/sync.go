package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/byterings/ghp/internal/platform"
	"github.com/byterings/ghp/internal/sshconfig"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

var syncFlagFix bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Check that git and SSH still match the active profile",
	Long: `Compare the global git identity and the "Host github.com" stanza with the
profile recorded by the last 'ghp switch', and check every profile's
"Host github.com-<profile>" alias.

Mismatches are fixed by reapplying the active profile and rewriting the
missing aliases.`,
	Example: `  ghp sync
  ghp sync --fix`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().BoolVarP(&syncFlagFix, "fix", "f", false, "Fix issues without prompting")
}

func runSync(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, err := loadStore()
	if err != nil {
		return err
	}

	profile, ok := store.Profiles[store.Active]
	if store.Active == "" || !ok {
		ui.Info(out, "No active profile")
		fmt.Fprintln(out, "Set one with: ghp switch <profile>")
		return nil
	}

	backend, err := newIdentityBackend()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Checking configuration for: %s (%s)\n\n", store.Active, profile.Email)

	var identityDrift bool
	var missingAliases []string

	gitName, gitEmail, err := backend.GlobalIdentity(cmd.Context())
	switch {
	case err != nil:
		ui.Error(out, fmt.Sprintf("Failed to read git config: %v", err))
		identityDrift = true
	default:
		if gitName != profile.Username {
			ui.Error(out, fmt.Sprintf("git user.name mismatch: got '%s', expected '%s'", gitName, profile.Username))
			identityDrift = true
		} else {
			ui.Success(out, "git user.name matches")
		}
		if gitEmail != profile.Email {
			ui.Error(out, fmt.Sprintf("git user.email mismatch: got '%s', expected '%s'", gitEmail, profile.Email))
			identityDrift = true
		} else {
			ui.Success(out, "git user.email matches")
		}
	}

	content, err := sshconfig.ReadFile(store.SSHConfigPath)
	if err != nil {
		return err
	}
	resolved, err := sshconfig.Resolve(content, sshconfig.GitHubHost)
	switch {
	case err != nil:
		ui.Error(out, err.Error())
		identityDrift = true
	case !containsKey(resolved.IdentityFiles, profile.SSHKeyPath):
		ui.Error(out, fmt.Sprintf("Host %s does not use %s", sshconfig.GitHubHost, profile.SSHKeyPath))
		identityDrift = true
	default:
		ui.Success(out, fmt.Sprintf("Host %s uses the profile key", sshconfig.GitHubHost))
	}

	for _, name := range store.Names() {
		if !sshconfig.HasHostBlock(content, sshconfig.AliasHost(name)) {
			ui.Error(out, fmt.Sprintf("Host %s missing", sshconfig.AliasHost(name)))
			missingAliases = append(missingAliases, name)
		}
	}

	issues := len(missingAliases)
	if identityDrift {
		issues++
	}
	fmt.Fprintln(out)
	if issues == 0 {
		ui.Success(out, "All checks passed! Configuration is in sync.")
		return nil
	}

	ui.Warning(out, fmt.Sprintf("Found %d issue(s)", issues))

	fix := syncFlagFix
	if !fix {
		if fix, err = prompter.Confirm("Fix these issues automatically?"); err != nil {
			return err
		}
	}
	if !fix {
		fmt.Fprintln(out, "\nNo changes made. Run 'ghp sync --fix' to fix them.")
		return nil
	}

	if len(missingAliases) > 0 {
		for _, name := range missingAliases {
			p := store.Profiles[name]
			block := sshconfig.AliasHostBlock(name, p.Username, p.SSHKeyPath)
			content = sshconfig.ReplaceOrAppendHostBlock(content, sshconfig.AliasHost(name), block)
		}
		if err := sshconfig.WriteFile(store.SSHConfigPath, content); err != nil {
			return err
		}
		ui.Success(out, fmt.Sprintf("Restored %d host alias(es)", len(missingAliases)))
	}

	if identityDrift {
		if err := applyProfile(cmd.Context(), backend, store, store.Active, profile); err != nil {
			return err
		}
		ui.Success(out, fmt.Sprintf("Reapplied profile '%s'", store.Active))
	}

	return nil
}

// containsKey reports whether one of files names keyPath
func containsKey(files []string, keyPath string) bool {
	want := expandClean(keyPath)
	for _, file := range files {
		if expandClean(file) == want {
			return true
		}
	}
	return false
}

func expandClean(path string) string {
	if expanded, err := platform.ExpandTilde(path); err == nil {
		path = expanded
	}
	return filepath.Clean(filepath.FromSlash(path))
}
