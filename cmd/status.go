package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/byterings/ghp/internal/config"
	"github.com/byterings/ghp/internal/identity"
	"github.com/byterings/ghp/internal/keys"
	"github.com/byterings/ghp/internal/sshconfig"
	"github.com/byterings/ghp/internal/ui"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current profile status",
	Long: `Display the current profile status including:
- Profile recorded by the last 'ghp switch'
- Global git user.name and user.email
- What ssh resolves for github.com from the SSH config

This helps you understand which account git operations will use.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	store, err := loadStore()
	if err != nil {
		return err
	}

	var observed identity.Observed

	gitName, gitEmail, gitErr := readGitIdentity(cmd)
	observed.GitEmail = gitEmail

	content, sshErr := sshconfig.ReadFile(store.SSHConfigPath)
	var resolved *sshconfig.Resolution
	if sshErr == nil {
		resolved, sshErr = sshconfig.Resolve(content, sshconfig.GitHubHost)
	}
	if resolved != nil {
		observed.IdentityFiles = resolved.IdentityFiles
	}

	printActiveProfile(out, store, identity.Resolve(store, observed))

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Git Identity")
	fmt.Fprintln(out, "────────────")
	if gitErr != nil {
		ui.Warning(out, fmt.Sprintf("Could not read git config: %v", gitErr))
	} else {
		fmt.Fprintf(out, "  user.name:  %s\n", dashEmpty(gitName))
		fmt.Fprintf(out, "  user.email: %s\n", dashEmpty(gitEmail))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "SSH (%s)\n", store.SSHConfigPath)
	fmt.Fprintln(out, "───")
	if sshErr != nil {
		ui.Warning(out, fmt.Sprintf("Could not read SSH config: %v", sshErr))
	} else {
		fmt.Fprintf(out, "  Host:         %s\n", sshconfig.GitHubHost)
		fmt.Fprintf(out, "  HostName:     %s\n", resolved.HostName)
		fmt.Fprintf(out, "  User:         %s\n", dashEmpty(resolved.User))
		fmt.Fprintf(out, "  IdentityFile: %s\n", dashEmpty(strings.Join(resolved.IdentityFiles, ", ")))
	}

	return nil
}

func readGitIdentity(cmd *cobra.Command) (string, string, error) {
	backend, err := newIdentityBackend()
	if err != nil {
		return "", "", err
	}
	return backend.GlobalIdentity(cmd.Context())
}

func printActiveProfile(out io.Writer, store *config.Store, resolution *identity.Resolution) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Active Profile")
	fmt.Fprintln(out, "──────────────")

	if resolution == nil {
		fmt.Fprintln(out, "  No active profile")
		fmt.Fprintln(out, "  Run 'ghp switch <profile>' to set one")
		return
	}

	fmt.Fprintf(out, "  Profile:  %s (%s)\n", resolution.Name, resolution.Source)
	fmt.Fprintf(out, "  Username: %s\n", resolution.Profile.Username)
	fmt.Fprintf(out, "  Email:    %s\n", resolution.Profile.Email)

	keyState := "✓"
	switch status, _ := keys.CheckKeyPath(resolution.Profile.SSHKeyPath); status {
	case keys.KeyMissing:
		keyState = "✗ (missing)"
	case keys.KeyIsDirectory:
		keyState = "✗ (directory)"
	case keys.KeyInsecure:
		keyState = "⚠ (insecure permissions)"
	}
	fmt.Fprintf(out, "  SSH Key:  %s %s\n", resolution.Profile.SSHKeyPath, keyState)

	if !store.SwitchedAt.IsZero() && store.Active != "" {
		fmt.Fprintf(out, "  Switched: %s to %s\n", humanize.Time(store.SwitchedAt), store.Active)
	}

	if resolution.Drift {
		fmt.Fprintln(out)
		ui.Warning(out, "Profile mismatch!")
		fmt.Fprintf(out, "  Last switch: %s\n", store.Active)
		fmt.Fprintf(out, "  In effect:   %s\n", resolution.Name)
		ui.Info(out, fmt.Sprintf("Run 'ghp switch %s' to realign.", store.Active))
	}
}

func dashEmpty(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
