package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/byterings/ghp/internal/config"
	"github.com/byterings/ghp/internal/platform"
	"github.com/byterings/ghp/internal/sshconfig"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

var (
	addFlagUsername string
	addFlagEmail    string
	addFlagSSHKey   string
)

var addCmd = &cobra.Command{
	Use:   "add <profile>",
	Short: "Add a new GitHub profile",
	Long: `Add a GitHub profile with a git username, email and SSH key path.

Missing values are asked for interactively. A "Host github.com-<profile>"
alias is written to the SSH config so repositories can use the profile's
key directly (git@github.com-<profile>:owner/repo.git).`,
	Example: `  # Interactive mode
  ghp add work

  # Using flags
  ghp add work --username octo-work --email octo@work.example --ssh-key ~/.ssh/id_work`,
	Args: profileArg,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addFlagUsername, "username", "", "Git username")
	addCmd.Flags().StringVar(&addFlagEmail, "email", "", "Git email")
	addCmd.Flags().StringVar(&addFlagSSHKey, "ssh-key", "", "Path to the SSH private key")
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := cmd.OutOrStdout()

	if err := config.ValidateName(name); err != nil {
		return err
	}

	store, err := loadStore()
	if err != nil {
		return err
	}
	_, existed := store.Profiles[name]

	username, err := flagOrPrompt(addFlagUsername, ui.FieldUsername)
	if err != nil {
		return fmt.Errorf("failed to get username: %w", err)
	}
	email, err := flagOrPrompt(addFlagEmail, ui.FieldEmail)
	if err != nil {
		return fmt.Errorf("failed to get email: %w", err)
	}
	if !ui.IsValidEmail(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	keyPath, err := flagOrPrompt(addFlagSSHKey, ui.FieldSSHKey)
	if err != nil {
		return fmt.Errorf("failed to get SSH key path: %w", err)
	}
	if keyPath, err = platform.ExpandTilde(keyPath); err != nil {
		return err
	}

	profile := config.Profile{
		Username:   username,
		Email:      email,
		SSHKeyPath: keyPath,
	}
	if err := config.ValidateProfile(profile); err != nil {
		return err
	}
	warnKeyStatus(out, keyPath)

	store.AddProfile(name, profile)

	alias := sshconfig.AliasHost(name)
	block := sshconfig.AliasHostBlock(name, username, keyPath)
	if err := sshconfig.Edit(store.SSHConfigPath, alias, block); err != nil {
		return err
	}
	slog.Debug("wrote host alias", "host", alias, "path", store.SSHConfigPath)

	if err := store.Save(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if existed {
		ui.Success(out, fmt.Sprintf("Profile '%s' updated successfully!", name))
	} else {
		ui.Success(out, fmt.Sprintf("Profile '%s' added successfully!", name))
	}
	fmt.Fprintf(out, "\nNext: ghp switch %s\n", name)
	fmt.Fprintf(out, "Clone with this key: git clone git@%s:<owner>/<repo>.git\n", alias)

	return nil
}

// flagOrPrompt returns the flag value, prompting when it is empty
func flagOrPrompt(value string, field ui.Field) (string, error) {
	value = strings.TrimSpace(value)
	if value != "" {
		return value, nil
	}
	answer, err := prompter.Ask(field)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("%w: value cannot be empty", ErrMissingArgument)
	}
	return answer, nil
}
