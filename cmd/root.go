package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/byterings/ghp/internal/git"
	"github.com/byterings/ghp/internal/logging"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

// EnvConfig points ghp at a store file other than ~/.ghp
const EnvConfig = "GHP_CONFIG"

var (
	ErrNoCommand       = errors.New("a subcommand is required")
	ErrMissingArgument = errors.New("missing required argument")
)

// identityBackend reads and writes the global git identity
type identityBackend interface {
	git.IdentitySetter
	git.IdentityReader
}

// prompter asks for missing profile fields; tests replace it
var prompter ui.Prompter = ui.SurveyPrompter{}

// newIdentityBackend builds the git identity backend; tests replace it
var newIdentityBackend = func() (identityBackend, error) {
	cli, err := git.NewCLI()
	if err != nil {
		return nil, err
	}
	if !cli.IsInstalled() {
		return nil, fmt.Errorf("%w: %s is not installed", git.ErrIdentity, cli.Command[0])
	}
	return cli, nil
}

var (
	rootFlagConfig  string
	rootFlagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ghp",
	Short: "GitHub profile manager",
	Long: `Manage multiple GitHub profiles and switch between them.

A profile is a git username, email and SSH key. Switching rewrites the
"Host github.com" block of your SSH config and sets the global git
user.name and user.email.`,
	Example: `  ghp setup
  ghp add work
  ghp switch work
  ghp remove work`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(rootFlagVerbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = cmd.Help()
		return ErrNoCommand
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlagConfig, "config", "", "Path to the ghp store (default $GHP_CONFIG or ~/.ghp)")
	rootCmd.PersistentFlags().BoolVarP(&rootFlagVerbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
