package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// EnvCommand overrides the git command line, e.g. GHP_GIT="git -c core.hooksPath=/dev/null"
const EnvCommand = "GHP_GIT"

// ErrIdentity is returned when the global identity could not be set
var ErrIdentity = errors.New("identity setup failed")

// IdentitySetter sets the global version-control identity
type IdentitySetter interface {
	SetGlobalIdentity(ctx context.Context, username, email string) error
}

// IdentityReader reads the global version-control identity
type IdentityReader interface {
	GlobalIdentity(ctx context.Context) (username, email string, err error)
}

// CommandError describes a git invocation that exited unsuccessfully
type CommandError struct {
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// CLI runs the git executable
type CLI struct {
	// Command is the git command line; defaults to "git"
	Command []string
}

var (
	_ IdentitySetter = (*CLI)(nil)
	_ IdentityReader = (*CLI)(nil)
)

// NewCLI returns a CLI honouring the GHP_GIT environment variable
func NewCLI() (*CLI, error) {
	command, err := CommandFromEnv()
	if err != nil {
		return nil, err
	}
	return &CLI{Command: command}, nil
}

// CommandFromEnv splits GHP_GIT into a command line, falling back to "git"
func CommandFromEnv() ([]string, error) {
	raw := strings.TrimSpace(os.Getenv(EnvCommand))
	if raw == "" {
		return []string{"git"}, nil
	}
	command, err := shlex.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", EnvCommand, err)
	}
	if len(command) == 0 {
		return []string{"git"}, nil
	}
	return command, nil
}

// SetGlobalIdentity sets the global Git user name and email
func (c *CLI) SetGlobalIdentity(ctx context.Context, username, email string) error {
	if err := c.runConfig(ctx, "user.name", username); err != nil {
		return fmt.Errorf("%w: failed to set git user.name: %w", ErrIdentity, err)
	}
	if err := c.runConfig(ctx, "user.email", email); err != nil {
		return fmt.Errorf("%w: failed to set git user.email: %w", ErrIdentity, err)
	}
	return nil
}

// GlobalIdentity returns the current global Git user name and email
func (c *CLI) GlobalIdentity(ctx context.Context) (username, email string, err error) {
	username, err = c.getConfig(ctx, "user.name")
	if err != nil {
		return "", "", fmt.Errorf("failed to get git user.name: %w", err)
	}
	email, err = c.getConfig(ctx, "user.email")
	if err != nil {
		return "", "", fmt.Errorf("failed to get git user.email: %w", err)
	}
	return username, email, nil
}

// runConfig runs git config --global to set a value
func (c *CLI) runConfig(ctx context.Context, key, value string) error {
	_, err := c.run(ctx, "config", "--global", key, value)
	return err
}

// getConfig gets a global git config value; an unset key reads as ""
func (c *CLI) getConfig(ctx context.Context, key string) (string, error) {
	output, err := c.run(ctx, "config", "--global", "--get", key)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(output), nil
}

func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	command := c.Command
	if len(command) == 0 {
		command = []string{"git"}
	}
	argv := append(append([]string{}, command...), args...)

	slog.Debug("running git", "args", argv)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", &CommandError{
			Args:     argv,
			ExitCode: exitCode,
			Output:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}
	return stdout.String(), nil
}

// IsInstalled checks if the configured git executable can be found
func (c *CLI) IsInstalled() bool {
	command := c.Command
	if len(command) == 0 {
		command = []string{"git"}
	}
	_, err := exec.LookPath(command[0])
	return err == nil
}
