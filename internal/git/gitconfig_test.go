package git

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stubGit = `#!/bin/sh
echo "$@" >> "$GHP_TEST_LOG"
if [ "$3" = "$GHP_TEST_FAIL_KEY" ]; then
  echo "could not lock config file" >&2
  exit 3
fi
if [ "$3" = "--get" ]; then
  case "$4" in
    user.name) echo "Octo Cat" ;;
    user.email) exit 1 ;;
  esac
fi
exit 0
`

func newStubCLI(t *testing.T) (*CLI, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub git script requires a POSIX shell")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "git")
	require.NoError(t, os.WriteFile(script, []byte(stubGit), 0755))

	logPath := filepath.Join(dir, "calls.log")
	t.Setenv("GHP_TEST_LOG", logPath)
	t.Setenv("GHP_TEST_FAIL_KEY", "")

	return &CLI{Command: []string{script}}, logPath
}

func readCalls(t *testing.T, logPath string) []string {
	t.Helper()
	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(content)), "\n")
}

func TestSetGlobalIdentity(t *testing.T) {
	cli, logPath := newStubCLI(t)

	require.NoError(t, cli.SetGlobalIdentity(context.Background(), "octo", "octo@example.com"))

	assert.Equal(t, []string{
		"config --global user.name octo",
		"config --global user.email octo@example.com",
	}, readCalls(t, logPath))
}

func TestSetGlobalIdentityStopsOnFailure(t *testing.T) {
	cli, logPath := newStubCLI(t)
	t.Setenv("GHP_TEST_FAIL_KEY", "user.name")

	err := cli.SetGlobalIdentity(context.Background(), "octo", "octo@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIdentity))

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "could not lock config file", cmdErr.Output)
	assert.Contains(t, err.Error(), "user.name")

	// user.email must not be attempted after user.name failed
	assert.Equal(t, []string{"config --global user.name octo"}, readCalls(t, logPath))
}

func TestGlobalIdentity(t *testing.T) {
	cli, _ := newStubCLI(t)

	name, email, err := cli.GlobalIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Octo Cat", name)
	assert.Empty(t, email, "unset key should read as empty")
}

func TestMissingExecutable(t *testing.T) {
	cli := &CLI{Command: []string{filepath.Join(t.TempDir(), "no-such-git")}}

	assert.False(t, cli.IsInstalled())

	err := cli.SetGlobalIdentity(context.Background(), "octo", "octo@example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIdentity))

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
}

func TestCommandFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		want    []string
		wantErr bool
	}{
		{name: "Unset", env: "", want: []string{"git"}},
		{name: "Whitespace", env: "   ", want: []string{"git"}},
		{name: "Custom binary", env: "/usr/local/bin/git", want: []string{"/usr/local/bin/git"}},
		{name: "With quoted args", env: `git -c "user.signingkey=my key"`, want: []string{"git", "-c", "user.signingkey=my key"}},
		{name: "Unterminated quote", env: `git "oops`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvCommand, tt.env)

			got, err := CommandFromEnv()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
