package sshconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/byterings/ghp/internal/platform"
	"github.com/kevinburke/ssh_config"
)

// GitHubHost is the host whose stanza `switch` rewrites
const GitHubHost = "github.com"

// Resolution is what ssh would use for a host according to a config file
type Resolution struct {
	HostName      string
	User          string
	IdentityFiles []string
}

// AliasHost returns the per-profile SSH host alias
func AliasHost(profile string) string {
	return fmt.Sprintf("%s-%s", GitHubHost, profile)
}

// GitHubHostBlock builds the canonical "Host github.com" stanza for a profile
func GitHubHostBlock(username, keyPath string) string {
	return hostBlock(GitHubHost, username, keyPath)
}

// AliasHostBlock builds the "Host github.com-<profile>" stanza written by `add`
func AliasHostBlock(profile, username, keyPath string) string {
	return hostBlock(AliasHost(profile), username, keyPath)
}

func hostBlock(host, username, keyPath string) string {
	var block strings.Builder
	block.WriteString(fmt.Sprintf("Host %s\n", host))
	block.WriteString(fmt.Sprintf("  HostName %s\n", GitHubHost))
	block.WriteString(fmt.Sprintf("  User %s\n", username))
	block.WriteString(fmt.Sprintf("  IdentityFile %s\n", platform.NormalizePathForSSHConfig(keyPath)))
	return block.String()
}

// ReadFile reads the SSH config file. A missing file reads as empty.
func ReadFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("ssh config not found, starting empty", "path", path)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read SSH config: %w", err)
	}
	return string(content), nil
}

// WriteFile replaces the SSH config file, creating its directory if needed
func WriteFile(path, content string) error {
	if err := platform.MkdirSecure(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create .ssh directory: %w", err)
	}
	if err := platform.WriteFileAtomic(path, []byte(content)); err != nil {
		return fmt.Errorf("failed to write SSH config: %w", err)
	}
	slog.Debug("wrote ssh config", "path", path, "bytes", len(content))
	return nil
}

// Edit applies ReplaceOrAppendHostBlock to the file at path
func Edit(path, host, block string) error {
	content, err := ReadFile(path)
	if err != nil {
		return err
	}
	return WriteFile(path, ReplaceOrAppendHostBlock(content, host, block))
}

// Resolve decodes content the way ssh does and reports the settings it
// would pick for host.
func Resolve(content, host string) (*Resolution, error) {
	cfg, err := ssh_config.Decode(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SSH config: %w", err)
	}

	hostName, err := cfg.Get(host, "HostName")
	if err != nil {
		return nil, err
	}
	user, err := cfg.Get(host, "User")
	if err != nil {
		return nil, err
	}
	identityFiles, err := cfg.GetAll(host, "IdentityFile")
	if err != nil {
		return nil, err
	}

	if hostName == "" {
		hostName = host
	}
	return &Resolution{
		HostName:      hostName,
		User:          user,
		IdentityFiles: identityFiles,
	}, nil
}
