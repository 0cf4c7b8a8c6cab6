package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/byterings/ghp/internal/config"
	"github.com/byterings/ghp/internal/keys"
	"github.com/byterings/ghp/internal/platform"
	"github.com/byterings/ghp/internal/ui"
	"github.com/spf13/cobra"
)

// storePath resolves the store location: --config, then $GHP_CONFIG.
// An empty result means the default ~/.ghp.
func storePath() (string, error) {
	path := rootFlagConfig
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		return "", nil
	}
	return absPath(path)
}

// absPath expands ~ and makes path absolute
func absPath(path string) (string, error) {
	expanded, err := platform.ExpandTilde(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	return abs, nil
}

// loadStore loads the store selected by the global flags
func loadStore() (*config.Store, error) {
	path, err := storePath()
	if err != nil {
		return nil, err
	}
	store, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return store, nil
}

// profileArg requires exactly one profile name
func profileArg(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: profile name\nUsage: %s", ErrMissingArgument, cmd.UseLine())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 profile name, received %d", len(args))
	}
	return nil
}

// warnKeyStatus reports problems with a key file without failing
func warnKeyStatus(w io.Writer, keyPath string) {
	status, err := keys.CheckKeyPath(keyPath)
	if err != nil {
		slog.Debug("could not check key path", "path", keyPath, "error", err)
		return
	}
	switch status {
	case keys.KeyMissing:
		ui.Warning(w, fmt.Sprintf("SSH key not found at %s", keyPath))
	case keys.KeyIsDirectory:
		ui.Warning(w, fmt.Sprintf("SSH key path is a directory: %s", keyPath))
	case keys.KeyInsecure:
		ui.Warning(w, fmt.Sprintf("SSH key has insecure permissions: %s", keyPath))
		fmt.Fprintf(w, "  Run: %s\n", platform.GetPermissionFixCommand(keyPath))
	}
}
