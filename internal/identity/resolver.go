package identity

import (
	"path/filepath"

	"github.com/byterings/ghp/internal/config"
	"github.com/byterings/ghp/internal/platform"
)

// ResolutionSource indicates how the profile was resolved
type ResolutionSource string

const (
	SourceGitConfig ResolutionSource = "git config"
	SourceSSHConfig ResolutionSource = "ssh config"
	SourceRecorded  ResolutionSource = "last switch"
)

// Observed is the identity currently configured outside of ghp
type Observed struct {
	GitEmail      string   // global user.email
	IdentityFiles []string // IdentityFile entries ssh uses for github.com
}

// Resolution contains the resolved profile and its source
type Resolution struct {
	Name    string
	Profile config.Profile
	Source  ResolutionSource
	// Drift is set when the last recorded switch names a different profile
	// than the one currently in effect.
	Drift bool
}

// Resolve determines which profile is in effect.
// Priority: 1. git global email 2. github.com IdentityFile 3. last recorded switch
func Resolve(store *config.Store, observed Observed) *Resolution {
	if name := store.FindProfileByEmail(observed.GitEmail); name != "" {
		return newResolution(store, name, SourceGitConfig)
	}

	if name := findProfileByKey(store, observed.IdentityFiles); name != "" {
		return newResolution(store, name, SourceSSHConfig)
	}

	if store.Active != "" {
		if profile, ok := store.Profiles[store.Active]; ok {
			return &Resolution{
				Name:    store.Active,
				Profile: profile,
				Source:  SourceRecorded,
			}
		}
	}

	return nil
}

func newResolution(store *config.Store, name string, source ResolutionSource) *Resolution {
	return &Resolution{
		Name:    name,
		Profile: store.Profiles[name],
		Source:  source,
		Drift:   store.Active != "" && store.Active != name,
	}
}

// findProfileByKey returns the first profile (by name order) whose key path
// matches one of identityFiles
func findProfileByKey(store *config.Store, identityFiles []string) string {
	for _, file := range identityFiles {
		for _, name := range store.Names() {
			keyPath := store.Profiles[name].SSHKeyPath
			if keyPath != "" && samePath(keyPath, file) {
				return name
			}
		}
	}
	return ""
}

// samePath compares two paths after ~ expansion and cleaning
func samePath(a, b string) bool {
	return cleanPath(a) == cleanPath(b)
}

func cleanPath(path string) string {
	if expanded, err := platform.ExpandTilde(path); err == nil {
		path = expanded
	}
	return filepath.Clean(filepath.FromSlash(path))
}
