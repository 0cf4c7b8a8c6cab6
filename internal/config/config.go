package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/byterings/ghp/internal/platform"
)

// Keys understood in the store file
const (
	KeySSHConfig  = "ssh_config"
	KeyStore      = "ghp_config"
	KeyActive     = "active"
	KeySwitchedAt = "switched_at"
	KeyUsername   = "username"
	KeyEmail      = "email"
	KeySSHKey     = "ssh_key"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrHomeDir         = errors.New("could not determine home directory")
	ErrInvalidValue    = errors.New("invalid profile value")
)

// DefaultPaths returns the default SSH config and store paths
func DefaultPaths() (sshConfigPath, storePath string, err error) {
	sshConfigPath, err = platform.GetSSHConfigPath()
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrHomeDir, err)
	}
	storePath, err = platform.GetStorePath()
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrHomeDir, err)
	}
	return sshConfigPath, storePath, nil
}

// NewStore creates a new empty store
func NewStore(sshConfigPath, storePath string) *Store {
	return &Store{
		SSHConfigPath: sshConfigPath,
		StorePath:     storePath,
		Profiles:      map[string]Profile{},
	}
}

// Exists checks if the store file exists
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Load reads the store from path, or from the default location when path is
// empty. A missing file yields an empty store with default paths.
func Load(path string) (*Store, error) {
	defaultSSH, defaultStore, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = defaultStore
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("store not found, using defaults", "path", path)
		return NewStore(defaultSSH, path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	store := parse(string(content), defaultSSH, path)
	// The file we read is the one we write back.
	store.StorePath = path

	slog.Debug("loaded store", "path", path, "profiles", len(store.Profiles))
	return store, nil
}

// Parse decodes store file content. Unknown keys and malformed lines are skipped.
func Parse(content string) (*Store, error) {
	defaultSSH, defaultStore, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return parse(content, defaultSSH, defaultStore), nil
}

func parse(content, defaultSSH, defaultStore string) *Store {
	store := NewStore(defaultSSH, defaultStore)

	inSection := false
	current := ""

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inSection = true
			current = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if !inSection {
			store.setTopLevel(key, value)
			continue
		}
		if current == "" {
			continue
		}

		profile := store.Profiles[current]
		switch key {
		case KeyUsername:
			profile.Username = value
		case KeyEmail:
			profile.Email = value
		case KeySSHKey:
			profile.SSHKeyPath = value
		default:
			continue
		}
		store.Profiles[current] = profile
	}

	return store
}

func (s *Store) setTopLevel(key, value string) {
	switch key {
	case KeySSHConfig:
		if value != "" {
			s.SSHConfigPath = expandPath(value)
		}
	case KeyStore:
		if value != "" {
			s.StorePath = expandPath(value)
		}
	case KeyActive:
		s.Active = value
	case KeySwitchedAt:
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			s.SwitchedAt = t
		}
	}
}

func expandPath(path string) string {
	expanded, err := platform.ExpandTilde(path)
	if err != nil {
		return path
	}
	return expanded
}

// Marshal serializes the store. Profiles are written sorted by name so the
// output only depends on the store's content.
func (s *Store) Marshal() []byte {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s=%s\n", KeySSHConfig, s.SSHConfigPath))
	b.WriteString(fmt.Sprintf("%s=%s\n", KeyStore, s.StorePath))
	if s.Active != "" {
		b.WriteString(fmt.Sprintf("%s=%s\n", KeyActive, s.Active))
	}
	if !s.SwitchedAt.IsZero() {
		b.WriteString(fmt.Sprintf("%s=%s\n", KeySwitchedAt, s.SwitchedAt.UTC().Format(time.RFC3339)))
	}
	b.WriteString("\n")

	for _, name := range s.Names() {
		profile := s.Profiles[name]
		b.WriteString(fmt.Sprintf("[%s]\n", name))
		b.WriteString(fmt.Sprintf("%s=%s\n", KeyUsername, profile.Username))
		b.WriteString(fmt.Sprintf("%s=%s\n", KeyEmail, profile.Email))
		b.WriteString(fmt.Sprintf("%s=%s\n", KeySSHKey, profile.SSHKeyPath))
		b.WriteString("\n")
	}

	return []byte(b.String())
}

// Save replaces the store file with the serialized store
func (s *Store) Save() error {
	if s.StorePath == "" {
		return fmt.Errorf("failed to save config: no store path set")
	}
	if err := platform.MkdirSecure(filepath.Dir(s.StorePath)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := platform.WriteFileAtomic(s.StorePath, s.Marshal()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	slog.Debug("saved store", "path", s.StorePath, "profiles", len(s.Profiles))
	return nil
}

// ValidateName checks that a profile name can be stored and used in an SSH
// host alias
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("profile name cannot be empty")
	}
	if strings.ContainsAny(name, " \t\r\n[]=#*?!") {
		return fmt.Errorf("profile name '%s' cannot contain spaces, brackets, '=', '#' or wildcard characters", name)
	}
	return nil
}

// ValidateProfile checks that every field fits on one line of the store and
// of an SSH config stanza and survives a save/load cycle unchanged
func ValidateProfile(profile Profile) error {
	fields := []struct{ key, value string }{
		{KeyUsername, profile.Username},
		{KeyEmail, profile.Email},
		{KeySSHKey, profile.SSHKeyPath},
	}
	for _, f := range fields {
		if strings.IndexFunc(f.value, unicode.IsControl) >= 0 {
			return fmt.Errorf("%w: %s %q contains control characters", ErrInvalidValue, f.key, f.value)
		}
		if strings.TrimSpace(f.value) != f.value {
			return fmt.Errorf("%w: %s %q has surrounding whitespace", ErrInvalidValue, f.key, f.value)
		}
	}
	return nil
}

// AddProfile inserts the profile, replacing any profile with the same name
func (s *Store) AddProfile(name string, profile Profile) {
	if s.Profiles == nil {
		s.Profiles = map[string]Profile{}
	}
	s.Profiles[name] = profile
}

// RemoveProfile deletes the named profile. It returns false if there was none.
func (s *Store) RemoveProfile(name string) bool {
	if _, ok := s.Profiles[name]; !ok {
		return false
	}
	delete(s.Profiles, name)
	if s.Active == name {
		s.Active = ""
		s.SwitchedAt = time.Time{}
	}
	return true
}

// Profile finds a profile by name
func (s *Store) Profile(name string) (Profile, error) {
	profile, ok := s.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: '%s'", ErrProfileNotFound, name)
	}
	return profile, nil
}

// FindProfileByEmail returns the name of the first profile (by name order)
// using email, or "" if none does
func (s *Store) FindProfileByEmail(email string) string {
	if email == "" {
		return ""
	}
	for _, name := range s.Names() {
		if strings.EqualFold(s.Profiles[name].Email, email) {
			return name
		}
	}
	return ""
}

// Names returns the profile names in sorted order
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarkActive records a successful switch to the named profile
func (s *Store) MarkActive(name string, at time.Time) {
	s.Active = name
	s.SwitchedAt = at.UTC().Truncate(time.Second)
}
