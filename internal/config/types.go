package config

import "time"

// Profile represents a GitHub identity
type Profile struct {
	Username   string `toml:"username" yaml:"username" json:"username"`
	Email      string `toml:"email" yaml:"email" json:"email"`
	SSHKeyPath string `toml:"ssh_key" yaml:"ssh_key" json:"ssh_key"`
}

// Store represents the ghp configuration
type Store struct {
	SSHConfigPath string
	StorePath     string
	Profiles      map[string]Profile // keyed by profile name

	Active     string    // profile last switched to
	SwitchedAt time.Time // zero when never switched
}
