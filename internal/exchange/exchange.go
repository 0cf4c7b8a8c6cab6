// Package exchange moves profiles in and out of ghp in TOML, YAML or JSON.
package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/byterings/ghp/internal/config"
	"gopkg.in/yaml.v3"
)

// Format is a profile exchange format
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported formats
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON}

// Document is the exported shape of a set of profiles
type Document struct {
	Profiles map[string]config.Profile `toml:"profiles" yaml:"profiles" json:"profiles"`
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format '%s' (use toml, yaml or json)", name)
}

// FormatFromPath picks a format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer format of '%s', pass --format", path)
	}
	return ParseFormat(ext)
}

// Export writes every profile of the store to w
func Export(w io.Writer, format Format, store *config.Store) error {
	doc := Document{Profiles: store.Profiles}
	if doc.Profiles == nil {
		doc.Profiles = map[string]config.Profile{}
	}

	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	return fmt.Errorf("unsupported format '%s'", format)
}

// Decode reads a document written by Export
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format '%s'", format)
	}

	for name, profile := range doc.Profiles {
		if err := config.ValidateName(name); err != nil {
			return nil, err
		}
		profile = config.Profile{
			Username:   strings.TrimSpace(profile.Username),
			Email:      strings.TrimSpace(profile.Email),
			SSHKeyPath: strings.TrimSpace(profile.SSHKeyPath),
		}
		if err := config.ValidateProfile(profile); err != nil {
			return nil, fmt.Errorf("profile '%s': %w", name, err)
		}
		doc.Profiles[name] = profile
	}
	return &doc, nil
}

// Import merges the document into the store, overwriting profiles with the
// same name. It returns the imported names in sorted order.
func Import(store *config.Store, doc *Document) []string {
	names := make([]string, 0, len(doc.Profiles))
	for name, profile := range doc.Profiles {
		store.AddProfile(name, profile)
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
