package keys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/byterings/ghp/internal/platform"
	"golang.org/x/crypto/ssh"
)

// KeyStatus describes what was found at a configured key path
type KeyStatus int

const (
	KeyPresent KeyStatus = iota
	KeyMissing
	KeyIsDirectory
	KeyInsecure
)

// CheckKeyPath looks at the key file without reading its contents
func CheckKeyPath(path string) (KeyStatus, error) {
	expandedPath, err := platform.ExpandTilde(path)
	if err != nil {
		return KeyMissing, err
	}

	info, err := os.Stat(expandedPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return KeyMissing, nil
		}
		return KeyMissing, fmt.Errorf("failed to access key file: %w", err)
	}

	if info.IsDir() {
		return KeyIsDirectory, nil
	}

	ok, err := platform.CheckFilePermissions(expandedPath)
	if err != nil {
		return KeyMissing, err
	}
	if !ok {
		return KeyInsecure, nil
	}
	return KeyPresent, nil
}

// PublicKeyPath returns the path of the public half of a private key
func PublicKeyPath(privateKeyPath string) string {
	return privateKeyPath + ".pub"
}

// Fingerprint returns the SHA256 fingerprint of the public key next to
// privateKeyPath (privateKeyPath + ".pub")
func Fingerprint(privateKeyPath string) (string, error) {
	expandedPath, err := platform.ExpandTilde(privateKeyPath)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(PublicKeyPath(expandedPath))
	if err != nil {
		return "", fmt.Errorf("failed to read public key: %w", err)
	}

	pubKey, _, _, _, err := ssh.ParseAuthorizedKey(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse public key: %w", err)
	}
	return ssh.FingerprintSHA256(pubKey), nil
}
