package sshconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostBlocks(t *testing.T) {
	assert.Equal(t,
		"Host github.com\n  HostName github.com\n  User octo\n  IdentityFile /keys/octo\n",
		GitHubHostBlock("octo", "/keys/octo"),
	)
	assert.Equal(t,
		"Host github.com-work\n  HostName github.com\n  User octo\n  IdentityFile /keys/octo\n",
		AliasHostBlock("work", "octo", "/keys/octo"),
	)
	assert.Equal(t, "github.com-work", AliasHost("work"))
}

func TestReadFileMissing(t *testing.T) {
	content, err := ReadFile(filepath.Join(t.TempDir(), "config"))
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestEditCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ssh", "config")

	require.NoError(t, Edit(path, GitHubHost, GitHubHostBlock("octo", "/keys/octo")))
	require.NoError(t, Edit(path, GitHubHost, GitHubHostBlock("hubot", "/keys/hubot")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, GitHubHostBlock("hubot", "/keys/hubot"), string(got))
}

func TestEditKeepsOtherStanzas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	initial := "Host existing\n  HostName existing.example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(initial), 0600))

	require.NoError(t, Edit(path, AliasHost("work"), AliasHostBlock("work", "octo", "/keys/octo")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, initial+AliasHostBlock("work", "octo", "/keys/octo"), string(got))
}

func TestResolve(t *testing.T) {
	content := "Host github.com-work\n  HostName github.com\n  User work\n  IdentityFile /keys/work\n\n" +
		GitHubHostBlock("octo", "/keys/octo")

	res, err := Resolve(content, GitHubHost)
	require.NoError(t, err)
	assert.Equal(t, "github.com", res.HostName)
	assert.Equal(t, "octo", res.User)
	assert.Equal(t, []string{"/keys/octo"}, res.IdentityFiles)

	alias, err := Resolve(content, AliasHost("work"))
	require.NoError(t, err)
	assert.Equal(t, "work", alias.User)
	assert.Equal(t, []string{"/keys/work"}, alias.IdentityFiles)
}

func TestResolveUnknownHost(t *testing.T) {
	res, err := Resolve("Host foo\n  User bar\n", GitHubHost)
	require.NoError(t, err)
	assert.Equal(t, GitHubHost, res.HostName)
	assert.Empty(t, res.User)
	assert.Empty(t, res.IdentityFiles)
}
