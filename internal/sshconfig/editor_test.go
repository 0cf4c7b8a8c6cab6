package sshconfig

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newGitHubBlock = "Host github.com\n  User b\n"

func TestReplaceOrAppendHostBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		block   string
		want    string
	}{
		{
			name:    "Empty file",
			content: "",
			block:   newGitHubBlock,
			want:    newGitHubBlock,
		},
		{
			name:    "Replace between stanzas",
			content: "Host foo\n  X 1\nHost github.com\n  User a\nHost bar\n  Y 2\n",
			block:   newGitHubBlock,
			want:    "Host foo\n  X 1\nHost github.com\n  User b\n\nHost bar\n  Y 2\n",
		},
		{
			name:    "Append to file without match",
			content: "Host foo\n  X 1\n",
			block:   newGitHubBlock,
			want:    "Host foo\n  X 1\nHost github.com\n  User b\n",
		},
		{
			name:    "Append adds missing trailing newline",
			content: "Host foo\n  X 1",
			block:   newGitHubBlock,
			want:    "Host foo\n  X 1\nHost github.com\n  User b\n",
		},
		{
			name:    "Stanza at start of file",
			content: "Host github.com\n  User a\nHost bar\n  Y 2\n",
			block:   newGitHubBlock,
			want:    "Host github.com\n  User b\n\nHost bar\n  Y 2\n",
		},
		{
			name:    "Stanza at end of file",
			content: "Host foo\n  X 1\nHost github.com\n  User a\n  IdentityFile ~/.ssh/a\n",
			block:   newGitHubBlock,
			want:    "Host foo\n  X 1\nHost github.com\n  User b\n",
		},
		{
			name:    "Stanza at end of file without trailing newline",
			content: "Host foo\n  X 1\nHost github.com\n  User a",
			block:   newGitHubBlock,
			want:    "Host foo\n  X 1\nHost github.com\n  User b\n",
		},
		{
			name:    "Header is the last line",
			content: "Host foo\n  X 1\nHost github.com",
			block:   newGitHubBlock,
			want:    "Host foo\n  X 1\nHost github.com\n  User b\n",
		},
		{
			name:    "Case-insensitive header",
			content: "Host GitHub.com\n  User a\n",
			block:   newGitHubBlock,
			want:    newGitHubBlock,
		},
		{
			name:    "Indented header",
			content: "  Host github.com  \n  User a\nHost bar\n",
			block:   newGitHubBlock,
			want:    "Host github.com\n  User b\n\nHost bar\n",
		},
		{
			name:    "Block without trailing newline",
			content: "Host github.com\n  User a\nHost bar\n",
			block:   "Host github.com\n  User b",
			want:    "Host github.com\n  User b\n\nHost bar\n",
		},
		{
			name:    "Alias hosts are not matched",
			content: "Host github.com-work\n  User w\n",
			block:   newGitHubBlock,
			want:    "Host github.com-work\n  User w\nHost github.com\n  User b\n",
		},
		{
			name:    "Multi-pattern host line is not matched",
			content: "Host github.com gitlab.com\n  User m\n",
			block:   newGitHubBlock,
			want:    "Host github.com gitlab.com\n  User m\nHost github.com\n  User b\n",
		},
		{
			name:    "Commented header is not matched",
			content: "# Host github.com\n",
			block:   newGitHubBlock,
			want:    "# Host github.com\nHost github.com\n  User b\n",
		},
		{
			name:    "Only the first match is replaced",
			content: "Host github.com\n  User a\nHost github.com\n  User c\n",
			block:   newGitHubBlock,
			want:    "Host github.com\n  User b\n\nHost github.com\n  User c\n",
		},
		{
			name:    "Blank line before next stanza is not duplicated",
			content: "Host github.com\n  User a\n\nHost bar\n",
			block:   newGitHubBlock,
			want:    "Host github.com\n  User b\n\nHost bar\n",
		},
		{
			name:    "Lowercase or tab separated host keyword ends the stanza",
			content: "Host github.com\n  User a\nhost bar\n  Y 2\nHost\tbaz\n",
			block:   newGitHubBlock,
			want:    "Host github.com\n  User b\n\nhost bar\n  Y 2\nHost\tbaz\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ReplaceOrAppendHostBlock(tt.content, GitHubHost, tt.block)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplaceOrAppendHostBlockIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"Host foo\n  X 1",
		"Host foo\n  X 1\nHost github.com\n  User a\nHost bar\n  Y 2\n",
		"Host github.com\n  User a\n",
		"Host foo\n  X 1\nHost GitHub.com",
		"Include config.d/*\n\nHost *\n  AddKeysToAgent yes\n",
	}

	for _, in := range inputs {
		once := ReplaceOrAppendHostBlock(in, GitHubHost, newGitHubBlock)
		twice := ReplaceOrAppendHostBlock(once, GitHubHost, newGitHubBlock)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestReplaceOrAppendHostBlockPreservesSurroundings(t *testing.T) {
	t.Parallel()

	before := "# personal settings\r\nHost *\r\n\tServerAliveInterval 60\r\n"
	after := "Host bastion\r\n  HostName 10.0.0.1   # jump\r\n\r\nMatch all\r\n"
	content := before + "Host github.com\n  User a\n" + after

	got := ReplaceOrAppendHostBlock(content, GitHubHost, newGitHubBlock)

	require.True(t, strings.HasPrefix(got, before))
	require.True(t, strings.HasSuffix(got, after))
	assert.Equal(t, before+newGitHubBlock+"\n"+after, got)
}

func TestReplaceOrAppendHostBlockKeepsOriginalAsPrefix(t *testing.T) {
	t.Parallel()

	content := "Host foo\n  X 1\n\n# trailing comment\n"
	got := ReplaceOrAppendHostBlock(content, GitHubHost, newGitHubBlock)

	assert.True(t, strings.HasPrefix(got, content))
	assert.Equal(t, content+newGitHubBlock, got)
}

func TestRemoveHostBlock(t *testing.T) {
	t.Parallel()

	content := "Host foo\n  X 1\n\nHost github.com-work\n  User w\n\nHost bar\n  Y 2\n"

	got, found := RemoveHostBlock(content, AliasHost("work"))
	require.True(t, found)
	assert.Equal(t, "Host foo\n  X 1\n\nHost bar\n  Y 2\n", got)

	unchanged, found := RemoveHostBlock(got, AliasHost("work"))
	assert.False(t, found)
	assert.Equal(t, got, unchanged)
}

func TestHasHostBlock(t *testing.T) {
	t.Parallel()

	assert.True(t, HasHostBlock("Host foo\nhost GITHUB.COM\n", GitHubHost))
	assert.False(t, HasHostBlock("Host foo\n", GitHubHost))
	assert.False(t, HasHostBlock("", GitHubHost))
}
