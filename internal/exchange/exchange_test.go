package exchange

import (
	"bytes"
	"strings"
	"testing"

	"github.com/byterings/ghp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exportStore() *config.Store {
	store := config.NewStore("/ssh/config", "/ghp")
	store.AddProfile("work", config.Profile{Username: "octo-work", Email: "octo@work.example", SSHKeyPath: "/keys/work"})
	store.AddProfile("personal", config.Profile{Username: "octo", Email: "octo@example.com", SSHKeyPath: "/keys/personal"})
	return store
}

func TestExportImport(t *testing.T) {
	t.Parallel()

	for _, format := range Formats {
		format := format
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, Export(&buf, format, exportStore()))

			doc, err := Decode(&buf, format)
			require.NoError(t, err)

			target := config.NewStore("/ssh/config", "/ghp")
			target.AddProfile("work", config.Profile{Username: "stale"})
			target.AddProfile("oss", config.Profile{Username: "kept"})

			names := Import(target, doc)
			assert.Equal(t, []string{"personal", "work"}, names)
			assert.Equal(t, []string{"oss", "personal", "work"}, target.Names())
			assert.Equal(t, "octo-work", target.Profiles["work"].Username)
			assert.Equal(t, "/keys/personal", target.Profiles["personal"].SSHKeyPath)
		})
	}
}

func TestExportTOMLShape(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatTOML, exportStore()))

	out := buf.String()
	assert.Contains(t, out, "[profiles.personal]")
	assert.Contains(t, out, `ssh_key = "/keys/work"`)
	assert.Less(t, strings.Index(out, "personal"), strings.Index(out, "[profiles.work]"))
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	in := "profiles:\n  work:\n    username: octo-work\n    email: octo@work.example\n    ssh_key: ~/.ssh/work\n"
	doc, err := Decode(strings.NewReader(in), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, config.Profile{Username: "octo-work", Email: "octo@work.example", SSHKeyPath: "~/.ssh/work"}, doc.Profiles["work"])
}

func TestDecodeEmptyYAML(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, doc.Profiles)
}

func TestDecodeRejectsBadNames(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"profiles": {"my work": {"username": "x"}}}`), FormatJSON)
	assert.Error(t, err)
}

func TestDecodeRejectsMultilineValues(t *testing.T) {
	t.Parallel()

	input := `{"profiles":{"work":{"username":"octo\n  ProxyCommand evil\nHost github.com","email":"a@b.co","ssh_key":"/k"}}}`
	_, err := Decode(strings.NewReader(input), FormatJSON)
	require.ErrorIs(t, err, config.ErrInvalidValue)
	assert.Contains(t, err.Error(), "work")

	input = "[profiles.work]\nusername = \"octo\"\nemail = \"a@b.co\\n[admin]\"\nssh_key = \"/k\"\n"
	_, err = Decode(strings.NewReader(input), FormatTOML)
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestDecodeTrimsValues(t *testing.T) {
	t.Parallel()

	doc, err := Decode(strings.NewReader(`{"profiles":{"work":{"username":" octo ","email":"octo@work.example","ssh_key":"/k "}}}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, config.Profile{Username: "octo", Email: "octo@work.example", SSHKeyPath: "/k"}, doc.Profiles["work"])
}

func TestDecodeInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("profiles = ["), FormatTOML)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("{"), FormatJSON)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "toml", want: FormatTOML},
		{in: "YAML", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: " json ", want: FormatJSON},
		{in: "ini", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	got, err := FormatFromPath("/tmp/profiles.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, got)

	_, err = FormatFromPath("/tmp/profiles")
	assert.Error(t, err)
}
