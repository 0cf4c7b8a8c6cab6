package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer

	quiet := New(&buf, false)
	quiet.Debug("hidden")
	quiet.Info("shown", "path", "/tmp/x")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "path=/tmp/x")

	buf.Reset()
	verbose := New(&buf, true)
	verbose.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNewNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Warn("plain")
	assert.NotContains(t, buf.String(), "\x1b[")
}
