package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestDebug_GatedByVerbose(t *testing.T) {
	buf := withBuffer(t)

	SetVerbose(false)
	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("shown %d", 2)
	assert.Contains(t, buf.String(), "[DEBUG] shown 2")
}

func TestInfo_GatedByVerbose(t *testing.T) {
	buf := withBuffer(t)

	Info("hidden")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Info("shown")
	assert.Contains(t, buf.String(), "[INFO] shown")
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	buf := withBuffer(t)

	SetVerbose(false)
	Warn("recovered: %s", "bad document")
	assert.Contains(t, buf.String(), "[WARN] recovered: bad document")
}

func TestIsVerbose(t *testing.T) {
	withBuffer(t)

	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
