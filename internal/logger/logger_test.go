package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestDebug_GatedOnVerbose(t *testing.T) {
	buf := captureOutput(t)

	Debug("fetching %s", "projects")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("fetching %s", "projects")
	assert.Contains(t, buf.String(), "[DEBUG] fetching projects")
}

func TestWarn_AlwaysPrints(t *testing.T) {
	buf := captureOutput(t)

	Warn("stale cache for %s", "strategies")
	assert.Contains(t, buf.String(), "[WARN] stale cache for strategies")
}

func TestSection_GatedOnVerbose(t *testing.T) {
	buf := captureOutput(t)

	Section("Search Execution")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Section("Search Execution")
	assert.Contains(t, buf.String(), "=== Search Execution ===")
}

func TestIsVerbose(t *testing.T) {
	captureOutput(t)

	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
}
