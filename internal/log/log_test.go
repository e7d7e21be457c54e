package log

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, level Level, fn func()) string {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})

	fn()
	return buf.String()
}

func TestInfoFormatsKeyValues(t *testing.T) {
	out := capture(t, LevelInfo, func() {
		Info("month loaded", "month", "2024-06", "events", 3)
	})

	assert.Contains(t, out, "[INFO] month loaded")
	assert.Contains(t, out, "month=2024-06")
	assert.Contains(t, out, "events=3")
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	out := capture(t, LevelInfo, func() {
		Debug("noise")
	})
	assert.Empty(t, out)
}

func TestErrorIncludesErr(t *testing.T) {
	out := capture(t, LevelError, func() {
		Error("fetch failed", errors.New("boom"), "month", "2024-06")
	})

	assert.Contains(t, out, "[ERROR] fetch failed")
	assert.Contains(t, out, "err=boom")
	assert.Contains(t, out, "month=2024-06")
}

func TestOddTrailingArgIgnored(t *testing.T) {
	out := capture(t, LevelInfo, func() {
		Info("msg", "key", "value", "dangling")
	})
	assert.Contains(t, out, "key=value")
	assert.NotContains(t, out, "dangling")
}
