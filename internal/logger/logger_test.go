package logger

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureVerbose(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verbose)
	ResetStats()
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
		ResetStats()
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	captureVerbose(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := captureVerbose(t, true)

	Debug("client cache miss: %s", "directory")
	Warn("no refresh token")

	assert.Equal(t, "[DEBUG] client cache miss: directory\n[WARN] no refresh token\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	buf := captureVerbose(t, false)

	Debug("test message")
	Warn("test warning")

	assert.Zero(t, buf.Len())
}

func TestCall(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		want   string
	}{
		{"with target", "jdoe@example.com", nil, `^\[API\] directory users.get jdoe@example.com \(\d+m?s\)\n$`},
		{"without target", "", nil, `^\[API\] directory users.get \(\d+m?s\)\n$`},
		{"failed", "jdoe@example.com", errors.New("boom"), `^\[API\] directory users.get jdoe@example.com \(\d+m?s\) failed: boom\n$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureVerbose(t, true)

			done := Call("directory", "users.get", tt.target)
			done(tt.err)

			assert.Regexp(t, tt.want, buf.String())
		})
	}
}

func TestCall_CountsWhenQuiet(t *testing.T) {
	buf := captureVerbose(t, false)

	Call("reports", "activities.list", "")(nil)
	Call("reports", "activities.list", "")(errors.New("denied"))

	total, failed := Stats()
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, failed)
	assert.Zero(t, buf.Len())

	ResetStats()
	total, failed = Stats()
	assert.Zero(t, total)
	assert.Zero(t, failed)
}

func TestConcurrentAccess(t *testing.T) {
	captureVerbose(t, false)
	SetOutput(io.Discard)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(true)
			Debug("concurrent %d", i)
			Call("reseller", "subscriptions.get", "C1/S1")(nil)
			IsVerbose()
			SetVerbose(false)
		}()
	}
	wg.Wait()

	total, _ := Stats()
	assert.Equal(t, 10, total)
}
