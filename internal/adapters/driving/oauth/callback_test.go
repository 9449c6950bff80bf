package oauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, state string) *CallbackServer {
	t.Helper()
	s := NewCallbackServer(0, state)
	require.NoError(t, s.Start())
	t.Cleanup(func() { _ = s.Stop() })
	return s
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestCallbackServer_StartAssignsPort(t *testing.T) {
	s := startServer(t, "state")

	assert.NotZero(t, s.Port())
	assert.Equal(t, fmt.Sprintf("http://127.0.0.1:%d/callback", s.Port()), s.RedirectURI())
}

func TestCallbackServer_Success(t *testing.T) {
	s := startServer(t, "state-1")

	body := get(t, s.RedirectURI()+"?state=state-1&code=auth-code")
	assert.Contains(t, body, "Authorization successful")

	code, err := s.WaitForCode(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "auth-code", code)
}

func TestCallbackServer_Failures(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr string
	}{
		{name: "state mismatch", query: "?state=other&code=c", wantErr: "state mismatch"},
		{name: "missing code", query: "?state=s", wantErr: "no authorization code"},
		{name: "provider error", query: "?error=access_denied&error_description=nope", wantErr: "access_denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := startServer(t, "s")

			body := get(t, s.RedirectURI()+tt.query)
			assert.Contains(t, body, "Authorization failed")

			_, err := s.WaitForCode(waitCtx(t))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCallbackServer_EscapesMessage(t *testing.T) {
	s := startServer(t, "s")

	body := get(t, s.RedirectURI()+"?error=x&error_description=%3Cscript%3E")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestCallbackServer_WaitForCodeContextDone(t *testing.T) {
	s := startServer(t, "s")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.WaitForCode(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallbackServer_StopNotStarted(t *testing.T) {
	s := NewCallbackServer(0, "s")
	assert.NoError(t, s.Stop())
}

func TestCallbackServer_StopTwice(t *testing.T) {
	s := NewCallbackServer(0, "s")
	require.NoError(t, s.Start())

	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())
}
