package reseller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gshell/internal/connectors/google"
)

type request struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]interface{}
}

// recorder answers GET requests with getBody and everything else with {}.
type recorder struct {
	mu       sync.Mutex
	requests []request
	getBody  string
}

func (rec *recorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := request{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &req.Body)
	}
	rec.mu.Lock()
	rec.requests = append(rec.requests, req)
	body := "{}"
	if r.Method == http.MethodGet && rec.getBody != "" {
		body = rec.getBody
	}
	rec.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func (rec *recorder) last(t *testing.T) request {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.NotEmpty(t, rec.requests)
	return rec.requests[len(rec.requests)-1]
}

func (rec *recorder) count() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.requests)
}

func (r request) hasSuffix(suffix string) bool {
	return strings.HasSuffix(r.Path, suffix)
}

func newTestService(t *testing.T, getBody string) (*Service, *recorder) {
	t.Helper()
	rec := &recorder{getBody: getBody}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)

	api, err := google.NewResellerService(context.Background(), nil,
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return NewService(api, Config{PageSize: 50}), rec
}
