package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

func TestServiceFactories_UseEndpointOption(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	opts := []option.ClientOption{option.WithEndpoint(srv.URL + "/"), option.WithHTTPClient(srv.Client())}

	dir, err := NewDirectoryService(ctx, nil, opts...)
	require.NoError(t, err)
	_, err = dir.Customers.Get("my_customer").Do()
	require.NoError(t, err)

	rep, err := NewReportsService(ctx, nil, opts...)
	require.NoError(t, err)
	_, err = rep.CustomerUsageReports.Get("2024-01-01").Do()
	require.NoError(t, err)

	res, err := NewResellerService(ctx, nil, opts...)
	require.NoError(t, err)
	_, err = res.Customers.Get("C01").Do()
	require.NoError(t, err)

	require.Len(t, paths, 3)
	assert.True(t, strings.HasSuffix(paths[0], "/customers/my_customer"), paths[0])
	assert.True(t, strings.HasSuffix(paths[1], "/usage/dates/2024-01-01"), paths[1])
	assert.True(t, strings.HasSuffix(paths[2], "/customers/C01"), paths[2])
}

func TestNewHTTPClient_AuthorizesRequests(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok", TokenType: "Bearer"})
	hc, err := NewHTTPClient(context.Background(), ts)
	require.NoError(t, err)

	resp, err := hc.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "Bearer tok", auth)
}

func TestNewHTTPClient_KeepsGivenClient(t *testing.T) {
	given := &http.Client{}

	hc, err := NewHTTPClient(context.Background(), nil, option.WithHTTPClient(given))
	require.NoError(t, err)
	assert.Same(t, given, hc)
}
