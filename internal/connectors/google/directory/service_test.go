package directory

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// request is one call seen by the fake Directory endpoint.
type request struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]interface{}
}

// fakeAPI records requests and answers with the response registered for the
// method, path suffix and page token, or {} when none matches.
type fakeAPI struct {
	mu        sync.Mutex
	requests  []request
	responses map[string]fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

func (f *fakeAPI) on(method, pathSuffix string, status int, body string) {
	f.onPage(method, pathSuffix, "", status, body)
}

func (f *fakeAPI) onPage(method, pathSuffix, pageToken string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[method+" "+pathSuffix+"#"+pageToken] = fakeResponse{status: status, body: body}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := request{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &req.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	resp := fakeResponse{status: http.StatusOK, body: `{}`}
	for key, candidate := range f.responses {
		method, rest, _ := strings.Cut(key, " ")
		suffix, token, _ := strings.Cut(rest, "#")
		if method == r.Method && strings.HasSuffix(r.URL.Path, suffix) && token == req.Query.Get("pageToken") {
			resp = candidate
			break
		}
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeAPI) last(t *testing.T) request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func (f *fakeAPI) all() []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]request(nil), f.requests...)
}

// newTestService returns a Service for example.com backed by a fake endpoint.
func newTestService(t *testing.T) (*Service, *fakeAPI) {
	t.Helper()
	fake := &fakeAPI{responses: make(map[string]fakeResponse)}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	api, err := google.NewDirectoryService(context.Background(), nil,
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return NewService(api, Config{Domain: "Example.com", PageSize: 2, HTTPClient: srv.Client()}), fake
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(nil, Config{Domain: " Example.COM ", PageSize: 10000})

	assert.Equal(t, "example.com", svc.Domain())
	assert.Equal(t, domain.DefaultCustomerID, svc.CustomerID())
	assert.Equal(t, 100, svc.pageSize)
}

func TestOneOf(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{name: "empty allowed", value: "", want: ""},
		{name: "canonical case", value: "givenname", want: "givenName"},
		{name: "exact", value: "email", want: "email"},
		{name: "unknown", value: "age", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oneOf("order by", tt.value, "email", "familyName", "givenName")
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCustomerOr(t *testing.T) {
	svc := NewService(nil, Config{Domain: "example.com", CustomerID: "C0123"})

	assert.Equal(t, "C0123", svc.customerOr(""))
	assert.Equal(t, "C999", svc.customerOr(" C999 "))
}

func TestGetCustomer_DefaultsToAccountCustomer(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodGet, "/customers/my_customer", http.StatusOK,
		`{"id":"C01","customerDomain":"example.com","postalAddress":{"organizationName":"Example","countryCode":"NL"}}`)

	c, err := svc.GetCustomer(context.Background(), "")
	require.NoError(t, err)

	row := NewCustomerRow(c)
	assert.Equal(t, "C01", row.ID)
	assert.Equal(t, "Example", row.Organization)
	assert.Equal(t, "NL", row.CountryCode)
}
