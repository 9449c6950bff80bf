package google

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	admin "google.golang.org/api/admin/directory/v1"
	reports "google.golang.org/api/admin/reports/v1"
	"google.golang.org/api/option"
	reseller "google.golang.org/api/reseller/v1"
	htransport "google.golang.org/api/transport/http"
)

// NewHTTPClient creates the authorized HTTP client a generated service
// would build for ts. Passing it back with option.WithHTTPClient lets a
// connector share one client between generated and raw requests.
func NewHTTPClient(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*http.Client, error) {
	hc, _, err := htransport.NewClient(ctx, withTokenSource(ts, opts)...)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	return hc, nil
}

// NewDirectoryService creates an Admin SDK Directory API service using the provided TokenSource.
// Extra options (endpoint, HTTP client) are appended after the token source.
func NewDirectoryService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*admin.Service, error) {
	svc, err := admin.NewService(ctx, withTokenSource(ts, opts)...)
	if err != nil {
		return nil, fmt.Errorf("create directory service: %w", err)
	}
	return svc, nil
}

// NewReportsService creates an Admin SDK Reports API service using the provided TokenSource.
func NewReportsService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*reports.Service, error) {
	svc, err := reports.NewService(ctx, withTokenSource(ts, opts)...)
	if err != nil {
		return nil, fmt.Errorf("create reports service: %w", err)
	}
	return svc, nil
}

// NewResellerService creates a Reseller API service using the provided TokenSource.
func NewResellerService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*reseller.Service, error) {
	svc, err := reseller.NewService(ctx, withTokenSource(ts, opts)...)
	if err != nil {
		return nil, fmt.Errorf("create reseller service: %w", err)
	}
	return svc, nil
}

func withTokenSource(ts oauth2.TokenSource, opts []option.ClientOption) []option.ClientOption {
	all := make([]option.ClientOption, 0, len(opts)+1)
	if ts != nil {
		all = append(all, option.WithTokenSource(ts))
	}
	return append(all, opts...)
}
