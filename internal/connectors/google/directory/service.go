package directory

import (
	"fmt"
	"net/http"
	"strings"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

const apiName = "directory"

// Config binds a Service to an account.
type Config struct {
	// Domain completes bare names into addresses.
	Domain string
	// CustomerID is used for customer-scoped calls. Empty means my_customer.
	CustomerID string
	// PageSize is the maxResults sent with list requests.
	PageSize int
	// Limiter is waited on before every request. May be nil.
	Limiter *google.RateLimiter
	// HTTPClient is the authorized client behind api, used for requests
	// that need the raw response. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// Service is a Directory API client bound to one account.
type Service struct {
	api      *admin.Service
	http     *http.Client
	domain   string
	customer string
	pageSize int
	limiter  *google.RateLimiter
}

// NewService wraps a generated Directory client.
func NewService(api *admin.Service, cfg Config) *Service {
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > domain.MaxPageSize {
		pageSize = 100
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Service{
		api:      api,
		http:     hc,
		domain:   domain.NormalizeDomain(cfg.Domain),
		customer: domain.NormalizeCustomerID(cfg.CustomerID),
		pageSize: pageSize,
		limiter:  cfg.Limiter,
	}
}

// Domain returns the account domain.
func (s *Service) Domain() string {
	return s.domain
}

// CustomerID returns the account customer ID.
func (s *Service) CustomerID() string {
	return s.customer
}

// email completes a bare name with the account domain.
func (s *Service) email(name string) string {
	return domain.NormalizeEmail(name, s.domain)
}

// customerOr returns id, or the account customer when id is empty.
func (s *Service) customerOr(id string) string {
	if strings.TrimSpace(id) == "" {
		return s.customer
	}
	return strings.TrimSpace(id)
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	return nil
}

// oneOf upper-cases value and checks it against allowed. Empty is allowed.
func oneOf(name, value string, allowed ...string) (string, error) {
	if value == "" {
		return "", nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %s must be one of %s, got %q",
		domain.ErrInvalidInput, name, strings.Join(allowed, ", "), value)
}
