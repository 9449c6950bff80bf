package reports

import (
	"fmt"
	"strings"
	"time"

	reports "google.golang.org/api/admin/reports/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

const apiName = "reports"

// DefaultUserKey selects every user in activity and usage requests.
const DefaultUserKey = "all"

const dateLayout = "2006-01-02"

// Config binds a Service to an account.
type Config struct {
	Domain     string
	CustomerID string
	PageSize   int
	Limiter    *google.RateLimiter
}

// Service is a Reports API client bound to one account.
type Service struct {
	api      *reports.Service
	domain   string
	customer string
	pageSize int
	limiter  *google.RateLimiter
}

// NewService wraps a generated Reports client.
func NewService(api *reports.Service, cfg Config) *Service {
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > domain.MaxPageSize {
		pageSize = 100
	}
	return &Service{
		api:      api,
		domain:   domain.NormalizeDomain(cfg.Domain),
		customer: strings.TrimSpace(cfg.CustomerID),
		pageSize: pageSize,
		limiter:  cfg.Limiter,
	}
}

// userKey returns "all" for an empty key and completes bare names otherwise.
func (s *Service) userKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" || strings.EqualFold(key, DefaultUserKey) {
		return DefaultUserKey
	}
	return domain.NormalizeEmail(key, s.domain)
}

// customerID returns the customer to send, or "" when the account uses my_customer.
// The Reports API only accepts real customer IDs.
func (s *Service) customerID() string {
	if s.customer == "" || s.customer == domain.DefaultCustomerID {
		return ""
	}
	return s.customer
}

// ParseDate checks a report date in YYYY-MM-DD form.
func ParseDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", domain.ErrInvalidInput, date)
	}
	return date, nil
}

// parseTime checks an optional RFC 3339 timestamp.
func parseTime(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return "", fmt.Errorf("%w: %s must be RFC 3339, got %q", domain.ErrInvalidInput, name, value)
	}
	return value, nil
}
