package reseller

import (
	"fmt"
	"strings"

	reseller "google.golang.org/api/reseller/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

const apiName = "reseller"

// Config configures a Service.
type Config struct {
	PageSize int
	Limiter  *google.RateLimiter
}

// Service is a Reseller API client.
type Service struct {
	api      *reseller.Service
	pageSize int
	limiter  *google.RateLimiter
}

// NewService wraps a generated Reseller client.
func NewService(api *reseller.Service, cfg Config) *Service {
	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	return &Service{api: api, pageSize: pageSize, limiter: cfg.Limiter}
}

func required(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	return nil
}

// oneOf returns the allowed value matching value case-insensitively.
func oneOf(name, value string, allowed ...string) (string, error) {
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(value), a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %s must be one of %s, got %q",
		domain.ErrInvalidInput, name, strings.Join(allowed, ", "), value)
}
