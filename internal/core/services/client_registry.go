package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/connectors/google/directory"
	"github.com/custodia-labs/gshell/internal/connectors/google/reports"
	"github.com/custodia-labs/gshell/internal/connectors/google/reseller"
	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driven"
	"github.com/custodia-labs/gshell/internal/core/ports/driving"
	"github.com/custodia-labs/gshell/internal/logger"
)

// ClientRegistry builds API clients per account and caches them for the
// life of the process. One client exists per domain and API.
type ClientRegistry struct {
	accounts  driving.AccountService
	settings  driving.SettingsService
	providers driven.TokenProviderFactory
	opts      []option.ClientOption

	mu        sync.Mutex
	directory map[string]*directory.Service
	reports   map[string]*reports.Service
	reseller  map[string]*reseller.Service
	limiters  map[google.ServiceType]*google.RateLimiter
}

// NewClientRegistry creates an empty registry. opts are passed to every
// generated client, which lets tests point them at a local endpoint.
func NewClientRegistry(
	accounts driving.AccountService,
	settings driving.SettingsService,
	providers driven.TokenProviderFactory,
	opts ...option.ClientOption,
) *ClientRegistry {
	r := &ClientRegistry{
		accounts:  accounts,
		settings:  settings,
		providers: providers,
		opts:      opts,
	}
	r.reset()
	return r
}

// Directory returns the Directory client for domainName. An empty name
// selects the default account.
func (r *ClientRegistry) Directory(ctx context.Context, domainName string) (*directory.Service, error) {
	cache := func() map[string]*directory.Service { return r.directory }
	return cached(ctx, r, cache, google.ServiceDirectory, domainName, google.DirectoryScopes,
		func(env clientEnv) (*directory.Service, error) {
			hc, err := google.NewHTTPClient(ctx, env.tokens, r.opts...)
			if err != nil {
				return nil, err
			}
			opts := append(slices.Clone(r.opts), option.WithHTTPClient(hc))
			api, err := google.NewDirectoryService(ctx, nil, opts...)
			if err != nil {
				return nil, err
			}
			return directory.NewService(api, directory.Config{
				Domain:     env.account.Domain,
				CustomerID: env.account.CustomerID,
				PageSize:   env.settings.API.PageSize,
				Limiter:    env.limiter,
				HTTPClient: hc,
			}), nil
		})
}

// Reports returns the Reports client for domainName.
func (r *ClientRegistry) Reports(ctx context.Context, domainName string) (*reports.Service, error) {
	cache := func() map[string]*reports.Service { return r.reports }
	return cached(ctx, r, cache, google.ServiceReports, domainName, google.ReportsScopes,
		func(env clientEnv) (*reports.Service, error) {
			api, err := google.NewReportsService(ctx, env.tokens, r.opts...)
			if err != nil {
				return nil, err
			}
			return reports.NewService(api, reports.Config{
				Domain:     env.account.Domain,
				CustomerID: env.account.CustomerID,
				PageSize:   env.settings.API.PageSize,
				Limiter:    env.limiter,
			}), nil
		})
}

// Reseller returns the Reseller client for domainName.
func (r *ClientRegistry) Reseller(ctx context.Context, domainName string) (*reseller.Service, error) {
	cache := func() map[string]*reseller.Service { return r.reseller }
	return cached(ctx, r, cache, google.ServiceReseller, domainName, google.ResellerScopes,
		func(env clientEnv) (*reseller.Service, error) {
			api, err := google.NewResellerService(ctx, env.tokens, r.opts...)
			if err != nil {
				return nil, err
			}
			return reseller.NewService(api, reseller.Config{
				PageSize: env.settings.API.PageSize,
				Limiter:  env.limiter,
			}), nil
		})
}

// Reset drops every cached client and limiter.
func (r *ClientRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
}

func (r *ClientRegistry) reset() {
	r.directory = make(map[string]*directory.Service)
	r.reports = make(map[string]*reports.Service)
	r.reseller = make(map[string]*reseller.Service)
	r.limiters = make(map[google.ServiceType]*google.RateLimiter)
}

// clientEnv is what a client constructor needs.
type clientEnv struct {
	account  *domain.Account
	settings *domain.Settings
	tokens   oauth2.TokenSource
	limiter  *google.RateLimiter
}

// cached returns the client stored in the map selected by cache for the
// resolved domain, building it with build on a miss. The registry lock is held throughout so that
// concurrent callers share one client.
func cached[T any](
	ctx context.Context,
	r *ClientRegistry,
	cache func() map[string]T,
	service google.ServiceType,
	domainName string,
	defaultScopes []string,
	build func(clientEnv) (T, error),
) (T, error) {
	var zero T

	account, err := r.accounts.Resolve(ctx, domainName)
	if err != nil {
		return zero, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m := cache()
	if client, ok := m[account.Domain]; ok {
		logger.Debug("client cache hit: %s %s", service, account.Domain)
		return client, nil
	}
	logger.Debug("client cache miss: %s %s", service, account.Domain)

	settings, err := r.settings.Get()
	if err != nil {
		return zero, fmt.Errorf("load settings: %w", err)
	}

	scopes := defaultScopes
	if len(account.Scopes) > 0 {
		scopes = account.Scopes
	}
	provider, err := r.providers.Create(ctx, *account, scopes)
	if err != nil {
		return zero, fmt.Errorf("authenticate %s: %w", account.Domain, err)
	}

	limiter, ok := r.limiters[service]
	if !ok {
		limiter = google.NewRateLimiterWithConfig(google.RateLimitConfigFor(service, settings.RateLimit))
		r.limiters[service] = limiter
	}

	client, err := build(clientEnv{
		account:  account,
		settings: settings,
		tokens:   google.NewTokenSource(ctx, provider),
		limiter:  limiter,
	})
	if err != nil {
		return zero, err
	}
	m[account.Domain] = client
	return client, nil
}
