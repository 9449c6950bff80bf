// Package auth builds token providers for registered accounts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/custodia-labs/gshell/internal/adapters/driven/oauth"
	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driven"
	"github.com/custodia-labs/gshell/internal/logger"
)

// Ensure Factory implements the interface.
var _ driven.TokenProviderFactory = (*Factory)(nil)

// Factory creates TokenProviders for accounts according to their auth method.
type Factory struct {
	tokens   driven.TokenStore
	endpoint oauth2.Endpoint
}

// Option configures a Factory.
type Option func(*Factory)

// WithOAuthEndpoint overrides the endpoint OAuth tokens are refreshed against.
func WithOAuthEndpoint(endpoint oauth2.Endpoint) Option {
	return func(f *Factory) {
		f.endpoint = endpoint
	}
}

// NewFactory creates a token provider factory.
func NewFactory(tokens driven.TokenStore, opts ...Option) *Factory {
	f := &Factory{
		tokens:   tokens,
		endpoint: googleoauth.Endpoint,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the TokenProvider for an account.
func (f *Factory) Create(ctx context.Context, account domain.Account, scopes []string) (driven.TokenProvider, error) {
	// Token sources outlive the command context that built them.
	ctx = context.WithoutCancel(ctx)

	switch account.AuthMethod {
	case domain.AuthMethodServiceAccount:
		return f.serviceAccount(ctx, account, scopes)
	case domain.AuthMethodOAuth:
		return f.oauth(ctx, account, scopes)
	case domain.AuthMethodADC:
		return f.adc(ctx, account, scopes)
	default:
		return nil, fmt.Errorf("%w: unknown auth method %q", domain.ErrInvalidInput, account.AuthMethod)
	}
}

// serviceAccount uses a JSON key with domain-wide delegation as the admin.
func (f *Factory) serviceAccount(ctx context.Context, account domain.Account, scopes []string) (driven.TokenProvider, error) {
	data, err := os.ReadFile(account.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read service account key: %w", domain.ErrAuthRequired, err)
	}

	cfg, err := googleoauth.JWTConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse service account key: %w", domain.ErrInvalidInput, err)
	}
	cfg.Subject = account.AdminEmail

	logger.Debug("service account %s acting as %s", cfg.Email, cfg.Subject)
	return newSourceProvider(cfg.TokenSource(ctx), account.Domain, domain.AuthMethodServiceAccount), nil
}

// oauth refreshes the stored installed-app token and writes refreshed
// tokens back to the store.
func (f *Factory) oauth(ctx context.Context, account domain.Account, scopes []string) (driven.TokenProvider, error) {
	stored, err := f.tokens.Get(ctx, account.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: run 'gshell account login %s'", domain.ErrAuthRequired, account.Domain)
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if stored.IsExpired() && !stored.HasRefreshToken() {
		return nil, fmt.Errorf("%w: run 'gshell account login %s'", domain.ErrAuthExpired, account.Domain)
	}

	cfg := oauth.Config(account, f.endpoint, "", scopes)
	ts := &storingTokenSource{
		ctx:       ctx,
		base:      cfg.TokenSource(ctx, oauth.ToToken(*stored)),
		store:     f.tokens,
		accountID: account.ID,
		last:      stored.AccessToken,
	}
	return newSourceProvider(ts, account.Domain, domain.AuthMethodOAuth), nil
}

// adc uses application default credentials.
func (f *Factory) adc(ctx context.Context, account domain.Account, scopes []string) (driven.TokenProvider, error) {
	creds, err := googleoauth.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: application default credentials: %w", domain.ErrAuthRequired, err)
	}
	return newSourceProvider(creds.TokenSource, account.Domain, domain.AuthMethodADC), nil
}
