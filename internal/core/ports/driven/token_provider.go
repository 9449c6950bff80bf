package driven

import (
	"context"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle token refresh transparently.
type TokenProvider interface {
	// GetToken returns a valid access token.
	// If the current token is expired, it will be refreshed automatically.
	GetToken(ctx context.Context) (string, error)

	// AccountDomain returns the domain of the account the tokens belong to.
	AccountDomain() string

	// AuthMethod returns the authentication method (service_account, oauth, adc).
	AuthMethod() domain.AuthMethod

	// IsAuthenticated returns true if valid authentication is available.
	IsAuthenticated() bool
}

// TokenProviderFactory builds TokenProviders for accounts.
type TokenProviderFactory interface {
	// Create returns a TokenProvider for the account, requesting scopes.
	// Returns domain.ErrAuthRequired when an OAuth account has no stored token.
	Create(ctx context.Context, account domain.Account, scopes []string) (TokenProvider, error)
}
