package driven

import (
	"context"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// TokenStore persists OAuth tokens, one per account.
type TokenStore interface {
	// Save stores the token for an account, replacing any previous token.
	Save(ctx context.Context, accountID string, token domain.OAuthToken) error

	// Get retrieves the token for an account.
	// Returns domain.ErrNotFound if no token is stored.
	Get(ctx context.Context, accountID string) (*domain.OAuthToken, error)

	// Delete removes the token for an account. Missing tokens are not an error.
	Delete(ctx context.Context, accountID string) error
}
