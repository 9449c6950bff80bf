package driven

import (
	"context"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// OAuthClient performs the OAuth installed-app exchange for an account.
type OAuthClient interface {
	// AuthURL builds the consent URL with a PKCE S256 challenge for verifier.
	AuthURL(account domain.Account, redirectURI, state, verifier string) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, account domain.Account, code, redirectURI, verifier string) (*domain.OAuthToken, error)
}
