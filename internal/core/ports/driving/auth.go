package driving

import (
	"context"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// AuthService runs the interactive OAuth login for an account.
type AuthService interface {
	// BeginLogin prepares an authorization request for the account registered
	// under domainName. The caller sends the user to the returned URL.
	BeginLogin(ctx context.Context, domainName, redirectURI string) (*domain.AuthRequest, error)

	// CompleteLogin exchanges the authorization code and stores the token.
	CompleteLogin(ctx context.Context, req *domain.AuthRequest, code string) error

	// Logout deletes the stored token for the account.
	Logout(ctx context.Context, domainName string) error
}
