package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/gshell/internal/core/ports/driven"
	"github.com/custodia-labs/gshell/internal/logger"
)

// accountTokenSource hands a generated client the access tokens of one
// account. Each Token call asks the provider, which refreshes as needed.
type accountTokenSource struct {
	provider driven.TokenProvider
	ctx      context.Context
}

// NewTokenSource wraps provider as an oauth2.TokenSource. ctx is detached
// from cancellation since cached clients outlive the command that built them.
func NewTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return &accountTokenSource{
		provider: provider,
		ctx:      context.WithoutCancel(ctx),
	}
}

// Token returns a bearer token for the account. Failures name the account.
func (s *accountTokenSource) Token() (*oauth2.Token, error) {
	account := s.provider.AccountDomain()
	logger.Debug("access token: %s (%s)", account, s.provider.AuthMethod())

	accessToken, err := s.provider.GetToken(s.ctx)
	if err != nil {
		return nil, fmt.Errorf("access token for %s: %w", account, err)
	}
	return &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}, nil
}
