package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driven"
	"github.com/custodia-labs/gshell/internal/core/ports/driving"
	"github.com/custodia-labs/gshell/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService runs the OAuth installed-app login for OAuth accounts.
type AuthService struct {
	accounts driven.AccountStore
	tokens   driven.TokenStore
	client   driven.OAuthClient
}

// NewAuthService creates a new auth service.
func NewAuthService(accounts driven.AccountStore, tokens driven.TokenStore, client driven.OAuthClient) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokens:   tokens,
		client:   client,
	}
}

// BeginLogin prepares the consent URL for an OAuth account.
func (s *AuthService) BeginLogin(ctx context.Context, domainName, redirectURI string) (*domain.AuthRequest, error) {
	account, err := s.oauthAccount(ctx, domainName)
	if err != nil {
		return nil, err
	}

	state, verifier, err := newLoginSecrets()
	if err != nil {
		return nil, err
	}

	return &domain.AuthRequest{
		AccountID:   account.ID,
		URL:         s.client.AuthURL(*account, redirectURI, state, verifier),
		RedirectURI: redirectURI,
		State:       state,
		Verifier:    verifier,
	}, nil
}

// CompleteLogin exchanges the code and stores the resulting token.
func (s *AuthService) CompleteLogin(ctx context.Context, req *domain.AuthRequest, code string) error {
	if req == nil || code == "" {
		return fmt.Errorf("%w: authorization code is required", domain.ErrInvalidInput)
	}

	account, err := s.accounts.Get(ctx, req.AccountID)
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}

	token, err := s.client.Exchange(ctx, *account, code, req.RedirectURI, req.Verifier)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	if !token.HasRefreshToken() {
		logger.Warn("no refresh token returned for %s; the login will expire", account.Domain)
	}

	if err := s.tokens.Save(ctx, account.ID, *token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Logout deletes the stored token for the account.
func (s *AuthService) Logout(ctx context.Context, domainName string) error {
	account, err := s.accounts.GetByDomain(ctx, domain.NormalizeDomain(domainName))
	if err != nil {
		return fmt.Errorf("account %s: %w", domainName, err)
	}
	return s.tokens.Delete(ctx, account.ID)
}

func (s *AuthService) oauthAccount(ctx context.Context, domainName string) (*domain.Account, error) {
	d := domain.NormalizeDomain(domainName)
	account, err := s.accounts.GetByDomain(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", d, err)
	}
	if account.AuthMethod != domain.AuthMethodOAuth {
		return nil, fmt.Errorf("%w: account %s uses %s, not oauth", domain.ErrInvalidInput, d, account.AuthMethod)
	}
	return account, nil
}
