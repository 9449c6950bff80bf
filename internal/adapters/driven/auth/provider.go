package auth

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/gshell/internal/adapters/driven/oauth"
	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driven"
	"github.com/custodia-labs/gshell/internal/logger"
)

// Ensure sourceProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*sourceProvider)(nil)

// sourceProvider adapts an oauth2.TokenSource to driven.TokenProvider.
type sourceProvider struct {
	ts     oauth2.TokenSource
	domain string
	method domain.AuthMethod
}

func newSourceProvider(ts oauth2.TokenSource, domainName string, method domain.AuthMethod) *sourceProvider {
	return &sourceProvider{
		ts:     oauth2.ReuseTokenSource(nil, ts),
		domain: domainName,
		method: method,
	}
}

// GetToken returns a valid access token, refreshing if necessary.
func (p *sourceProvider) GetToken(_ context.Context) (string, error) {
	tok, err := p.ts.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAuthExpired, err)
	}
	return tok.AccessToken, nil
}

// AccountDomain returns the domain the tokens act for.
func (p *sourceProvider) AccountDomain() string {
	return p.domain
}

// AuthMethod returns the authentication method.
func (p *sourceProvider) AuthMethod() domain.AuthMethod {
	return p.method
}

// IsAuthenticated returns true if a valid token can be obtained.
func (p *sourceProvider) IsAuthenticated() bool {
	tok, err := p.ts.Token()
	return err == nil && tok.Valid()
}

// storingTokenSource persists every token that differs from the last one
// seen, so refreshed OAuth tokens survive the process.
type storingTokenSource struct {
	ctx       context.Context
	base      oauth2.TokenSource
	store     driven.TokenStore
	accountID string

	mu   sync.Mutex
	last string
}

// Token implements oauth2.TokenSource.
func (s *storingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken == s.last {
		return tok, nil
	}
	if err := s.store.Save(s.ctx, s.accountID, oauth.FromToken(tok)); err != nil {
		return nil, fmt.Errorf("save refreshed token: %w", err)
	}
	logger.Debug("stored refreshed token for account %s", s.accountID)
	s.last = tok.AccessToken
	return tok, nil
}
