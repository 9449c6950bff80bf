// Package oauth implements the OAuth installed-app exchange against Google.
package oauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.OAuthClient = (*Client)(nil)

// Client performs authorization code exchanges with PKCE.
type Client struct {
	endpoint oauth2.Endpoint
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the Google OAuth endpoint.
func WithEndpoint(endpoint oauth2.Endpoint) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewClient creates a client for Google's OAuth endpoint.
func NewClient(opts ...Option) *Client {
	c := &Client{endpoint: googleoauth.Endpoint}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scopes returns the scopes requested for an account: its own list when set,
// otherwise every Admin SDK scope gshell uses.
func Scopes(account domain.Account) []string {
	if len(account.Scopes) > 0 {
		return account.Scopes
	}
	return google.AllScopes()
}

// Config builds the oauth2 configuration for an OAuth account.
func Config(account domain.Account, endpoint oauth2.Endpoint, redirectURI string, scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     account.ClientID,
		ClientSecret: account.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURI,
		Scopes:       scopes,
	}
}

// AuthURL builds the consent URL. Offline access and forced consent make
// Google return a refresh token on every login.
func (c *Client) AuthURL(account domain.Account, redirectURI, state, verifier string) string {
	cfg := Config(account, c.endpoint, redirectURI, Scopes(account))
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)
}

// Exchange trades an authorization code for tokens.
func (c *Client) Exchange(
	ctx context.Context,
	account domain.Account,
	code, redirectURI, verifier string,
) (*domain.OAuthToken, error) {
	cfg := Config(account, c.endpoint, redirectURI, Scopes(account))
	tok, err := cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	t := FromToken(tok)
	return &t, nil
}

// FromToken converts an oauth2 token to its stored form.
func FromToken(tok *oauth2.Token) domain.OAuthToken {
	return domain.OAuthToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.Type(),
		Expiry:       tok.Expiry,
	}
}

// ToToken converts a stored token to an oauth2 token.
func ToToken(t domain.OAuthToken) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
		Expiry:       t.Expiry,
	}
}
