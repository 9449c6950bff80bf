package domain

import "time"

// AuthMethod identifies how an account obtains access tokens.
type AuthMethod string

const (
	// AuthMethodServiceAccount uses a service account key with domain-wide delegation.
	AuthMethodServiceAccount AuthMethod = "service_account"
	// AuthMethodOAuth uses an installed-app OAuth client and a stored refresh token.
	AuthMethodOAuth AuthMethod = "oauth"
	// AuthMethodADC uses Google application default credentials.
	AuthMethodADC AuthMethod = "adc"
)

// IsValid returns true if the auth method is recognised.
func (m AuthMethod) IsValid() bool {
	switch m {
	case AuthMethodServiceAccount, AuthMethodOAuth, AuthMethodADC:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m AuthMethod) String() string {
	return string(m)
}

// Description returns a human-readable description of the method.
func (m AuthMethod) Description() string {
	switch m {
	case AuthMethodServiceAccount:
		return "Service account (domain-wide delegation)"
	case AuthMethodOAuth:
		return "OAuth installed application"
	case AuthMethodADC:
		return "Application default credentials"
	default:
		return "Unknown"
	}
}

// OAuthToken represents stored OAuth credentials for an account.
type OAuthToken struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type"`
	// Expiry is when the access token expires.
	Expiry time.Time `json:"expiry,omitempty"`
}

// IsExpired returns true if the token has expired.
func (t *OAuthToken) IsExpired() bool {
	if t.Expiry.IsZero() {
		return false
	}
	return time.Now().After(t.Expiry)
}

// HasRefreshToken returns true if a refresh token is available.
func (t *OAuthToken) HasRefreshToken() bool {
	return t.RefreshToken != ""
}

// AuthRequest is an in-flight OAuth authorization for an account.
type AuthRequest struct {
	// AccountID is the account being authorized.
	AccountID string
	// URL is the consent page the user must visit.
	URL string
	// RedirectURI is the loopback address the code is returned to.
	RedirectURI string
	// State guards the callback against forgery.
	State string
	// Verifier is the PKCE code verifier.
	Verifier string
}
