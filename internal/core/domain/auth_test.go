package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthMethod_IsValid(t *testing.T) {
	for _, m := range []AuthMethod{AuthMethodServiceAccount, AuthMethodOAuth, AuthMethodADC} {
		assert.True(t, m.IsValid(), m)
		assert.NotEqual(t, "Unknown", m.Description(), m)
	}
	assert.False(t, AuthMethod("pat").IsValid())
	assert.False(t, AuthMethod("").IsValid())
	assert.Equal(t, "Unknown", AuthMethod("pat").Description())
}

func TestOAuthToken_IsExpired(t *testing.T) {
	tests := []struct {
		name    string
		expiry  time.Time
		expired bool
	}{
		{"zero expiry never expires", time.Time{}, false},
		{"future", time.Now().Add(time.Hour), false},
		{"past", time.Now().Add(-time.Minute), true},
		{"long past", time.Now().AddDate(-1, 0, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := &OAuthToken{AccessToken: "a", Expiry: tt.expiry}
			assert.Equal(t, tt.expired, token.IsExpired())
		})
	}
}

func TestOAuthToken_HasRefreshToken(t *testing.T) {
	assert.True(t, (&OAuthToken{RefreshToken: "r"}).HasRefreshToken())
	assert.False(t, (&OAuthToken{AccessToken: "a"}).HasRefreshToken())
}
