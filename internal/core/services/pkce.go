package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
)

// stateLength is the number of random bytes in an OAuth state parameter.
const stateLength = 32

// newLoginSecrets returns a fresh state parameter and PKCE code verifier.
func newLoginSecrets() (state, verifier string, err error) {
	state, err = generateState()
	if err != nil {
		return "", "", fmt.Errorf("generate state: %w", err)
	}
	return state, oauth2.GenerateVerifier(), nil
}

// generateState creates a random state parameter for CSRF protection.
func generateState() (string, error) {
	bytes := make([]byte, stateLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
