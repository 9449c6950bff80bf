package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driven"
)

// Ensure TokenStore implements the interface.
var _ driven.TokenStore = (*TokenStore)(nil)

// TokenStore is an in-memory implementation of driven.TokenStore for testing.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]domain.OAuthToken
}

// NewTokenStore creates a new in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens: make(map[string]domain.OAuthToken),
	}
}

// Save stores the token for an account.
func (s *TokenStore) Save(_ context.Context, accountID string, token domain.OAuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[accountID] = token
	return nil
}

// Get retrieves the token for an account.
func (s *TokenStore) Get(_ context.Context, accountID string) (*domain.OAuthToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token, ok := s.tokens[accountID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &token, nil
}

// Delete removes the token for an account.
func (s *TokenStore) Delete(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, accountID)
	return nil
}
