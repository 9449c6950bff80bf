package driving

import (
	"context"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// AccountService manages registered Workspace accounts.
type AccountService interface {
	// Add validates and registers a new account.
	// Returns domain.ErrAlreadyExists if the domain is already registered.
	Add(ctx context.Context, account domain.Account) (*domain.Account, error)

	// Get retrieves an account by domain (case-insensitive).
	Get(ctx context.Context, domainName string) (*domain.Account, error)

	// List returns all registered accounts.
	List(ctx context.Context) ([]domain.Account, error)

	// Remove deletes an account and its stored tokens.
	Remove(ctx context.Context, domainName string) error

	// Resolve returns the account for domainName, or the default account
	// when domainName is empty. Returns domain.ErrNoAccount when neither exists.
	Resolve(ctx context.Context, domainName string) (*domain.Account, error)

	// SetDefault makes domainName the default account.
	SetDefault(ctx context.Context, domainName string) error
}
