package driven

import (
	"context"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// AccountStore persists registered Workspace accounts.
type AccountStore interface {
	// Save stores an account. Creates if new, updates if exists.
	Save(ctx context.Context, account domain.Account) error

	// Get retrieves an account by ID.
	// Returns domain.ErrNotFound if the account does not exist.
	Get(ctx context.Context, id string) (*domain.Account, error)

	// GetByDomain retrieves an account by its lower-cased domain.
	// Returns domain.ErrNotFound if no account is registered for the domain.
	GetByDomain(ctx context.Context, domainName string) (*domain.Account, error)

	// List returns all accounts ordered by domain.
	List(ctx context.Context) ([]domain.Account, error)

	// Delete removes an account by ID.
	Delete(ctx context.Context, id string) error
}
