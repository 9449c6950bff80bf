package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driven"
	"github.com/custodia-labs/gshell/internal/core/ports/driving"
)

// Ensure AccountService implements the interface.
var _ driving.AccountService = (*AccountService)(nil)

// AccountService manages registered Workspace accounts.
type AccountService struct {
	accounts driven.AccountStore
	tokens   driven.TokenStore
	settings driving.SettingsService
}

// NewAccountService creates a new account service.
func NewAccountService(
	accounts driven.AccountStore,
	tokens driven.TokenStore,
	settings driving.SettingsService,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		tokens:   tokens,
		settings: settings,
	}
}

// Add validates and registers a new account. The first account added
// becomes the default.
func (s *AccountService) Add(ctx context.Context, account domain.Account) (*domain.Account, error) {
	account.Normalize()
	if err := account.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.accounts.GetByDomain(ctx, account.Domain)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("account %s: %w", account.Domain, domain.ErrAlreadyExists)
	}

	now := time.Now()
	account.ID = uuid.NewString()
	account.CreatedAt = now
	account.UpdatedAt = now

	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	if settings.Domain.Default == "" {
		if err := s.settings.Set(domain.SettingDefaultDomain, account.Domain); err != nil {
			return nil, err
		}
	}

	return &account, nil
}

// Get retrieves an account by domain.
func (s *AccountService) Get(ctx context.Context, domainName string) (*domain.Account, error) {
	d := domain.NormalizeDomain(domainName)
	account, err := s.accounts.GetByDomain(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", d, err)
	}
	return account, nil
}

// List returns all registered accounts.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// Remove deletes an account and its stored token. If it was the default
// account the default is cleared.
func (s *AccountService) Remove(ctx context.Context, domainName string) error {
	account, err := s.Get(ctx, domainName)
	if err != nil {
		return err
	}

	if err := s.tokens.Delete(ctx, account.ID); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if err := s.accounts.Delete(ctx, account.ID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	settings, err := s.settings.Get()
	if err != nil {
		return err
	}
	if settings.Domain.Default == account.Domain {
		return s.settings.Unset(domain.SettingDefaultDomain)
	}
	return nil
}

// Resolve returns the account for domainName, falling back to the default
// domain when domainName is empty.
func (s *AccountService) Resolve(ctx context.Context, domainName string) (*domain.Account, error) {
	d := domain.NormalizeDomain(domainName)
	if d == "" {
		settings, err := s.settings.Get()
		if err != nil {
			return nil, err
		}
		d = settings.Domain.Default
	}
	if d == "" {
		return nil, fmt.Errorf("%w: pass --domain or run 'gshell account add'", domain.ErrNoAccount)
	}

	account, err := s.accounts.GetByDomain(ctx, d)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w for domain %s", domain.ErrNoAccount, d)
	}
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", d, err)
	}
	return account, nil
}

// SetDefault makes domainName the default account.
func (s *AccountService) SetDefault(ctx context.Context, domainName string) error {
	account, err := s.Get(ctx, domainName)
	if err != nil {
		return err
	}
	return s.settings.Set(domain.SettingDefaultDomain, account.Domain)
}
