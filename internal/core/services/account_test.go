package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gshell/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

type accountFixture struct {
	service  *AccountService
	accounts *memory.AccountStore
	tokens   *memory.TokenStore
	settings *SettingsService
}

func newAccountFixture() accountFixture {
	accounts := memory.NewAccountStore()
	tokens := memory.NewTokenStore()
	settings := NewSettingsService(memory.NewConfigStore())
	return accountFixture{
		service:  NewAccountService(accounts, tokens, settings),
		accounts: accounts,
		tokens:   tokens,
		settings: settings,
	}
}

func adcAccount(d string) domain.Account {
	return domain.Account{Domain: d, AuthMethod: domain.AuthMethodADC}
}

func TestAccountService_Add(t *testing.T) {
	f := newAccountFixture()

	account, err := f.service.Add(context.Background(), adcAccount(" Example.COM "))

	require.NoError(t, err)
	assert.NotEmpty(t, account.ID)
	assert.Equal(t, "example.com", account.Domain)
	assert.Equal(t, domain.DefaultCustomerID, account.CustomerID)
	assert.False(t, account.CreatedAt.IsZero())

	settings, err := f.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "example.com", settings.Domain.Default)
}

func TestAccountService_Add_KeepsExistingDefault(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	_, err := f.service.Add(ctx, adcAccount("first.com"))
	require.NoError(t, err)
	_, err = f.service.Add(ctx, adcAccount("second.com"))
	require.NoError(t, err)

	settings, err := f.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, "first.com", settings.Domain.Default)
}

func TestAccountService_Add_RejectsDuplicate(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	_, err := f.service.Add(ctx, adcAccount("example.com"))
	require.NoError(t, err)

	_, err = f.service.Add(ctx, adcAccount("EXAMPLE.com"))

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestAccountService_Add_RejectsInvalid(t *testing.T) {
	f := newAccountFixture()

	_, err := f.service.Add(context.Background(), domain.Account{
		Domain: "example.com", AuthMethod: domain.AuthMethodServiceAccount,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	list, _ := f.accounts.List(context.Background())
	assert.Empty(t, list)
}

func TestAccountService_Get_CaseInsensitive(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	added, err := f.service.Add(ctx, adcAccount("example.com"))
	require.NoError(t, err)

	got, err := f.service.Get(ctx, "Example.Com")

	require.NoError(t, err)
	assert.Equal(t, added.ID, got.ID)

	_, err = f.service.Get(ctx, "other.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccountService_Remove(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	added, err := f.service.Add(ctx, adcAccount("example.com"))
	require.NoError(t, err)
	require.NoError(t, f.tokens.Save(ctx, added.ID, domain.OAuthToken{AccessToken: "a"}))

	require.NoError(t, f.service.Remove(ctx, "example.com"))

	_, err = f.tokens.Get(ctx, added.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.service.Get(ctx, "example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	settings, err := f.settings.Get()
	require.NoError(t, err)
	assert.Empty(t, settings.Domain.Default)
}

func TestAccountService_Resolve(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	_, err := f.service.Resolve(ctx, "")
	assert.ErrorIs(t, err, domain.ErrNoAccount)

	_, err = f.service.Add(ctx, adcAccount("first.com"))
	require.NoError(t, err)
	_, err = f.service.Add(ctx, adcAccount("second.com"))
	require.NoError(t, err)

	got, err := f.service.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "first.com", got.Domain)

	got, err = f.service.Resolve(ctx, "SECOND.com")
	require.NoError(t, err)
	assert.Equal(t, "second.com", got.Domain)

	_, err = f.service.Resolve(ctx, "third.com")
	assert.ErrorIs(t, err, domain.ErrNoAccount)
}

func TestAccountService_SetDefault(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()
	_, err := f.service.Add(ctx, adcAccount("first.com"))
	require.NoError(t, err)
	_, err = f.service.Add(ctx, adcAccount("second.com"))
	require.NoError(t, err)

	require.NoError(t, f.service.SetDefault(ctx, "second.com"))

	got, err := f.service.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "second.com", got.Domain)

	assert.ErrorIs(t, f.service.SetDefault(ctx, "missing.com"), domain.ErrNotFound)
}
