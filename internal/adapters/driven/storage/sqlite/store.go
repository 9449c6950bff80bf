package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/gshell/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/gshell/internal/core/domain"
	"github.com/custodia-labs/gshell/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// dbFile is the database file name inside the data directory.
const dbFile = "gshell.db"

// Store is a SQLite-based storage that provides access to the
// account and token stores through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.gshell/data/gshell.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".gshell", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// AccountStore returns an AccountStore interface backed by this store.
func (s *Store) AccountStore() driven.AccountStore {
	return &accountStore{store: s}
}

// TokenStore returns a TokenStore interface backed by this store.
func (s *Store) TokenStore() driven.TokenStore {
	return &tokenStore{store: s}
}

// migrate runs all pending migrations and records each applied version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.schemaVersion()
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// schemaVersion returns the highest applied migration version.
func (s *Store) schemaVersion() (int, error) {
	var version int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}
	return version, nil
}

// ==================== Account Store ====================

// accountStore implements driven.AccountStore.
type accountStore struct {
	store *Store
}

var _ driven.AccountStore = (*accountStore)(nil)

const accountColumns = `id, domain, admin_email, customer_id, auth_method,
	key_file, client_id, client_secret, scopes, created_at, updated_at`

// Save stores or updates an account.
func (s *accountStore) Save(ctx context.Context, account domain.Account) error {
	if account.ID == "" || account.Domain == "" {
		return domain.ErrInvalidInput
	}

	scopesJSON, err := json.Marshal(account.Scopes)
	if err != nil {
		return fmt.Errorf("marshalling scopes: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			domain = excluded.domain,
			admin_email = excluded.admin_email,
			customer_id = excluded.customer_id,
			auth_method = excluded.auth_method,
			key_file = excluded.key_file,
			client_id = excluded.client_id,
			client_secret = excluded.client_secret,
			scopes = excluded.scopes,
			updated_at = excluded.updated_at
	`, account.ID, account.Domain, account.AdminEmail, account.CustomerID,
		string(account.AuthMethod), account.KeyFile, account.ClientID, account.ClientSecret,
		string(scopesJSON), account.CreatedAt.UTC(), account.UpdatedAt.UTC())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("account %s: %w", account.Domain, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("saving account: %w", err)
	}
	return nil
}

// Get retrieves an account by ID.
func (s *accountStore) Get(ctx context.Context, id string) (*domain.Account, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

// GetByDomain retrieves an account by domain.
func (s *accountStore) GetByDomain(ctx context.Context, domainName string) (*domain.Account, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE domain = ?`, domainName)
	return scanAccount(row)
}

// List returns all accounts ordered by domain.
func (s *accountStore) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY domain`)
	if err != nil {
		return nil, fmt.Errorf("querying accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account //nolint:prealloc // size unknown from query
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, rows.Err()
}

// Delete removes an account by ID. Its token goes with it.
func (s *accountStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanAccount scans one account row.
func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var authMethod string
	var scopesJSON sql.NullString

	if err := row.Scan(&account.ID, &account.Domain, &account.AdminEmail, &account.CustomerID,
		&authMethod, &account.KeyFile, &account.ClientID, &account.ClientSecret,
		&scopesJSON, &account.CreatedAt, &account.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning account: %w", err)
	}

	account.AuthMethod = domain.AuthMethod(authMethod)

	if scopesJSON.Valid && scopesJSON.String != jsonNull && scopesJSON.String != "" {
		if err := json.Unmarshal([]byte(scopesJSON.String), &account.Scopes); err != nil {
			return nil, fmt.Errorf("unmarshalling scopes: %w", err)
		}
	}

	return &account, nil
}

// ==================== Token Store ====================

// tokenStore implements driven.TokenStore.
type tokenStore struct {
	store *Store
}

var _ driven.TokenStore = (*tokenStore)(nil)

// Save stores the token for an account, replacing any previous token.
// A refresh token missing from token keeps the stored one.
func (s *tokenStore) Save(ctx context.Context, accountID string, token domain.OAuthToken) error {
	if accountID == "" {
		return domain.ErrInvalidInput
	}

	var expiry any
	if !token.Expiry.IsZero() {
		expiry = token.Expiry.UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO oauth_tokens (account_id, access_token, refresh_token, token_type, expiry)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = CASE WHEN excluded.refresh_token = ''
				THEN oauth_tokens.refresh_token ELSE excluded.refresh_token END,
			token_type = excluded.token_type,
			expiry = excluded.expiry
	`, accountID, token.AccessToken, token.RefreshToken, token.TokenType, expiry)
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// Get retrieves the token for an account.
func (s *tokenStore) Get(ctx context.Context, accountID string) (*domain.OAuthToken, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT access_token, refresh_token, token_type, expiry
		FROM oauth_tokens WHERE account_id = ?
	`, accountID)

	var token domain.OAuthToken
	var expiry sql.NullTime
	if err := row.Scan(&token.AccessToken, &token.RefreshToken, &token.TokenType, &expiry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning token: %w", err)
	}
	if expiry.Valid {
		token.Expiry = expiry.Time
	}
	return &token, nil
}

// Delete removes the token for an account.
func (s *tokenStore) Delete(ctx context.Context, accountID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM oauth_tokens WHERE account_id = ?", accountID)
	if err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}

