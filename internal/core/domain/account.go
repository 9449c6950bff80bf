package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCustomerID is the Admin SDK alias for the caller's own customer.
const DefaultCustomerID = "my_customer"

// Account is a Google Workspace domain registered with gshell.
// Each command runs as exactly one account, selected by domain name.
type Account struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`
	// Domain is the primary domain of the Workspace customer, lower-cased.
	Domain string `json:"domain"`
	// AdminEmail is the administrator the calls are made as.
	// For service accounts this is the delegated subject.
	AdminEmail string `json:"admin_email"`
	// CustomerID is the Workspace customer ID (defaults to my_customer).
	CustomerID string `json:"customer_id"`
	// AuthMethod selects how tokens are obtained.
	AuthMethod AuthMethod `json:"auth_method"`

	// KeyFile is the service account JSON key path (AuthMethodServiceAccount).
	KeyFile string `json:"key_file,omitempty"`
	// ClientID is the OAuth client ID (AuthMethodOAuth).
	ClientID string `json:"client_id,omitempty"`
	// ClientSecret is the OAuth client secret (AuthMethodOAuth).
	ClientSecret string `json:"client_secret,omitempty"`
	// Scopes overrides the default scope set when non-empty.
	Scopes []string `json:"scopes,omitempty"`

	// CreatedAt is when the account was registered.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the account was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that the account carries what its auth method needs.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Domain) == "" {
		return fmt.Errorf("%w: domain is required", ErrInvalidInput)
	}
	if a.AdminEmail != "" && !IsEmailAddress(a.AdminEmail) {
		return fmt.Errorf("%w: admin email %q is not an email address", ErrInvalidInput, a.AdminEmail)
	}

	switch a.AuthMethod {
	case AuthMethodServiceAccount:
		if a.KeyFile == "" {
			return fmt.Errorf("%w: service account key file is required", ErrInvalidInput)
		}
		if a.AdminEmail == "" {
			return fmt.Errorf("%w: service accounts need an admin email to impersonate", ErrInvalidInput)
		}
	case AuthMethodOAuth:
		if a.ClientID == "" || a.ClientSecret == "" {
			return fmt.Errorf("%w: oauth client id and secret are required", ErrInvalidInput)
		}
	case AuthMethodADC:
	default:
		return fmt.Errorf("%w: unknown auth method %q", ErrInvalidInput, a.AuthMethod)
	}
	return nil
}

// Normalize lower-cases the domain and fills in the default customer ID.
func (a *Account) Normalize() {
	a.Domain = NormalizeDomain(a.Domain)
	a.AdminEmail = strings.ToLower(strings.TrimSpace(a.AdminEmail))
	a.CustomerID = NormalizeCustomerID(a.CustomerID)
}

// Customer returns the customer ID to use in API calls.
func (a *Account) Customer() string {
	return NormalizeCustomerID(a.CustomerID)
}
