package reseller

import (
	"context"
	"fmt"

	reseller "google.golang.org/api/reseller/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// NewCustomer describes a reseller customer to create.
type NewCustomer struct {
	Domain         string
	AlternateEmail string
	PhoneNumber    string
	// AuthToken is the transfer token when the customer already has a
	// direct Google Workspace account.
	AuthToken string
	Address   Address
}

// Address is a customer's postal address.
type Address struct {
	ContactName      string
	OrganizationName string
	AddressLine1     string
	AddressLine2     string
	AddressLine3     string
	Locality         string
	Region           string
	PostalCode       string
	CountryCode      string
}

// CustomerUpdate holds the changes of a set-customer request. Nil fields are left untouched.
type CustomerUpdate struct {
	AlternateEmail *string
	PhoneNumber    *string
	Address        *Address
}

// CustomerRow is a reseller customer flattened for display.
type CustomerRow struct {
	ID             string `json:"id" yaml:"id"`
	Domain         string `json:"domain" yaml:"domain"`
	Verified       bool   `json:"verified" yaml:"verified"`
	Type           string `json:"type,omitempty" yaml:"type,omitempty"`
	AlternateEmail string `json:"alternate_email,omitempty" yaml:"alternate_email,omitempty"`
	Organization   string `json:"organization,omitempty" yaml:"organization,omitempty"`
	CountryCode    string `json:"country_code,omitempty" yaml:"country_code,omitempty"`
}

// NewCustomerRow flattens a customer.
func NewCustomerRow(c *reseller.Customer) CustomerRow {
	row := CustomerRow{
		ID: c.CustomerId, Domain: c.CustomerDomain, Verified: c.CustomerDomainVerified,
		Type: c.CustomerType, AlternateEmail: c.AlternateEmail,
	}
	if c.PostalAddress != nil {
		row.Organization = c.PostalAddress.OrganizationName
		row.CountryCode = c.PostalAddress.CountryCode
	}
	return row
}

// TableHeader returns the column names used by TableRow.
func (r CustomerRow) TableHeader() []string {
	return []string{"ID", "Domain", "Verified", "Organization", "Country"}
}

// TableRow returns the row cells.
func (r CustomerRow) TableRow() []string {
	verified := "no"
	if r.Verified {
		verified = "yes"
	}
	return []string{r.ID, r.Domain, verified, r.Organization, r.CountryCode}
}

func (a Address) toAPI() *reseller.Address {
	return &reseller.Address{
		ContactName:      a.ContactName,
		OrganizationName: a.OrganizationName,
		AddressLine1:     a.AddressLine1,
		AddressLine2:     a.AddressLine2,
		AddressLine3:     a.AddressLine3,
		Locality:         a.Locality,
		Region:           a.Region,
		PostalCode:       a.PostalCode,
		CountryCode:      a.CountryCode,
	}
}

// GetCustomer fetches a customer by ID or primary domain.
func (s *Service) GetCustomer(ctx context.Context, customerID string) (*reseller.Customer, error) {
	if err := required("customer", customerID); err != nil {
		return nil, err
	}
	return google.Call(ctx, s.limiter, apiName, "customers.get", customerID,
		s.api.Customers.Get(customerID).Context(ctx).Do)
}

// InsertCustomer creates a customer, or transfers one when AuthToken is set.
func (s *Service) InsertCustomer(ctx context.Context, nc NewCustomer) (*reseller.Customer, error) {
	if err := required("customer domain", nc.Domain); err != nil {
		return nil, err
	}
	if err := required("alternate email", nc.AlternateEmail); err != nil {
		return nil, err
	}
	if !domain.IsEmailAddress(nc.AlternateEmail) {
		return nil, fmt.Errorf("%w: alternate email %q is not an address", domain.ErrInvalidInput, nc.AlternateEmail)
	}
	if err := required("organization name", nc.Address.OrganizationName); err != nil {
		return nil, err
	}
	if err := required("country code", nc.Address.CountryCode); err != nil {
		return nil, err
	}

	body := &reseller.Customer{
		CustomerDomain: domain.NormalizeDomain(nc.Domain),
		AlternateEmail: nc.AlternateEmail,
		PhoneNumber:    nc.PhoneNumber,
		PostalAddress:  nc.Address.toAPI(),
	}
	call := s.api.Customers.Insert(body)
	if nc.AuthToken != "" {
		call.CustomerAuthToken(nc.AuthToken)
	}
	return google.Call(ctx, s.limiter, apiName, "customers.insert", body.CustomerDomain, call.Context(ctx).Do)
}

// PatchCustomer applies a CustomerUpdate.
func (s *Service) PatchCustomer(ctx context.Context, customerID string, update CustomerUpdate) (*reseller.Customer, error) {
	if err := required("customer", customerID); err != nil {
		return nil, err
	}
	patch := &reseller.Customer{}
	dirty := false
	if update.AlternateEmail != nil {
		if !domain.IsEmailAddress(*update.AlternateEmail) {
			return nil, fmt.Errorf("%w: alternate email %q is not an address", domain.ErrInvalidInput, *update.AlternateEmail)
		}
		patch.AlternateEmail = *update.AlternateEmail
		dirty = true
	}
	if update.PhoneNumber != nil {
		patch.PhoneNumber = *update.PhoneNumber
		patch.ForceSendFields = append(patch.ForceSendFields, "PhoneNumber")
		dirty = true
	}
	if update.Address != nil {
		patch.PostalAddress = update.Address.toAPI()
		dirty = true
	}
	if !dirty {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	return google.Call(ctx, s.limiter, apiName, "customers.patch", customerID,
		s.api.Customers.Patch(customerID, patch).Context(ctx).Do)
}
