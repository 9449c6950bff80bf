package directory

import (
	"context"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
)

// CustomerRow is a customer flattened for display.
type CustomerRow struct {
	ID             string `json:"id" yaml:"id"`
	Domain         string `json:"domain" yaml:"domain"`
	AlternateEmail string `json:"alternate_email,omitempty" yaml:"alternate_email,omitempty"`
	PhoneNumber    string `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Language       string `json:"language,omitempty" yaml:"language,omitempty"`
	Created        string `json:"created,omitempty" yaml:"created,omitempty"`
	Organization   string `json:"organization,omitempty" yaml:"organization,omitempty"`
	CountryCode    string `json:"country_code,omitempty" yaml:"country_code,omitempty"`
}

// NewCustomerRow flattens a customer.
func NewCustomerRow(c *admin.Customer) CustomerRow {
	row := CustomerRow{
		ID: c.Id, Domain: c.CustomerDomain, AlternateEmail: c.AlternateEmail,
		PhoneNumber: c.PhoneNumber, Language: c.Language, Created: c.CustomerCreationTime,
	}
	if addr := c.PostalAddress; addr != nil {
		row.Organization = addr.OrganizationName
		row.CountryCode = addr.CountryCode
	}
	return row
}

// TableHeader returns the column names used by TableRow.
func (r CustomerRow) TableHeader() []string {
	return []string{"ID", "Domain", "Alternate Email", "Organization", "Created"}
}

// TableRow returns the row cells.
func (r CustomerRow) TableRow() []string {
	return []string{r.ID, r.Domain, r.AlternateEmail, r.Organization, r.Created}
}

// GetCustomer fetches a customer. An empty id means the account customer.
func (s *Service) GetCustomer(ctx context.Context, customerKey string) (*admin.Customer, error) {
	key := s.customerOr(customerKey)
	return google.Call(ctx, s.limiter, apiName, "customers.get", key,
		s.api.Customers.Get(key).Context(ctx).Do)
}
