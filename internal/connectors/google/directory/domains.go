package directory

import (
	"context"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// DomainRow is a domain or domain alias flattened for display.
type DomainRow struct {
	Name     string `json:"name" yaml:"name"`
	Parent   string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Primary  bool   `json:"primary" yaml:"primary"`
	Verified bool   `json:"verified" yaml:"verified"`
	Created  string `json:"created,omitempty" yaml:"created,omitempty"`
}

// TableHeader returns the column names used by TableRow.
func (r DomainRow) TableHeader() []string {
	return []string{"Name", "Parent", "Primary", "Verified", "Created"}
}

// TableRow returns the row cells.
func (r DomainRow) TableRow() []string {
	return []string{r.Name, r.Parent, yesNo(r.Primary), yesNo(r.Verified), r.Created}
}

// NewDomainRow flattens a domain.
func NewDomainRow(d *admin.Domains) DomainRow {
	return DomainRow{
		Name: d.DomainName, Primary: d.IsPrimary, Verified: d.Verified,
		Created: millisToRFC3339(d.CreationTime),
	}
}

// NewDomainAliasRow flattens a domain alias.
func NewDomainAliasRow(a *admin.DomainAlias) DomainRow {
	return DomainRow{
		Name: a.DomainAliasName, Parent: a.ParentDomainName, Verified: a.Verified,
		Created: millisToRFC3339(a.CreationTime),
	}
}

// GetDomain fetches one domain of the customer.
func (s *Service) GetDomain(ctx context.Context, name string) (*admin.Domains, error) {
	if err := required("domain", name); err != nil {
		return nil, err
	}
	name = domain.NormalizeDomain(name)
	return google.Call(ctx, s.limiter, apiName, "domains.get", name,
		s.api.Domains.Get(s.customer, name).Context(ctx).Do)
}

// ListDomains lists the customer's domains.
func (s *Service) ListDomains(ctx context.Context) ([]*admin.Domains, error) {
	resp, err := google.Call(ctx, s.limiter, apiName, "domains.list", s.customer,
		s.api.Domains.List(s.customer).Context(ctx).Do)
	if err != nil {
		return nil, err
	}
	return resp.Domains, nil
}

// InsertDomain adds a secondary domain.
func (s *Service) InsertDomain(ctx context.Context, name string) (*admin.Domains, error) {
	if err := required("domain", name); err != nil {
		return nil, err
	}
	body := &admin.Domains{DomainName: domain.NormalizeDomain(name)}
	return google.Call(ctx, s.limiter, apiName, "domains.insert", body.DomainName,
		s.api.Domains.Insert(s.customer, body).Context(ctx).Do)
}

// DeleteDomain removes a domain.
func (s *Service) DeleteDomain(ctx context.Context, name string) error {
	if err := required("domain", name); err != nil {
		return err
	}
	name = domain.NormalizeDomain(name)
	return google.Exec(ctx, s.limiter, apiName, "domains.delete", name,
		s.api.Domains.Delete(s.customer, name).Context(ctx).Do)
}

// GetDomainAlias fetches one domain alias.
func (s *Service) GetDomainAlias(ctx context.Context, alias string) (*admin.DomainAlias, error) {
	if err := required("domain alias", alias); err != nil {
		return nil, err
	}
	alias = domain.NormalizeDomain(alias)
	return google.Call(ctx, s.limiter, apiName, "domainAliases.get", alias,
		s.api.DomainAliases.Get(s.customer, alias).Context(ctx).Do)
}

// ListDomainAliases lists domain aliases, optionally of one parent domain.
func (s *Service) ListDomainAliases(ctx context.Context, parent string) ([]*admin.DomainAlias, error) {
	call := s.api.DomainAliases.List(s.customer)
	target := s.customer
	if parent != "" {
		target = domain.NormalizeDomain(parent)
		call.ParentDomainName(target)
	}
	resp, err := google.Call(ctx, s.limiter, apiName, "domainAliases.list", target, call.Context(ctx).Do)
	if err != nil {
		return nil, err
	}
	return resp.DomainAliases, nil
}

// InsertDomainAlias adds alias to parent. An empty parent means the account domain.
func (s *Service) InsertDomainAlias(ctx context.Context, parent, alias string) (*admin.DomainAlias, error) {
	if err := required("domain alias", alias); err != nil {
		return nil, err
	}
	if parent == "" {
		parent = s.domain
	}
	body := &admin.DomainAlias{
		DomainAliasName:  domain.NormalizeDomain(alias),
		ParentDomainName: domain.NormalizeDomain(parent),
	}
	return google.Call(ctx, s.limiter, apiName, "domainAliases.insert", body.DomainAliasName,
		s.api.DomainAliases.Insert(s.customer, body).Context(ctx).Do)
}

// DeleteDomainAlias removes a domain alias.
func (s *Service) DeleteDomainAlias(ctx context.Context, alias string) error {
	if err := required("domain alias", alias); err != nil {
		return err
	}
	alias = domain.NormalizeDomain(alias)
	return google.Exec(ctx, s.limiter, apiName, "domainAliases.delete", alias,
		s.api.DomainAliases.Delete(s.customer, alias).Context(ctx).Do)
}

