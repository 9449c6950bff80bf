package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// Property is the category-independent form of one user sub-property.
// Value maps to the category's main field (address, number, URL...).
type Property struct {
	Type       string
	CustomType string
	Value      string
	Primary    bool
}

// PropertyRow is one property flattened for display.
type PropertyRow struct {
	Category string `json:"category" yaml:"category"`
	Type     string `json:"type" yaml:"type"`
	Value    string `json:"value" yaml:"value"`
	Primary  bool   `json:"primary" yaml:"primary"`
}

// TableHeader returns the column names used by TableRow.
func (r PropertyRow) TableHeader() []string {
	return []string{"Category", "Type", "Value", "Primary"}
}

// TableRow returns the row cells.
func (r PropertyRow) TableRow() []string {
	return []string{r.Category, r.Type, r.Value, yesNo(r.Primary)}
}

// UserPropertyCollection holds a user's multi-valued sub-properties with a
// dirty bit per category. Only dirty categories are sent by PatchUser.
type UserPropertyCollection struct {
	Addresses     []admin.UserAddress
	Emails        []admin.UserEmail
	ExternalIDs   []admin.UserExternalId
	Ims           []admin.UserIm
	Organizations []admin.UserOrganization
	Phones        []admin.UserPhone
	Relations     []admin.UserRelation
	Websites      []admin.UserWebsite

	dirty domain.PropertyCategory
}

// NewUserPropertyCollection decodes the untyped property fields of user.
func NewUserPropertyCollection(user *admin.User) (*UserPropertyCollection, error) {
	c := &UserPropertyCollection{}
	if user == nil {
		return c, nil
	}

	var err error
	if c.Addresses, err = decodeProperty[admin.UserAddress](user.Addresses); err != nil {
		return nil, fmt.Errorf("decode addresses: %w", err)
	}
	if c.Emails, err = decodeProperty[admin.UserEmail](user.Emails); err != nil {
		return nil, fmt.Errorf("decode emails: %w", err)
	}
	if c.ExternalIDs, err = decodeProperty[admin.UserExternalId](user.ExternalIds); err != nil {
		return nil, fmt.Errorf("decode external ids: %w", err)
	}
	if c.Ims, err = decodeProperty[admin.UserIm](user.Ims); err != nil {
		return nil, fmt.Errorf("decode ims: %w", err)
	}
	if c.Organizations, err = decodeProperty[admin.UserOrganization](user.Organizations); err != nil {
		return nil, fmt.Errorf("decode organizations: %w", err)
	}
	if c.Phones, err = decodeProperty[admin.UserPhone](user.Phones); err != nil {
		return nil, fmt.Errorf("decode phones: %w", err)
	}
	if c.Relations, err = decodeProperty[admin.UserRelation](user.Relations); err != nil {
		return nil, fmt.Errorf("decode relations: %w", err)
	}
	if c.Websites, err = decodeProperty[admin.UserWebsite](user.Websites); err != nil {
		return nil, fmt.Errorf("decode websites: %w", err)
	}
	return c, nil
}

// decodeProperty converts the decoded-JSON value of a property field into
// typed items. The field holds []interface{} after a response and a typed
// slice when set locally.
func decodeProperty[T any](raw interface{}) ([]T, error) {
	if raw == nil {
		return nil, nil
	}
	if typed, ok := raw.([]T); ok {
		return append([]T(nil), typed...), nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Dirty returns the set of modified categories.
func (c *UserPropertyCollection) Dirty() domain.PropertyCategory {
	return c.dirty
}

// Add appends a property to a single category.
func (c *UserPropertyCollection) Add(category domain.PropertyCategory, p Property) error {
	if strings.TrimSpace(p.Value) == "" {
		return fmt.Errorf("%w: property value is required", domain.ErrInvalidInput)
	}
	if p.CustomType != "" && p.Type == "" {
		p.Type = "custom"
	}

	switch category {
	case domain.PropertyAddresses:
		c.Addresses = append(c.Addresses, admin.UserAddress{
			Formatted: p.Value, Type: p.Type, CustomType: p.CustomType, Primary: p.Primary,
		})
	case domain.PropertyEmails:
		c.Emails = append(c.Emails, admin.UserEmail{
			Address: p.Value, Type: p.Type, CustomType: p.CustomType, Primary: p.Primary,
		})
	case domain.PropertyExternalIDs:
		c.ExternalIDs = append(c.ExternalIDs, admin.UserExternalId{
			Value: p.Value, Type: p.Type, CustomType: p.CustomType,
		})
	case domain.PropertyIms:
		c.Ims = append(c.Ims, admin.UserIm{
			Im: p.Value, Type: p.Type, CustomType: p.CustomType, Primary: p.Primary,
		})
	case domain.PropertyOrganizations:
		c.Organizations = append(c.Organizations, admin.UserOrganization{
			Name: p.Value, Type: p.Type, CustomType: p.CustomType, Primary: p.Primary,
		})
	case domain.PropertyPhones:
		c.Phones = append(c.Phones, admin.UserPhone{
			Value: p.Value, Type: p.Type, CustomType: p.CustomType, Primary: p.Primary,
		})
	case domain.PropertyRelations:
		c.Relations = append(c.Relations, admin.UserRelation{
			Value: p.Value, Type: p.Type, CustomType: p.CustomType,
		})
	case domain.PropertyWebsites:
		c.Websites = append(c.Websites, admin.UserWebsite{
			Value: p.Value, Type: p.Type, CustomType: p.CustomType, Primary: p.Primary,
		})
	default:
		return fmt.Errorf("%w: add needs exactly one property category, got %s", domain.ErrInvalidInput, category)
	}

	c.dirty |= category
	return nil
}

// Remove deletes every property of category whose value matches
// (case-insensitive). Returns domain.ErrNotFound when nothing matched.
func (c *UserPropertyCollection) Remove(category domain.PropertyCategory, value string) error {
	var removed int
	match := func(v string) bool {
		if strings.EqualFold(v, value) {
			removed++
			return true
		}
		return false
	}

	switch category {
	case domain.PropertyAddresses:
		c.Addresses = removeWhere(c.Addresses, func(a admin.UserAddress) bool { return match(a.Formatted) })
	case domain.PropertyEmails:
		c.Emails = removeWhere(c.Emails, func(e admin.UserEmail) bool { return match(e.Address) })
	case domain.PropertyExternalIDs:
		c.ExternalIDs = removeWhere(c.ExternalIDs, func(e admin.UserExternalId) bool { return match(e.Value) })
	case domain.PropertyIms:
		c.Ims = removeWhere(c.Ims, func(i admin.UserIm) bool { return match(i.Im) })
	case domain.PropertyOrganizations:
		c.Organizations = removeWhere(c.Organizations, func(o admin.UserOrganization) bool { return match(o.Name) })
	case domain.PropertyPhones:
		c.Phones = removeWhere(c.Phones, func(p admin.UserPhone) bool { return match(p.Value) })
	case domain.PropertyRelations:
		c.Relations = removeWhere(c.Relations, func(r admin.UserRelation) bool { return match(r.Value) })
	case domain.PropertyWebsites:
		c.Websites = removeWhere(c.Websites, func(w admin.UserWebsite) bool { return match(w.Value) })
	default:
		return fmt.Errorf("%w: remove needs exactly one property category, got %s", domain.ErrInvalidInput, category)
	}

	if removed == 0 {
		return fmt.Errorf("%s %q: %w", category, value, domain.ErrNotFound)
	}
	c.dirty |= category
	return nil
}

// Clear empties every category in set.
func (c *UserPropertyCollection) Clear(set domain.PropertyCategory) {
	for _, category := range set.Categories() {
		switch category {
		case domain.PropertyAddresses:
			c.Addresses = nil
		case domain.PropertyEmails:
			c.Emails = nil
		case domain.PropertyExternalIDs:
			c.ExternalIDs = nil
		case domain.PropertyIms:
			c.Ims = nil
		case domain.PropertyOrganizations:
			c.Organizations = nil
		case domain.PropertyPhones:
			c.Phones = nil
		case domain.PropertyRelations:
			c.Relations = nil
		case domain.PropertyWebsites:
			c.Websites = nil
		}
		c.dirty |= category
	}
}

// PatchUser returns a users.patch body carrying only the dirty categories.
// A dirty category that is now empty is sent as an explicit empty list.
func (c *UserPropertyCollection) PatchUser() *admin.User {
	user := &admin.User{}
	for _, category := range c.dirty.Categories() {
		switch category {
		case domain.PropertyAddresses:
			user.Addresses = orEmpty(c.Addresses)
			user.ForceSendFields = append(user.ForceSendFields, "Addresses")
		case domain.PropertyEmails:
			user.Emails = orEmpty(c.Emails)
			user.ForceSendFields = append(user.ForceSendFields, "Emails")
		case domain.PropertyExternalIDs:
			user.ExternalIds = orEmpty(c.ExternalIDs)
			user.ForceSendFields = append(user.ForceSendFields, "ExternalIds")
		case domain.PropertyIms:
			user.Ims = orEmpty(c.Ims)
			user.ForceSendFields = append(user.ForceSendFields, "Ims")
		case domain.PropertyOrganizations:
			user.Organizations = orEmpty(c.Organizations)
			user.ForceSendFields = append(user.ForceSendFields, "Organizations")
		case domain.PropertyPhones:
			user.Phones = orEmpty(c.Phones)
			user.ForceSendFields = append(user.ForceSendFields, "Phones")
		case domain.PropertyRelations:
			user.Relations = orEmpty(c.Relations)
			user.ForceSendFields = append(user.ForceSendFields, "Relations")
		case domain.PropertyWebsites:
			user.Websites = orEmpty(c.Websites)
			user.ForceSendFields = append(user.ForceSendFields, "Websites")
		}
	}
	return user
}

// Rows flattens every property for display, optionally limited to set.
// PropertyNone selects every category.
func (c *UserPropertyCollection) Rows(set domain.PropertyCategory) []PropertyRow {
	if set == domain.PropertyNone {
		for _, category := range domain.AllPropertyCategories {
			set |= category
		}
	}

	rows := make([]PropertyRow, 0)
	add := func(category domain.PropertyCategory, typ, custom, value string, primary bool) {
		if !set.Has(category) {
			return
		}
		if typ == "custom" && custom != "" {
			typ = custom
		}
		rows = append(rows, PropertyRow{Category: category.String(), Type: typ, Value: value, Primary: primary})
	}

	for _, a := range c.Addresses {
		value := a.Formatted
		if value == "" {
			value = strings.Join(nonEmpty(a.StreetAddress, a.Locality, a.Region, a.PostalCode, a.Country), ", ")
		}
		add(domain.PropertyAddresses, a.Type, a.CustomType, value, a.Primary)
	}
	for _, e := range c.Emails {
		add(domain.PropertyEmails, e.Type, e.CustomType, e.Address, e.Primary)
	}
	for _, e := range c.ExternalIDs {
		add(domain.PropertyExternalIDs, e.Type, e.CustomType, e.Value, false)
	}
	for _, i := range c.Ims {
		add(domain.PropertyIms, i.Type, i.CustomType, i.Im, i.Primary)
	}
	for _, o := range c.Organizations {
		value := strings.Join(nonEmpty(o.Name, o.Title, o.Department), " / ")
		add(domain.PropertyOrganizations, o.Type, o.CustomType, value, o.Primary)
	}
	for _, p := range c.Phones {
		add(domain.PropertyPhones, p.Type, p.CustomType, p.Value, p.Primary)
	}
	for _, r := range c.Relations {
		add(domain.PropertyRelations, r.Type, r.CustomType, r.Value, false)
	}
	for _, w := range c.Websites {
		add(domain.PropertyWebsites, w.Type, w.CustomType, w.Value, w.Primary)
	}
	return rows
}

// GetUserProperties fetches a user and decodes its sub-properties.
func (s *Service) GetUserProperties(ctx context.Context, userKey string) (*UserPropertyCollection, error) {
	user, err := s.GetUser(ctx, userKey, GetUserOptions{Projection: "full"})
	if err != nil {
		return nil, err
	}
	return NewUserPropertyCollection(user)
}

// SaveUserProperties patches the dirty categories of c onto the user.
func (s *Service) SaveUserProperties(ctx context.Context, userKey string, c *UserPropertyCollection) (*admin.User, error) {
	if c.Dirty() == domain.PropertyNone {
		return nil, errNothingToUpdate
	}
	return s.PatchUser(ctx, userKey, c.PatchUser())
}

func removeWhere[T any](items []T, drop func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if !drop(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func nonEmpty(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
