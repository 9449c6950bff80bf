package directory

import (
	"context"
	"strconv"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// ListGroupsOptions shapes a groups.list request.
type ListGroupsOptions struct {
	// Domain restricts the list to one domain. Empty lists the whole customer.
	Domain string
	// UserKey lists only groups the user belongs to.
	UserKey string
	// Query is an Admin SDK group search query.
	Query string
	// Max stops after this many groups. 0 lists all.
	Max int
}

// GroupUpdate holds the changes of a set-group request. Nil fields are left untouched.
type GroupUpdate struct {
	Email       *string
	Name        *string
	Description *string
}

// GroupRow is a group flattened for display.
type GroupRow struct {
	Email              string   `json:"email" yaml:"email"`
	Name               string   `json:"name" yaml:"name"`
	ID                 string   `json:"id" yaml:"id"`
	Description        string   `json:"description,omitempty" yaml:"description,omitempty"`
	DirectMembersCount int64    `json:"direct_members_count" yaml:"direct_members_count"`
	AdminCreated       bool     `json:"admin_created" yaml:"admin_created"`
	Aliases            []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// NewGroupRow flattens a group.
func NewGroupRow(g *admin.Group) GroupRow {
	return GroupRow{
		Email: g.Email, Name: g.Name, ID: g.Id, Description: g.Description,
		DirectMembersCount: g.DirectMembersCount, AdminCreated: g.AdminCreated, Aliases: g.Aliases,
	}
}

// TableHeader returns the column names used by TableRow.
func (r GroupRow) TableHeader() []string {
	return []string{"Email", "Name", "Members", "ID"}
}

// TableRow returns the row cells.
func (r GroupRow) TableRow() []string {
	return []string{r.Email, r.Name, strconv.FormatInt(r.DirectMembersCount, 10), r.ID}
}

// GetGroup fetches a group by address, alias or ID.
func (s *Service) GetGroup(ctx context.Context, groupKey string) (*admin.Group, error) {
	if err := required("group", groupKey); err != nil {
		return nil, err
	}
	key := s.email(groupKey)
	return google.Call(ctx, s.limiter, apiName, "groups.get", key,
		s.api.Groups.Get(key).Context(ctx).Do)
}

// ListGroups lists groups of the account customer, one domain, or one user.
func (s *Service) ListGroups(ctx context.Context, opts ListGroupsOptions) ([]*admin.Group, error) {
	call := s.api.Groups.List().MaxResults(google.PageSize(s.pageSize, opts.Max))
	var target string
	switch {
	case opts.UserKey != "":
		target = s.email(opts.UserKey)
		call.UserKey(target)
	case opts.Domain != "":
		target = domain.NormalizeDomain(opts.Domain)
		call.Domain(target)
	default:
		target = s.customer
		call.Customer(target)
	}
	if opts.Query != "" {
		call.Query(opts.Query)
	}

	var groups []*admin.Group
	err := google.Paged(ctx, s.limiter, apiName, "groups.list", target, func() error {
		return call.Pages(ctx, func(page *admin.Groups) error {
			groups = append(groups, page.Groups...)
			return google.PageGate(ctx, s.limiter, len(groups), opts.Max)
		})
	})
	if err != nil {
		return nil, err
	}
	return google.Truncate(groups, opts.Max), nil
}

// InsertGroup creates a group. A bare email is completed with the account domain.
func (s *Service) InsertGroup(ctx context.Context, email, name, description string) (*admin.Group, error) {
	if err := required("group email", email); err != nil {
		return nil, err
	}
	group := &admin.Group{Email: s.email(email), Name: name, Description: description}
	return google.Call(ctx, s.limiter, apiName, "groups.insert", group.Email,
		s.api.Groups.Insert(group).Context(ctx).Do)
}

// PatchGroup applies a GroupUpdate.
func (s *Service) PatchGroup(ctx context.Context, groupKey string, update GroupUpdate) (*admin.Group, error) {
	if err := required("group", groupKey); err != nil {
		return nil, err
	}
	if update.Email == nil && update.Name == nil && update.Description == nil {
		return nil, errNothingToUpdate
	}

	patch := &admin.Group{}
	if update.Email != nil {
		patch.Email = s.email(*update.Email)
	}
	if update.Name != nil {
		patch.Name = *update.Name
		patch.ForceSendFields = append(patch.ForceSendFields, "Name")
	}
	if update.Description != nil {
		patch.Description = *update.Description
		patch.ForceSendFields = append(patch.ForceSendFields, "Description")
	}

	key := s.email(groupKey)
	return google.Call(ctx, s.limiter, apiName, "groups.patch", key,
		s.api.Groups.Patch(key, patch).Context(ctx).Do)
}

// DeleteGroup deletes a group.
func (s *Service) DeleteGroup(ctx context.Context, groupKey string) error {
	if err := required("group", groupKey); err != nil {
		return err
	}
	key := s.email(groupKey)
	return google.Exec(ctx, s.limiter, apiName, "groups.delete", key,
		s.api.Groups.Delete(key).Context(ctx).Do)
}
