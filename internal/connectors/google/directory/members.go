package directory

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// Member roles accepted by the Directory API.
const (
	RoleOwner   = "OWNER"
	RoleManager = "MANAGER"
	RoleMember  = "MEMBER"
)

// listManyConcurrency bounds the number of groups fetched at once by ListManyMembers.
const listManyConcurrency = 4

// ListMembersOptions shapes a members.list request.
type ListMembersOptions struct {
	// Roles is a comma-separated subset of OWNER, MANAGER, MEMBER.
	Roles string
	// IncludeDerived includes members of nested groups.
	IncludeDerived bool
	// Max stops after this many members per group. 0 lists all.
	Max int
}

// MemberRow is one group/member pair.
type MemberRow struct {
	Group  string `json:"group" yaml:"group"`
	Email  string `json:"email" yaml:"email"`
	ID     string `json:"id" yaml:"id"`
	Role   string `json:"role" yaml:"role"`
	Type   string `json:"type" yaml:"type"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
}

// TableHeader returns the column names used by TableRow.
func (r MemberRow) TableHeader() []string {
	return []string{"Group", "Email", "Role", "Type", "Status"}
}

// TableRow returns the row cells.
func (r MemberRow) TableRow() []string {
	return []string{r.Group, r.Email, r.Role, r.Type, r.Status}
}

// NewMemberRow flattens a member of group.
func NewMemberRow(group string, m *admin.Member) MemberRow {
	return MemberRow{Group: group, Email: m.Email, ID: m.Id, Role: m.Role, Type: m.Type, Status: m.Status}
}

// MultiGroupMembers is the membership of several groups, one row per
// group/member pair, ordered by the requested group order.
type MultiGroupMembers struct {
	Rows []MemberRow
}

// Groups returns the distinct group addresses in row order.
func (m *MultiGroupMembers) Groups() []string {
	var groups []string
	seen := make(map[string]bool)
	for _, r := range m.Rows {
		if !seen[r.Group] {
			seen[r.Group] = true
			groups = append(groups, r.Group)
		}
	}
	return groups
}

// ByGroup returns the rows of one group.
func (m *MultiGroupMembers) ByGroup(group string) []MemberRow {
	rows := make([]MemberRow, 0)
	for _, r := range m.Rows {
		if strings.EqualFold(r.Group, group) {
			rows = append(rows, r)
		}
	}
	return rows
}

// ParseRole validates a member role case-insensitively.
func ParseRole(role string) (string, error) {
	r, err := oneOf("role", strings.TrimSpace(role), RoleOwner, RoleManager, RoleMember)
	if err != nil {
		return "", err
	}
	if r == "" {
		return "", fmt.Errorf("%w: role is required", domain.ErrInvalidInput)
	}
	return r, nil
}

func parseRoles(roles string) (string, error) {
	if strings.TrimSpace(roles) == "" {
		return "", nil
	}
	parts := strings.Split(roles, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		r, err := ParseRole(p)
		if err != nil {
			return "", err
		}
		out = append(out, r)
	}
	return strings.Join(out, ","), nil
}

// GetMember fetches one member of a group.
func (s *Service) GetMember(ctx context.Context, groupKey, memberKey string) (*admin.Member, error) {
	if err := required("group", groupKey); err != nil {
		return nil, err
	}
	if err := required("member", memberKey); err != nil {
		return nil, err
	}
	group := s.email(groupKey)
	return google.Call(ctx, s.limiter, apiName, "members.get", group,
		s.api.Members.Get(group, s.email(memberKey)).Context(ctx).Do)
}

// ListMembers lists the members of one group.
func (s *Service) ListMembers(ctx context.Context, groupKey string, opts ListMembersOptions) ([]*admin.Member, error) {
	if err := required("group", groupKey); err != nil {
		return nil, err
	}
	roles, err := parseRoles(opts.Roles)
	if err != nil {
		return nil, err
	}

	group := s.email(groupKey)
	call := s.api.Members.List(group).MaxResults(google.PageSize(s.pageSize, opts.Max))
	if roles != "" {
		call.Roles(roles)
	}
	if opts.IncludeDerived {
		call.IncludeDerivedMembership(true)
	}

	var members []*admin.Member
	err = google.Paged(ctx, s.limiter, apiName, "members.list", group, func() error {
		return call.Pages(ctx, func(page *admin.Members) error {
			members = append(members, page.Members...)
			return google.PageGate(ctx, s.limiter, len(members), opts.Max)
		})
	})
	if err != nil {
		return nil, err
	}
	return google.Truncate(members, opts.Max), nil
}

// ListManyMembers lists the members of several groups concurrently. The
// first failure cancels the rest and is returned.
func (s *Service) ListManyMembers(ctx context.Context, groupKeys []string, opts ListMembersOptions) (*MultiGroupMembers, error) {
	results := make([][]MemberRow, len(groupKeys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(listManyConcurrency)
	for i, key := range groupKeys {
		g.Go(func() error {
			members, err := s.ListMembers(gctx, key, opts)
			if err != nil {
				return fmt.Errorf("group %s: %w", key, err)
			}
			group := s.email(key)
			rows := make([]MemberRow, 0, len(members))
			for _, m := range members {
				rows = append(rows, NewMemberRow(group, m))
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &MultiGroupMembers{Rows: make([]MemberRow, 0)}
	for _, rows := range results {
		out.Rows = append(out.Rows, rows...)
	}
	return out, nil
}

// InsertMember adds a member to a group with role.
func (s *Service) InsertMember(ctx context.Context, groupKey, memberEmail, role string) (*admin.Member, error) {
	if err := required("group", groupKey); err != nil {
		return nil, err
	}
	if err := required("member", memberEmail); err != nil {
		return nil, err
	}
	if role == "" {
		role = RoleMember
	}
	r, err := ParseRole(role)
	if err != nil {
		return nil, err
	}

	group := s.email(groupKey)
	body := &admin.Member{Email: s.email(memberEmail), Role: r}
	return google.Call(ctx, s.limiter, apiName, "members.insert", group,
		s.api.Members.Insert(group, body).Context(ctx).Do)
}

// PatchMemberRole changes a member's role.
func (s *Service) PatchMemberRole(ctx context.Context, groupKey, memberKey, role string) (*admin.Member, error) {
	if err := required("group", groupKey); err != nil {
		return nil, err
	}
	if err := required("member", memberKey); err != nil {
		return nil, err
	}
	r, err := ParseRole(role)
	if err != nil {
		return nil, err
	}

	group := s.email(groupKey)
	return google.Call(ctx, s.limiter, apiName, "members.patch", group,
		s.api.Members.Patch(group, s.email(memberKey), &admin.Member{Role: r}).Context(ctx).Do)
}

// DeleteMember removes a member from a group.
func (s *Service) DeleteMember(ctx context.Context, groupKey, memberKey string) error {
	if err := required("group", groupKey); err != nil {
		return err
	}
	if err := required("member", memberKey); err != nil {
		return err
	}
	group := s.email(groupKey)
	return google.Exec(ctx, s.limiter, apiName, "members.delete", group,
		s.api.Members.Delete(group, s.email(memberKey)).Context(ctx).Do)
}

// HasMember reports whether memberKey belongs to the group, directly or through nesting.
func (s *Service) HasMember(ctx context.Context, groupKey, memberKey string) (bool, error) {
	if err := required("group", groupKey); err != nil {
		return false, err
	}
	if err := required("member", memberKey); err != nil {
		return false, err
	}
	group := s.email(groupKey)
	resp, err := google.Call(ctx, s.limiter, apiName, "members.hasMember", group,
		s.api.Members.HasMember(group, s.email(memberKey)).Context(ctx).Do)
	if err != nil {
		return false, err
	}
	return resp.IsMember, nil
}
