package directory

import (
	"context"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
)

// UserAliasView is one alias row: the alias and the user it belongs to.
type UserAliasView struct {
	Alias        string `json:"alias" yaml:"alias"`
	PrimaryEmail string `json:"primary_email" yaml:"primary_email"`
	UserID       string `json:"user_id" yaml:"user_id"`
	// Editable is false for aliases derived from secondary domains.
	Editable bool `json:"editable" yaml:"editable"`
}

// TableHeader returns the column names used by TableRow.
func (v UserAliasView) TableHeader() []string {
	return []string{"Alias", "Primary Email", "User ID", "Editable"}
}

// TableRow returns the view as a table row.
func (v UserAliasView) TableRow() []string {
	return []string{v.Alias, v.PrimaryEmail, v.UserID, yesNo(v.Editable)}
}

// aliasViews flattens a user's alias fields into rows.
func aliasViews(user *admin.User) []UserAliasView {
	rows := make([]UserAliasView, 0, len(user.Aliases)+len(user.NonEditableAliases))
	for _, a := range user.Aliases {
		rows = append(rows, UserAliasView{Alias: a, PrimaryEmail: user.PrimaryEmail, UserID: user.Id, Editable: true})
	}
	for _, a := range user.NonEditableAliases {
		rows = append(rows, UserAliasView{Alias: a, PrimaryEmail: user.PrimaryEmail, UserID: user.Id})
	}
	return rows
}

// ListUserAliases lists the aliases of one user.
func (s *Service) ListUserAliases(ctx context.Context, userKey string) ([]UserAliasView, error) {
	if err := required("user", userKey); err != nil {
		return nil, err
	}
	key := s.email(userKey)
	resp, err := google.Call(ctx, s.limiter, apiName, "users.aliases.list", key,
		s.api.Users.Aliases.List(key).Context(ctx).Do)
	if err != nil {
		return nil, err
	}
	return decodeAliases(resp.Aliases, key), nil
}

// ListAllUserAliases lists every alias in the account by walking all users'
// alias fields. An empty domainName covers the whole customer.
func (s *Service) ListAllUserAliases(ctx context.Context, domainName string) ([]UserAliasView, error) {
	users, err := s.ListUsers(ctx, ListUsersOptions{Domain: domainName})
	if err != nil {
		return nil, err
	}
	rows := make([]UserAliasView, 0, len(users))
	for _, u := range users {
		rows = append(rows, aliasViews(u)...)
	}
	return rows, nil
}

// InsertUserAlias adds an alias to a user. A bare alias is completed with the account domain.
func (s *Service) InsertUserAlias(ctx context.Context, userKey, alias string) (*admin.Alias, error) {
	if err := required("user", userKey); err != nil {
		return nil, err
	}
	if err := required("alias", alias); err != nil {
		return nil, err
	}
	key := s.email(userKey)
	body := &admin.Alias{Alias: s.email(alias)}
	return google.Call(ctx, s.limiter, apiName, "users.aliases.insert", key,
		s.api.Users.Aliases.Insert(key, body).Context(ctx).Do)
}

// DeleteUserAlias removes an alias from a user.
func (s *Service) DeleteUserAlias(ctx context.Context, userKey, alias string) error {
	if err := required("user", userKey); err != nil {
		return err
	}
	if err := required("alias", alias); err != nil {
		return err
	}
	key := s.email(userKey)
	return google.Exec(ctx, s.limiter, apiName, "users.aliases.delete", key,
		s.api.Users.Aliases.Delete(key, s.email(alias)).Context(ctx).Do)
}

// ListGroupAliases lists the aliases of a group.
func (s *Service) ListGroupAliases(ctx context.Context, groupKey string) ([]string, error) {
	if err := required("group", groupKey); err != nil {
		return nil, err
	}
	key := s.email(groupKey)
	resp, err := google.Call(ctx, s.limiter, apiName, "groups.aliases.list", key,
		s.api.Groups.Aliases.List(key).Context(ctx).Do)
	if err != nil {
		return nil, err
	}
	rows := decodeAliases(resp.Aliases, key)
	aliases := make([]string, 0, len(rows))
	for _, r := range rows {
		aliases = append(aliases, r.Alias)
	}
	return aliases, nil
}

// InsertGroupAlias adds an alias to a group.
func (s *Service) InsertGroupAlias(ctx context.Context, groupKey, alias string) (*admin.Alias, error) {
	if err := required("group", groupKey); err != nil {
		return nil, err
	}
	if err := required("alias", alias); err != nil {
		return nil, err
	}
	key := s.email(groupKey)
	body := &admin.Alias{Alias: s.email(alias)}
	return google.Call(ctx, s.limiter, apiName, "groups.aliases.insert", key,
		s.api.Groups.Aliases.Insert(key, body).Context(ctx).Do)
}

// DeleteGroupAlias removes an alias from a group.
func (s *Service) DeleteGroupAlias(ctx context.Context, groupKey, alias string) error {
	if err := required("group", groupKey); err != nil {
		return err
	}
	if err := required("alias", alias); err != nil {
		return err
	}
	key := s.email(groupKey)
	return google.Exec(ctx, s.limiter, apiName, "groups.aliases.delete", key,
		s.api.Groups.Aliases.Delete(key, s.email(alias)).Context(ctx).Do)
}

// decodeAliases reads the untyped alias list returned by the aliases.list
// endpoints. Items are JSON objects with alias, primaryEmail and id.
func decodeAliases(items []interface{}, owner string) []UserAliasView {
	rows := make([]UserAliasView, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		row := UserAliasView{PrimaryEmail: owner, Editable: true}
		row.Alias, _ = m["alias"].(string)
		if pe, ok := m["primaryEmail"].(string); ok && pe != "" {
			row.PrimaryEmail = pe
		}
		row.UserID, _ = m["id"].(string)
		if row.Alias != "" {
			rows = append(rows, row)
		}
	}
	return rows
}
