package directory

import (
	"context"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// GetUserOptions shapes a users.get request.
type GetUserOptions struct {
	// Projection is basic, custom or full.
	Projection string
	// CustomFieldMask lists schemas to include with the custom projection.
	CustomFieldMask string
	// ViewType is admin_view or domain_public.
	ViewType string
}

// ListUsersOptions shapes a users.list request.
type ListUsersOptions struct {
	// Domain restricts the list to one domain. Empty lists the whole customer.
	Domain string
	// Customer overrides the account customer ID.
	Customer string
	// Query is an Admin SDK user search query.
	Query string
	// OrderBy is email, familyName or givenName.
	OrderBy string
	// SortOrder is ASCENDING or DESCENDING.
	SortOrder string
	// ShowDeleted lists recently deleted users instead.
	ShowDeleted bool
	Projection  string
	ViewType    string
	// Max stops after this many users. 0 lists all.
	Max int
}

// NewUser describes a user to create.
type NewUser struct {
	// UserName is a bare name or a full address.
	UserName   string
	GivenName  string
	FamilyName string
	// Password is generated when empty.
	Password string
	// HashPassword sends the password as an MD5 digest.
	HashPassword              bool
	ChangePasswordAtNextLogin bool
	// OrgUnitPath defaults to the root unit.
	OrgUnitPath                string
	Suspended                  bool
	IncludeInGlobalAddressList *bool
	RecoveryEmail              string
	RecoveryPhone              string
}

// CreatedUser is the result of InsertUser.
type CreatedUser struct {
	User *admin.User
	// GeneratedPassword is set when the password was generated.
	GeneratedPassword string
}

// GetUser fetches one user by address, alias or ID.
func (s *Service) GetUser(ctx context.Context, userKey string, opts GetUserOptions) (*admin.User, error) {
	if err := required("user", userKey); err != nil {
		return nil, err
	}
	projection, err := oneOf("projection", opts.Projection, "basic", "custom", "full")
	if err != nil {
		return nil, err
	}
	viewType, err := oneOf("view type", opts.ViewType, "admin_view", "domain_public")
	if err != nil {
		return nil, err
	}

	key := s.email(userKey)
	call := s.api.Users.Get(key).Context(ctx)
	if projection != "" {
		call.Projection(projection)
	}
	if opts.CustomFieldMask != "" {
		call.CustomFieldMask(opts.CustomFieldMask)
	}
	if viewType != "" {
		call.ViewType(viewType)
	}
	return google.Call(ctx, s.limiter, apiName, "users.get", key, call.Do)
}

// ListUsers lists users of the account customer or of one domain.
func (s *Service) ListUsers(ctx context.Context, opts ListUsersOptions) ([]*admin.User, error) {
	orderBy, err := oneOf("order by", opts.OrderBy, "email", "familyName", "givenName")
	if err != nil {
		return nil, err
	}
	sortOrder, err := oneOf("sort order", opts.SortOrder, "ASCENDING", "DESCENDING")
	if err != nil {
		return nil, err
	}
	projection, err := oneOf("projection", opts.Projection, "basic", "custom", "full")
	if err != nil {
		return nil, err
	}
	viewType, err := oneOf("view type", opts.ViewType, "admin_view", "domain_public")
	if err != nil {
		return nil, err
	}

	call := s.api.Users.List().MaxResults(google.PageSize(s.pageSize, opts.Max))
	target := opts.Domain
	if opts.Domain != "" {
		call.Domain(domain.NormalizeDomain(opts.Domain))
	} else {
		target = s.customerOr(opts.Customer)
		call.Customer(target)
	}
	if opts.Query != "" {
		call.Query(opts.Query)
	}
	if orderBy != "" {
		call.OrderBy(orderBy)
	}
	if sortOrder != "" {
		call.SortOrder(sortOrder)
	}
	if opts.ShowDeleted {
		call.ShowDeleted("true")
	}
	if projection != "" {
		call.Projection(projection)
	}
	if viewType != "" {
		call.ViewType(viewType)
	}

	var users []*admin.User
	err = google.Paged(ctx, s.limiter, apiName, "users.list", target, func() error {
		return call.Pages(ctx, func(page *admin.Users) error {
			users = append(users, page.Users...)
			return google.PageGate(ctx, s.limiter, len(users), opts.Max)
		})
	})
	if err != nil {
		return nil, err
	}
	return google.Truncate(users, opts.Max), nil
}

// InsertUser creates a user. The primary address is completed with the
// account domain and the password is generated when not given.
func (s *Service) InsertUser(ctx context.Context, nu NewUser) (*CreatedUser, error) {
	if err := required("user name", nu.UserName); err != nil {
		return nil, err
	}
	if err := required("given name", nu.GivenName); err != nil {
		return nil, err
	}
	if err := required("family name", nu.FamilyName); err != nil {
		return nil, err
	}

	created := &CreatedUser{}
	password := nu.Password
	if password == "" {
		generated, err := domain.GeneratePassword(domain.MinPasswordLength * 2)
		if err != nil {
			return nil, err
		}
		password = generated
		created.GeneratedPassword = generated
	}

	user := &admin.User{
		PrimaryEmail:              s.email(nu.UserName),
		Name:                      &admin.UserName{GivenName: nu.GivenName, FamilyName: nu.FamilyName},
		ChangePasswordAtNextLogin: nu.ChangePasswordAtNextLogin,
		OrgUnitPath:               domain.NormalizeOrgUnitPath(nu.OrgUnitPath),
		Suspended:                 nu.Suspended,
		RecoveryEmail:             nu.RecoveryEmail,
		RecoveryPhone:             nu.RecoveryPhone,
	}
	setPassword(user, password, nu.HashPassword)
	if nu.IncludeInGlobalAddressList != nil {
		user.IncludeInGlobalAddressList = *nu.IncludeInGlobalAddressList
		user.ForceSendFields = append(user.ForceSendFields, "IncludeInGlobalAddressList")
	}

	inserted, err := google.Call(ctx, s.limiter, apiName, "users.insert", user.PrimaryEmail,
		s.api.Users.Insert(user).Context(ctx).Do)
	if err != nil {
		return nil, err
	}
	created.User = inserted
	return created, nil
}

// UpdateUser replaces a user with users.update.
func (s *Service) UpdateUser(ctx context.Context, userKey string, user *admin.User) (*admin.User, error) {
	if err := required("user", userKey); err != nil {
		return nil, err
	}
	key := s.email(userKey)
	return google.Call(ctx, s.limiter, apiName, "users.update", key,
		s.api.Users.Update(key, user).Context(ctx).Do)
}

// PatchUser sends only the fields set in patch with users.patch.
func (s *Service) PatchUser(ctx context.Context, userKey string, patch *admin.User) (*admin.User, error) {
	if err := required("user", userKey); err != nil {
		return nil, err
	}
	key := s.email(userKey)
	return google.Call(ctx, s.limiter, apiName, "users.patch", key,
		s.api.Users.Patch(key, patch).Context(ctx).Do)
}

// SetUser applies a UserUpdate.
func (s *Service) SetUser(ctx context.Context, userKey string, update UserUpdate) (*admin.User, error) {
	patch, err := update.Build(s.domain)
	if err != nil {
		return nil, err
	}
	return s.PatchUser(ctx, userKey, patch)
}

// DeleteUser deletes a user.
func (s *Service) DeleteUser(ctx context.Context, userKey string) error {
	if err := required("user", userKey); err != nil {
		return err
	}
	key := s.email(userKey)
	return google.Exec(ctx, s.limiter, apiName, "users.delete", key,
		s.api.Users.Delete(key).Context(ctx).Do)
}

// UndeleteUser restores a recently deleted user by ID into orgUnitPath.
func (s *Service) UndeleteUser(ctx context.Context, userID, orgUnitPath string) error {
	if err := required("user id", userID); err != nil {
		return err
	}
	body := &admin.UserUndelete{OrgUnitPath: domain.NormalizeOrgUnitPath(orgUnitPath)}
	return google.Exec(ctx, s.limiter, apiName, "users.undelete", userID,
		s.api.Users.Undelete(userID, body).Context(ctx).Do)
}

// MakeAdmin grants or revokes super administrator status.
func (s *Service) MakeAdmin(ctx context.Context, userKey string, status bool) error {
	if err := required("user", userKey); err != nil {
		return err
	}
	key := s.email(userKey)
	body := &admin.UserMakeAdmin{Status: status, ForceSendFields: []string{"Status"}}
	return google.Exec(ctx, s.limiter, apiName, "users.makeAdmin", key,
		s.api.Users.MakeAdmin(key, body).Context(ctx).Do)
}

func setPassword(user *admin.User, password string, hash bool) {
	if hash {
		user.Password = domain.HashPasswordMD5(password)
		user.HashFunction = domain.HashFunctionMD5
		return
	}
	user.Password = password
}
