package directory

import (
	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

// UserUpdate holds the changes of a set-user request. Nil fields are left
// untouched; booleans set to false are sent explicitly.
type UserUpdate struct {
	NewUserName                *string
	GivenName                  *string
	FamilyName                 *string
	Password                   *string
	HashPassword               bool
	ChangePasswordAtNextLogin  *bool
	OrgUnitPath                *string
	Suspended                  *bool
	IncludeInGlobalAddressList *bool
	IPWhitelisted              *bool
	Archived                   *bool
	RecoveryEmail              *string
	RecoveryPhone              *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.NewUserName == nil && u.GivenName == nil && u.FamilyName == nil &&
		u.Password == nil && u.ChangePasswordAtNextLogin == nil && u.OrgUnitPath == nil &&
		u.Suspended == nil && u.IncludeInGlobalAddressList == nil && u.IPWhitelisted == nil &&
		u.Archived == nil && u.RecoveryEmail == nil && u.RecoveryPhone == nil
}

// Build produces the users.patch body. Renames are completed with domainName.
func (u UserUpdate) Build(domainName string) (*admin.User, error) {
	if u.IsEmpty() {
		return nil, errNothingToUpdate
	}

	user := &admin.User{}
	if u.NewUserName != nil {
		user.PrimaryEmail = domain.NormalizeEmail(*u.NewUserName, domainName)
	}
	if u.GivenName != nil || u.FamilyName != nil {
		user.Name = &admin.UserName{}
		if u.GivenName != nil {
			user.Name.GivenName = *u.GivenName
		}
		if u.FamilyName != nil {
			user.Name.FamilyName = *u.FamilyName
		}
	}
	if u.Password != nil {
		setPassword(user, *u.Password, u.HashPassword)
	}
	if u.OrgUnitPath != nil {
		user.OrgUnitPath = domain.NormalizeOrgUnitPath(*u.OrgUnitPath)
	}
	if u.RecoveryEmail != nil {
		user.RecoveryEmail = *u.RecoveryEmail
		user.ForceSendFields = append(user.ForceSendFields, "RecoveryEmail")
	}
	if u.RecoveryPhone != nil {
		user.RecoveryPhone = *u.RecoveryPhone
		user.ForceSendFields = append(user.ForceSendFields, "RecoveryPhone")
	}

	setBool(user, u.ChangePasswordAtNextLogin, "ChangePasswordAtNextLogin", &user.ChangePasswordAtNextLogin)
	setBool(user, u.Suspended, "Suspended", &user.Suspended)
	setBool(user, u.IncludeInGlobalAddressList, "IncludeInGlobalAddressList", &user.IncludeInGlobalAddressList)
	setBool(user, u.IPWhitelisted, "IpWhitelisted", &user.IpWhitelisted)
	setBool(user, u.Archived, "Archived", &user.Archived)

	return user, nil
}

func setBool(user *admin.User, value *bool, field string, dst *bool) {
	if value == nil {
		return
	}
	*dst = *value
	user.ForceSendFields = append(user.ForceSendFields, field)
}
