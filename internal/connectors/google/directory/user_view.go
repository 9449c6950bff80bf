package directory

import (
	admin "google.golang.org/api/admin/directory/v1"
)

// UserView is a flattened, display-oriented copy of an *admin.User.
// Its fields mirror the source as it was when the view was built.
type UserView struct {
	ID                 string   `json:"id" yaml:"id"`
	PrimaryEmail       string   `json:"primary_email" yaml:"primary_email"`
	GivenName          string   `json:"given_name" yaml:"given_name"`
	FamilyName         string   `json:"family_name" yaml:"family_name"`
	FullName           string   `json:"full_name" yaml:"full_name"`
	OrgUnitPath        string   `json:"org_unit_path" yaml:"org_unit_path"`
	IsAdmin            bool     `json:"is_admin" yaml:"is_admin"`
	IsDelegatedAdmin   bool     `json:"is_delegated_admin" yaml:"is_delegated_admin"`
	Suspended          bool     `json:"suspended" yaml:"suspended"`
	SuspensionReason   string   `json:"suspension_reason,omitempty" yaml:"suspension_reason,omitempty"`
	Archived           bool     `json:"archived" yaml:"archived"`
	CreationTime       string   `json:"creation_time" yaml:"creation_time"`
	LastLoginTime      string   `json:"last_login_time" yaml:"last_login_time"`
	Aliases            []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	NonEditableAliases []string `json:"non_editable_aliases,omitempty" yaml:"non_editable_aliases,omitempty"`
	CustomerID         string   `json:"customer_id" yaml:"customer_id"`
	IsMailboxSetup     bool     `json:"is_mailbox_setup" yaml:"is_mailbox_setup"`
	IsEnrolledIn2Sv    bool     `json:"is_enrolled_in_2sv" yaml:"is_enrolled_in_2sv"`
	IsEnforcedIn2Sv    bool     `json:"is_enforced_in_2sv" yaml:"is_enforced_in_2sv"`

	// Source is the user the view was built from.
	Source *admin.User `json:"-" yaml:"-"`
}

// NewUserView builds a view of user. A nil user yields nil.
func NewUserView(user *admin.User) *UserView {
	if user == nil {
		return nil
	}
	v := &UserView{
		ID:                 user.Id,
		PrimaryEmail:       user.PrimaryEmail,
		OrgUnitPath:        user.OrgUnitPath,
		IsAdmin:            user.IsAdmin,
		IsDelegatedAdmin:   user.IsDelegatedAdmin,
		Suspended:          user.Suspended,
		SuspensionReason:   user.SuspensionReason,
		Archived:           user.Archived,
		CreationTime:       user.CreationTime,
		LastLoginTime:      user.LastLoginTime,
		Aliases:            append([]string(nil), user.Aliases...),
		NonEditableAliases: append([]string(nil), user.NonEditableAliases...),
		CustomerID:         user.CustomerId,
		IsMailboxSetup:     user.IsMailboxSetup,
		IsEnrolledIn2Sv:    user.IsEnrolledIn2Sv,
		IsEnforcedIn2Sv:    user.IsEnforcedIn2Sv,
		Source:             user,
	}
	if user.Name != nil {
		v.GivenName = user.Name.GivenName
		v.FamilyName = user.Name.FamilyName
		v.FullName = user.Name.FullName
	}
	return v
}

// NewUserViews builds a view per user.
func NewUserViews(users []*admin.User) []*UserView {
	views := make([]*UserView, 0, len(users))
	for _, u := range users {
		if v := NewUserView(u); v != nil {
			views = append(views, v)
		}
	}
	return views
}

// TableHeader returns the column names used by TableRow.
func (v *UserView) TableHeader() []string {
	return []string{"Email", "Name", "Org Unit", "Admin", "Suspended", "Last Login"}
}

// TableRow returns the view as a table row.
func (v *UserView) TableRow() []string {
	return []string{v.PrimaryEmail, v.FullName, v.OrgUnitPath, yesNo(v.IsAdmin), yesNo(v.Suspended), v.LastLoginTime}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
