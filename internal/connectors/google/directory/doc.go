// Package directory wraps the Admin SDK Directory API.
//
// A Service is bound to one account: its domain completes bare user and
// group names into addresses, and its customer ID is used wherever the API
// needs one. List operations follow every page unless a maximum is given.
//
// The package also holds the reshaped views used for display: UserView,
// UserAliasView, MemberRow, and the schema field conversions between
// domain.SchemaField and *admin.SchemaFieldSpec.
package directory
