package directory

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

func TestGetUser_CompletesBareName(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodGet, "/users/jdoe@example.com", http.StatusOK,
		`{"id":"1","primaryEmail":"jdoe@example.com","name":{"givenName":"John","familyName":"Doe"}}`)

	user, err := svc.GetUser(context.Background(), "JDoe", GetUserOptions{Projection: "FULL", ViewType: "admin_view"})
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", user.PrimaryEmail)

	req := fake.last(t)
	assert.Equal(t, "full", req.Query.Get("projection"))
	assert.Equal(t, "admin_view", req.Query.Get("viewType"))
}

func TestGetUser_Validation(t *testing.T) {
	svc, fake := newTestService(t)

	_, err := svc.GetUser(context.Background(), "", GetUserOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GetUser(context.Background(), "jdoe", GetUserOptions{Projection: "everything"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, fake.all())
}

func TestGetUser_NotFound(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodGet, "/users/ghost@example.com", http.StatusNotFound,
		`{"error":{"code":404,"message":"Resource Not Found: userKey"}}`)

	_, err := svc.GetUser(context.Background(), "ghost", GetUserOptions{})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Resource Not Found")
}

func TestListUsers_FollowsPages(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodGet, "/users", http.StatusOK,
		`{"users":[{"primaryEmail":"a@example.com"},{"primaryEmail":"b@example.com"}],"nextPageToken":"p2"}`)
	fake.onPage(http.MethodGet, "/users", "p2", http.StatusOK,
		`{"users":[{"primaryEmail":"c@example.com"}]}`)

	users, err := svc.ListUsers(context.Background(), ListUsersOptions{Query: "isSuspended=false", OrderBy: "EMAIL"})
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "c@example.com", users[2].PrimaryEmail)
	require.Len(t, fake.all(), 2)

	req := fake.last(t)
	assert.Equal(t, "p2", req.Query.Get("pageToken"))
	assert.Equal(t, "my_customer", req.Query.Get("customer"))
	assert.Equal(t, "isSuspended=false", req.Query.Get("query"))
	assert.Equal(t, "email", req.Query.Get("orderBy"))
	assert.Equal(t, "2", req.Query.Get("maxResults"))
}

func TestListUsers_DomainAndMax(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodGet, "/users", http.StatusOK,
		`{"users":[{"primaryEmail":"a@example.com"},{"primaryEmail":"b@example.com"}],"nextPageToken":"more"}`)

	users, err := svc.ListUsers(context.Background(), ListUsersOptions{Domain: "Sub.Example.com", Max: 1})
	require.NoError(t, err)
	require.Len(t, users, 1)

	reqs := fake.all()
	require.Len(t, reqs, 1, "max reached on the first page")
	assert.Equal(t, "sub.example.com", reqs[0].Query.Get("domain"))
	assert.Empty(t, reqs[0].Query.Get("customer"))
	assert.Equal(t, "1", reqs[0].Query.Get("maxResults"))
}

func TestInsertUser_GeneratesPassword(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodPost, "/users", http.StatusOK, `{"id":"42","primaryEmail":"new@example.com"}`)

	created, err := svc.InsertUser(context.Background(), NewUser{
		UserName: "new", GivenName: "New", FamilyName: "User", ChangePasswordAtNextLogin: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", created.User.Id)
	assert.Len(t, created.GeneratedPassword, domain.MinPasswordLength*2)

	body := fake.last(t).Body
	assert.Equal(t, "new@example.com", body["primaryEmail"])
	assert.Equal(t, created.GeneratedPassword, body["password"])
	assert.Equal(t, "/", body["orgUnitPath"])
	assert.Equal(t, true, body["changePasswordAtNextLogin"])
	assert.NotContains(t, body, "hashFunction")
}

func TestInsertUser_HashedPassword(t *testing.T) {
	svc, fake := newTestService(t)

	created, err := svc.InsertUser(context.Background(), NewUser{
		UserName: "new@other.org", GivenName: "New", FamilyName: "User",
		Password: "Secret123!", HashPassword: true, OrgUnitPath: "Staff/",
	})
	require.NoError(t, err)
	assert.Empty(t, created.GeneratedPassword)

	body := fake.last(t).Body
	assert.Equal(t, "new@other.org", body["primaryEmail"])
	assert.Equal(t, domain.HashPasswordMD5("Secret123!"), body["password"])
	assert.Equal(t, "MD5", body["hashFunction"])
	assert.Equal(t, "/Staff", body["orgUnitPath"])
}

func TestInsertUser_RequiresNames(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.InsertUser(context.Background(), NewUser{UserName: "x", GivenName: "X"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "family name")
}

func TestSetUser_SendsExplicitFalse(t *testing.T) {
	svc, fake := newTestService(t)
	suspended := false
	given := "Jane"

	_, err := svc.SetUser(context.Background(), "jdoe", UserUpdate{Suspended: &suspended, GivenName: &given})
	require.NoError(t, err)

	req := fake.last(t)
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.True(t, strings.HasSuffix(req.Path, "/users/jdoe@example.com"))
	assert.Equal(t, false, req.Body["suspended"])
	assert.Equal(t, map[string]interface{}{"givenName": "Jane"}, req.Body["name"])
	assert.NotContains(t, req.Body, "archived")
}

func TestSetUser_Empty(t *testing.T) {
	svc, fake := newTestService(t)

	_, err := svc.SetUser(context.Background(), "jdoe", UserUpdate{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, fake.all())
}

func TestUserUpdate_Build(t *testing.T) {
	name := "renamed"
	pw := "pw"
	archived := true
	phone := ""

	user, err := UserUpdate{NewUserName: &name, Password: &pw, HashPassword: true, Archived: &archived, RecoveryPhone: &phone}.
		Build("example.com")
	require.NoError(t, err)

	assert.Equal(t, "renamed@example.com", user.PrimaryEmail)
	assert.Equal(t, domain.HashPasswordMD5("pw"), user.Password)
	assert.Equal(t, domain.HashFunctionMD5, user.HashFunction)
	assert.True(t, user.Archived)
	assert.ElementsMatch(t, []string{"Archived", "RecoveryPhone"}, user.ForceSendFields)
}

func TestDeleteAndUndeleteUser(t *testing.T) {
	svc, fake := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteUser(ctx, "jdoe"))
	req := fake.last(t)
	assert.Equal(t, http.MethodDelete, req.Method)
	assert.True(t, strings.HasSuffix(req.Path, "/users/jdoe@example.com"))

	require.NoError(t, svc.UndeleteUser(ctx, "12345", "Former"))
	req = fake.last(t)
	assert.True(t, strings.HasSuffix(req.Path, "/users/12345/undelete"))
	assert.Equal(t, "/Former", req.Body["orgUnitPath"])
}

func TestMakeAdmin_SendsStatusFalse(t *testing.T) {
	svc, fake := newTestService(t)

	require.NoError(t, svc.MakeAdmin(context.Background(), "jdoe", false))

	req := fake.last(t)
	assert.True(t, strings.HasSuffix(req.Path, "/users/jdoe@example.com/makeAdmin"))
	assert.Equal(t, false, req.Body["status"])
}

func TestUserView(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodGet, "/users/jdoe@example.com", http.StatusOK, `{
		"id":"1","primaryEmail":"jdoe@example.com",
		"name":{"givenName":"John","familyName":"Doe","fullName":"John Doe"},
		"orgUnitPath":"/Staff","isAdmin":true,"suspended":false,
		"aliases":["john@example.com"],"nonEditableAliases":["jdoe@example.net"]}`)

	user, err := svc.GetUser(context.Background(), "jdoe", GetUserOptions{})
	require.NoError(t, err)

	view := NewUserView(user)
	assert.Equal(t, "John Doe", view.FullName)
	assert.Equal(t, "/Staff", view.OrgUnitPath)
	assert.True(t, view.IsAdmin)
	assert.Same(t, user, view.Source)
	assert.Len(t, view.TableRow(), len(view.TableHeader()))
}
