package directory

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUserAliases(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodGet, "/users/jdoe@example.com/aliases", http.StatusOK,
		`{"aliases":[{"alias":"john@example.com","primaryEmail":"jdoe@example.com","id":"1"},{"alias":""}]}`)

	rows, err := svc.ListUserAliases(context.Background(), "jdoe")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, UserAliasView{Alias: "john@example.com", PrimaryEmail: "jdoe@example.com", UserID: "1", Editable: true}, rows[0])
}

func TestListAllUserAliases(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodGet, "/users", http.StatusOK, `{"users":[
		{"id":"1","primaryEmail":"a@example.com","aliases":["x@example.com"],"nonEditableAliases":["a@example.net"]},
		{"id":"2","primaryEmail":"b@example.com"}]}`)

	rows, err := svc.ListAllUserAliases(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Editable)
	assert.False(t, rows[1].Editable)
	assert.Equal(t, "a@example.com", rows[1].PrimaryEmail)
}

func TestListAllUserAliases_NoUsers(t *testing.T) {
	svc, _ := newTestService(t)

	rows, err := svc.ListAllUserAliases(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestUserAliasWrites(t *testing.T) {
	svc, fake := newTestService(t)
	ctx := context.Background()

	_, err := svc.InsertUserAlias(ctx, "jdoe", "johnny")
	require.NoError(t, err)
	req := fake.last(t)
	assert.True(t, strings.HasSuffix(req.Path, "/users/jdoe@example.com/aliases"))
	assert.Equal(t, "johnny@example.com", req.Body["alias"])

	require.NoError(t, svc.DeleteUserAlias(ctx, "jdoe", "johnny"))
	assert.True(t, strings.HasSuffix(fake.last(t).Path, "/users/jdoe@example.com/aliases/johnny@example.com"))
}

func TestGroupAliases(t *testing.T) {
	svc, fake := newTestService(t)
	ctx := context.Background()
	fake.on(http.MethodGet, "/groups/staff@example.com/aliases", http.StatusOK,
		`{"aliases":[{"alias":"team@example.com"},{"alias":"crew@example.com"}]}`)

	aliases, err := svc.ListGroupAliases(ctx, "staff")
	require.NoError(t, err)
	assert.Equal(t, []string{"team@example.com", "crew@example.com"}, aliases)

	_, err = svc.InsertGroupAlias(ctx, "staff", "people")
	require.NoError(t, err)
	assert.Equal(t, "people@example.com", fake.last(t).Body["alias"])

	require.NoError(t, svc.DeleteGroupAlias(ctx, "staff", "people@example.com"))
	assert.Equal(t, http.MethodDelete, fake.last(t).Method)
}
