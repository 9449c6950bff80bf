package cli

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gshell/internal/output"
)

const (
	janePath = "/admin/directory/v1/users/jane@example.com"
	janeJSON = `{"id":"1","primaryEmail":"jane@example.com","name":{"givenName":"Jane","familyName":"Doe","fullName":"Jane Doe"},"orgUnitPath":"/"}`
)

func TestUserGet_JSON(t *testing.T) {
	f := newFixture(t)
	f.api.on(http.MethodGet, janePath, 0, janeJSON)

	r := f.run("user", "get", "jane", "-o", "json")

	require.Equal(t, output.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"primary_email": "jane@example.com"`)
	assert.Contains(t, r.stdout, `"full_name": "Jane Doe"`)
	assert.Equal(t, []string{"GET " + janePath}, f.api.calls())
}

func TestUserGet_APIError(t *testing.T) {
	f := newFixture(t)

	r := f.run("user", "get", "ghost")

	assert.Equal(t, output.ExitAPI, r.code)
	assert.Contains(t, r.stderr, "InvalidData")
}

func TestUserGet_InvalidProjection(t *testing.T) {
	f := newFixture(t)

	r := f.run("user", "get", "jane", "--projection", "everything")

	assert.Equal(t, output.ExitUsage, r.code)
	assert.Empty(t, f.api.calls())
}

func TestUserRemove_WhatIf(t *testing.T) {
	f := newFixture(t)

	r := f.run("user", "remove", "jane", "--what-if")

	require.Equal(t, output.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, `What if: remove user on target "jane@example.com"`)
	assert.Empty(t, f.api.calls())
}

func TestUserRemove_Declined(t *testing.T) {
	f := newFixture(t)

	r := f.exec("n\n", "user", "remove", "jane")

	assert.Equal(t, output.ExitCancelled, r.code)
	assert.Contains(t, r.stderr, `Are you sure you want to remove user "jane@example.com"?`)
	assert.Contains(t, r.stderr, "OperationStopped")
	assert.Empty(t, f.api.calls())
}

func TestUserRemove_Confirmed(t *testing.T) {
	f := newFixture(t)
	f.api.on(http.MethodDelete, janePath, http.StatusNoContent, "")

	r := f.exec("y\n", "user", "remove", "jane")

	require.Equal(t, output.ExitSuccess, r.code, r.stderr)
	assert.Equal(t, []string{"DELETE " + janePath}, f.api.calls())
}

func TestUserRemove_Force(t *testing.T) {
	f := newFixture(t)
	f.api.on(http.MethodDelete, janePath, http.StatusNoContent, "")

	r := f.run("user", "remove", "jane@example.com", "--force")

	require.Equal(t, output.ExitSuccess, r.code, r.stderr)
	assert.Equal(t, []string{"DELETE " + janePath}, f.api.calls())
}

func TestUserNew_GeneratesPassword(t *testing.T) {
	f := newFixture(t)
	f.api.on(http.MethodPost, "/admin/directory/v1/users", 0, janeJSON)

	r := f.run("user", "new", "jane", "--given-name", "Jane", "--family-name", "Doe")

	require.Equal(t, output.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stderr, "Generated password for jane@example.com")
	assert.Contains(t, f.api.lastBody(), `"primaryEmail":"jane@example.com"`)
	assert.Contains(t, f.api.lastBody(), `"password"`)
}

func TestUserNew_RequiresNames(t *testing.T) {
	f := newFixture(t)

	r := f.run("user", "new", "jane", "--given-name", "Jane")

	assert.Equal(t, output.ExitUsage, r.code)
	assert.Empty(t, f.api.calls())
}

func TestUserSet_SendsOnlyChangedFields(t *testing.T) {
	f := newFixture(t)
	f.api.on(http.MethodPatch, janePath, 0, janeJSON)

	r := f.run("user", "set", "jane", "--suspended")

	require.Equal(t, output.ExitSuccess, r.code, r.stderr)
	assert.JSONEq(t, `{"suspended":true}`, f.api.lastBody())
}

func TestUserSet_NothingToUpdate(t *testing.T) {
	f := newFixture(t)

	r := f.run("user", "set", "jane")

	assert.Equal(t, output.ExitUsage, r.code)
	assert.Contains(t, r.stderr, "nothing to update")
	assert.Empty(t, f.api.calls())
}

func TestUserList_Empty(t *testing.T) {
	f := newFixture(t)
	f.api.on(http.MethodGet, "/admin/directory/v1/users", 0, `{}`)

	r := f.run("user", "list", "-o", "json")

	require.Equal(t, output.ExitSuccess, r.code, r.stderr)
	assert.Equal(t, "[]\n", r.stdout)
}
