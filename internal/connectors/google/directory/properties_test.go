package directory

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/core/domain"
)

const propertyUser = `{
	"primaryEmail":"jdoe@example.com",
	"phones":[{"value":"+31 20 123","type":"work","primary":true},{"value":"+31 6 999","type":"mobile"}],
	"emails":[{"address":"jdoe@example.com","primary":true}],
	"websites":[{"value":"https://example.com/jdoe","type":"custom","customType":"blog"}]
}`

func TestNewUserPropertyCollection_DecodesResponse(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodGet, "/users/jdoe@example.com", http.StatusOK, propertyUser)

	c, err := svc.GetUserProperties(context.Background(), "jdoe")
	require.NoError(t, err)

	require.Len(t, c.Phones, 2)
	assert.True(t, c.Phones[0].Primary)
	require.Len(t, c.Emails, 1)
	assert.Equal(t, domain.PropertyNone, c.Dirty())
	assert.Equal(t, "full", fake.last(t).Query.Get("projection"))

	rows := c.Rows(domain.PropertyWebsites)
	require.Len(t, rows, 1)
	assert.Equal(t, PropertyRow{Category: domain.PropertyWebsites.String(), Type: "blog", Value: "https://example.com/jdoe"}, rows[0])
	assert.Len(t, c.Rows(domain.PropertyNone), 4)
}

func TestNewUserPropertyCollection_TypedSlices(t *testing.T) {
	user := &admin.User{Phones: []admin.UserPhone{{Value: "123"}}}

	c, err := NewUserPropertyCollection(user)
	require.NoError(t, err)
	assert.Len(t, c.Phones, 1)

	empty, err := NewUserPropertyCollection(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Rows(domain.PropertyNone))
	assert.NotNil(t, empty.Rows(domain.PropertyNone))
}

func TestUserPropertyCollection_AddRemove(t *testing.T) {
	c := &UserPropertyCollection{}

	require.NoError(t, c.Add(domain.PropertyPhones, Property{Value: "123", Type: "work"}))
	require.NoError(t, c.Add(domain.PropertyIms, Property{Value: "jdoe", CustomType: "matrix"}))
	assert.Equal(t, "custom", c.Ims[0].Type)
	assert.Equal(t, domain.PropertyPhones|domain.PropertyIms, c.Dirty())

	require.ErrorIs(t, c.Add(domain.PropertyPhones, Property{}), domain.ErrInvalidInput)
	require.ErrorIs(t, c.Add(domain.PropertyPhones|domain.PropertyEmails, Property{Value: "x"}), domain.ErrInvalidInput)

	require.NoError(t, c.Remove(domain.PropertyPhones, "123"))
	assert.Empty(t, c.Phones)
	require.ErrorIs(t, c.Remove(domain.PropertyPhones, "123"), domain.ErrNotFound)
}

func TestUserPropertyCollection_PatchUser(t *testing.T) {
	c, err := NewUserPropertyCollection(&admin.User{
		Phones: []admin.UserPhone{{Value: "1"}},
		Emails: []admin.UserEmail{{Address: "a@example.com"}},
	})
	require.NoError(t, err)

	require.NoError(t, c.Remove(domain.PropertyPhones, "1"))
	patch := c.PatchUser()

	assert.Equal(t, []admin.UserPhone{}, patch.Phones)
	assert.Nil(t, patch.Emails)
	assert.Equal(t, []string{"Phones"}, patch.ForceSendFields)
}

func TestSaveUserProperties(t *testing.T) {
	svc, fake := newTestService(t)
	c := &UserPropertyCollection{}

	_, err := svc.SaveUserProperties(context.Background(), "jdoe", c)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, fake.all())

	c.Clear(domain.PropertyRelations | domain.PropertyWebsites)
	_, err = svc.SaveUserProperties(context.Background(), "jdoe", c)
	require.NoError(t, err)

	body := fake.last(t).Body
	assert.Equal(t, []interface{}{}, body["relations"])
	assert.Equal(t, []interface{}{}, body["websites"])
	assert.NotContains(t, body, "phones")
}
