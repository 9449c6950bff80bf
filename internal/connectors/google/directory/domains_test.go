package directory

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDomains(t *testing.T) {
	svc, fake := newTestService(t)
	fake.on(http.MethodGet, "/domains", http.StatusOK,
		`{"domains":[{"domainName":"example.com","isPrimary":true,"verified":true,"creationTime":"1700000000000"}]}`)

	domains, err := svc.ListDomains(context.Background())
	require.NoError(t, err)
	require.Len(t, domains, 1)

	row := NewDomainRow(domains[0])
	assert.Equal(t, "example.com", row.Name)
	assert.True(t, row.Primary)
	assert.Equal(t, "2023-11-14T22:13:20Z", row.Created)
}

func TestInsertAndDeleteDomain(t *testing.T) {
	svc, fake := newTestService(t)
	ctx := context.Background()

	_, err := svc.InsertDomain(ctx, "New.Example.ORG")
	require.NoError(t, err)
	assert.Equal(t, "new.example.org", fake.last(t).Body["domainName"])

	require.NoError(t, svc.DeleteDomain(ctx, "new.example.org"))
	assert.True(t, strings.HasSuffix(fake.last(t).Path, "/customer/my_customer/domains/new.example.org"))
}

func TestDomainAliases(t *testing.T) {
	svc, fake := newTestService(t)
	ctx := context.Background()
	fake.on(http.MethodGet, "/domainaliases", http.StatusOK,
		`{"domainAliases":[{"domainAliasName":"example.net","parentDomainName":"example.com"}]}`)

	aliases, err := svc.ListDomainAliases(ctx, "Example.com")
	require.NoError(t, err)
	require.Len(t, aliases, 1)
	assert.Equal(t, "example.com", fake.last(t).Query.Get("parentDomainName"))
	assert.Equal(t, "example.com", NewDomainAliasRow(aliases[0]).Parent)

	_, err = svc.InsertDomainAlias(ctx, "", "example.io")
	require.NoError(t, err)
	body := fake.last(t).Body
	assert.Equal(t, "example.io", body["domainAliasName"])
	assert.Equal(t, "example.com", body["parentDomainName"])

	require.NoError(t, svc.DeleteDomainAlias(ctx, "example.io"))
	assert.True(t, strings.HasSuffix(fake.last(t).Path, "/domainaliases/example.io"))
}
