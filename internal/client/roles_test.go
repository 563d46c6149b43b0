package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphwell-io/hubsync/internal/client"
	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

func TestRolesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/settings/v3/users/roles", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		client.WriteJSON(writer, hubspot.CollectionResponse[hubspot.Role]{
			Results: []hubspot.Role{
				{ID: "310", Name: "Sales Manager"},
				{ID: "311", Name: "Super Admin", RequiresBillingWrite: true},
			},
		})
	}))
	defer server.Close()

	roles := client.NewTestClient(server.URL).Roles()

	page, err := roles.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "310", page.Results[0].ID)
	assert.Equal(t, "Sales Manager", page.Results[0].Name)
	assert.True(t, page.Results[1].RequiresBillingWrite)
}

func TestRolesClient_List_Forbidden(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		client.WriteError(writer, http.StatusForbidden, "MISSING_SCOPES", "this app hasn't been granted settings.users.read")
	}))
	defer server.Close()

	roles := client.NewTestClient(server.URL).Roles()

	_, err := roles.List(context.Background(), nil)
	require.Error(t, err)

	apiErr := &hubspot.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, hubspot.RolesEndpoint, apiErr.Endpoint)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.True(t, hubspot.IsForbidden(err))
}

func TestRolesClient_Each(t *testing.T) {
	t.Parallel()

	counter := &client.RequestCounter{}

	server := httptest.NewServer(counter.Wrap(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/settings/v3/users/roles", request.URL.Path)

		client.WriteJSON(writer, hubspot.CollectionResponse[hubspot.Role]{
			Results: []hubspot.Role{{ID: "310", Name: "Sales Manager"}},
		})
	}))
	defer server.Close()

	roles := client.NewTestClient(server.URL).Roles()

	var seen []string

	err := roles.Each(context.Background(), func(role hubspot.Role) error {
		seen = append(seen, role.Name)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales Manager"}, seen)
	assert.Equal(t, 1, counter.Count())
}

func TestRolesClient_Each_Unauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		client.WriteError(writer, http.StatusUnauthorized, "INVALID_AUTHENTICATION", "token invalid or expired")
	}))
	defer server.Close()

	roles := client.NewTestClient(server.URL).Roles()

	err := roles.Each(context.Background(), func(role hubspot.Role) error {
		return nil
	})
	require.Error(t, err)

	apiErr := &hubspot.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, hubspot.RolesEndpoint, apiErr.Endpoint)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
