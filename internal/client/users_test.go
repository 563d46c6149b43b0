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

func TestUsersClient_Get(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/settings/v3/users/42", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		client.WriteJSON(writer, hubspot.User{
			ID:               "42",
			Email:            "ann@example.com",
			RoleID:           "310",
			PrimaryTeamID:    "t1",
			SecondaryTeamIDs: []string{"t2"},
		})
	}))
	defer server.Close()

	users := client.NewTestClient(server.URL).Users()

	user, err := users.Get(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "310", user.RoleID)
}

func TestUsersClient_Get_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/settings/v3/users/42", request.URL.Path)

		client.WriteError(writer, http.StatusNotFound, hubspot.CategoryObjectNotFound, "user 42 does not exist")
	}))
	defer server.Close()

	users := client.NewTestClient(server.URL).Users()

	_, err := users.Get(context.Background(), "42")
	require.Error(t, err)

	// The error carries the path template, not the resolved URL.
	apiErr := &hubspot.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "/settings/v3/users/{userId}", apiErr.Endpoint)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Not Found", apiErr.StatusText)
	assert.True(t, hubspot.IsNotFound(err))
}

func TestUsersClient_Get_Unauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		client.WriteError(writer, http.StatusUnauthorized, "INVALID_AUTHENTICATION", "token invalid or expired")
	}))
	defer server.Close()

	users := client.NewTestClient(server.URL).Users()

	_, err := users.Get(context.Background(), "42")
	require.Error(t, err)

	apiErr := &hubspot.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, hubspot.UserEndpoint, apiErr.Endpoint)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.True(t, hubspot.IsUnauthorized(err))
}

func TestUsersClient_Get_EmptyID(t *testing.T) {
	t.Parallel()

	users := client.NewTestClient("http://127.0.0.1:1").Users()

	_, err := users.Get(context.Background(), "")
	require.ErrorIs(t, err, hubspot.ErrUserIDRequired)
}
