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

func TestPropertiesClient_List(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/crm/v3/properties/contacts", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		client.WriteJSON(writer, hubspot.CollectionResponse[hubspot.Property]{
			Results: []hubspot.Property{
				{Name: "email", Label: "Email", Type: "string", FieldType: "text"},
				{Name: "hs_lead_status", Label: "Lead Status", Type: "enumeration", FieldType: "radio"},
			},
		})
	}))
	defer server.Close()

	properties := client.NewTestClient(server.URL).Properties()

	page, err := properties.List(context.Background(), "contacts")
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "email", page.Results[0].Name)
	assert.Equal(t, "enumeration", page.Results[1].Type)
}

func TestPropertiesClient_List_Error(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		client.WriteError(writer, http.StatusBadRequest, hubspot.CategoryValidationError, "unknown object type")
	}))
	defer server.Close()

	properties := client.NewTestClient(server.URL).Properties()

	_, err := properties.List(context.Background(), "wombats")
	require.Error(t, err)

	apiErr := &hubspot.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, hubspot.PropertiesEndpoint, apiErr.Endpoint)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestPropertiesClient_List_EmptyObjectType(t *testing.T) {
	t.Parallel()

	properties := client.NewTestClient("http://127.0.0.1:1").Properties()

	_, err := properties.List(context.Background(), "")
	require.ErrorIs(t, err, hubspot.ErrObjectTypeRequired)
}
