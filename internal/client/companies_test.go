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

func TestCompaniesClient_RecentlyModified(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/companies/v2/companies/recent/modified", request.URL.Path)
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, "30", request.URL.Query().Get("count"))
		assert.Equal(t, "0", request.URL.Query().Get("offset"))
		assert.Equal(t, "0", request.URL.Query().Get("since"))

		client.WriteJSON(writer, hubspot.LegacyCollectionResponse[hubspot.Company]{
			Results: []hubspot.Company{
				{
					CompanyID: 7001,
					PortalID:  62515,
					Properties: map[string]hubspot.CompanyProperty{
						"name":             {Value: "Acme Corp", Timestamp: 1700000000000},
						"domain":           {Value: "acme.example"},
						"hubspot_owner_id": {Value: "101"},
					},
				},
			},
			HasMore: false,
			Offset:  1,
			Total:   1,
		})
	}))
	defer server.Close()

	companies := client.NewTestClient(server.URL).Companies()

	page, err := companies.RecentlyModified(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(7001), page.Results[0].CompanyID)
	assert.Equal(t, "Acme Corp", page.Results[0].Property("name"))
	assert.Equal(t, "101", page.Results[0].Property("hubspot_owner_id"))
	assert.False(t, page.HasMore)
}

func TestCompaniesClient_EachRecentlyModified_TwoPages(t *testing.T) {
	t.Parallel()

	// Page 1 reports hasMore with offset 30; page 2 reports no more results.
	// Only page 1 items produce callbacks, from exactly 2 requests.
	counter := &client.RequestCounter{}

	server := httptest.NewServer(counter.Wrap(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "30", request.URL.Query().Get("count"))
		assert.Equal(t, "1697800000000", request.URL.Query().Get("since"))

		switch request.URL.Query().Get("offset") {
		case "0":
			client.WriteJSON(writer, hubspot.LegacyCollectionResponse[hubspot.Company]{
				Results: []hubspot.Company{{CompanyID: 7001}, {CompanyID: 7002}},
				HasMore: true,
				Offset:  30,
			})
		case "30":
			client.WriteJSON(writer, hubspot.LegacyCollectionResponse[hubspot.Company]{
				Results: []hubspot.Company{},
				HasMore: false,
				Offset:  30,
			})
		default:
			t.Errorf("unexpected offset %q", request.URL.Query().Get("offset"))
		}
	}))
	defer server.Close()

	history := &hubspot.ExecutionHistory{
		LastSuccessful: &hubspot.RunRecord{StartedOn: 1697800000000},
	}
	companies := client.NewTestClientWithHistory(server.URL, history).Companies()

	var seen []int64

	err := companies.EachRecentlyModified(context.Background(), func(company hubspot.Company) error {
		seen = append(seen, company.CompanyID)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{7001, 7002}, seen)
	assert.Equal(t, 2, counter.Count())
}

func TestCompaniesClient_EachRecentlyModified_StopsOnHasMoreFalse(t *testing.T) {
	t.Parallel()

	counter := &client.RequestCounter{}

	server := httptest.NewServer(counter.Wrap(func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Query().Get("offset") {
		case "0":
			client.WriteJSON(writer, hubspot.LegacyCollectionResponse[hubspot.Company]{
				Results: []hubspot.Company{{CompanyID: 7001}},
				HasMore: true,
				Offset:  30,
			})
		default:
			// Final page still carries results; hasMore false ends the
			// iteration after their callbacks.
			client.WriteJSON(writer, hubspot.LegacyCollectionResponse[hubspot.Company]{
				Results: []hubspot.Company{{CompanyID: 7002}},
				HasMore: false,
				Offset:  60,
			})
		}
	}))
	defer server.Close()

	companies := client.NewTestClient(server.URL).Companies()

	var seen []int64

	err := companies.EachRecentlyModified(context.Background(), func(company hubspot.Company) error {
		seen = append(seen, company.CompanyID)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{7001, 7002}, seen)
	assert.Equal(t, 2, counter.Count())
}

func TestCompaniesClient_EachRecentlyModified_AbsentHistory(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// No prior successful run is indistinguishable from since=0.
		assert.Equal(t, "0", request.URL.Query().Get("since"))

		client.WriteJSON(writer, hubspot.LegacyCollectionResponse[hubspot.Company]{
			Results: []hubspot.Company{},
			HasMore: false,
		})
	}))
	defer server.Close()

	companies := client.NewTestClient(server.URL).Companies()

	err := companies.EachRecentlyModified(context.Background(), func(company hubspot.Company) error {
		t.Fatal("no callbacks expected for an empty page")

		return nil
	})
	require.NoError(t, err)
}

func TestCompaniesClient_EachRecentlyModified_IterateeErrorAborts(t *testing.T) {
	t.Parallel()

	counter := &client.RequestCounter{}

	server := httptest.NewServer(counter.Wrap(func(writer http.ResponseWriter, request *http.Request) {
		client.WriteJSON(writer, hubspot.LegacyCollectionResponse[hubspot.Company]{
			Results: []hubspot.Company{{CompanyID: 7001}, {CompanyID: 7002}},
			HasMore: true,
			Offset:  30,
		})
	}))
	defer server.Close()

	companies := client.NewTestClient(server.URL).Companies()

	callbacks := 0

	err := companies.EachRecentlyModified(context.Background(), func(company hubspot.Company) error {
		callbacks++

		return client.ErrTestSomeError
	})
	require.ErrorIs(t, err, client.ErrTestSomeError)
	assert.Equal(t, 1, callbacks)
	assert.Equal(t, 1, counter.Count())
}

func TestCompaniesClient_EachRecentlyModified_FetchError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		client.WriteError(writer, http.StatusUnauthorized, "INVALID_AUTHENTICATION", "token invalid or expired")
	}))
	defer server.Close()

	companies := client.NewTestClient(server.URL).Companies()

	err := companies.EachRecentlyModified(context.Background(), func(company hubspot.Company) error {
		return nil
	})
	require.Error(t, err)

	apiErr := &hubspot.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, hubspot.RecentCompaniesEndpoint, apiErr.Endpoint)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
