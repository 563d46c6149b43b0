package hubspot_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/graphwell-io/hubsync/pkg/hubspot"
)

func boolPtr(v bool) *bool {
	return &v
}

func TestListParams_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   *hubspot.ListParams
		expected url.Values
	}{
		{
			name:     "empty params",
			params:   hubspot.NewListParams(),
			expected: url.Values{},
		},
		{
			name:     "nil params",
			params:   nil,
			expected: url.Values{},
		},
		{
			name: "with limit",
			params: &hubspot.ListParams{
				Limit: 50,
			},
			expected: url.Values{
				"limit": []string{"50"},
			},
		},
		{
			name: "limit above maximum is clamped",
			params: &hubspot.ListParams{
				Limit: 500,
			},
			expected: url.Values{
				"limit": []string{"100"},
			},
		},
		{
			name: "with cursor",
			params: &hubspot.ListParams{
				After: "NTI1Cg==",
			},
			expected: url.Values{
				"after": []string{"NTI1Cg=="},
			},
		},
		{
			name: "with email filter",
			params: &hubspot.ListParams{
				Email: "owner@example.com",
			},
			expected: url.Values{
				"email": []string{"owner@example.com"},
			},
		},
		{
			name: "with archived",
			params: &hubspot.ListParams{
				Archived: boolPtr(true),
			},
			expected: url.Values{
				"archived": []string{"true"},
			},
		},
		{
			name: "archived false is still sent",
			params: &hubspot.ListParams{
				Archived: boolPtr(false),
			},
			expected: url.Values{
				"archived": []string{"false"},
			},
		},
		{
			name: "with all options",
			params: &hubspot.ListParams{
				Limit:    25,
				After:    "cursor-1",
				Email:    "owner@example.com",
				Archived: boolPtr(true),
			},
			expected: url.Values{
				"limit":    []string{"25"},
				"after":    []string{"cursor-1"},
				"email":    []string{"owner@example.com"},
				"archived": []string{"true"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := tt.params.ToValues()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestListParams_Builders(t *testing.T) {
	t.Parallel()

	params := hubspot.NewListParams().
		WithLimit(75).
		WithAfter("next-cursor")

	assert.Equal(t, 75, params.Limit)
	assert.Equal(t, "next-cursor", params.After)

	values := params.ToValues()
	assert.Equal(t, "75", values.Get("limit"))
	assert.Equal(t, "next-cursor", values.Get("after"))
}

func TestNewListParams(t *testing.T) {
	t.Parallel()

	params := hubspot.NewListParams()

	assert.NotNil(t, params)
	assert.Equal(t, 0, params.Limit)
	assert.Empty(t, params.After)
	assert.Empty(t, params.Email)
	assert.Nil(t, params.Archived)
}

func TestRecentlyModifiedParams_ToValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   *hubspot.RecentlyModifiedParams
		expected url.Values
	}{
		{
			name:   "nil params use the legacy page size",
			params: nil,
			expected: url.Values{
				"count":  []string{"30"},
				"offset": []string{"0"},
				"since":  []string{"0"},
			},
		},
		{
			name:   "zero value uses the legacy page size",
			params: &hubspot.RecentlyModifiedParams{},
			expected: url.Values{
				"count":  []string{"30"},
				"offset": []string{"0"},
				"since":  []string{"0"},
			},
		},
		{
			name: "explicit values pass through",
			params: &hubspot.RecentlyModifiedParams{
				Count:  10,
				Offset: 40,
				Since:  1700000000000,
			},
			expected: url.Values{
				"count":  []string{"10"},
				"offset": []string{"40"},
				"since":  []string{"1700000000000"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := tt.params.ToValues()
			assert.Equal(t, tt.expected, result)
		})
	}
}
