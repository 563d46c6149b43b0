package hubspot

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ResponseError
		expected string
	}{
		{
			name: "with message",
			err: &ResponseError{
				StatusCode:  404,
				StatusText:  "Not Found",
				RequestPath: "/crm/v3/owners",
				Message:     "resource not found",
			},
			expected: "/crm/v3/owners 404 Not Found: resource not found",
		},
		{
			name: "without message",
			err: &ResponseError{
				StatusCode:  500,
				StatusText:  "Internal Server Error",
				RequestPath: "/crm/v3/owners",
			},
			expected: "/crm/v3/owners 500 Internal Server Error",
		},
		{
			name: "without status text",
			err: &ResponseError{
				StatusCode:  429,
				RequestPath: "/settings/v3/users/roles",
				Message:     "rate limit exceeded",
			},
			expected: "/settings/v3/users/roles 429: rate limit exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseResponseError(t *testing.T) {
	t.Run("valid error body", func(t *testing.T) {
		body := `{
			"status": "error",
			"message": "Role not found",
			"correlationId": "aeb5f871-7f07-4993-9211-075dc63e7cbf",
			"category": "OBJECT_NOT_FOUND",
			"errors": [
				{"message": "Role with id 123 does not exist", "code": "404"}
			]
		}`

		respErr := ParseResponseError([]byte(body))
		require.NotNil(t, respErr)
		assert.Equal(t, "error", respErr.Status)
		assert.Equal(t, "Role not found", respErr.Message)
		assert.Equal(t, "aeb5f871-7f07-4993-9211-075dc63e7cbf", respErr.CorrelationID)
		assert.Equal(t, CategoryObjectNotFound, respErr.Category)
		require.Len(t, respErr.Errors, 1)
		assert.Equal(t, "Role with id 123 does not exist", respErr.Errors[0].Message)
	})

	t.Run("non-JSON body becomes the message", func(t *testing.T) {
		respErr := ParseResponseError([]byte("<html>Bad Gateway</html>"))
		require.NotNil(t, respErr)
		assert.Equal(t, "<html>Bad Gateway</html>", respErr.Message)
		assert.Empty(t, respErr.Category)
	})
}

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "endpoint only",
			err:      &APIError{Endpoint: OwnersEndpoint},
			expected: "request to /crm/v3/owners failed",
		},
		{
			name: "with status",
			err: &APIError{
				Endpoint:   OwnersEndpoint,
				Status:     500,
				StatusText: "Internal Server Error",
			},
			expected: "request to /crm/v3/owners failed with 500 Internal Server Error",
		},
		{
			name: "with cause",
			err: &APIError{
				Endpoint: RolesEndpoint,
				Err:      errors.New("connection refused"),
			},
			expected: "request to /settings/v3/users/roles failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestNewAPIError(t *testing.T) {
	t.Run("lifts status from response error", func(t *testing.T) {
		cause := &ResponseError{
			StatusCode: 404,
			StatusText: "Not Found",
		}

		apiErr := NewAPIError(UserEndpoint, cause)
		assert.Equal(t, UserEndpoint, apiErr.Endpoint)
		assert.Equal(t, 404, apiErr.Status)
		assert.Equal(t, "Not Found", apiErr.StatusText)
		assert.ErrorIs(t, apiErr, cause)
	})

	t.Run("plain cause leaves status unset", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")

		apiErr := NewAPIError(OwnersEndpoint, cause)
		assert.Zero(t, apiErr.Status)
		assert.Empty(t, apiErr.StatusText)
		assert.ErrorIs(t, apiErr, cause)
	})
}

func TestNewAuthenticationError(t *testing.T) {
	cause := &ResponseError{
		StatusCode:  401,
		StatusText:  "Unauthorized",
		RequestPath: "/crm/v3/properties/contacts",
		Message:     "authentication credentials are invalid",
	}

	authErr := NewAuthenticationError(ContactPropertiesEndpoint, cause)
	assert.Equal(t, 401, authErr.Status)
	assert.Equal(t, "Unauthorized", authErr.StatusText)
	assert.ErrorIs(t, authErr, cause)
	assert.Contains(t, authErr.Error(), "provider authentication failed at /crm/v3/properties/contacts with 401 Unauthorized")
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		expected string
	}{
		{
			name:     "missing fields",
			err:      &ValidationError{MissingFields: []string{"AppID", "AccessToken"}},
			expected: "missing required config fields: [AppID AccessToken]",
		},
		{
			name:     "message",
			err:      &ValidationError{Message: "HTTPTimeout must not be negative"},
			expected: "invalid config: HTTPTimeout must not be negative",
		},
		{
			name:     "empty",
			err:      &ValidationError{},
			expected: "invalid config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "api error with 404",
			err:      &APIError{Endpoint: UserEndpoint, Status: 404},
			expected: true,
		},
		{
			name:     "response error with 404",
			err:      &ResponseError{StatusCode: 404},
			expected: true,
		},
		{
			name:     "response error with not-found category",
			err:      &ResponseError{Category: CategoryObjectNotFound},
			expected: true,
		},
		{
			name:     "wrapped api error",
			err:      fmt.Errorf("failed to get user: %w", NewAPIError(UserEndpoint, &ResponseError{StatusCode: 404})),
			expected: true,
		},
		{
			name:     "api error with other status",
			err:      &APIError{Endpoint: UserEndpoint, Status: 400},
			expected: false,
		},
		{
			name:     "other error type",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFound(tt.err))
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{Status: 401}))
	assert.True(t, IsUnauthorized(&ResponseError{StatusCode: 401}))
	assert.False(t, IsUnauthorized(&APIError{Status: 403}))
	assert.False(t, IsUnauthorized(errors.New("some error")))
}

func TestIsForbidden(t *testing.T) {
	assert.True(t, IsForbidden(&APIError{Status: 403}))
	assert.True(t, IsForbidden(&AuthenticationError{Status: 403}))
	assert.False(t, IsForbidden(&APIError{Status: 401}))
	assert.False(t, IsForbidden(nil))
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(&APIError{Status: 429}))
	assert.True(t, IsRateLimited(&ResponseError{Category: CategoryRateLimits}))
	assert.False(t, IsRateLimited(&APIError{Status: 500}))
	assert.False(t, IsRateLimited(errors.New("some error")))
}

func TestIsAuthenticationError(t *testing.T) {
	authErr := NewAuthenticationError(ContactPropertiesEndpoint, errors.New("bad token"))

	assert.True(t, IsAuthenticationError(authErr))
	assert.True(t, IsAuthenticationError(fmt.Errorf("verify: %w", authErr)))
	assert.False(t, IsAuthenticationError(&APIError{Status: 401}))
	assert.False(t, IsAuthenticationError(nil))
}

func TestIsValidationError(t *testing.T) {
	valErr := &ValidationError{MissingFields: []string{"AccessToken"}}

	assert.True(t, IsValidationError(valErr))
	assert.True(t, IsValidationError(fmt.Errorf("config: %w", valErr)))
	assert.False(t, IsValidationError(errors.New("some error")))
}
