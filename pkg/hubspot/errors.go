package hubspot

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Endpoint path templates for the collected provider surface. Typed errors
// carry these literal templates, never the resolved URL of the failing
// request.
const (
	OwnersEndpoint            = "/crm/v3/owners"
	RolesEndpoint             = "/settings/v3/users/roles"
	UserEndpoint              = "/settings/v3/users/{userId}"
	RecentCompaniesEndpoint   = "/companies/v2/companies/recent/modified"
	PropertiesEndpoint        = "/crm/v3/properties/{objectType}"
	ContactPropertiesEndpoint = "/crm/v3/properties/contacts"
)

// Error categories reported in HubSpot error bodies.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryObjectNotFound  = "OBJECT_NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryRateLimits      = "RATE_LIMITS"
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrEmptyResponse      = errors.New("empty response body")
	ErrNoMoreItems        = errors.New("no more items")
	ErrNilIteratee        = errors.New("iteratee must not be nil")
	ErrUserIDRequired     = errors.New("user id is required")
	ErrObjectTypeRequired = errors.New("object type is required")
)

// ErrorDetail is a single entry of the errors list in a HubSpot error body.
type ErrorDetail struct {
	Message string `json:"message"           yaml:"message"`
	In      string `json:"in,omitempty"      yaml:"in,omitempty"`
	Code    string `json:"code,omitempty"    yaml:"code,omitempty"`
	SubCode string `json:"subCode,omitempty" yaml:"subCode,omitempty"`
}

// ResponseError is the error reported by the HubSpot API for a single
// request: the provider's JSON error body combined with the HTTP status line
// and the path of the failing request. The transport returns it for every
// non-2xx response and for 2xx responses whose body carries
// status == "error".
type ResponseError struct {
	StatusCode  int    `json:"-" yaml:"-"`
	StatusText  string `json:"-" yaml:"-"`
	RequestPath string `json:"-" yaml:"-"`

	Status        string        `json:"status"                yaml:"status"`
	Message       string        `json:"message"               yaml:"message"`
	CorrelationID string        `json:"correlationId"         yaml:"correlationId"`
	Category      string        `json:"category"              yaml:"category"`
	SubCategory   string        `json:"subCategory,omitempty" yaml:"subCategory,omitempty"`
	Errors        []ErrorDetail `json:"errors,omitempty"      yaml:"errors,omitempty"`
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %s", e.RequestPath, e.statusLine(), e.Message)
	}

	return fmt.Sprintf("%s %s", e.RequestPath, e.statusLine())
}

func (e *ResponseError) statusLine() string {
	if e.StatusText != "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.StatusText)
	}

	return fmt.Sprintf("%d", e.StatusCode)
}

// ParseResponseError parses a HubSpot error body. The HTTP fields are left
// for the caller to fill in; a body that is not valid JSON yields a
// ResponseError whose Message is the raw body.
func ParseResponseError(data []byte) *ResponseError {
	var respErr ResponseError

	err := json.Unmarshal(data, &respErr)
	if err != nil {
		return &ResponseError{Message: string(data)}
	}

	return &respErr
}

// APIError is the resource-scoped failure raised by every client method. It
// carries the literal endpoint path template of the resource, the HTTP
// status and status text of the underlying failure when known (zero values
// otherwise), and wraps the original cause.
type APIError struct {
	Endpoint   string `json:"endpoint"   yaml:"endpoint"`
	Status     int    `json:"status"     yaml:"status"`
	StatusText string `json:"statusText" yaml:"statusText"`
	Err        error  `json:"-"          yaml:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("request to %s failed", e.Endpoint)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s with %d %s", msg, e.Status, e.StatusText)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError wraps a failure from the query primitive into a
// resource-scoped APIError. The HTTP status and status text are lifted from
// the cause when it carries them.
func NewAPIError(endpoint string, cause error) *APIError {
	apiErr := &APIError{
		Endpoint: endpoint,
		Err:      cause,
	}

	respErr := &ResponseError{}
	if errors.As(cause, &respErr) {
		apiErr.Status = respErr.StatusCode
		apiErr.StatusText = respErr.StatusText
	}

	return apiErr
}

// AuthenticationError is raised by VerifyAuthentication when the probe
// request fails or succeeds with an empty body.
type AuthenticationError struct {
	Endpoint   string `json:"endpoint"   yaml:"endpoint"`
	Status     int    `json:"status"     yaml:"status"`
	StatusText string `json:"statusText" yaml:"statusText"`
	Err        error  `json:"-"          yaml:"-"`
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	msg := fmt.Sprintf("provider authentication failed at %s", e.Endpoint)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s with %d %s", msg, e.Status, e.StatusText)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// NewAuthenticationError wraps a probe failure into an AuthenticationError,
// lifting HTTP status information from the cause when present.
func NewAuthenticationError(endpoint string, cause error) *AuthenticationError {
	authErr := &AuthenticationError{
		Endpoint: endpoint,
		Err:      cause,
	}

	respErr := &ResponseError{}
	if errors.As(cause, &respErr) {
		authErr.Status = respErr.StatusCode
		authErr.StatusText = respErr.StatusText
	}

	return authErr
}

// ValidationError reports missing or invalid configuration.
type ValidationError struct {
	MissingFields []string `json:"missingFields,omitempty" yaml:"missingFields,omitempty"`
	Message       string   `json:"message,omitempty"       yaml:"message,omitempty"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.MissingFields) > 0 {
		return fmt.Sprintf("missing required config fields: %v", e.MissingFields)
	}

	if e.Message != "" {
		return "invalid config: " + e.Message
	}

	return "invalid config"
}

// IsAuthenticationError checks if the error is an authentication error.
func IsAuthenticationError(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}

// IsValidationError checks if the error is a configuration validation error.
func IsValidationError(err error) bool {
	valErr := &ValidationError{}

	return errors.As(err, &valErr)
}

// IsNotFound checks if the error reports a missing object.
func IsNotFound(err error) bool {
	if statusOf(err) == http.StatusNotFound {
		return true
	}

	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.Category == CategoryObjectNotFound
	}

	return false
}

// IsUnauthorized checks if the error reports a failed authentication.
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden checks if the error reports insufficient permissions.
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsRateLimited checks if the error reports an exhausted rate limit.
func IsRateLimited(err error) bool {
	if statusOf(err) == http.StatusTooManyRequests {
		return true
	}

	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.Category == CategoryRateLimits
	}

	return false
}

// statusOf extracts the HTTP status from any error of the taxonomy, walking
// wrapped causes. Zero when no status is known.
func statusOf(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return apiErr.Status
	}

	authErr := &AuthenticationError{}
	if errors.As(err, &authErr) && authErr.Status != 0 {
		return authErr.Status
	}

	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}

	return 0
}
