package hubspot

import (
	"net/url"
	"strconv"

	"github.com/graphwell-io/hubsync/internal/constants"
)

// ListParams expresses the common query options of v3 collection endpoints.
// The zero value asks for the server defaults.
type ListParams struct {
	// Limit is the page size. Values above HubSpot's maximum of 100 are
	// clamped when the parameters are encoded.
	Limit int
	// After is the opaque cursor of the page to fetch.
	After string
	// Email filters owners by email address.
	Email string
	// Archived requests archived records when set.
	Archived *bool
}

// NewListParams creates empty list parameters.
func NewListParams() *ListParams {
	return &ListParams{}
}

// WithLimit sets the page size.
func (p *ListParams) WithLimit(limit int) *ListParams {
	p.Limit = limit

	return p
}

// WithAfter sets the page cursor.
func (p *ListParams) WithAfter(after string) *ListParams {
	p.After = after

	return p
}

// ToValues converts the parameters to URL query values. Safe on a nil
// receiver.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}
	if p == nil {
		return values
	}

	if p.Limit > 0 {
		limit := p.Limit
		if limit > constants.MaxPageLimit {
			limit = constants.MaxPageLimit
		}

		values.Set("limit", strconv.Itoa(limit))
	}

	if p.After != "" {
		values.Set("after", p.After)
	}

	if p.Email != "" {
		values.Set("email", p.Email)
	}

	if p.Archived != nil {
		values.Set("archived", strconv.FormatBool(*p.Archived))
	}

	return values
}

// RecentlyModifiedParams expresses the query options of the legacy v2
// recently-modified companies endpoint.
type RecentlyModifiedParams struct {
	// Count is the page size. Defaults to the fixed legacy page size of 30.
	Count int
	// Offset is the continuation offset reported by the prior page. Zero on
	// the first call.
	Offset int64
	// Since bounds results to records modified at or after this epoch
	// millisecond timestamp. Zero requests the full modification history.
	Since int64
}

// ToValues converts the parameters to URL query values, applying the fixed
// legacy page size when Count is unset. Safe on a nil receiver.
func (p *RecentlyModifiedParams) ToValues() url.Values {
	values := url.Values{}

	count := constants.LegacyPageSize
	offset := int64(0)
	since := int64(0)

	if p != nil {
		if p.Count > 0 {
			count = p.Count
		}

		offset = p.Offset
		since = p.Since
	}

	values.Set("count", strconv.Itoa(count))
	values.Set("offset", strconv.FormatInt(offset, 10))
	values.Set("since", strconv.FormatInt(since, 10))

	return values
}
