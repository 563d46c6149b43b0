package sync

import "time"

// Step names, in execution order.
const (
	StepVerifyAuthentication = "verify-authentication"
	StepOwners               = "fetch-owners"
	StepRoles                = "fetch-roles"
	StepUsers                = "fetch-users"
	StepCompanies            = "fetch-companies"
)

// StepResult records the outcome of one engine step.
type StepResult struct {
	// Name identifies the step.
	Name string `json:"name" yaml:"name"`

	// Entities is the number of graph entities the step produced.
	Entities int `json:"entities" yaml:"entities"`

	// Relationships is the number of graph relationships the step
	// produced.
	Relationships int `json:"relationships" yaml:"relationships"`

	// Skipped is the number of records the step dropped, such as deleted
	// users or companies owned by an unknown owner.
	Skipped int `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// Duration is how long the step took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Summary reports a completed sync run.
type Summary struct {
	// RunID is the unique identifier assigned to the run.
	RunID string `json:"runId" yaml:"runId"`

	// AppID is the HubSpot app the run collected.
	AppID string `json:"appId" yaml:"appId"`

	// StartedOn is the run's start time in epoch milliseconds.
	StartedOn int64 `json:"startedOn" yaml:"startedOn"`

	// CompletedOn is the run's completion time in epoch milliseconds.
	CompletedOn int64 `json:"completedOn" yaml:"completedOn"`

	// SinceMillis is the incremental watermark the run used; 0 means the
	// full modification history was requested.
	SinceMillis int64 `json:"sinceMillis" yaml:"sinceMillis"`

	// Duration is the total run duration.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Steps holds per-step results in execution order.
	Steps []StepResult `json:"steps" yaml:"steps"`

	// Entities is the total number of graph entities written.
	Entities int `json:"entities" yaml:"entities"`

	// Relationships is the total number of graph relationships written.
	Relationships int `json:"relationships" yaml:"relationships"`
}

// addStep appends a step result and rolls its counts into the totals.
func (s *Summary) addStep(result StepResult) {
	s.Steps = append(s.Steps, result)
	s.Entities += result.Entities
	s.Relationships += result.Relationships
}
