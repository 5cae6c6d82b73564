// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Outcome labels for account events.
const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory.
type Recorder interface {
	// Account metrics
	IncSignup(outcome string)
	IncLogin(outcome string)

	// Listing metrics
	IncListingCreated()
	IncListingUpdated()
	IncListingDeleted()
	// ObserveListingQuery records how many listings the store returned and
	// how many survived the hours filter.
	ObserveListingQuery(fetched, returned int)

	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
