package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Signups  map[string]uint64
	Logins   map[string]uint64
	Requests map[string]uint64 // keyed by "METHOD route status"

	ListingsCreated  uint64
	ListingsUpdated  uint64
	ListingsDeleted  uint64
	ListingQueries   uint64
	ListingsFetched  uint64
	ListingsReturned uint64

	RequestDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu       sync.Mutex
	signups  map[string]uint64
	logins   map[string]uint64
	requests map[string]uint64

	listingsCreated  uint64
	listingsUpdated  uint64
	listingsDeleted  uint64
	listingQueries   uint64
	listingsFetched  uint64
	listingsReturned uint64

	requestDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		signups:  make(map[string]uint64),
		logins:   make(map[string]uint64),
		requests: make(map[string]uint64),
	}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Signups:                copyCounts(m.signups),
		Logins:                 copyCounts(m.logins),
		Requests:               copyCounts(m.requests),
		ListingsCreated:        atomic.LoadUint64(&m.listingsCreated),
		ListingsUpdated:        atomic.LoadUint64(&m.listingsUpdated),
		ListingsDeleted:        atomic.LoadUint64(&m.listingsDeleted),
		ListingQueries:         atomic.LoadUint64(&m.listingQueries),
		ListingsFetched:        atomic.LoadUint64(&m.listingsFetched),
		ListingsReturned:       atomic.LoadUint64(&m.listingsReturned),
		RequestDurationTotalNs: atomic.LoadInt64(&m.requestDurationTotalNs),
	}
}

// IncSignup counts a signup attempt by outcome.
func (m *InMemoryRecorder) IncSignup(outcome string) {
	m.mu.Lock()
	m.signups[outcome]++
	m.mu.Unlock()
}

// IncLogin counts a login attempt by outcome.
func (m *InMemoryRecorder) IncLogin(outcome string) {
	m.mu.Lock()
	m.logins[outcome]++
	m.mu.Unlock()
}

// IncListingCreated increments listing created counter.
func (m *InMemoryRecorder) IncListingCreated() {
	atomic.AddUint64(&m.listingsCreated, 1)
}

// IncListingUpdated increments listing updated counter.
func (m *InMemoryRecorder) IncListingUpdated() {
	atomic.AddUint64(&m.listingsUpdated, 1)
}

// IncListingDeleted increments listing deleted counter.
func (m *InMemoryRecorder) IncListingDeleted() {
	atomic.AddUint64(&m.listingsDeleted, 1)
}

// ObserveListingQuery records listing query result sizes.
func (m *InMemoryRecorder) ObserveListingQuery(fetched, returned int) {
	atomic.AddUint64(&m.listingQueries, 1)
	atomic.AddUint64(&m.listingsFetched, uint64(fetched))
	atomic.AddUint64(&m.listingsReturned, uint64(returned))
}

// ObserveHTTPRequest counts a request and accumulates its duration.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	key := method + " " + route + " " + statusLabel(status)
	m.mu.Lock()
	m.requests[key]++
	m.mu.Unlock()
	atomic.AddInt64(&m.requestDurationTotalNs, duration.Nanoseconds())
}

func copyCounts(src map[string]uint64) map[string]uint64 {
	dst := make(map[string]uint64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
