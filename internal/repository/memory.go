package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/studyspot/studyspot/internal/model"
)

// Memory is an in-process store with the same behaviour as Repository.
// It backs handler and service tests and local runs without Postgres.
type Memory struct {
	mu       sync.RWMutex
	users    map[string]model.User
	listings map[string]model.Listing
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]model.User),
		listings: make(map[string]model.Listing),
	}
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error {
	return nil
}

// CreateUser stores a copy of user and assigns its ID.
func (m *Memory) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return ErrEmailExists
		}
	}

	user.ID = NewID()
	if user.Posts == nil {
		user.Posts = []string{}
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	stored := *user
	stored.Posts = slices.Clone(user.Posts)
	m.users[user.ID] = stored
	return nil
}

// GetUserByID retrieves a user by their ID.
func (m *Memory) GetUserByID(_ context.Context, id string) (*model.User, error) {
	if err := ParseID(id); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user.Posts = slices.Clone(user.Posts)
	return &user, nil
}

// GetUserByEmail retrieves a user by their email address, ignoring case.
func (m *Memory) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			user.Posts = slices.Clone(user.Posts)
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// CreateListing stores a copy of listing and assigns its ID.
func (m *Memory) CreateListing(_ context.Context, listing *model.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	listing.ID = NewID()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now().UTC()
	}
	m.listings[listing.ID] = *listing
	return nil
}

// GetListingByID retrieves a listing by its ID.
func (m *Memory) GetListingByID(_ context.Context, id string) (*model.Listing, error) {
	if err := ParseID(id); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	listing, ok := m.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &listing, nil
}

// UpdateListing overwrites a listing's mutable fields.
func (m *Memory) UpdateListing(_ context.Context, listing *model.Listing) error {
	if err := ParseID(listing.ID); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.listings[listing.ID]
	if !ok {
		return ErrNotFound
	}

	stored.Location = listing.Location
	stored.GoogleMaps = listing.GoogleMaps
	stored.NoiseLevel = listing.NoiseLevel
	stored.Seating = listing.Seating
	stored.WiFi = listing.WiFi
	stored.Outlets = listing.Outlets
	stored.Reservable = listing.Reservable
	stored.Climate = listing.Climate
	stored.Hours = listing.Hours
	m.listings[listing.ID] = stored
	return nil
}

// DeleteListing removes a listing.
func (m *Memory) DeleteListing(_ context.Context, id string) error {
	if err := ParseID(id); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.listings[id]; !ok {
		return ErrNotFound
	}
	delete(m.listings, id)
	return nil
}

// ListListings returns listings matching filter, newest first.
func (m *Memory) ListListings(_ context.Context, filter ListingFilter) ([]*model.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(filter.Location)

	var listings []*model.Listing
	for _, listing := range m.listings {
		if needle != "" && !strings.Contains(strings.ToLower(listing.Location), needle) {
			continue
		}
		if filter.NoiseLevel != "" && listing.NoiseLevel != filter.NoiseLevel {
			continue
		}
		if filter.WiFi != "" && listing.WiFi != filter.WiFi {
			continue
		}
		if filter.Outlets != "" && listing.Outlets != filter.Outlets {
			continue
		}
		if filter.Reservable != nil && listing.Reservable != *filter.Reservable {
			continue
		}
		listings = append(listings, &listing)
	}

	slices.SortFunc(listings, func(a, b *model.Listing) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})

	if filter.Limit > 0 && len(listings) > filter.Limit {
		listings = listings[:filter.Limit]
	}

	return listings, nil
}
