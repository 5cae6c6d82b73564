package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studyspot/studyspot/internal/metrics"
	"github.com/studyspot/studyspot/internal/model"
	"github.com/studyspot/studyspot/internal/repository"
)

// ListingFetchLimit caps how many listings one query reads from the store.
// The hours filter runs on this window; there is no re-paging.
const ListingFetchLimit = 200

// ListingStore is the persistence the listing service needs.
type ListingStore interface {
	CreateListing(ctx context.Context, listing *model.Listing) error
	GetListingByID(ctx context.Context, id string) (*model.Listing, error)
	UpdateListing(ctx context.Context, listing *model.Listing) error
	DeleteListing(ctx context.Context, id string) error
	ListListings(ctx context.Context, filter repository.ListingFilter) ([]*model.Listing, error)
}

// ListingForm is the raw create/edit form submission.
type ListingForm struct {
	NetID      string
	Location   string
	GoogleMaps string
	NoiseLevel string
	Seating    string
	WiFi       string
	Outlets    string
	Reservable string
	Climate    string
	HoursStart string
	HoursEnd   string
}

// Hours joins the two clock dropdowns into a stored hours range.
func (f ListingForm) Hours() string {
	return model.JoinHours(strings.TrimSpace(f.HoursStart), strings.TrimSpace(f.HoursEnd))
}

// toListing validates the form and converts it to a listing without identity.
// The first failing check wins.
func (f ListingForm) toListing(mapHosts []string) (*model.Listing, error) {
	googleMaps := strings.TrimSpace(f.GoogleMaps)
	if err := ValidateMapLink(googleMaps, mapHosts); err != nil {
		return nil, fieldError("googlemaps", err)
	}

	hours := f.Hours()
	if err := ValidateHoursRange(hours); err != nil {
		return nil, fieldError("hours", err)
	}

	noise, err := model.ParseNoiseLevel(f.NoiseLevel)
	if err != nil {
		return nil, fieldError("noise_level", ErrInvalidNoiseLevel)
	}
	seating, err := model.ParseSeating(f.Seating)
	if err != nil {
		return nil, fieldError("seating", ErrInvalidSeating)
	}
	wifi, err := model.ParseWiFi(f.WiFi)
	if err != nil {
		return nil, fieldError("wifi", ErrInvalidWiFi)
	}
	outlets, err := model.ParseOutlets(f.Outlets)
	if err != nil {
		return nil, fieldError("outlets", ErrInvalidOutlets)
	}
	reservable, err := model.ParseFlag(f.Reservable)
	if err != nil {
		return nil, fieldError("reservable", ErrInvalidReservable)
	}

	return &model.Listing{
		NetID:      strings.TrimSpace(f.NetID),
		Location:   strings.TrimSpace(f.Location),
		GoogleMaps: googleMaps,
		NoiseLevel: noise,
		Seating:    seating,
		WiFi:       wifi,
		Outlets:    outlets,
		Reservable: reservable,
		Climate:    strings.TrimSpace(f.Climate),
		Hours:      hours,
	}, nil
}

// ListingService handles listing business logic.
type ListingService struct {
	store    ListingStore
	mapHosts []string
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewListingService creates a new ListingService accepting map links on mapHosts.
func NewListingService(store ListingStore, mapHosts []string, recorder metrics.Recorder) *ListingService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if len(mapHosts) == 0 {
		mapHosts = DefaultMapHosts
	}
	return &ListingService{
		store:    store,
		mapHosts: mapHosts,
		metrics:  recorder,
		now:      time.Now,
	}
}

// Create validates form and stores a new listing.
func (s *ListingService) Create(ctx context.Context, form ListingForm) (*model.Listing, error) {
	listing, err := form.toListing(s.mapHosts)
	if err != nil {
		return nil, err
	}

	listing.CreatedAt = s.now().UTC()

	if err := s.store.CreateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.metrics.IncListingCreated()
	return listing, nil
}

// Get retrieves a listing by ID.
func (s *ListingService) Get(ctx context.Context, id string) (*model.Listing, error) {
	listing, err := s.store.GetListingByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to get listing")
	}
	return listing, nil
}

// Update overwrites a listing's mutable fields from form and returns the
// reloaded record. ID, NetID and CreatedAt are kept.
// When form fails validation the unchanged stored record is returned along
// with the *FieldError.
func (s *ListingService) Update(ctx context.Context, id string, form ListingForm) (*model.Listing, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	update, err := form.toListing(s.mapHosts)
	if err != nil {
		return existing, err
	}

	update.ID = existing.ID
	update.NetID = existing.NetID
	update.CreatedAt = existing.CreatedAt

	if err := s.store.UpdateListing(ctx, update); err != nil {
		return nil, mapStoreError(err, "failed to update listing")
	}

	s.metrics.IncListingUpdated()
	return s.Get(ctx, id)
}

// Delete removes a listing. Malformed or unknown IDs yield ErrListingNotFound.
func (s *ListingService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteListing(ctx, id); err != nil {
		return mapStoreError(err, "failed to delete listing")
	}

	s.metrics.IncListingDeleted()
	return nil
}

// ListingQuery holds the raw search parameters of the listing index.
type ListingQuery struct {
	Q          string
	NoiseLevel string
	WiFi       string
	Outlets    string
	Reservable string
	HoursStart string
	HoursEnd   string
}

// Filter converts the query to a store filter.
// Amenity values outside the known sets are dropped rather than rejected.
func (q ListingQuery) Filter() repository.ListingFilter {
	filter := repository.ListingFilter{
		Location: strings.TrimSpace(q.Q),
		Limit:    ListingFetchLimit,
	}

	if v, err := model.ParseNoiseLevel(q.NoiseLevel); err == nil {
		filter.NoiseLevel = v
	}
	if v, err := model.ParseWiFi(q.WiFi); err == nil {
		filter.WiFi = v
	}
	if v, err := model.ParseOutlets(q.Outlets); err == nil {
		filter.Outlets = v
	}
	if strings.TrimSpace(q.Reservable) != "" {
		if v, err := model.ParseFlag(q.Reservable); err == nil {
			filter.Reservable = &v
		}
	}

	return filter
}

// List returns listings matching q, newest first.
// Store-side filters run first, then the hours window is applied in memory.
func (s *ListingService) List(ctx context.Context, q ListingQuery) ([]*model.Listing, error) {
	fetched, err := s.store.ListListings(ctx, q.Filter())
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	hours := model.NewHoursFilter(q.HoursStart, q.HoursEnd)
	if !hours.Active() {
		s.metrics.ObserveListingQuery(len(fetched), len(fetched))
		return fetched, nil
	}

	kept := make([]*model.Listing, 0, len(fetched))
	for _, l := range fetched {
		if hours.Matches(l.Hours) {
			kept = append(kept, l)
		}
	}

	s.metrics.ObserveListingQuery(len(fetched), len(kept))
	return kept, nil
}

// MapPin is the map page's view of one listing.
type MapPin struct {
	ID         string        `json:"id"`
	Location   string        `json:"location"`
	GoogleMaps string        `json:"googlemaps"`
	LatLng     *model.LatLng `json:"latlng,omitempty"`
}

// MapPins projects every listing to a pin. Listings whose map link carries
// no coordinates get a pin without a position.
func (s *ListingService) MapPins(ctx context.Context) ([]MapPin, error) {
	listings, err := s.store.ListListings(ctx, repository.ListingFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load listings for map: %w", err)
	}

	pins := make([]MapPin, 0, len(listings))
	for _, l := range listings {
		pin := MapPin{ID: l.ID, Location: l.Location, GoogleMaps: l.GoogleMaps}
		if ll, ok := l.Coordinates(); ok {
			pin.LatLng = &ll
		}
		pins = append(pins, pin)
	}
	return pins, nil
}

func mapStoreError(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		return ErrListingNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
