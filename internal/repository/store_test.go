package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studyspot/studyspot/internal/model"
	"github.com/studyspot/studyspot/internal/testutil"
)

// store is the method set shared by Repository and Memory.
type store interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateListing(ctx context.Context, listing *model.Listing) error
	GetListingByID(ctx context.Context, id string) (*model.Listing, error)
	UpdateListing(ctx context.Context, listing *model.Listing) error
	DeleteListing(ctx context.Context, id string) error
	ListListings(ctx context.Context, filter ListingFilter) ([]*model.Listing, error)
}

var (
	_ store = (*Repository)(nil)
	_ store = (*Memory)(nil)
)

// runStoreSuite exercises behaviour every store must share.
// newStore must return an empty store.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) store) {
	t.Run("CreateUser_AssignsIDAndEmptyPosts", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		user := testutil.NewTestUser(t, "nyu.edu")
		if err := s.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if err := ParseID(user.ID); err != nil {
			t.Fatalf("assigned ID %q is malformed: %v", user.ID, err)
		}

		got, err := s.GetUserByEmail(ctx, user.Email)
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != user.ID || got.NetID != user.NetID || got.PasswordHash != user.PasswordHash {
			t.Errorf("GetUserByEmail = %+v, want %+v", got, user)
		}
		if got.Posts == nil || len(got.Posts) != 0 {
			t.Errorf("Posts = %v, want empty list", got.Posts)
		}

		byID, err := s.GetUserByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Email != user.Email {
			t.Errorf("GetUserByID email = %q, want %q", byID.Email, user.Email)
		}
	})

	t.Run("CreateUser_DuplicateEmail", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		first := testutil.NewTestUser(t, "nyu.edu")
		second := testutil.NewTestUser(t, "nyu.edu")
		second.Email = first.Email

		if err := s.CreateUser(ctx, first); err != nil {
			t.Fatalf("CreateUser (first) failed: %v", err)
		}
		if err := s.CreateUser(ctx, second); !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("UserEmail_IgnoresCase", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		legacy := testutil.NewTestUser(t, "nyu.edu")
		legacy.Email = "Legacy.User@NYU.edu"
		if err := s.CreateUser(ctx, legacy); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		got, err := s.GetUserByEmail(ctx, "legacy.user@nyu.edu")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != legacy.ID || got.Email != "Legacy.User@NYU.edu" {
			t.Errorf("GetUserByEmail = %+v, want stored record %q", got, legacy.ID)
		}

		twin := testutil.NewTestUser(t, "nyu.edu")
		twin.Email = "legacy.user@nyu.edu"
		if err := s.CreateUser(ctx, twin); !errors.Is(err, ErrEmailExists) {
			t.Errorf("CreateUser with case-folded duplicate err = %v, want ErrEmailExists", err)
		}
	})

	t.Run("GetUser_Missing", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		if _, err := s.GetUserByEmail(ctx, "nobody@nyu.edu"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetUserByEmail err = %v, want ErrNotFound", err)
		}
		if _, err := s.GetUserByID(ctx, NewID()); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetUserByID err = %v, want ErrNotFound", err)
		}
		if _, err := s.GetUserByID(ctx, "not-an-id"); !errors.Is(err, ErrInvalidID) {
			t.Errorf("GetUserByID(malformed) err = %v, want ErrInvalidID", err)
		}
	})

	t.Run("Listing_RoundTrip", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		listing := testutil.NewTestListing(t, "Bobst Library")
		if err := s.CreateListing(ctx, listing); err != nil {
			t.Fatalf("CreateListing failed: %v", err)
		}

		got, err := s.GetListingByID(ctx, listing.ID)
		if err != nil {
			t.Fatalf("GetListingByID failed: %v", err)
		}
		assertListingEqual(t, listing, got)
	})

	t.Run("UpdateListing_KeepsIdentity", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		listing := testutil.NewTestListing(t, "Kimmel")
		if err := s.CreateListing(ctx, listing); err != nil {
			t.Fatalf("CreateListing failed: %v", err)
		}

		update := *listing
		update.NetID = "someone-else"
		update.CreatedAt = time.Now().Add(time.Hour)
		update.Location = "Kimmel 4th floor"
		update.NoiseLevel = model.NoiseLoud
		update.Reservable = true
		update.Hours = ""
		if err := s.UpdateListing(ctx, &update); err != nil {
			t.Fatalf("UpdateListing failed: %v", err)
		}

		got, err := s.GetListingByID(ctx, listing.ID)
		if err != nil {
			t.Fatalf("GetListingByID failed: %v", err)
		}
		if got.Location != "Kimmel 4th floor" || got.NoiseLevel != model.NoiseLoud || !got.Reservable || got.Hours != "" {
			t.Errorf("mutable fields not updated: %+v", got)
		}
		if got.NetID != listing.NetID {
			t.Errorf("NetID = %q, want %q", got.NetID, listing.NetID)
		}
		if !got.CreatedAt.Equal(listing.CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, listing.CreatedAt)
		}
	})

	t.Run("UpdateListing_Missing", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		listing := testutil.NewTestListing(t, "nowhere")
		listing.ID = NewID()
		if err := s.UpdateListing(ctx, listing); !errors.Is(err, ErrNotFound) {
			t.Errorf("UpdateListing err = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteListing", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		listing := testutil.NewTestListing(t, "Silver Center")
		if err := s.CreateListing(ctx, listing); err != nil {
			t.Fatalf("CreateListing failed: %v", err)
		}
		if err := s.DeleteListing(ctx, listing.ID); err != nil {
			t.Fatalf("DeleteListing failed: %v", err)
		}
		if _, err := s.GetListingByID(ctx, listing.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetListingByID after delete err = %v, want ErrNotFound", err)
		}
		if err := s.DeleteListing(ctx, listing.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("second DeleteListing err = %v, want ErrNotFound", err)
		}
		if err := s.DeleteListing(ctx, "zzz"); !errors.Is(err, ErrInvalidID) {
			t.Errorf("DeleteListing(malformed) err = %v, want ErrInvalidID", err)
		}
	})

	t.Run("ListListings_Filters", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		base := time.Now().UTC().Truncate(time.Microsecond)
		seed := []struct {
			location   string
			noise      model.NoiseLevel
			wifi       model.WiFi
			reservable bool
		}{
			{"Bobst Library (LL2)", model.NoiseQuiet, model.WiFiYes, false},
			{"bobst lobby", model.NoiseLoud, model.WiFiYes, true},
			{"Kimmel Center", model.NoiseQuiet, model.WiFiNo, true},
		}
		for i, sd := range seed {
			l := testutil.NewTestListing(t, sd.location)
			l.NoiseLevel = sd.noise
			l.WiFi = sd.wifi
			l.Reservable = sd.reservable
			l.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			if err := s.CreateListing(ctx, l); err != nil {
				t.Fatalf("CreateListing failed: %v", err)
			}
		}

		yes := true
		tests := []struct {
			name   string
			filter ListingFilter
			want   []string
		}{
			{"all newest first", ListingFilter{}, []string{"Kimmel Center", "bobst lobby", "Bobst Library (LL2)"}},
			{"location case insensitive", ListingFilter{Location: "BOBST"}, []string{"bobst lobby", "Bobst Library (LL2)"}},
			{"location is literal", ListingFilter{Location: "(LL2)"}, []string{"Bobst Library (LL2)"}},
			{"noise", ListingFilter{NoiseLevel: model.NoiseQuiet}, []string{"Kimmel Center", "Bobst Library (LL2)"}},
			{"combined", ListingFilter{Location: "bobst", WiFi: model.WiFiYes, Reservable: &yes}, []string{"bobst lobby"}},
			{"limit", ListingFilter{Limit: 1}, []string{"Kimmel Center"}},
			{"no match", ListingFilter{Outlets: model.OutletsNone}, nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := s.ListListings(ctx, tt.filter)
				if err != nil {
					t.Fatalf("ListListings failed: %v", err)
				}
				if len(got) != len(tt.want) {
					t.Fatalf("got %d listings, want %d", len(got), len(tt.want))
				}
				for i, l := range got {
					if l.Location != tt.want[i] {
						t.Errorf("listing[%d] = %q, want %q", i, l.Location, tt.want[i])
					}
				}
			})
		}
	})
}

func assertListingEqual(t *testing.T, want, got *model.Listing) {
	t.Helper()
	if got.ID != want.ID ||
		got.NetID != want.NetID ||
		got.Location != want.Location ||
		got.GoogleMaps != want.GoogleMaps ||
		got.NoiseLevel != want.NoiseLevel ||
		got.Seating != want.Seating ||
		got.WiFi != want.WiFi ||
		got.Outlets != want.Outlets ||
		got.Reservable != want.Reservable ||
		got.Climate != want.Climate ||
		got.Hours != want.Hours {
		t.Errorf("listing mismatch:\n got %+v\nwant %+v", got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}
