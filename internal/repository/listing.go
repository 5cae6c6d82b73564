package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/studyspot/studyspot/internal/model"
)

// ListingFilter narrows ListListings. Zero-valued fields do not constrain.
type ListingFilter struct {
	// Location matches case-insensitively anywhere in the location label.
	Location   string
	NoiseLevel model.NoiseLevel
	WiFi       model.WiFi
	Outlets    model.Outlets
	Reservable *bool
	// Limit caps the result size; 0 means no cap.
	Limit int
}

const listingColumns = `id, netid, location, googlemaps, noise_level, seating, wifi, outlets, reservable, climate, hours, created_at`

// CreateListing inserts a new listing and assigns its ID.
func (r *Repository) CreateListing(ctx context.Context, listing *model.Listing) error {
	query := `
		INSERT INTO posts (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	listing.ID = NewID()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, query,
		listing.ID,
		listing.NetID,
		listing.Location,
		listing.GoogleMaps,
		string(listing.NoiseLevel),
		string(listing.Seating),
		string(listing.WiFi),
		string(listing.Outlets),
		listing.Reservable,
		listing.Climate,
		listing.Hours,
		listing.CreatedAt,
	)
	if err != nil {
		listing.ID = ""
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

// GetListingByID retrieves a listing by its ID.
func (r *Repository) GetListingByID(ctx context.Context, id string) (*model.Listing, error) {
	if err := ParseID(id); err != nil {
		return nil, err
	}

	query := `SELECT ` + listingColumns + ` FROM posts WHERE id = $1`

	listing, err := scanListing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get listing by ID: %w", err)
	}

	return listing, nil
}

// UpdateListing overwrites a listing's mutable fields.
// ID, NetID and CreatedAt are left as stored.
func (r *Repository) UpdateListing(ctx context.Context, listing *model.Listing) error {
	if err := ParseID(listing.ID); err != nil {
		return err
	}

	query := `
		UPDATE posts
		SET location = $2, googlemaps = $3, noise_level = $4, seating = $5,
		    wifi = $6, outlets = $7, reservable = $8, climate = $9, hours = $10
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		listing.ID,
		listing.Location,
		listing.GoogleMaps,
		string(listing.NoiseLevel),
		string(listing.Seating),
		string(listing.WiFi),
		string(listing.Outlets),
		listing.Reservable,
		listing.Climate,
		listing.Hours,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteListing removes a listing.
func (r *Repository) DeleteListing(ctx context.Context, id string) error {
	if err := ParseID(id); err != nil {
		return err
	}

	result, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListListings returns listings matching filter, newest first.
func (r *Repository) ListListings(ctx context.Context, filter ListingFilter) ([]*model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM posts WHERE TRUE`
	args := []any{}
	argIndex := 1

	if filter.Location != "" {
		query += fmt.Sprintf(" AND location ~* $%d", argIndex)
		args = append(args, regexp.QuoteMeta(filter.Location))
		argIndex++
	}

	if filter.NoiseLevel != "" {
		query += fmt.Sprintf(" AND noise_level = $%d", argIndex)
		args = append(args, string(filter.NoiseLevel))
		argIndex++
	}

	if filter.WiFi != "" {
		query += fmt.Sprintf(" AND wifi = $%d", argIndex)
		args = append(args, string(filter.WiFi))
		argIndex++
	}

	if filter.Outlets != "" {
		query += fmt.Sprintf(" AND outlets = $%d", argIndex)
		args = append(args, string(filter.Outlets))
		argIndex++
	}

	if filter.Reservable != nil {
		query += fmt.Sprintf(" AND reservable = $%d", argIndex)
		args = append(args, *filter.Reservable)
		argIndex++
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	var listings []*model.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating listings: %w", err)
	}

	return listings, nil
}

// scanListing reads one listing from a pgx.Row or pgx.Rows.
// Amenity values outside the known sets read back as unspecified.
func scanListing(row pgx.Row) (*model.Listing, error) {
	var listing model.Listing
	var noiseLevel, seating, wifi, outlets string
	err := row.Scan(
		&listing.ID,
		&listing.NetID,
		&listing.Location,
		&listing.GoogleMaps,
		&noiseLevel,
		&seating,
		&wifi,
		&outlets,
		&listing.Reservable,
		&listing.Climate,
		&listing.Hours,
		&listing.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	listing.NoiseLevel = model.NoiseLevelFromStore(noiseLevel)
	listing.Seating = model.SeatingFromStore(seating)
	listing.WiFi = model.WiFiFromStore(wifi)
	listing.Outlets = model.OutletsFromStore(outlets)
	return &listing, nil
}
