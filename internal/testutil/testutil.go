package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/studyspot/studyspot/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 731_901

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops every table by running all down migrations newest first,
// then recreates them by running all up migrations oldest first.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	ups, downs, err := migrationFiles()
	if err != nil {
		return err
	}

	slices.Reverse(downs)
	for _, path := range append(downs, ups...) {
		sql, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", filepath.Base(path), err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", filepath.Base(path), err)
		}
	}

	return nil
}

// migrationFiles lists up and down migrations in version order.
func migrationFiles() (ups, downs []string, err error) {
	root, err := ProjectRoot()
	if err != nil {
		return nil, nil, err
	}

	paths, err := filepath.Glob(filepath.Join(root, "migrations", "*.sql"))
	if err != nil {
		return nil, nil, fmt.Errorf("list migrations: %w", err)
	}
	slices.Sort(paths)

	for _, p := range paths {
		switch {
		case strings.HasSuffix(p, ".up.sql"):
			ups = append(ups, p)
		case strings.HasSuffix(p, ".down.sql"):
			downs = append(downs, p)
		}
	}

	return ups, downs, nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestListing creates a listing with sensible defaults and no ID.
func NewTestListing(t testing.TB, location string) *model.Listing {
	t.Helper()
	return &model.Listing{
		NetID:      "abc123",
		Location:   location,
		GoogleMaps: "https://www.google.com/maps/place/Bobst/@40.7295,-73.9972,17z",
		NoiseLevel: model.NoiseQuiet,
		Seating:    model.SeatingIndividual,
		WiFi:       model.WiFiYes,
		Outlets:    model.OutletsPlenty,
		Reservable: false,
		Climate:    "cool",
		Hours:      "08:00-22:00",
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

// NewTestUser creates a user with a unique institutional email and no ID.
func NewTestUser(t testing.TB, domain string) *model.User {
	t.Helper()
	netID := UniqueID("u")
	return &model.User{
		NetID:        netID,
		Email:        netID + "@" + domain,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
}
