package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresPool opens the profile database connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres init: %w", err)
	}
	return pool, nil
}

// ProfileRow is the storage shape of one registered profile.
type ProfileRow struct {
	ID          string
	Name        string
	ProfileType string
	Source      string
}

// ProfilesDriver stores registered photo owners in Postgres.
type ProfilesDriver struct {
	pool *pgxpool.Pool
}

func NewProfilesDriver(pool *pgxpool.Pool) *ProfilesDriver {
	return &ProfilesDriver{pool: pool}
}

// CreateProfile inserts a profile, updating the mutable name and
// profile type when the source-scoped id already exists.
func (d *ProfilesDriver) CreateProfile(ctx context.Context, row ProfileRow) error {
	query := `
		INSERT INTO profiles (id, source, name, profile_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id, source)
		DO UPDATE SET name = EXCLUDED.name, profile_type = EXCLUDED.profile_type
	`
	if _, err := d.pool.Exec(ctx, query, row.ID, row.Source, row.Name, row.ProfileType); err != nil {
		return &DriverError{Op: "CreateProfile", Err: err.Error()}
	}
	return nil
}

// GetProfile returns a profile by its source-scoped id, or found=false
// when no such profile is registered.
func (d *ProfilesDriver) GetProfile(ctx context.Context, id, source string) (*ProfileRow, bool, error) {
	query := `
		SELECT id, source, name, profile_type
		FROM profiles
		WHERE id = $1 AND source = $2
	`
	var row ProfileRow
	err := d.pool.QueryRow(ctx, query, id, source).Scan(&row.ID, &row.Source, &row.Name, &row.ProfileType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, &DriverError{Op: "GetProfile", Err: err.Error()}
	}
	return &row, true, nil
}

// ListProfiles returns all profiles for a source ordered by name.
func (d *ProfilesDriver) ListProfiles(ctx context.Context, source string) ([]ProfileRow, error) {
	query := `
		SELECT id, source, name, profile_type
		FROM profiles
		WHERE source = $1
		ORDER BY name, id
	`
	rows, err := d.pool.Query(ctx, query, source)
	if err != nil {
		return nil, &DriverError{Op: "ListProfiles", Err: err.Error()}
	}
	defer rows.Close()

	var profiles []ProfileRow
	for rows.Next() {
		var row ProfileRow
		if err := rows.Scan(&row.ID, &row.Source, &row.Name, &row.ProfileType); err != nil {
			return nil, &DriverError{Op: "ListProfiles", Err: err.Error()}
		}
		profiles = append(profiles, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &DriverError{Op: "ListProfiles", Err: err.Error()}
	}

	return profiles, nil
}

// StreamProfiles enumerates all profiles for a source through a
// forward-only cursor so a sweep over a large profile set never holds
// the whole set in memory. A row that fails to scan is skipped; the
// sweep continues with the rest.
func (d *ProfilesDriver) StreamProfiles(ctx context.Context, source string, fn func(ProfileRow)) error {
	query := `
		SELECT id, source, name, profile_type
		FROM profiles
		WHERE source = $1
		ORDER BY id
	`
	rows, err := d.pool.Query(ctx, query, source)
	if err != nil {
		return &DriverError{Op: "StreamProfiles", Err: err.Error()}
	}
	defer rows.Close()

	for rows.Next() {
		var row ProfileRow
		if err := rows.Scan(&row.ID, &row.Source, &row.Name, &row.ProfileType); err != nil {
			continue
		}
		fn(row)
	}
	if err := rows.Err(); err != nil {
		return &DriverError{Op: "StreamProfiles", Err: err.Error()}
	}

	return nil
}
