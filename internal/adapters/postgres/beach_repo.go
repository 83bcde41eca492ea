package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
)

// BeachRepo implements ports.BeachRepository with pgx.
type BeachRepo struct {
	db *DB
}

var _ ports.BeachRepository = (*BeachRepo)(nil)

// NewBeachRepo creates a new BeachRepo.
func NewBeachRepo(db *DB) *BeachRepo {
	return &BeachRepo{db: db}
}

const upsertBeachSQL = `
	INSERT INTO beaches (slug, name, country, region, location, utc_offset, timezone_id,
	                     ocean_view_start, ocean_view_end, obstructions, scenic_features,
	                     facing_direction, notes)
	VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography, $7, $8,
	        $9, $10, $11, $12, $13, $14)
	ON CONFLICT (slug) DO UPDATE
	SET name = EXCLUDED.name, country = EXCLUDED.country, region = EXCLUDED.region,
	    location = EXCLUDED.location, utc_offset = EXCLUDED.utc_offset,
	    timezone_id = EXCLUDED.timezone_id,
	    ocean_view_start = EXCLUDED.ocean_view_start, ocean_view_end = EXCLUDED.ocean_view_end,
	    obstructions = EXCLUDED.obstructions, scenic_features = EXCLUDED.scenic_features,
	    facing_direction = EXCLUDED.facing_direction, notes = EXCLUDED.notes,
	    updated_at = now()
`

func upsertArgs(b *domain.Beach) []any {
	obstructions := b.Obstructions
	if obstructions == nil {
		obstructions = []domain.ObstructionInterval{}
	}
	scenic := b.ScenicFeatures
	if scenic == nil {
		scenic = []domain.ScenicFeature{}
	}
	return []any{
		domain.NormalizeSlug(b.Slug), b.Name, b.Country, b.Region,
		b.Location.Lon, b.Location.Lat, b.UTCOffset, b.TimezoneID,
		b.OceanViewStart, b.OceanViewEnd, obstructions, scenic,
		b.FacingDirection, b.Notes,
	}
}

// Upsert inserts or updates a single beach keyed by slug.
func (r *BeachRepo) Upsert(ctx context.Context, b *domain.Beach) error {
	_, err := r.db.Pool.Exec(ctx, upsertBeachSQL, upsertArgs(b)...)
	return err
}

// UpsertBatch inserts many beaches using pgx.Batch.
func (r *BeachRepo) UpsertBatch(ctx context.Context, beaches []domain.Beach) error {
	batch := &pgx.Batch{}
	for i := range beaches {
		batch.Queue(upsertBeachSQL, upsertArgs(&beaches[i])...)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for _, b := range beaches {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec %s: %w", b.Slug, err)
		}
	}
	return nil
}

const beachColumns = `
	id, slug, name, country, region,
	ST_Y(location::geometry) AS lat,
	ST_X(location::geometry) AS lon,
	utc_offset, COALESCE(timezone_id, ''),
	ocean_view_start, ocean_view_end,
	COALESCE(obstructions, '[]'::jsonb), COALESCE(scenic_features, '[]'::jsonb),
	COALESCE(facing_direction, ''), COALESCE(notes, '')`

func scanBeach(row pgx.Row, extra ...any) (domain.Beach, error) {
	var b domain.Beach
	dest := []any{
		&b.ID, &b.Slug, &b.Name, &b.Country, &b.Region,
		&b.Location.Lat, &b.Location.Lon,
		&b.UTCOffset, &b.TimezoneID,
		&b.OceanViewStart, &b.OceanViewEnd,
		&b.Obstructions, &b.ScenicFeatures,
		&b.FacingDirection, &b.Notes,
	}
	err := row.Scan(append(dest, extra...)...)
	return b, err
}

// GetBySlug returns a beach by its normalised slug.
func (r *BeachRepo) GetBySlug(ctx context.Context, slug string) (*domain.Beach, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+beachColumns+` FROM beaches WHERE slug = $1`, domain.NormalizeSlug(slug))
	b, err := scanBeach(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", slug, domain.ErrBeachNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns one page of beaches matching the filter, ordered by country
// and name, along with the total number of matches.
func (r *BeachRepo) List(ctx context.Context, f ports.BeachFilter) ([]domain.Beach, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+beachColumns+`, COUNT(*) OVER () AS total
		FROM beaches
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR country ILIKE '%' || $1 || '%'
		       OR region ILIKE '%' || $1 || '%' OR slug ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR country ILIKE '%' || $2 || '%')
		  AND (NOT $3 OR azimuth_in_range(270, ocean_view_start, ocean_view_end)
		              OR azimuth_in_range(250, ocean_view_start, ocean_view_end))
		ORDER BY country, name
		OFFSET $4 LIMIT $5
	`, f.Query, f.Country, f.SunsetOnly, f.Offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		beaches []domain.Beach
		total   int
	)
	for rows.Next() {
		b, err := scanBeach(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		beaches = append(beaches, b)
	}
	return beaches, total, rows.Err()
}

// FindNearby returns beaches within radiusMeters using PostGIS ST_DWithin.
func (r *BeachRepo) FindNearby(ctx context.Context, p domain.GeoPoint, radiusMeters float64, limit int) ([]domain.Beach, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+beachColumns+`,
		       ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) AS distance
		FROM beaches
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance
		LIMIT $4
	`, p.Lon, p.Lat, radiusMeters, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var beaches []domain.Beach
	for rows.Next() {
		var dist float64
		b, err := scanBeach(rows, &dist)
		if err != nil {
			return nil, err
		}
		b.Distance = &dist
		beaches = append(beaches, b)
	}
	return beaches, rows.Err()
}
