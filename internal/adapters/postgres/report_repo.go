package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/sundowner/internal/core/domain"
	"github.com/samirrijal/sundowner/internal/core/ports"
)

// ErrReportNotFound is returned by GetByID for an unknown report.
var ErrReportNotFound = errors.New("report not found")

// ReportRepo implements ports.ReportRepository with pgx. The full report is
// kept as JSONB next to the columns used for filtering.
type ReportRepo struct {
	db *DB
}

var _ ports.ReportRepository = (*ReportRepo)(nil)

// NewReportRepo creates a new ReportRepo.
func NewReportRepo(db *DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// Insert stores a report. Inserting the same id twice is a no-op, so
// redelivered events are harmless.
func (r *ReportRepo) Insert(ctx context.Context, rep *domain.SunsetReport) error {
	payload, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	var slug *string
	if rep.BeachSlug != "" {
		slug = &rep.BeachSlug
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO sunset_reports (id, beach_slug, name, location, report_date, sunset_at,
		                            azimuth, over_water, source, payload, created_at)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326)::geography, $6::date, $7,
		        $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`, rep.ID, slug, rep.Name, rep.Location.Lon, rep.Location.Lat, rep.Date, rep.Sunset.Time,
		rep.Sunset.Azimuth, rep.Verdict.OverWater, string(rep.Source), payload, rep.CreatedAt)
	return err
}

// GetByID returns a report by UUID.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*domain.SunsetReport, error) {
	var payload []byte
	err := r.db.Pool.QueryRow(ctx, `SELECT payload FROM sunset_reports WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrReportNotFound)
	}
	if err != nil {
		return nil, err
	}
	var rep domain.SunsetReport
	if err := json.Unmarshal(payload, &rep); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	return &rep, nil
}

// ListByBeach returns the latest reports of a curated beach, newest date first.
func (r *ReportRepo) ListByBeach(ctx context.Context, slug string, limit int) ([]domain.SunsetReport, error) {
	return r.list(ctx, `
		SELECT payload FROM sunset_reports
		WHERE beach_slug = $1
		ORDER BY report_date DESC, created_at DESC
		LIMIT $2
	`, domain.NormalizeSlug(slug), limit)
}

// ListRecent returns the most recently created reports.
func (r *ReportRepo) ListRecent(ctx context.Context, limit int) ([]domain.SunsetReport, error) {
	return r.list(ctx, `
		SELECT payload FROM sunset_reports
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
}

func (r *ReportRepo) list(ctx context.Context, sql string, args ...any) ([]domain.SunsetReport, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.SunsetReport
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var rep domain.SunsetReport
		if err := json.Unmarshal(payload, &rep); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
