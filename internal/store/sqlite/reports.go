package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// reportColumns is the ordered list of columns selected in report queries.
// Must match the scan order in scanReport.
const reportColumns = `id, log_id, reporter_id, reported_user_id, reason, created_at`

// scanReport scans a sql.Row (or sql.Rows via its Scan method) into a domain.Report.
func scanReport(scanner interface{ Scan(dest ...any) error }) (*domain.Report, error) {
	var r domain.Report

	var createdAt string

	err := scanner.Scan(
		&r.ID,
		&r.LogID,
		&r.ReporterID,
		&r.ReportedUserID,
		&r.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// CreateReport inserts a new report.
// Returns store.ErrAlreadyExists if the same reporter already reported the
// same log and user.
func (s *Store) CreateReport(ctx context.Context, r *domain.Report) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (id, log_id, reporter_id, reported_user_id, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.LogID,
		r.ReporterID,
		r.ReportedUserID,
		r.Reason,
		formatTime(r.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetReport retrieves a report by ID.
// Returns store.ErrNotFound if the report does not exist.
func (s *Store) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+reportColumns+` FROM reports WHERE id = ?`, id)

	r, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteReport removes a report by ID.
// Returns store.ErrNotFound if the report does not exist.
func (s *Store) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListReports returns all open reports, oldest first.
func (s *Store) ListReports(ctx context.Context) ([]*domain.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+reportColumns+` FROM reports ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := []*domain.Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}
