package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// logColumns is the ordered list of columns selected in log queries.
// Must match the scan order in scanLog.
const logColumns = `id, user_id, title, description, created_at, updated_at`

// scanLog scans a sql.Row (or sql.Rows via its Scan method) into a domain.Log.
func scanLog(scanner interface{ Scan(dest ...any) error }) (*domain.Log, error) {
	var l domain.Log

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&l.ID,
		&l.UserID,
		&l.Title,
		&l.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	l.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &l, nil
}

// CreateLog inserts a new log.
// Returns store.ErrAlreadyExists if the owner already has a log with this title.
func (s *Store) CreateLog(ctx context.Context, l *domain.Log) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO logs (id, user_id, title, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID,
		l.UserID,
		l.Title,
		l.Description,
		formatTime(l.CreatedAt),
		formatTime(l.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetLog retrieves a log by ID.
// Returns store.ErrNotFound if the log does not exist.
func (s *Store) GetLog(ctx context.Context, id string) (*domain.Log, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+logColumns+` FROM logs WHERE id = ?`, id)

	l, err := scanLog(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateLog performs a full row update on an existing log.
// Returns store.ErrNotFound if the log does not exist.
func (s *Store) UpdateLog(ctx context.Context, l *domain.Log) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE logs SET title = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		l.Title,
		l.Description,
		formatTime(l.UpdatedAt),
		l.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
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

// DeleteLog removes a log. Posts, comments, likes, tag associations and
// reports referencing it are removed by cascade.
// Returns store.ErrNotFound if the log does not exist.
func (s *Store) DeleteLog(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM logs WHERE id = ?`, id)
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

// ListLogsByUser returns a user's logs, most recently updated first.
func (s *Store) ListLogsByUser(ctx context.Context, userID string) ([]*domain.Log, error) {
	return s.queryLogs(ctx,
		`SELECT `+logColumns+` FROM logs WHERE user_id = ? ORDER BY updated_at DESC`,
		userID)
}

// ListLogsByTagIDs returns logs carrying any of the given tags, most recently
// updated first, up to limit.
func (s *Store) ListLogsByTagIDs(ctx context.Context, tagIDs []string, limit int) ([]*domain.Log, error) {
	if len(tagIDs) == 0 {
		return []*domain.Log{}, nil
	}

	placeholders := strings.Repeat("?,", len(tagIDs)-1) + "?"
	args := make([]any, 0, len(tagIDs)+1)
	for _, id := range tagIDs {
		args = append(args, id)
	}
	args = append(args, limit)

	return s.queryLogs(ctx, `
		SELECT DISTINCT `+prefixedLogColumns+` FROM logs l
		JOIN log_tags lt ON lt.log_id = l.id
		WHERE lt.tag_id IN (`+placeholders+`)
		ORDER BY l.updated_at DESC
		LIMIT ?`,
		args...)
}

// prefixedLogColumns qualifies logColumns with the "l" alias for joins.
const prefixedLogColumns = `l.id, l.user_id, l.title, l.description, l.created_at, l.updated_at`

// ListRecentLogs returns the most recently updated logs, up to limit.
func (s *Store) ListRecentLogs(ctx context.Context, limit int) ([]*domain.Log, error) {
	return s.queryLogs(ctx,
		`SELECT `+logColumns+` FROM logs ORDER BY updated_at DESC LIMIT ?`, limit)
}

// queryLogs runs a log query and collects the results.
func (s *Store) queryLogs(ctx context.Context, query string, args ...any) ([]*domain.Log, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*domain.Log{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
