package sqlite

import (
	"context"
	"database/sql"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// commentColumns is the ordered list of columns selected in comment queries.
// Must match the scan order in scanComment.
const commentColumns = `id, user_id, log_id, post_id, body, created_at`

// scanComment scans a sql.Row (or sql.Rows via its Scan method) into a domain.Comment.
func scanComment(scanner interface{ Scan(dest ...any) error }) (*domain.Comment, error) {
	var c domain.Comment

	var (
		logID     sql.NullString
		postID    sql.NullString
		createdAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.UserID,
		&logID,
		&postID,
		&c.Body,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if logID.Valid {
		c.LogID = &logID.String
	}
	if postID.Valid {
		c.PostID = &postID.String
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateComment inserts a new comment.
func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, user_id, log_id, post_id, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.UserID,
		nullableString(c.LogID),
		nullableString(c.PostID),
		c.Body,
		formatTime(c.CreatedAt),
	)
	return err
}

// GetComment retrieves a comment by ID.
// Returns store.ErrNotFound if the comment does not exist.
func (s *Store) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = ?`, id)

	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteComment removes a comment by ID.
// Returns store.ErrNotFound if the comment does not exist.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
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

// ListCommentsByLog returns a log's comments, oldest first.
func (s *Store) ListCommentsByLog(ctx context.Context, logID string) ([]*domain.Comment, error) {
	return s.queryComments(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE log_id = ? ORDER BY created_at ASC`,
		logID)
}

// ListCommentsByPost returns a post's comments, oldest first.
func (s *Store) ListCommentsByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	return s.queryComments(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE post_id = ? ORDER BY created_at ASC`,
		postID)
}

// queryComments runs a comment query and collects the results.
func (s *Store) queryComments(ctx context.Context, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
