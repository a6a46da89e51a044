package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/lumbrapp/lumbr-server/internal/store"
)

// LikeLog records a like on a log by a user.
// Returns store.ErrAlreadyExists if the user already liked the log.
func (s *Store) LikeLog(ctx context.Context, logID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO log_likes (log_id, user_id, created_at)
		VALUES (?, ?, ?)`,
		logID, userID, formatTime(time.Now().UTC()))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UnlikeLog removes a like on a log. Returns false if no like existed.
func (s *Store) UnlikeLog(ctx context.Context, logID, userID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM log_likes WHERE log_id = ? AND user_id = ?`, logID, userID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountLogLikes returns the number of likes on a log.
func (s *Store) CountLogLikes(ctx context.Context, logID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM log_likes WHERE log_id = ?`, logID).Scan(&n)
	return n, err
}

// LikePost records a like on a post by a user.
// Returns store.ErrAlreadyExists if the user already liked the post.
func (s *Store) LikePost(ctx context.Context, postID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO post_likes (post_id, user_id, created_at)
		VALUES (?, ?, ?)`,
		postID, userID, formatTime(time.Now().UTC()))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// UnlikePost removes a like on a post. Returns false if no like existed.
func (s *Store) UnlikePost(ctx context.Context, postID, userID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = ? AND user_id = ?`, postID, userID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountPostLikes returns the number of likes on a post.
func (s *Store) CountPostLikes(ctx context.Context, postID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM post_likes WHERE post_id = ?`, postID).Scan(&n)
	return n, err
}
