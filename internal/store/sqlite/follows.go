package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/lumbrapp/lumbr-server/internal/store"
)

// CreateFollow records one user following another.
// Returns store.ErrAlreadyExists if the follow already exists and
// store.ErrInvalidInput on a self-follow.
func (s *Store) CreateFollow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return store.ErrInvalidInput.WithMessage("cannot follow yourself")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO follows (follower_id, followed_id, created_at)
		VALUES (?, ?, ?)`,
		followerID, followedID, formatTime(time.Now().UTC()))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// DeleteFollow removes a follow. Returns false if no follow existed.
func (s *Store) DeleteFollow(ctx context.Context, followerID, followedID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followed_id = ?`,
		followerID, followedID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListFollowerIDs returns the IDs of users following the given user.
func (s *Store) ListFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	return s.queryIDs(ctx,
		`SELECT follower_id FROM follows WHERE followed_id = ? ORDER BY created_at DESC`,
		userID)
}

// ListFollowedIDs returns the IDs of users the given user follows.
func (s *Store) ListFollowedIDs(ctx context.Context, userID string) ([]string, error) {
	return s.queryIDs(ctx,
		`SELECT followed_id FROM follows WHERE follower_id = ? ORDER BY created_at DESC`,
		userID)
}

// CountFollowers returns the number of users following the given user.
func (s *Store) CountFollowers(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE followed_id = ?`, userID).Scan(&n)
	return n, err
}
