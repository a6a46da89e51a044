package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// SocialService provides likes and follows.
type SocialService struct {
	store  store.Store
	logger *slog.Logger
}

// NewSocialService creates a new social service.
func NewSocialService(store store.Store, logger *slog.Logger) *SocialService {
	return &SocialService{
		store:  store,
		logger: logger,
	}
}

// LikeLog records a like on a log. Liking twice is a conflict.
func (s *SocialService) LikeLog(ctx context.Context, logID, userID string) error {
	if _, err := s.store.GetLog(ctx, logID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("log not found")
		}
		return fmt.Errorf("get log: %w", err)
	}

	if err := s.store.LikeLog(ctx, logID, userID); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return domainerrors.Conflict("already liked")
		}
		return fmt.Errorf("like log: %w", err)
	}
	return nil
}

// UnlikeLog removes a like on a log. Unliking a log that was never liked is
// not found.
func (s *SocialService) UnlikeLog(ctx context.Context, logID, userID string) error {
	existed, err := s.store.UnlikeLog(ctx, logID, userID)
	if err != nil {
		return fmt.Errorf("unlike log: %w", err)
	}
	if !existed {
		return domainerrors.NotFound("not liked")
	}
	return nil
}

// CountLogLikes returns the number of likes on a log.
func (s *SocialService) CountLogLikes(ctx context.Context, logID string) (int, error) {
	return s.store.CountLogLikes(ctx, logID)
}

// LikePost records a like on a post. Liking twice is a conflict.
func (s *SocialService) LikePost(ctx context.Context, postID, userID string) error {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("post not found")
		}
		return fmt.Errorf("get post: %w", err)
	}

	if err := s.store.LikePost(ctx, postID, userID); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return domainerrors.Conflict("already liked")
		}
		return fmt.Errorf("like post: %w", err)
	}
	return nil
}

// UnlikePost removes a like on a post. Unliking a post that was never liked
// is not found.
func (s *SocialService) UnlikePost(ctx context.Context, postID, userID string) error {
	existed, err := s.store.UnlikePost(ctx, postID, userID)
	if err != nil {
		return fmt.Errorf("unlike post: %w", err)
	}
	if !existed {
		return domainerrors.NotFound("not liked")
	}
	return nil
}

// CountPostLikes returns the number of likes on a post.
func (s *SocialService) CountPostLikes(ctx context.Context, postID string) (int, error) {
	return s.store.CountPostLikes(ctx, postID)
}

// Follow records the requester following another user.
func (s *SocialService) Follow(ctx context.Context, followerID, followedID string) error {
	if _, err := s.store.GetUser(ctx, followedID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}

	if err := s.store.CreateFollow(ctx, followerID, followedID); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return domainerrors.Conflict("already following")
		}
		if domainerrors.Is(err, store.ErrInvalidInput) {
			return domainerrors.Validation("cannot follow yourself")
		}
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

// Unfollow removes a follow. Unfollowing a user that is not followed is not
// found.
func (s *SocialService) Unfollow(ctx context.Context, followerID, followedID string) error {
	existed, err := s.store.DeleteFollow(ctx, followerID, followedID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	if !existed {
		return domainerrors.NotFound("not following")
	}
	return nil
}

// ListFollowers returns the users following the given user.
func (s *SocialService) ListFollowers(ctx context.Context, userID string) ([]*domain.User, error) {
	ids, err := s.store.ListFollowerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list follower ids: %w", err)
	}
	return s.store.GetUsersByIDs(ctx, ids)
}

// ListFollowing returns the users the given user follows.
func (s *SocialService) ListFollowing(ctx context.Context, userID string) ([]*domain.User, error) {
	ids, err := s.store.ListFollowedIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list followed ids: %w", err)
	}
	return s.store.GetUsersByIDs(ctx, ids)
}
