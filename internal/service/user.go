package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// UserService manages user profiles.
type UserService struct {
	store   store.Store
	indexer SearchIndexer
	logger  *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, indexer SearchIndexer, logger *slog.Logger) *UserService {
	return &UserService{
		store:   store,
		indexer: indexer,
		logger:  logger,
	}
}

// Profile is a user's public profile with social counts.
type Profile struct {
	User           *domain.User `json:"user"`
	FollowerCount  int          `json:"follower_count"`
	FollowingCount int          `json:"following_count"`
	LogCount       int          `json:"log_count"`
}

// UpdateProfileRequest contains the data for updating a profile.
type UpdateProfileRequest struct {
	UserID string  `json:"-"`
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=40"`
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetProfileByUsername returns a user's public profile.
func (s *UserService) GetProfileByUsername(ctx context.Context, username string) (*Profile, error) {
	u, err := s.store.GetUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return s.buildProfile(ctx, u)
}

// GetProfile returns a user's public profile by ID.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, u)
}

func (s *UserService) buildProfile(ctx context.Context, u *domain.User) (*Profile, error) {
	followers, err := s.store.CountFollowers(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}

	followingIDs, err := s.store.ListFollowedIDs(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list followed ids: %w", err)
	}

	logs, err := s.store.ListLogsByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	// Never expose the hash, even internally serialized.
	u.PasswordHash = ""

	return &Profile{
		User:           u,
		FollowerCount:  followers,
		FollowingCount: len(followingIDs),
		LogCount:       len(logs),
	}, nil
}

// UpdateProfile applies partial updates to the requesting user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	u, err := s.store.GetUser(ctx, req.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	u.Touch()

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := s.indexer.IndexUser(ctx, u); err != nil {
		s.logger.Warn("failed to index user", "user_id", u.ID, "error", err)
	}

	return u, nil
}

// ListUsers returns all users. Admin surface only.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.store.ListUsers(ctx)
}
