package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// PostService manages posts within logs.
type PostService struct {
	store     store.Store
	indexer   SearchIndexer
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewPostService creates a new post service.
func NewPostService(store store.Store, indexer SearchIndexer, logger *slog.Logger) *PostService {
	return &PostService{
		store:     store,
		indexer:   indexer,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger,
	}
}

// CreatePostRequest contains the data for creating a post.
type CreatePostRequest struct {
	LogID   string `json:"-"`
	Title   string `json:"title" validate:"required,min=2,max=20"`
	Content string `json:"content" validate:"required,min=1,max=1000"`

	UserID string `json:"-"` // From the authenticated session
}

// UpdatePostRequest contains the data for updating a post.
type UpdatePostRequest struct {
	PostID  string  `json:"-"`
	Title   *string `json:"title,omitempty" validate:"omitempty,min=2,max=20"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1,max=1000"`

	UserID string `json:"-"`
}

// CreatePost creates a post in a log. Only the log owner may post to it.
// Content is sanitized against markup injection before storage.
func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (*domain.Post, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	l, err := s.store.GetLog(ctx, req.LogID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("log not found")
		}
		return nil, fmt.Errorf("get log: %w", err)
	}
	if l.UserID != req.UserID {
		return nil, domainerrors.Forbidden("not your log")
	}

	postID, err := id.Generate("post")
	if err != nil {
		return nil, fmt.Errorf("generate post ID: %w", err)
	}

	now := time.Now().UTC()
	p := &domain.Post{
		ID:        postID,
		LogID:     req.LogID,
		UserID:    req.UserID,
		Title:     strings.TrimSpace(req.Title),
		Content:   s.sanitizer.Sanitize(req.Content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreatePost(ctx, p); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("you already have a post with this title")
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := s.indexer.IndexPost(ctx, p); err != nil {
		s.logger.Warn("failed to index post", "post_id", p.ID, "error", err)
	}
	s.logger.Info("created post", "post_id", p.ID, "log_id", p.LogID)

	return p, nil
}

// GetPost returns a post by ID.
func (s *PostService) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	p, err := s.store.GetPost(ctx, postID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("post not found")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

// UpdatePost applies partial updates to a post. Only the author may update.
func (s *PostService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*domain.Post, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	p, err := s.store.GetPost(ctx, req.PostID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("post not found")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	if p.UserID != req.UserID {
		return nil, domainerrors.Forbidden("not your post")
	}

	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		p.Content = s.sanitizer.Sanitize(*req.Content)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdatePost(ctx, p); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("you already have a post with this title")
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	if err := s.indexer.IndexPost(ctx, p); err != nil {
		s.logger.Warn("failed to index post", "post_id", p.ID, "error", err)
	}

	return p, nil
}

// DeletePost removes a post. Only the author or an admin may delete.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID string, requesterIsAdmin bool) error {
	p, err := s.store.GetPost(ctx, postID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("post not found")
		}
		return fmt.Errorf("get post: %w", err)
	}
	if p.UserID != requesterID && !requesterIsAdmin {
		return domainerrors.Forbidden("not your post")
	}

	if err := s.store.DeletePost(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if err := s.indexer.Delete(ctx, postID); err != nil {
		s.logger.Warn("failed to prune search index", "post_id", postID, "error", err)
	}

	return nil
}

// ListLogPosts returns all posts in a log, newest first.
func (s *PostService) ListLogPosts(ctx context.Context, logID string) ([]*domain.Post, error) {
	return s.store.ListPostsByLog(ctx, logID)
}
