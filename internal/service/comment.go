package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// CommentService manages comments on logs and posts.
type CommentService struct {
	store   store.Store
	indexer SearchIndexer
	logger  *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(store store.Store, indexer SearchIndexer, logger *slog.Logger) *CommentService {
	return &CommentService{
		store:   store,
		indexer: indexer,
		logger:  logger,
	}
}

// CreateCommentRequest contains the data for creating a comment.
// Exactly one of LogID and PostID must be set.
type CreateCommentRequest struct {
	LogID  *string `json:"log_id,omitempty"`
	PostID *string `json:"post_id,omitempty"`
	Body   string  `json:"body" validate:"required,min=1,max=240"`

	UserID string `json:"-"` // From the authenticated session
}

// CreateComment creates a comment on a log or a post.
func (s *CommentService) CreateComment(ctx context.Context, req CreateCommentRequest) (*domain.Comment, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	if (req.LogID == nil) == (req.PostID == nil) {
		return nil, domainerrors.Validation("exactly one of log_id and post_id must be set")
	}

	// Verify the target exists.
	if req.LogID != nil {
		if _, err := s.store.GetLog(ctx, *req.LogID); err != nil {
			if domainerrors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.NotFound("log not found")
			}
			return nil, fmt.Errorf("get log: %w", err)
		}
	} else {
		if _, err := s.store.GetPost(ctx, *req.PostID); err != nil {
			if domainerrors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.NotFound("post not found")
			}
			return nil, fmt.Errorf("get post: %w", err)
		}
	}

	commentID, err := id.Generate("comment")
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}

	c := &domain.Comment{
		ID:        commentID,
		UserID:    req.UserID,
		LogID:     req.LogID,
		PostID:    req.PostID,
		Body:      strings.TrimSpace(req.Body),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if err := s.indexer.IndexComment(ctx, c); err != nil {
		s.logger.Warn("failed to index comment", "comment_id", c.ID, "error", err)
	}

	return c, nil
}

// DeleteComment removes a comment. The author, the owner of the commented
// entity, or an admin may delete.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, requesterID string, requesterIsAdmin bool) error {
	c, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("comment not found")
		}
		return fmt.Errorf("get comment: %w", err)
	}

	allowed := c.UserID == requesterID || requesterIsAdmin
	if !allowed {
		ownerID, err := s.targetOwner(ctx, c)
		if err != nil {
			return err
		}
		allowed = ownerID == requesterID
	}
	if !allowed {
		return domainerrors.Forbidden("not your comment")
	}

	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	if err := s.indexer.Delete(ctx, commentID); err != nil {
		s.logger.Warn("failed to prune search index", "comment_id", commentID, "error", err)
	}

	return nil
}

// ListLogComments returns all comments on a log, oldest first.
func (s *CommentService) ListLogComments(ctx context.Context, logID string) ([]*domain.Comment, error) {
	return s.store.ListCommentsByLog(ctx, logID)
}

// ListPostComments returns all comments on a post, oldest first.
func (s *CommentService) ListPostComments(ctx context.Context, postID string) ([]*domain.Comment, error) {
	return s.store.ListCommentsByPost(ctx, postID)
}

// targetOwner resolves the owner of the entity a comment sits on.
func (s *CommentService) targetOwner(ctx context.Context, c *domain.Comment) (string, error) {
	if c.LogID != nil {
		l, err := s.store.GetLog(ctx, *c.LogID)
		if err != nil {
			return "", fmt.Errorf("get log: %w", err)
		}
		return l.UserID, nil
	}
	p, err := s.store.GetPost(ctx, *c.PostID)
	if err != nil {
		return "", fmt.Errorf("get post: %w", err)
	}
	return p.UserID, nil
}
