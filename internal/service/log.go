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

// exploreLimit caps the number of logs returned by the explore feed.
const exploreLimit = 100

// LogService manages logs and the explore feed.
type LogService struct {
	store      store.Store
	tagService *TagService
	indexer    SearchIndexer
	logger     *slog.Logger
}

// NewLogService creates a new log service.
func NewLogService(store store.Store, tagService *TagService, indexer SearchIndexer, logger *slog.Logger) *LogService {
	return &LogService{
		store:      store,
		tagService: tagService,
		indexer:    indexer,
		logger:     logger,
	}
}

// CreateLogRequest contains the data for creating a log.
type CreateLogRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=20"`
	Description string   `json:"description" validate:"max=60"`
	TagIDs      []string `json:"tag_ids" validate:"max=5"`

	UserID string `json:"-"` // From the authenticated session
}

// UpdateLogRequest contains the data for updating a log.
type UpdateLogRequest struct {
	LogID       string    `json:"-"`
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=2,max=20"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=60"`
	TagIDs      *[]string `json:"tag_ids,omitempty"`

	UserID string `json:"-"`
}

// LogWithTags pairs a log with its resolved tags.
type LogWithTags struct {
	Log  *domain.Log   `json:"log"`
	Tags []*domain.Tag `json:"tags"`
}

// CreateLog creates a log owned by the requesting user, attaching the
// desired tags through reconciliation.
func (s *LogService) CreateLog(ctx context.Context, req CreateLogRequest) (*LogWithTags, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	logID, err := id.Generate("log")
	if err != nil {
		return nil, fmt.Errorf("generate log ID: %w", err)
	}

	now := time.Now().UTC()
	l := &domain.Log{
		ID:          logID,
		UserID:      req.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateLog(ctx, l); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("you already have a log with this title")
		}
		return nil, fmt.Errorf("create log: %w", err)
	}

	if err := s.tagService.ReconcileLogTags(ctx, l.ID, req.TagIDs); err != nil {
		// Don't leave a half-created log behind.
		_ = s.store.DeleteLog(ctx, l.ID)
		return nil, err
	}

	tags, err := s.tagService.GetLogTags(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	s.indexLog(ctx, l)
	s.logger.Info("created log", "log_id", l.ID, "user_id", req.UserID)

	return &LogWithTags{Log: l, Tags: tags}, nil
}

// GetLog returns a log with its tags.
func (s *LogService) GetLog(ctx context.Context, logID string) (*LogWithTags, error) {
	l, err := s.store.GetLog(ctx, logID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("log not found")
		}
		return nil, fmt.Errorf("get log: %w", err)
	}

	tags, err := s.tagService.GetLogTags(ctx, logID)
	if err != nil {
		return nil, err
	}

	return &LogWithTags{Log: l, Tags: tags}, nil
}

// UpdateLog applies partial updates to a log. Only the owner may update.
func (s *LogService) UpdateLog(ctx context.Context, req UpdateLogRequest) (*LogWithTags, error) {
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

	if req.Title != nil {
		l.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		l.Description = strings.TrimSpace(*req.Description)
	}
	l.Touch()

	if err := s.store.UpdateLog(ctx, l); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("you already have a log with this title")
		}
		return nil, fmt.Errorf("update log: %w", err)
	}

	if req.TagIDs != nil {
		if err := s.tagService.ReconcileLogTags(ctx, l.ID, *req.TagIDs); err != nil {
			return nil, err
		}
	}

	tags, err := s.tagService.GetLogTags(ctx, l.ID)
	if err != nil {
		return nil, err
	}

	s.indexLog(ctx, l)

	return &LogWithTags{Log: l, Tags: tags}, nil
}

// DeleteLog removes a log and everything under it. Only the owner or an
// admin may delete.
func (s *LogService) DeleteLog(ctx context.Context, logID, requesterID string, requesterIsAdmin bool) error {
	l, err := s.store.GetLog(ctx, logID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("log not found")
		}
		return fmt.Errorf("get log: %w", err)
	}
	if l.UserID != requesterID && !requesterIsAdmin {
		return domainerrors.Forbidden("not your log")
	}

	posts, err := s.store.ListPostsByLog(ctx, logID)
	if err != nil {
		return fmt.Errorf("list posts: %w", err)
	}

	if err := s.store.DeleteLog(ctx, logID); err != nil {
		return fmt.Errorf("delete log: %w", err)
	}

	staleIDs := []string{logID}
	for _, p := range posts {
		staleIDs = append(staleIDs, p.ID)
	}
	if err := s.indexer.Delete(ctx, staleIDs...); err != nil {
		s.logger.Warn("failed to prune search index", "log_id", logID, "error", err)
	}

	return nil
}

// ListUserLogs returns all logs owned by a user.
func (s *LogService) ListUserLogs(ctx context.Context, userID string) ([]*domain.Log, error) {
	return s.store.ListLogsByUser(ctx, userID)
}

// Explore returns logs matching the user's interests, most recently updated
// first. Users with no interests fall back to the most recent logs overall.
func (s *LogService) Explore(ctx context.Context, userID string) ([]*domain.Log, error) {
	interestIDs, err := s.store.GetUserInterestTagIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get interests: %w", err)
	}

	if len(interestIDs) == 0 {
		return s.store.ListRecentLogs(ctx, exploreLimit)
	}

	return s.store.ListLogsByTagIDs(ctx, interestIDs, exploreLimit)
}

// indexLog updates the search index entry for a log; failures are logged
// rather than surfaced since the store is the source of truth.
func (s *LogService) indexLog(ctx context.Context, l *domain.Log) {
	if err := s.indexer.IndexLog(ctx, l); err != nil {
		s.logger.Warn("failed to index log", "log_id", l.ID, "error", err)
	}
}
