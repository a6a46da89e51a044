package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// ModerationService handles the admin moderation surface: suspending users,
// lifting expired suspensions, and resolving reports.
type ModerationService struct {
	store   store.Store
	indexer SearchIndexer
	logger  *slog.Logger
}

// SearchIndexer is the subset of search index operations services need to
// keep the index in sync with the store.
type SearchIndexer interface {
	IndexUser(ctx context.Context, user *domain.User) error
	IndexLog(ctx context.Context, log *domain.Log) error
	IndexPost(ctx context.Context, post *domain.Post) error
	IndexComment(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, ids ...string) error
}

// NewModerationService creates a new moderation service.
func NewModerationService(store store.Store, indexer SearchIndexer, logger *slog.Logger) *ModerationService {
	return &ModerationService{
		store:   store,
		indexer: indexer,
		logger:  logger,
	}
}

// SuspendRequest contains the data for suspending a user from a report.
type SuspendRequest struct {
	UserID string `json:"user_id" validate:"required"`
	LogID  string `json:"log_id" validate:"required"`
	Reason string `json:"reason" validate:"max=60"`
	Days   int    `json:"days" validate:"required,gte=1,lte=365"`
}

// SuspendUser suspends a user for the requested number of days. The user
// row update, the removal of every report against the user, and the
// deletion of the offending log all commit together or not at all.
func (s *ModerationService) SuspendUser(ctx context.Context, req SuspendRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	target, err := s.store.GetUser(ctx, req.UserID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if target.IsAdmin() {
		return nil, domainerrors.Forbidden("cannot suspend an admin")
	}

	l, err := s.store.GetLog(ctx, req.LogID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("log not found")
		}
		return nil, fmt.Errorf("get log: %w", err)
	}
	if l.UserID != req.UserID {
		return nil, domainerrors.Validation("log does not belong to the reported user")
	}

	// Posts and comments under the log are removed by cascade in the store;
	// collect their IDs first so the search index can be pruned afterwards.
	posts, err := s.store.ListPostsByLog(ctx, req.LogID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	until := time.Now().UTC().AddDate(0, 0, req.Days)
	if err := s.store.SuspendUser(ctx, req.UserID, req.LogID, req.Reason, until); err != nil {
		return nil, fmt.Errorf("suspend user: %w", err)
	}

	staleIDs := []string{req.LogID}
	for _, p := range posts {
		staleIDs = append(staleIDs, p.ID)
	}
	if err := s.indexer.Delete(ctx, staleIDs...); err != nil {
		s.logger.Warn("failed to prune search index after suspension", "error", err)
	}

	// Revoke the user's sessions so the suspension takes effect immediately.
	if err := s.store.DeleteAllUserSessions(ctx, req.UserID); err != nil {
		s.logger.Warn("failed to revoke sessions", "user_id", req.UserID, "error", err)
	}

	s.logger.Info("suspended user",
		"user_id", req.UserID,
		"log_id", req.LogID,
		"until", domain.MidnightUTC(until),
	)

	return s.store.GetUser(ctx, req.UserID)
}

// SweepExpiredSuspensions reactivates every user whose suspension period has
// elapsed. It returns the number of users reactivated. Running the sweep
// twice in a row is harmless: the second pass finds nothing to clear.
func (s *ModerationService) SweepExpiredSuspensions(ctx context.Context) (int, error) {
	due, err := s.store.ListUsersSuspendedThrough(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("list suspended users: %w", err)
	}

	cleared := 0
	for _, u := range due {
		if err := s.store.ClearSuspension(ctx, u.ID); err != nil {
			if domainerrors.Is(err, store.ErrNotFound) {
				continue
			}
			return cleared, fmt.Errorf("clear suspension for %s: %w", u.ID, err)
		}
		cleared++
		s.logger.Info("lifted suspension", "user_id", u.ID)
	}

	return cleared, nil
}

// ListReports returns all open reports, oldest first.
func (s *ModerationService) ListReports(ctx context.Context) ([]*domain.Report, error) {
	return s.store.ListReports(ctx)
}

// IgnoreReport dismisses a report without acting on it. Only the report
// itself is removed.
func (s *ModerationService) IgnoreReport(ctx context.Context, reportID string) error {
	if err := s.store.DeleteReport(ctx, reportID); err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("report not found")
		}
		return fmt.Errorf("delete report: %w", err)
	}

	s.logger.Info("ignored report", "report_id", reportID)
	return nil
}
