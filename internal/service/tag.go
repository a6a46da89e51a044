package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// TagService manages the shared tag catalog and reconciles tag associations
// on logs and user interest profiles.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		logger: logger,
	}
}

// ListTags returns the full tag catalog ordered by slug.
func (s *TagService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListTags(ctx)
}

// GetLogTags returns the tags currently attached to a log, ordered by slug.
func (s *TagService) GetLogTags(ctx context.Context, logID string) ([]*domain.Tag, error) {
	ids, err := s.store.GetLogTagIDs(ctx, logID)
	if err != nil {
		return nil, fmt.Errorf("get log tag ids: %w", err)
	}
	return s.store.GetTagsByIDs(ctx, ids)
}

// GetUserInterests returns the tags a user follows, ordered by slug.
func (s *TagService) GetUserInterests(ctx context.Context, userID string) ([]*domain.Tag, error) {
	ids, err := s.store.GetUserInterestTagIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get interest tag ids: %w", err)
	}
	return s.store.GetTagsByIDs(ctx, ids)
}

// ReconcileLogTags replaces a log's tag set with the desired set.
// Associations not in the desired set are removed first, then missing ones
// are added in a single batch. Applying the same desired set twice is a
// no-op. The desired set must not exceed domain.MaxLogTags; an oversized
// request is rejected before any association is touched.
func (s *TagService) ReconcileLogTags(ctx context.Context, logID string, desired []string) error {
	desired = dedupe(desired)
	if len(desired) > domain.MaxLogTags {
		return domainerrors.Validation("too many tags selected")
	}

	if err := s.verifyTagsExist(ctx, desired); err != nil {
		return err
	}

	current, err := s.store.GetLogTagIDs(ctx, logID)
	if err != nil {
		return fmt.Errorf("get log tag ids: %w", err)
	}

	toAdd, toRemove := diffTags(current, desired)

	for _, tagID := range toRemove {
		if _, err := s.store.DeleteLogTag(ctx, logID, tagID); err != nil {
			return fmt.Errorf("remove log tag %s: %w", tagID, err)
		}
	}

	if err := s.store.AddLogTags(ctx, logID, toAdd); err != nil {
		return fmt.Errorf("add log tags: %w", err)
	}

	s.logger.Debug("reconciled log tags",
		"log_id", logID,
		"added", len(toAdd),
		"removed", len(toRemove),
	)
	return nil
}

// ReconcileInterests replaces a user's interest set with the desired set.
// Interests follow the same removals-then-batch-add flow as log tags but
// carry no size cap.
func (s *TagService) ReconcileInterests(ctx context.Context, userID string, desired []string) error {
	desired = dedupe(desired)

	if err := s.verifyTagsExist(ctx, desired); err != nil {
		return err
	}

	current, err := s.store.GetUserInterestTagIDs(ctx, userID)
	if err != nil {
		return fmt.Errorf("get interest tag ids: %w", err)
	}

	toAdd, toRemove := diffTags(current, desired)

	for _, tagID := range toRemove {
		if _, err := s.store.DeleteUserInterest(ctx, userID, tagID); err != nil {
			return fmt.Errorf("remove interest %s: %w", tagID, err)
		}
	}

	if err := s.store.AddUserInterests(ctx, userID, toAdd); err != nil {
		return fmt.Errorf("add interests: %w", err)
	}

	s.logger.Debug("reconciled user interests",
		"user_id", userID,
		"added", len(toAdd),
		"removed", len(toRemove),
	)
	return nil
}

// verifyTagsExist rejects desired sets referencing unknown tag IDs.
func (s *TagService) verifyTagsExist(ctx context.Context, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	tags, err := s.store.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return fmt.Errorf("get tags: %w", err)
	}
	if len(tags) != len(tagIDs) {
		return domainerrors.Validation("unknown tag selected")
	}
	return nil
}

// diffTags computes the set difference between current and desired tag IDs.
// Both result slices are sorted so reconciliation applies changes in a
// deterministic order.
func diffTags(current, desired []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	for _, id := range desired {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}

	sort.Strings(toAdd)
	sort.Strings(toRemove)
	return toAdd, toRemove
}

// dedupe removes duplicate IDs preserving first occurrence.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
