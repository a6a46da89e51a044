package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/search"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// SearchService maintains the search index and executes queries.
// It implements SearchIndexer for the other services.
type SearchService struct {
	store  store.Store
	index  *search.Index
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(store store.Store, index *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  store,
		index:  index,
		logger: logger,
	}
}

// Search executes a query against the index.
func (s *SearchService) Search(ctx context.Context, params search.Params) (*search.Result, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	return s.index.Search(ctx, params)
}

// DocumentCount returns the number of documents in the index.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// IndexUser adds or updates a user in the index.
func (s *SearchService) IndexUser(_ context.Context, u *domain.User) error {
	return s.index.IndexDocument(search.UserToDocument(u))
}

// IndexLog adds or updates a log in the index, denormalizing the owner's
// username and tag slugs.
func (s *SearchService) IndexLog(ctx context.Context, l *domain.Log) error {
	username := s.ownerUsername(ctx, l.UserID)

	tagIDs, err := s.store.GetLogTagIDs(ctx, l.ID)
	if err != nil {
		return fmt.Errorf("get log tag ids: %w", err)
	}
	tags, err := s.store.GetTagsByIDs(ctx, tagIDs)
	if err != nil {
		return fmt.Errorf("get tags: %w", err)
	}
	slugs := make([]string, 0, len(tags))
	for _, t := range tags {
		slugs = append(slugs, t.Slug)
	}

	return s.index.IndexDocument(search.LogToDocument(l, username, slugs))
}

// IndexPost adds or updates a post in the index.
func (s *SearchService) IndexPost(ctx context.Context, p *domain.Post) error {
	return s.index.IndexDocument(search.PostToDocument(p, s.ownerUsername(ctx, p.UserID)))
}

// IndexComment adds or updates a comment in the index.
func (s *SearchService) IndexComment(ctx context.Context, c *domain.Comment) error {
	return s.index.IndexDocument(search.CommentToDocument(c, s.ownerUsername(ctx, c.UserID)))
}

// Delete removes documents from the index.
func (s *SearchService) Delete(_ context.Context, ids ...string) error {
	return s.index.DeleteDocuments(ids)
}

// Reindex rebuilds the entire index from the store.
func (s *SearchService) Reindex(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	var docs []*search.Document
	for _, u := range users {
		docs = append(docs, search.UserToDocument(u))

		logs, err := s.store.ListLogsByUser(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("list logs for %s: %w", u.ID, err)
		}
		for _, l := range logs {
			tagIDs, err := s.store.GetLogTagIDs(ctx, l.ID)
			if err != nil {
				return fmt.Errorf("get log tag ids: %w", err)
			}
			tags, err := s.store.GetTagsByIDs(ctx, tagIDs)
			if err != nil {
				return fmt.Errorf("get tags: %w", err)
			}
			slugs := make([]string, 0, len(tags))
			for _, t := range tags {
				slugs = append(slugs, t.Slug)
			}
			docs = append(docs, search.LogToDocument(l, u.Username, slugs))

			comments, err := s.store.ListCommentsByLog(ctx, l.ID)
			if err != nil {
				return fmt.Errorf("list comments: %w", err)
			}
			for _, c := range comments {
				docs = append(docs, search.CommentToDocument(c, s.ownerUsername(ctx, c.UserID)))
			}
		}

		posts, err := s.store.ListPostsByUser(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("list posts for %s: %w", u.ID, err)
		}
		for _, p := range posts {
			docs = append(docs, search.PostToDocument(p, u.Username))

			comments, err := s.store.ListCommentsByPost(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("list comments: %w", err)
			}
			for _, c := range comments {
				docs = append(docs, search.CommentToDocument(c, s.ownerUsername(ctx, c.UserID)))
			}
		}
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}

	s.logger.Info("reindexed search documents", "count", len(docs))
	return nil
}

// ownerUsername resolves a user ID to a username for denormalization,
// falling back to empty on error.
func (s *SearchService) ownerUsername(ctx context.Context, userID string) string {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return ""
	}
	return u.Username
}
