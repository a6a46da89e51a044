package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/store"
	"github.com/lumbrapp/lumbr-server/internal/store/sqlite"
)

// newTestStore opens a throwaway SQLite store.
func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// noopIndexer satisfies SearchIndexer for tests that don't exercise search.
type noopIndexer struct{}

func (noopIndexer) IndexUser(context.Context, *domain.User) error       { return nil }
func (noopIndexer) IndexLog(context.Context, *domain.Log) error         { return nil }
func (noopIndexer) IndexPost(context.Context, *domain.Post) error       { return nil }
func (noopIndexer) IndexComment(context.Context, *domain.Comment) error { return nil }
func (noopIndexer) Delete(context.Context, ...string) error             { return nil }

func seedUser(t *testing.T, s store.Store, username string, role domain.Role) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	u := &domain.User{
		ID:           id.MustGenerate("user"),
		Email:        username + "@example.com",
		Username:     username,
		Name:         username,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

func seedLog(t *testing.T, s store.Store, userID, title string) *domain.Log {
	t.Helper()
	now := time.Now().UTC()
	l := &domain.Log{
		ID:        id.MustGenerate("log"),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateLog(context.Background(), l))
	return l
}

func seedTag(t *testing.T, s store.Store, slug string) *domain.Tag {
	t.Helper()
	tag := &domain.Tag{
		ID:        id.MustGenerate("tag"),
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.CreateTag(context.Background(), tag))
	return tag
}
