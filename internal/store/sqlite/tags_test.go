package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

func TestCreateTagDuplicateSlug(t *testing.T) {
	s := newTestStore(t)

	seedTag(t, s, "golang")

	dup := &domain.Tag{
		ID:        id.MustGenerate("tag"),
		Slug:      "golang",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.CreateTag(context.Background(), dup); err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestLogTagAssociations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "alice")
	l := seedLog(t, s, u.ID, "my log")
	t1 := seedTag(t, s, "golang")
	t2 := seedTag(t, s, "devops")

	if err := s.AddLogTags(ctx, l.ID, []string{t1.ID, t2.ID}); err != nil {
		t.Fatalf("add log tags: %v", err)
	}

	ids, err := s.GetLogTagIDs(ctx, l.ID)
	if err != nil {
		t.Fatalf("get log tag ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(ids))
	}

	// Adding an existing association fails the whole batch.
	if err := s.AddLogTags(ctx, l.ID, []string{t1.ID}); err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	// Delete reports whether a row was removed.
	removed, err := s.DeleteLogTag(ctx, l.ID, t1.ID)
	if err != nil {
		t.Fatalf("delete log tag: %v", err)
	}
	if !removed {
		t.Error("expected removal of existing association")
	}
	removed, err = s.DeleteLogTag(ctx, l.ID, t1.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if removed {
		t.Error("expected second delete to be a no-op")
	}
}

func TestAddLogTagsBatchAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "alice")
	l := seedLog(t, s, u.ID, "my log")
	t1 := seedTag(t, s, "golang")
	t2 := seedTag(t, s, "devops")

	if err := s.AddLogTags(ctx, l.ID, []string{t1.ID}); err != nil {
		t.Fatalf("add first tag: %v", err)
	}

	// Batch containing a duplicate rolls back entirely.
	if err := s.AddLogTags(ctx, l.ID, []string{t2.ID, t1.ID}); err != store.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	ids, err := s.GetLogTagIDs(ctx, l.ID)
	if err != nil {
		t.Fatalf("get log tag ids: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("expected rollback to leave 1 tag, got %d", len(ids))
	}
}

func TestUserInterests(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "alice")
	t1 := seedTag(t, s, "golang")
	t2 := seedTag(t, s, "devops")

	if err := s.AddUserInterests(ctx, u.ID, []string{t1.ID, t2.ID}); err != nil {
		t.Fatalf("add interests: %v", err)
	}

	ids, err := s.GetUserInterestTagIDs(ctx, u.ID)
	if err != nil {
		t.Fatalf("get interests: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 interests, got %d", len(ids))
	}

	removed, err := s.DeleteUserInterest(ctx, u.ID, t1.ID)
	if err != nil {
		t.Fatalf("delete interest: %v", err)
	}
	if !removed {
		t.Error("expected removal of existing interest")
	}
	removed, err = s.DeleteUserInterest(ctx, u.ID, t1.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if removed {
		t.Error("expected second delete to be a no-op")
	}
}

func TestLogDeletionCascadesTags(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "alice")
	l := seedLog(t, s, u.ID, "my log")
	tag := seedTag(t, s, "golang")

	if err := s.AddLogTags(ctx, l.ID, []string{tag.ID}); err != nil {
		t.Fatalf("add log tags: %v", err)
	}
	if err := s.DeleteLog(ctx, l.ID); err != nil {
		t.Fatalf("delete log: %v", err)
	}

	ids, err := s.GetLogTagIDs(ctx, l.ID)
	if err != nil {
		t.Fatalf("get log tag ids: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected associations removed by cascade, got %d", len(ids))
	}

	// The tag itself survives.
	if _, err := s.GetTagByID(ctx, tag.ID); err != nil {
		t.Errorf("tag should survive log deletion: %v", err)
	}
}
