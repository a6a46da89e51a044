package service

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
)

func TestDiffTags(t *testing.T) {
	tests := []struct {
		name       string
		current    []string
		desired    []string
		wantAdd    []string
		wantRemove []string
	}{
		{
			name:       "overlap keeps shared members",
			current:    []string{"a", "b", "c"},
			desired:    []string{"b", "c", "d"},
			wantAdd:    []string{"d"},
			wantRemove: []string{"a"},
		},
		{
			name:       "identical sets are a no-op",
			current:    []string{"a", "b"},
			desired:    []string{"b", "a"},
			wantAdd:    nil,
			wantRemove: nil,
		},
		{
			name:       "empty desired removes everything",
			current:    []string{"b", "a"},
			desired:    nil,
			wantAdd:    nil,
			wantRemove: []string{"a", "b"},
		},
		{
			name:       "empty current adds everything sorted",
			current:    nil,
			desired:    []string{"c", "a", "b"},
			wantAdd:    []string{"a", "b", "c"},
			wantRemove: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAdd, gotRemove := diffTags(tt.current, tt.desired)
			assert.Equal(t, tt.wantAdd, gotAdd)
			assert.Equal(t, tt.wantRemove, gotRemove)
		})
	}
}

func TestReconcileLogTags(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	u := seedUser(t, s, "alice", "member")
	l := seedLog(t, s, u.ID, "my log")
	tagA := seedTag(t, s, "art")
	tagB := seedTag(t, s, "books")
	tagC := seedTag(t, s, "cooking")
	tagD := seedTag(t, s, "devops")

	// Initial attach.
	require.NoError(t, svc.ReconcileLogTags(ctx, l.ID, []string{tagA.ID, tagB.ID, tagC.ID}))
	assertLogTags(t, s, l.ID, tagA.ID, tagB.ID, tagC.ID)

	// Transition {A,B,C} -> {B,C,D}: one removal, one addition, B and C
	// never detached.
	require.NoError(t, svc.ReconcileLogTags(ctx, l.ID, []string{tagB.ID, tagC.ID, tagD.ID}))
	assertLogTags(t, s, l.ID, tagB.ID, tagC.ID, tagD.ID)
}

func TestReconcileLogTagsIdempotent(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	u := seedUser(t, s, "alice", "member")
	l := seedLog(t, s, u.ID, "my log")
	tagA := seedTag(t, s, "art")
	tagB := seedTag(t, s, "books")

	desired := []string{tagA.ID, tagB.ID}
	require.NoError(t, svc.ReconcileLogTags(ctx, l.ID, desired))
	require.NoError(t, svc.ReconcileLogTags(ctx, l.ID, desired))
	assertLogTags(t, s, l.ID, tagA.ID, tagB.ID)
}

func TestReconcileLogTagsCapRejected(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	u := seedUser(t, s, "alice", "member")
	l := seedLog(t, s, u.ID, "my log")

	existing := seedTag(t, s, "existing")
	require.NoError(t, svc.ReconcileLogTags(ctx, l.ID, []string{existing.ID}))

	oversized := make([]string, 0, 6)
	for _, slug := range []string{"a1", "b2", "c3", "d4", "e5", "f6"} {
		oversized = append(oversized, seedTag(t, s, slug).ID)
	}

	err := svc.ReconcileLogTags(ctx, l.ID, oversized)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	// The oversized request must not touch existing associations.
	assertLogTags(t, s, l.ID, existing.ID)
}

func TestReconcileLogTagsUnknownTag(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	u := seedUser(t, s, "alice", "member")
	l := seedLog(t, s, u.ID, "my log")

	err := svc.ReconcileLogTags(ctx, l.ID, []string{"tag_missing"})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestReconcileLogTagsDuplicatesCollapsed(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	u := seedUser(t, s, "alice", "member")
	l := seedLog(t, s, u.ID, "my log")
	tag := seedTag(t, s, "art")

	require.NoError(t, svc.ReconcileLogTags(ctx, l.ID, []string{tag.ID, tag.ID, tag.ID}))
	assertLogTags(t, s, l.ID, tag.ID)
}

func TestReconcileInterestsUncapped(t *testing.T) {
	s := newTestStore(t)
	svc := NewTagService(s, testLogger())
	ctx := context.Background()

	u := seedUser(t, s, "alice", "member")

	many := make([]string, 0, 8)
	for _, slug := range []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8"} {
		many = append(many, seedTag(t, s, slug).ID)
	}

	// Interests carry no size cap.
	require.NoError(t, svc.ReconcileInterests(ctx, u.ID, many))

	got, err := s.GetUserInterestTagIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, got, 8)

	// Shrink to two.
	require.NoError(t, svc.ReconcileInterests(ctx, u.ID, many[:2]))
	got, err = s.GetUserInterestTagIDs(ctx, u.ID)
	require.NoError(t, err)
	sort.Strings(got)
	want := append([]string(nil), many[:2]...)
	sort.Strings(want)
	assert.Equal(t, want, got)
}

// assertLogTags verifies a log's tag set matches exactly, order-insensitive.
func assertLogTags(t *testing.T, s interface {
	GetLogTagIDs(ctx context.Context, logID string) ([]string, error)
}, logID string, want ...string) {
	t.Helper()
	got, err := s.GetLogTagIDs(context.Background(), logID)
	require.NoError(t, err)
	sort.Strings(got)
	wantSorted := append([]string(nil), want...)
	sort.Strings(wantSorted)
	assert.Equal(t, wantSorted, got)
}
