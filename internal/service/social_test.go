package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

func seedPost(t *testing.T, s store.Store, logID, userID, title string) *domain.Post {
	t.Helper()
	now := time.Now().UTC()
	p := &domain.Post{
		ID:        id.MustGenerate("post"),
		LogID:     logID,
		UserID:    userID,
		Title:     title,
		Content:   "hello",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreatePost(context.Background(), p))
	return p
}

func TestLikeAndUnlikeLog(t *testing.T) {
	s := newTestStore(t)
	svc := NewSocialService(s, testLogger())
	ctx := context.Background()

	owner := seedUser(t, s, "alice", "member")
	fan := seedUser(t, s, "bob", "member")
	l := seedLog(t, s, owner.ID, "my log")

	require.NoError(t, svc.LikeLog(ctx, l.ID, fan.ID))

	count, err := svc.CountLogLikes(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Liking twice is a conflict.
	err = svc.LikeLog(ctx, l.ID, fan.ID)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	require.NoError(t, svc.UnlikeLog(ctx, l.ID, fan.ID))

	count, err = svc.CountLogLikes(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUnlikeLogNotLiked(t *testing.T) {
	s := newTestStore(t)
	svc := NewSocialService(s, testLogger())
	ctx := context.Background()

	owner := seedUser(t, s, "alice", "member")
	fan := seedUser(t, s, "bob", "member")
	l := seedLog(t, s, owner.ID, "my log")

	err := svc.UnlikeLog(ctx, l.ID, fan.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// A second unlike after a real like-unlike cycle fails the same way.
	require.NoError(t, svc.LikeLog(ctx, l.ID, fan.ID))
	require.NoError(t, svc.UnlikeLog(ctx, l.ID, fan.ID))
	err = svc.UnlikeLog(ctx, l.ID, fan.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUnlikePostNotLiked(t *testing.T) {
	s := newTestStore(t)
	svc := NewSocialService(s, testLogger())
	ctx := context.Background()

	owner := seedUser(t, s, "alice", "member")
	fan := seedUser(t, s, "bob", "member")
	l := seedLog(t, s, owner.ID, "my log")
	p := seedPost(t, s, l.ID, owner.ID, "first post")

	err := svc.UnlikePost(ctx, p.ID, fan.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.NoError(t, svc.LikePost(ctx, p.ID, fan.ID))
	require.NoError(t, svc.UnlikePost(ctx, p.ID, fan.ID))

	count, err := svc.CountPostLikes(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestFollowAndUnfollow(t *testing.T) {
	s := newTestStore(t)
	svc := NewSocialService(s, testLogger())
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "member")
	bob := seedUser(t, s, "bob", "member")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	followers, err := svc.ListFollowers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, alice.ID, followers[0].ID)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	followers, err = svc.ListFollowers(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestUnfollowNotFollowing(t *testing.T) {
	s := newTestStore(t)
	svc := NewSocialService(s, testLogger())
	ctx := context.Background()

	alice := seedUser(t, s, "alice", "member")
	bob := seedUser(t, s, "bob", "member")

	err := svc.Unfollow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
