package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

func seedReport(t *testing.T, s store.Store, logID, reporterID, reportedUserID string) *domain.Report {
	t.Helper()
	r := &domain.Report{
		ID:             id.MustGenerate("report"),
		LogID:          logID,
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Reason:         "spam",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, s.CreateReport(context.Background(), r))
	return r
}

func seedSession(t *testing.T, s store.Store, userID string) *domain.Session {
	t.Helper()
	now := time.Now().UTC()
	sess := &domain.Session{
		ID:         "session_" + id.MustGenerate("s"),
		UserID:     userID,
		TokenHash:  id.MustGenerate("hash"),
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Hour),
		LastUsedAt: now,
	}
	require.NoError(t, s.CreateSession(context.Background(), sess))
	return sess
}

func TestSuspendUser(t *testing.T) {
	s := newTestStore(t)
	svc := NewModerationService(s, noopIndexer{}, testLogger())
	ctx := context.Background()

	offender := seedUser(t, s, "offender", "member")
	reporter := seedUser(t, s, "reporter", "member")
	bad := seedLog(t, s, offender.ID, "bad log")
	other := seedLog(t, s, offender.ID, "other log")
	seedReport(t, s, bad.ID, reporter.ID, offender.ID)
	sess := seedSession(t, s, offender.ID)

	u, err := svc.SuspendUser(ctx, SuspendRequest{
		UserID: offender.ID,
		LogID:  bad.ID,
		Reason: "spam",
		Days:   7,
	})
	require.NoError(t, err)
	require.True(t, u.Suspended)
	require.NotNil(t, u.SuspendDate)

	want := domain.MidnightUTC(time.Now().UTC().AddDate(0, 0, 7))
	assert.True(t, u.SuspendDate.Equal(want), "suspend date %v, want %v", u.SuspendDate, want)

	// The offending log is gone, the other one survives.
	_, err = s.GetLog(ctx, bad.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetLog(ctx, other.ID)
	assert.NoError(t, err)

	// All reports against the user are cleared.
	reports, err := s.ListReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, reports)

	// Sessions are revoked.
	_, err = s.GetSession(ctx, sess.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSuspendUserAdminTarget(t *testing.T) {
	s := newTestStore(t)
	svc := NewModerationService(s, noopIndexer{}, testLogger())

	admin := seedUser(t, s, "admin", "admin")
	l := seedLog(t, s, admin.ID, "admin log")

	_, err := svc.SuspendUser(context.Background(), SuspendRequest{
		UserID: admin.ID,
		LogID:  l.ID,
		Days:   1,
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrForbidden))
}

func TestSuspendUserWrongLogOwner(t *testing.T) {
	s := newTestStore(t)
	svc := NewModerationService(s, noopIndexer{}, testLogger())

	offender := seedUser(t, s, "offender", "member")
	bystander := seedUser(t, s, "bystander", "member")
	l := seedLog(t, s, bystander.ID, "innocent log")

	_, err := svc.SuspendUser(context.Background(), SuspendRequest{
		UserID: offender.ID,
		LogID:  l.ID,
		Days:   1,
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	// Nothing was mutated.
	u, err := s.GetUser(context.Background(), offender.ID)
	require.NoError(t, err)
	assert.False(t, u.Suspended)
	_, err = s.GetLog(context.Background(), l.ID)
	assert.NoError(t, err)
}

func TestSuspendUserInvalidRequest(t *testing.T) {
	s := newTestStore(t)
	svc := NewModerationService(s, noopIndexer{}, testLogger())

	offender := seedUser(t, s, "offender", "member")
	l := seedLog(t, s, offender.ID, "bad log")

	tests := []struct {
		name string
		req  SuspendRequest
	}{
		{"reason too long", SuspendRequest{UserID: offender.ID, LogID: l.ID, Reason: strings.Repeat("x", 61), Days: 1}},
		{"zero days", SuspendRequest{UserID: offender.ID, LogID: l.ID, Days: 0}},
		{"too many days", SuspendRequest{UserID: offender.ID, LogID: l.ID, Days: 366}},
		{"missing log", SuspendRequest{UserID: offender.ID, Days: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SuspendUser(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
		})
	}

	u, err := s.GetUser(context.Background(), offender.ID)
	require.NoError(t, err)
	assert.False(t, u.Suspended)
}

func TestSweepExpiredSuspensions(t *testing.T) {
	s := newTestStore(t)
	svc := NewModerationService(s, noopIndexer{}, testLogger())
	ctx := context.Background()

	expired := seedUser(t, s, "expired", "member")
	current := seedUser(t, s, "current", "member")

	require.NoError(t, s.SuspendUser(ctx, expired.ID, "", "spam", time.Now().UTC().AddDate(0, 0, -1)))
	require.NoError(t, s.SuspendUser(ctx, current.ID, "", "spam", time.Now().UTC().AddDate(0, 0, 3)))

	cleared, err := svc.SweepExpiredSuspensions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)

	u, err := s.GetUser(ctx, expired.ID)
	require.NoError(t, err)
	assert.False(t, u.Suspended)
	assert.Nil(t, u.SuspendDate)

	u, err = s.GetUser(ctx, current.ID)
	require.NoError(t, err)
	assert.True(t, u.Suspended)

	// Second pass finds nothing.
	cleared, err = svc.SweepExpiredSuspensions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, cleared)
}

func TestSweepIncludesSuspensionsEndingToday(t *testing.T) {
	s := newTestStore(t)
	svc := NewModerationService(s, noopIndexer{}, testLogger())
	ctx := context.Background()

	u := seedUser(t, s, "today", "member")
	require.NoError(t, s.SuspendUser(ctx, u.ID, "", "spam", time.Now().UTC()))

	cleared, err := svc.SweepExpiredSuspensions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cleared)
}

func TestIgnoreReport(t *testing.T) {
	s := newTestStore(t)
	svc := NewModerationService(s, noopIndexer{}, testLogger())
	ctx := context.Background()

	offender := seedUser(t, s, "offender", "member")
	reporter := seedUser(t, s, "reporter", "member")
	l := seedLog(t, s, offender.ID, "bad log")
	r := seedReport(t, s, l.ID, reporter.ID, offender.ID)

	require.NoError(t, svc.IgnoreReport(ctx, r.ID))

	// Only the report is gone.
	reports, err := svc.ListReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, reports)
	_, err = s.GetLog(ctx, l.ID)
	assert.NoError(t, err)
	u, err := s.GetUser(ctx, offender.ID)
	require.NoError(t, err)
	assert.False(t, u.Suspended)

	err = svc.IgnoreReport(ctx, r.ID)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
