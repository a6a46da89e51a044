package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "alice")

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("expected username alice, got %s", got.Username)
	}
	if got.Suspended {
		t.Error("new user should not be suspended")
	}

	byEmail, err := s.GetUserByEmail(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("expected %s, got %s", u.ID, byEmail.ID)
	}

	byName, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("get by username: %v", err)
	}
	if byName.ID != u.ID {
		t.Errorf("expected %s, got %s", u.ID, byName.ID)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "alice")

	dup := &domain.User{
		ID:           id.MustGenerate("user"),
		Email:        "alice@example.com",
		Username:     "alice2",
		Name:         "alice2",
		PasswordHash: "x",
		Role:         domain.RoleMember,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.CreateUser(ctx, dup); err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists for duplicate email, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "user_missing")
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSuspendUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	reporter := seedUser(t, s, "reporter")
	offender := seedUser(t, s, "offender")
	badLog := seedLog(t, s, offender.ID, "bad log")
	otherLog := seedLog(t, s, offender.ID, "other log")

	report := &domain.Report{
		ID:             id.MustGenerate("report"),
		LogID:          badLog.ID,
		ReporterID:     reporter.ID,
		ReportedUserID: offender.ID,
		Reason:         "spam",
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.CreateReport(ctx, report); err != nil {
		t.Fatalf("create report: %v", err)
	}

	until := time.Now().UTC().Add(7 * 24 * time.Hour)
	if err := s.SuspendUser(ctx, offender.ID, badLog.ID, "spam", until); err != nil {
		t.Fatalf("suspend user: %v", err)
	}

	// User row updated.
	got, err := s.GetUser(ctx, offender.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !got.Suspended {
		t.Error("user should be suspended")
	}
	if got.SuspendReason == nil || *got.SuspendReason != "spam" {
		t.Errorf("unexpected suspend reason: %v", got.SuspendReason)
	}
	if got.SuspendDate == nil || !got.SuspendDate.Equal(domain.MidnightUTC(until)) {
		t.Errorf("unexpected suspend date: %v", got.SuspendDate)
	}

	// All reports against the user removed.
	reports, err := s.ListReports(ctx)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected 0 reports after suspension, got %d", len(reports))
	}

	// Triggering log deleted, other log untouched.
	if _, err := s.GetLog(ctx, badLog.ID); err != store.ErrNotFound {
		t.Errorf("expected triggering log deleted, got %v", err)
	}
	if _, err := s.GetLog(ctx, otherLog.ID); err != nil {
		t.Errorf("other log should survive: %v", err)
	}
}

func TestSuspendUserNotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.SuspendUser(context.Background(), "user_missing", "", "spam", time.Now())
	if err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListUsersSuspendedThrough(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	expired := seedUser(t, s, "expired")
	future := seedUser(t, s, "future")
	seedUser(t, s, "active")

	now := time.Now().UTC()
	if err := s.SuspendUser(ctx, expired.ID, "", "spam", now.Add(-24*time.Hour)); err != nil {
		t.Fatalf("suspend expired: %v", err)
	}
	if err := s.SuspendUser(ctx, future.ID, "", "spam", now.Add(30*24*time.Hour)); err != nil {
		t.Fatalf("suspend future: %v", err)
	}

	due, err := s.ListUsersSuspendedThrough(ctx, now)
	if err != nil {
		t.Fatalf("list suspended: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("expected 1 user due, got %d", len(due))
	}
	if due[0].ID != expired.ID {
		t.Errorf("expected %s, got %s", expired.ID, due[0].ID)
	}

	// Suspension ending today is also due.
	due, err = s.ListUsersSuspendedThrough(ctx, now.Add(30*24*time.Hour))
	if err != nil {
		t.Fatalf("list suspended: %v", err)
	}
	if len(due) != 2 {
		t.Errorf("expected 2 users due, got %d", len(due))
	}
}

func TestClearSuspension(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "bob")
	if err := s.SuspendUser(ctx, u.ID, "", "spam", time.Now()); err != nil {
		t.Fatalf("suspend: %v", err)
	}

	if err := s.ClearSuspension(ctx, u.ID); err != nil {
		t.Fatalf("clear suspension: %v", err)
	}

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Suspended || got.SuspendReason != nil || got.SuspendDate != nil {
		t.Errorf("suspension fields not cleared: %+v", got)
	}

	// Clearing again is not an error.
	if err := s.ClearSuspension(ctx, u.ID); err != nil {
		t.Errorf("second clear should be idempotent: %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "carol")
	l := seedLog(t, s, u.ID, "carols log")

	if err := s.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := s.GetLog(ctx, l.ID); err != store.ErrNotFound {
		t.Errorf("expected log removed by cascade, got %v", err)
	}
}
