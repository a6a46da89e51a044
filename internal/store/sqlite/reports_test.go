package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

func seedReport(t *testing.T, s *Store, logID, reporterID, reportedUserID string) *domain.Report {
	t.Helper()
	r := &domain.Report{
		ID:             id.MustGenerate("report"),
		LogID:          logID,
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Reason:         "inappropriate content",
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.CreateReport(context.Background(), r); err != nil {
		t.Fatalf("seed report: %v", err)
	}
	return r
}

func TestCreateReportDuplicateTriple(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	reporter := seedUser(t, s, "reporter")
	offender := seedUser(t, s, "offender")
	l := seedLog(t, s, offender.ID, "bad log")

	seedReport(t, s, l.ID, reporter.ID, offender.ID)

	dup := &domain.Report{
		ID:             id.MustGenerate("report"),
		LogID:          l.ID,
		ReporterID:     reporter.ID,
		ReportedUserID: offender.ID,
		Reason:         "still bad",
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.CreateReport(ctx, dup); err != store.ErrAlreadyExists {
		t.Errorf("expected ErrAlreadyExists for duplicate triple, got %v", err)
	}

	// A different reporter may report the same log.
	other := seedUser(t, s, "other")
	seedReport(t, s, l.ID, other.ID, offender.ID)

	reports, err := s.ListReports(ctx)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(reports) != 2 {
		t.Errorf("expected 2 reports, got %d", len(reports))
	}
}

func TestDeleteReport(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	reporter := seedUser(t, s, "reporter")
	offender := seedUser(t, s, "offender")
	l := seedLog(t, s, offender.ID, "bad log")
	r := seedReport(t, s, l.ID, reporter.ID, offender.ID)

	if err := s.DeleteReport(ctx, r.ID); err != nil {
		t.Fatalf("delete report: %v", err)
	}
	if err := s.DeleteReport(ctx, r.ID); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestReportCascadesWithLog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	reporter := seedUser(t, s, "reporter")
	offender := seedUser(t, s, "offender")
	l := seedLog(t, s, offender.ID, "bad log")
	seedReport(t, s, l.ID, reporter.ID, offender.ID)

	if err := s.DeleteLog(ctx, l.ID); err != nil {
		t.Fatalf("delete log: %v", err)
	}

	reports, err := s.ListReports(ctx)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected reports removed by cascade, got %d", len(reports))
	}
}
