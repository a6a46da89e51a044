package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
)

func TestCreateReport(t *testing.T) {
	s := newTestStore(t)
	svc := NewReportService(s, testLogger())
	ctx := context.Background()

	offender := seedUser(t, s, "offender", "member")
	reporter := seedUser(t, s, "reporter", "member")
	l := seedLog(t, s, offender.ID, "bad log")

	r, err := svc.CreateReport(ctx, CreateReportRequest{
		LogID:      l.ID,
		Reason:     "spam content",
		ReporterID: reporter.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, l.ID, r.LogID)
	assert.Equal(t, reporter.ID, r.ReporterID)
	assert.Equal(t, offender.ID, r.ReportedUserID)

	reports, err := s.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
}

func TestCreateReportDuplicate(t *testing.T) {
	s := newTestStore(t)
	svc := NewReportService(s, testLogger())
	ctx := context.Background()

	offender := seedUser(t, s, "offender", "member")
	reporter := seedUser(t, s, "reporter", "member")
	second := seedUser(t, s, "second", "member")
	l := seedLog(t, s, offender.ID, "bad log")

	req := CreateReportRequest{LogID: l.ID, Reason: "spam content", ReporterID: reporter.ID}
	_, err := svc.CreateReport(ctx, req)
	require.NoError(t, err)

	// Same reporter, same log.
	_, err = svc.CreateReport(ctx, req)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrConflict))

	// A different reporter can still report the same log.
	_, err = svc.CreateReport(ctx, CreateReportRequest{
		LogID:      l.ID,
		Reason:     "also spam",
		ReporterID: second.ID,
	})
	require.NoError(t, err)
}

func TestCreateReportOwnLog(t *testing.T) {
	s := newTestStore(t)
	svc := NewReportService(s, testLogger())

	owner := seedUser(t, s, "owner", "member")
	l := seedLog(t, s, owner.ID, "my log")

	_, err := svc.CreateReport(context.Background(), CreateReportRequest{
		LogID:      l.ID,
		Reason:     "testing",
		ReporterID: owner.ID,
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestCreateReportLogNotFound(t *testing.T) {
	s := newTestStore(t)
	svc := NewReportService(s, testLogger())

	reporter := seedUser(t, s, "reporter", "member")

	_, err := svc.CreateReport(context.Background(), CreateReportRequest{
		LogID:      "log_missing",
		Reason:     "spam content",
		ReporterID: reporter.ID,
	})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestCreateReportInvalidReason(t *testing.T) {
	s := newTestStore(t)
	svc := NewReportService(s, testLogger())

	offender := seedUser(t, s, "offender", "member")
	reporter := seedUser(t, s, "reporter", "member")
	l := seedLog(t, s, offender.ID, "bad log")

	for _, reason := range []string{"", "x", strings.Repeat("x", 61)} {
		_, err := svc.CreateReport(context.Background(), CreateReportRequest{
			LogID:      l.ID,
			Reason:     reason,
			ReporterID: reporter.ID,
		})
		require.Error(t, err)
		assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
	}
}
