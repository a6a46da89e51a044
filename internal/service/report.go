package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
	"github.com/lumbrapp/lumbr-server/internal/id"
	"github.com/lumbrapp/lumbr-server/internal/store"
)

// ReportService handles user-facing report creation.
type ReportService struct {
	store  store.Store
	logger *slog.Logger
}

// NewReportService creates a new report service.
func NewReportService(store store.Store, logger *slog.Logger) *ReportService {
	return &ReportService{
		store:  store,
		logger: logger,
	}
}

// CreateReportRequest contains the data for reporting a log.
type CreateReportRequest struct {
	LogID      string `json:"log_id" validate:"required"`
	Reason     string `json:"reason" validate:"required,min=2,max=60"`
	ReporterID string `json:"-"` // From the authenticated session
}

// CreateReport files a report against a log and its owner. A reporter can
// report a given log and user pair only once; repeats are rejected with a
// conflict.
func (s *ReportService) CreateReport(ctx context.Context, req CreateReportRequest) (*domain.Report, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	l, err := s.store.GetLog(ctx, req.LogID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("log not found")
		}
		return nil, fmt.Errorf("get log: %w", err)
	}

	if l.UserID == req.ReporterID {
		return nil, domainerrors.Validation("cannot report your own log")
	}

	reportID, err := id.Generate("report")
	if err != nil {
		return nil, fmt.Errorf("generate report ID: %w", err)
	}

	report := &domain.Report{
		ID:             reportID,
		LogID:          req.LogID,
		ReporterID:     req.ReporterID,
		ReportedUserID: l.UserID,
		Reason:         req.Reason,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.CreateReport(ctx, report); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("you already reported this log")
		}
		return nil, fmt.Errorf("create report: %w", err)
	}

	s.logger.Info("created report",
		"report_id", report.ID,
		"log_id", report.LogID,
		"reported_user_id", report.ReportedUserID,
	)
	return report, nil
}
