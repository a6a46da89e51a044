package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/service"
)

func (s *Server) registerReportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createReport",
		Method:      http.MethodPost,
		Path:        "/api/v1/reports",
		Summary:     "Report log",
		Description: "Files a report against a log and its owner",
		Tags:        []string{"Reports"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateReport)
}

// === DTOs ===

// ReportResponse contains report data in API responses.
type ReportResponse struct {
	ID             string    `json:"id" doc:"Report ID"`
	LogID          string    `json:"log_id" doc:"Reported log ID"`
	ReporterID     string    `json:"reporter_id" doc:"Reporting user ID"`
	ReportedUserID string    `json:"reported_user_id" doc:"Reported user ID"`
	Reason         string    `json:"reason" doc:"Report reason"`
	CreatedAt      time.Time `json:"created_at" doc:"Creation time"`
}

// ReportOutput wraps a report response for Huma.
type ReportOutput struct {
	Body ReportResponse
}

// CreateReportRequest is the request body for filing a report.
type CreateReportRequest struct {
	LogID  string `json:"log_id" validate:"required" doc:"Log to report"`
	Reason string `json:"reason" validate:"required,min=2,max=60" doc:"Report reason"`
}

// CreateReportInput wraps the create report request for Huma.
type CreateReportInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateReportRequest
}

// === Handlers ===

func (s *Server) handleCreateReport(ctx context.Context, input *CreateReportInput) (*ReportOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	r, err := s.services.Report.CreateReport(ctx, service.CreateReportRequest{
		LogID:      input.Body.LogID,
		Reason:     input.Body.Reason,
		ReporterID: userID,
	})
	if err != nil {
		return nil, err
	}

	return &ReportOutput{Body: mapReportResponse(r)}, nil
}

// === Helpers ===

func mapReportResponse(r *domain.Report) ReportResponse {
	return ReportResponse{
		ID:             r.ID,
		LogID:          r.LogID,
		ReporterID:     r.ReporterID,
		ReportedUserID: r.ReportedUserID,
		Reason:         r.Reason,
		CreatedAt:      r.CreatedAt,
	}
}
