package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/service"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "adminListUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/users",
		Summary:     "List users",
		Description: "Returns all users. Admin only.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListReports",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/reports",
		Summary:     "List reports",
		Description: "Returns all open reports, oldest first. Admin only.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminListReports)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminIgnoreReport",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/reports/{id}",
		Summary:     "Ignore report",
		Description: "Dismisses a report without acting on it. Admin only.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminIgnoreReport)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSuspendUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/suspensions",
		Summary:     "Suspend user",
		Description: "Suspends a user over a reported log. Admin only.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminSuspendUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminSweepSuspensions",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/suspensions/sweep",
		Summary:     "Sweep expired suspensions",
		Description: "Reactivates users whose suspension period has elapsed. Admin only.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminSweepSuspensions)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminReindexSearch",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/search/reindex",
		Summary:     "Rebuild search index",
		Description: "Rebuilds the search index from the store. Admin only.",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminReindexSearch)
}

// === DTOs ===

// AdminInput contains parameters for admin operations without a body.
type AdminInput struct {
	Authorization string `header:"Authorization"`
}

// AdminIDInput contains parameters for admin operations on a resource.
type AdminIDInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Resource ID"`
}

// ReportListResponse contains a list of reports.
type ReportListResponse struct {
	Reports []ReportResponse `json:"reports" doc:"List of reports"`
}

// ReportListOutput wraps the report list response for Huma.
type ReportListOutput struct {
	Body ReportListResponse
}

// SuspendUserRequest is the request body for suspending a user.
type SuspendUserRequest struct {
	UserID string `json:"user_id" validate:"required" doc:"User to suspend"`
	LogID  string `json:"log_id" validate:"required" doc:"Offending log, removed on suspension"`
	Reason string `json:"reason,omitempty" validate:"max=60" doc:"Suspension reason"`
	Days   int    `json:"days" validate:"required,gte=1,lte=365" doc:"Suspension length in days"`
}

// SuspendUserInput wraps the suspend user request for Huma.
type SuspendUserInput struct {
	Authorization string `header:"Authorization"`
	Body          SuspendUserRequest
}

// SweepResponse contains the result of a suspension sweep.
type SweepResponse struct {
	Cleared int `json:"cleared" doc:"Number of users reactivated"`
}

// SweepOutput wraps the sweep response for Huma.
type SweepOutput struct {
	Body SweepResponse
}

// === Handlers ===

func (s *Server) handleAdminListUsers(ctx context.Context, input *AdminInput) (*UserListOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	users, err := s.services.User.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapUserResponse(u, true)
	}
	return &UserListOutput{Body: UserListResponse{Users: resp}}, nil
}

func (s *Server) handleAdminListReports(ctx context.Context, input *AdminInput) (*ReportListOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	reports, err := s.services.Moderation.ListReports(ctx)
	if err != nil {
		return nil, err
	}

	return &ReportListOutput{Body: ReportListResponse{Reports: mapReportResponses(reports)}}, nil
}

func (s *Server) handleAdminIgnoreReport(ctx context.Context, input *AdminIDInput) (*MessageOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Moderation.IgnoreReport(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Report ignored"}}, nil
}

func (s *Server) handleAdminSuspendUser(ctx context.Context, input *SuspendUserInput) (*UserOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	u, err := s.services.Moderation.SuspendUser(ctx, service.SuspendRequest{
		UserID: input.Body.UserID,
		LogID:  input.Body.LogID,
		Reason: input.Body.Reason,
		Days:   input.Body.Days,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(u, true)}, nil
}

func (s *Server) handleAdminSweepSuspensions(ctx context.Context, input *AdminInput) (*SweepOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	cleared, err := s.services.Moderation.SweepExpiredSuspensions(ctx)
	if err != nil {
		return nil, err
	}

	return &SweepOutput{Body: SweepResponse{Cleared: cleared}}, nil
}

func (s *Server) handleAdminReindexSearch(ctx context.Context, input *AdminInput) (*MessageOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Search.Reindex(ctx); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Search index rebuilt"}}, nil
}

// === Helpers ===

func mapReportResponses(reports []*domain.Report) []ReportResponse {
	resp := make([]ReportResponse, len(reports))
	for i, r := range reports {
		resp[i] = mapReportResponse(r)
	}
	return resp
}
