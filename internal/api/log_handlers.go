package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/service"
)

func (s *Server) registerLogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createLog",
		Method:      http.MethodPost,
		Path:        "/api/v1/logs",
		Summary:     "Create log",
		Description: "Creates a log owned by the authenticated user",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateLog)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLog",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs/{id}",
		Summary:     "Get log",
		Description: "Returns a log with its tags",
		Tags:        []string{"Logs"},
	}, s.handleGetLog)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateLog",
		Method:      http.MethodPatch,
		Path:        "/api/v1/logs/{id}",
		Summary:     "Update log",
		Description: "Applies partial updates to a log. Owner only.",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateLog)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteLog",
		Method:      http.MethodDelete,
		Path:        "/api/v1/logs/{id}",
		Summary:     "Delete log",
		Description: "Deletes a log and everything under it. Owner or admin only.",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteLog)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUserLogs",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/logs",
		Summary:     "List user logs",
		Description: "Returns all logs owned by a user, most recently updated first",
		Tags:        []string{"Logs"},
	}, s.handleListUserLogs)

	huma.Register(s.api, huma.Operation{
		OperationID: "explore",
		Method:      http.MethodGet,
		Path:        "/api/v1/explore",
		Summary:     "Explore feed",
		Description: "Returns logs matching the authenticated user's interest tags",
		Tags:        []string{"Logs"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleExplore)
}

// === DTOs ===

// LogResponse contains log data in API responses.
type LogResponse struct {
	ID          string        `json:"id" doc:"Log ID"`
	UserID      string        `json:"user_id" doc:"Owner user ID"`
	Title       string        `json:"title" doc:"Log title"`
	Description string        `json:"description,omitempty" doc:"Log description"`
	Tags        []TagResponse `json:"tags,omitempty" doc:"Attached tags"`
	CreatedAt   time.Time     `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time     `json:"updated_at" doc:"Last update time"`
}

// LogOutput wraps a log response for Huma.
type LogOutput struct {
	Body LogResponse
}

// LogListResponse contains a list of logs.
type LogListResponse struct {
	Logs []LogResponse `json:"logs" doc:"List of logs"`
}

// LogListOutput wraps the log list response for Huma.
type LogListOutput struct {
	Body LogListResponse
}

// CreateLogRequest is the request body for creating a log.
type CreateLogRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=20" doc:"Log title"`
	Description string   `json:"description,omitempty" validate:"max=60" doc:"Log description"`
	TagIDs      []string `json:"tag_ids,omitempty" doc:"Tags to attach (at most 5)"`
}

// CreateLogInput wraps the create log request for Huma.
type CreateLogInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateLogRequest
}

// GetLogInput contains parameters for getting a log.
type GetLogInput struct {
	ID string `path:"id" doc:"Log ID"`
}

// UpdateLogRequest is the request body for updating a log.
type UpdateLogRequest struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,min=2,max=20" doc:"Log title"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=60" doc:"Log description"`
	TagIDs      *[]string `json:"tag_ids,omitempty" doc:"Replacement tag set"`
}

// UpdateLogInput wraps the update log request for Huma.
type UpdateLogInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Log ID"`
	Body          UpdateLogRequest
}

// DeleteLogInput contains parameters for deleting a log.
type DeleteLogInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Log ID"`
}

// ListUserLogsInput contains parameters for listing a user's logs.
type ListUserLogsInput struct {
	ID string `path:"id" doc:"User ID"`
}

// ExploreInput contains parameters for the explore feed.
type ExploreInput struct {
	Authorization string `header:"Authorization"`
}

// === Handlers ===

func (s *Server) handleCreateLog(ctx context.Context, input *CreateLogInput) (*LogOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	lt, err := s.services.Log.CreateLog(ctx, service.CreateLogRequest{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		TagIDs:      input.Body.TagIDs,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}

	return &LogOutput{Body: mapLogWithTags(lt)}, nil
}

func (s *Server) handleGetLog(ctx context.Context, input *GetLogInput) (*LogOutput, error) {
	lt, err := s.services.Log.GetLog(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &LogOutput{Body: mapLogWithTags(lt)}, nil
}

func (s *Server) handleUpdateLog(ctx context.Context, input *UpdateLogInput) (*LogOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	lt, err := s.services.Log.UpdateLog(ctx, service.UpdateLogRequest{
		LogID:       input.ID,
		Title:       input.Body.Title,
		Description: input.Body.Description,
		TagIDs:      input.Body.TagIDs,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}

	return &LogOutput{Body: mapLogWithTags(lt)}, nil
}

func (s *Server) handleDeleteLog(ctx context.Context, input *DeleteLogInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	requester, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, huma.Error401Unauthorized("User not found")
	}

	if err := s.services.Log.DeleteLog(ctx, input.ID, userID, requester.IsAdmin()); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Log deleted"}}, nil
}

func (s *Server) handleListUserLogs(ctx context.Context, input *ListUserLogsInput) (*LogListOutput, error) {
	if _, err := s.services.User.GetUser(ctx, input.ID); err != nil {
		return nil, err
	}

	logs, err := s.services.Log.ListUserLogs(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &LogListOutput{Body: LogListResponse{Logs: mapLogResponses(logs)}}, nil
}

func (s *Server) handleExplore(ctx context.Context, input *ExploreInput) (*LogListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	logs, err := s.services.Log.Explore(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &LogListOutput{Body: LogListResponse{Logs: mapLogResponses(logs)}}, nil
}

// === Helpers ===

func mapLogResponse(l *domain.Log) LogResponse {
	return LogResponse{
		ID:          l.ID,
		UserID:      l.UserID,
		Title:       l.Title,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func mapLogWithTags(lt *service.LogWithTags) LogResponse {
	resp := mapLogResponse(lt.Log)
	resp.Tags = mapTagResponses(lt.Tags)
	return resp
}

func mapLogResponses(logs []*domain.Log) []LogResponse {
	resp := make([]LogResponse, len(logs))
	for i, l := range logs {
		resp[i] = mapLogResponse(l)
	}
	return resp
}
