package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	domainerrors "github.com/lumbrapp/lumbr-server/internal/errors"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Description: "Returns the shared tag catalog ordered by slug",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLogTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs/{id}/tags",
		Summary:     "Get log tags",
		Description: "Returns the tags attached to a log",
		Tags:        []string{"Tags"},
	}, s.handleGetLogTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "setLogTags",
		Method:      http.MethodPut,
		Path:        "/api/v1/logs/{id}/tags",
		Summary:     "Set log tags",
		Description: "Replaces a log's tag set with the given tag IDs (at most 5)",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetLogTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getInterests",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me/interests",
		Summary:     "Get interests",
		Description: "Returns the tags the authenticated user follows",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetInterests)

	huma.Register(s.api, huma.Operation{
		OperationID: "setInterests",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/me/interests",
		Summary:     "Set interests",
		Description: "Replaces the authenticated user's interest tags with the given tag IDs",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetInterests)
}

// === DTOs ===

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Slug      string    `json:"slug" doc:"URL-safe slug"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// TagListResponse contains a list of tags.
type TagListResponse struct {
	Tags []TagResponse `json:"tags" doc:"List of tags"`
}

// TagListOutput wraps the tag list response for Huma.
type TagListOutput struct {
	Body TagListResponse
}

// LogTagsInput contains parameters for reading a log's tags.
type LogTagsInput struct {
	ID string `path:"id" doc:"Log ID"`
}

// SetTagsRequest is the request body for replacing a tag set.
type SetTagsRequest struct {
	TagIDs []string `json:"tag_ids" doc:"Desired tag IDs"`
}

// SetLogTagsInput wraps the set log tags request for Huma.
type SetLogTagsInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Log ID"`
	Body          SetTagsRequest
}

// GetInterestsInput contains parameters for reading interests.
type GetInterestsInput struct {
	Authorization string `header:"Authorization"`
}

// SetInterestsInput wraps the set interests request for Huma.
type SetInterestsInput struct {
	Authorization string `header:"Authorization"`
	Body          SetTagsRequest
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*TagListOutput, error) {
	tags, err := s.services.Tag.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return &TagListOutput{Body: TagListResponse{Tags: mapTagResponses(tags)}}, nil
}

func (s *Server) handleGetLogTags(ctx context.Context, input *LogTagsInput) (*TagListOutput, error) {
	lt, err := s.services.Log.GetLog(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagListOutput{Body: TagListResponse{Tags: mapTagResponses(lt.Tags)}}, nil
}

func (s *Server) handleSetLogTags(ctx context.Context, input *SetLogTagsInput) (*TagListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	lt, err := s.services.Log.GetLog(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if lt.Log.UserID != userID {
		return nil, domainerrors.Forbidden("only the log owner can edit its tags")
	}

	if err := s.services.Tag.ReconcileLogTags(ctx, input.ID, input.Body.TagIDs); err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.GetLogTags(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagListOutput{Body: TagListResponse{Tags: mapTagResponses(tags)}}, nil
}

func (s *Server) handleGetInterests(ctx context.Context, input *GetInterestsInput) (*TagListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.GetUserInterests(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &TagListOutput{Body: TagListResponse{Tags: mapTagResponses(tags)}}, nil
}

func (s *Server) handleSetInterests(ctx context.Context, input *SetInterestsInput) (*TagListOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Tag.ReconcileInterests(ctx, userID, input.Body.TagIDs); err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.GetUserInterests(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &TagListOutput{Body: TagListResponse{Tags: mapTagResponses(tags)}}, nil
}

// === Helpers ===

func mapTagResponses(tags []*domain.Tag) []TagResponse {
	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = TagResponse{
			ID:        t.ID,
			Slug:      t.Slug,
			CreatedAt: t.CreatedAt,
		}
	}
	return resp
}
