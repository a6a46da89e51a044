package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lumbrapp/lumbr-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search",
		Description: "Full-text search across users, logs, posts and comments",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

// SearchInput contains search query parameters.
type SearchInput struct {
	Query  string   `query:"q" required:"true" doc:"Search query"`
	Types  []string `query:"type" enum:"user,log,post,comment" doc:"Restrict to document types"`
	Tags   []string `query:"tag" doc:"Restrict to tag slugs"`
	Limit  int      `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum results"`
	Offset int      `query:"offset" default:"0" minimum:"0" doc:"Result offset"`
	Sort   string   `query:"sort" enum:"relevance,name,recent" default:"relevance" doc:"Sort order"`
}

// SearchHitResponse is a single search result.
type SearchHitResponse struct {
	ID       string  `json:"id" doc:"Document ID"`
	Type     string  `json:"type" doc:"Document type"`
	Name     string  `json:"name,omitempty" doc:"Document name or title"`
	Username string  `json:"username,omitempty" doc:"Owner username"`
	Score    float64 `json:"score" doc:"Relevance score"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Hits   []SearchHitResponse `json:"hits" doc:"Matching documents"`
	Total  uint64              `json:"total" doc:"Total number of matches"`
	TookMs int64               `json:"took_ms" doc:"Query duration in milliseconds"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.Types = input.Types
	params.Tags = input.Tags
	params.Limit = input.Limit
	params.Offset = input.Offset
	params.SortBy = input.Sort

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHitResponse, len(result.Hits))
	for i, h := range result.Hits {
		hits[i] = SearchHitResponse{
			ID:       h.ID,
			Type:     string(h.Type),
			Name:     h.Name,
			Username: h.Username,
			Score:    h.Score,
		}
	}

	return &SearchOutput{
		Body: SearchResponse{
			Hits:   hits,
			Total:  result.Total,
			TookMs: result.TookMs,
		},
	}, nil
}
