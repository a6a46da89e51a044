package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/service"
)

func (s *Server) registerCommentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createComment",
		Method:      http.MethodPost,
		Path:        "/api/v1/comments",
		Summary:     "Create comment",
		Description: "Creates a comment on a log or a post",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteComment",
		Method:      http.MethodDelete,
		Path:        "/api/v1/comments/{id}",
		Summary:     "Delete comment",
		Description: "Deletes a comment. Author, entity owner, or admin only.",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLogComments",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs/{id}/comments",
		Summary:     "List log comments",
		Description: "Returns all comments on a log, oldest first",
		Tags:        []string{"Comments"},
	}, s.handleListLogComments)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPostComments",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/{id}/comments",
		Summary:     "List post comments",
		Description: "Returns all comments on a post, oldest first",
		Tags:        []string{"Comments"},
	}, s.handleListPostComments)
}

// === DTOs ===

// CommentResponse contains comment data in API responses.
type CommentResponse struct {
	ID        string    `json:"id" doc:"Comment ID"`
	UserID    string    `json:"user_id" doc:"Author user ID"`
	LogID     *string   `json:"log_id,omitempty" doc:"Target log ID"`
	PostID    *string   `json:"post_id,omitempty" doc:"Target post ID"`
	Body      string    `json:"body" doc:"Comment body"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// CommentOutput wraps a comment response for Huma.
type CommentOutput struct {
	Body CommentResponse
}

// CommentListResponse contains a list of comments.
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments" doc:"List of comments"`
}

// CommentListOutput wraps the comment list response for Huma.
type CommentListOutput struct {
	Body CommentListResponse
}

// CreateCommentRequest is the request body for creating a comment.
// Exactly one of log_id and post_id must be set.
type CreateCommentRequest struct {
	LogID  *string `json:"log_id,omitempty" doc:"Target log ID"`
	PostID *string `json:"post_id,omitempty" doc:"Target post ID"`
	Body   string  `json:"body" validate:"required,min=1,max=240" doc:"Comment body"`
}

// CreateCommentInput wraps the create comment request for Huma.
type CreateCommentInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateCommentRequest
}

// DeleteCommentInput contains parameters for deleting a comment.
type DeleteCommentInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Comment ID"`
}

// === Handlers ===

func (s *Server) handleCreateComment(ctx context.Context, input *CreateCommentInput) (*CommentOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	c, err := s.services.Comment.CreateComment(ctx, service.CreateCommentRequest{
		LogID:  input.Body.LogID,
		PostID: input.Body.PostID,
		Body:   input.Body.Body,
		UserID: userID,
	})
	if err != nil {
		return nil, err
	}

	return &CommentOutput{Body: mapCommentResponse(c)}, nil
}

func (s *Server) handleDeleteComment(ctx context.Context, input *DeleteCommentInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	requester, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, huma.Error401Unauthorized("User not found")
	}

	if err := s.services.Comment.DeleteComment(ctx, input.ID, userID, requester.IsAdmin()); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Comment deleted"}}, nil
}

func (s *Server) handleListLogComments(ctx context.Context, input *GetLogInput) (*CommentListOutput, error) {
	if _, err := s.services.Log.GetLog(ctx, input.ID); err != nil {
		return nil, err
	}

	comments, err := s.services.Comment.ListLogComments(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &CommentListOutput{Body: CommentListResponse{Comments: mapCommentResponses(comments)}}, nil
}

func (s *Server) handleListPostComments(ctx context.Context, input *GetPostInput) (*CommentListOutput, error) {
	if _, err := s.services.Post.GetPost(ctx, input.ID); err != nil {
		return nil, err
	}

	comments, err := s.services.Comment.ListPostComments(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &CommentListOutput{Body: CommentListResponse{Comments: mapCommentResponses(comments)}}, nil
}

// === Helpers ===

func mapCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		LogID:     c.LogID,
		PostID:    c.PostID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func mapCommentResponses(comments []*domain.Comment) []CommentResponse {
	resp := make([]CommentResponse, len(comments))
	for i, c := range comments {
		resp[i] = mapCommentResponse(c)
	}
	return resp
}
