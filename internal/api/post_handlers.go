package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lumbrapp/lumbr-server/internal/domain"
	"github.com/lumbrapp/lumbr-server/internal/service"
)

func (s *Server) registerPostRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createPost",
		Method:      http.MethodPost,
		Path:        "/api/v1/logs/{id}/posts",
		Summary:     "Create post",
		Description: "Creates a post in a log. Log owner only.",
		Tags:        []string{"Posts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreatePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "listLogPosts",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs/{id}/posts",
		Summary:     "List log posts",
		Description: "Returns all posts in a log, newest first",
		Tags:        []string{"Posts"},
	}, s.handleListLogPosts)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPost",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/{id}",
		Summary:     "Get post",
		Description: "Returns a post by ID",
		Tags:        []string{"Posts"},
	}, s.handleGetPost)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePost",
		Method:      http.MethodPatch,
		Path:        "/api/v1/posts/{id}",
		Summary:     "Update post",
		Description: "Applies partial updates to a post. Author only.",
		Tags:        []string{"Posts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePost",
		Method:      http.MethodDelete,
		Path:        "/api/v1/posts/{id}",
		Summary:     "Delete post",
		Description: "Deletes a post. Author or admin only.",
		Tags:        []string{"Posts"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeletePost)
}

// === DTOs ===

// PostResponse contains post data in API responses.
type PostResponse struct {
	ID        string    `json:"id" doc:"Post ID"`
	LogID     string    `json:"log_id" doc:"Parent log ID"`
	UserID    string    `json:"user_id" doc:"Author user ID"`
	Title     string    `json:"title" doc:"Post title"`
	Content   string    `json:"content" doc:"Post content"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update time"`
}

// PostOutput wraps a post response for Huma.
type PostOutput struct {
	Body PostResponse
}

// PostListResponse contains a list of posts.
type PostListResponse struct {
	Posts []PostResponse `json:"posts" doc:"List of posts"`
}

// PostListOutput wraps the post list response for Huma.
type PostListOutput struct {
	Body PostListResponse
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=2,max=20" doc:"Post title"`
	Content string `json:"content" validate:"required,min=1,max=1000" doc:"Post content"`
}

// CreatePostInput wraps the create post request for Huma.
type CreatePostInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Log ID"`
	Body          CreatePostRequest
}

// GetPostInput contains parameters for getting a post.
type GetPostInput struct {
	ID string `path:"id" doc:"Post ID"`
}

// UpdatePostRequest is the request body for updating a post.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=2,max=20" doc:"Post title"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1,max=1000" doc:"Post content"`
}

// UpdatePostInput wraps the update post request for Huma.
type UpdatePostInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Post ID"`
	Body          UpdatePostRequest
}

// DeletePostInput contains parameters for deleting a post.
type DeletePostInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Post ID"`
}

// === Handlers ===

func (s *Server) handleCreatePost(ctx context.Context, input *CreatePostInput) (*PostOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	p, err := s.services.Post.CreatePost(ctx, service.CreatePostRequest{
		LogID:   input.ID,
		Title:   input.Body.Title,
		Content: input.Body.Content,
		UserID:  userID,
	})
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: mapPostResponse(p)}, nil
}

func (s *Server) handleListLogPosts(ctx context.Context, input *GetLogInput) (*PostListOutput, error) {
	if _, err := s.services.Log.GetLog(ctx, input.ID); err != nil {
		return nil, err
	}

	posts, err := s.services.Post.ListLogPosts(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]PostResponse, len(posts))
	for i, p := range posts {
		resp[i] = mapPostResponse(p)
	}
	return &PostListOutput{Body: PostListResponse{Posts: resp}}, nil
}

func (s *Server) handleGetPost(ctx context.Context, input *GetPostInput) (*PostOutput, error) {
	p, err := s.services.Post.GetPost(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: mapPostResponse(p)}, nil
}

func (s *Server) handleUpdatePost(ctx context.Context, input *UpdatePostInput) (*PostOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	p, err := s.services.Post.UpdatePost(ctx, service.UpdatePostRequest{
		PostID:  input.ID,
		Title:   input.Body.Title,
		Content: input.Body.Content,
		UserID:  userID,
	})
	if err != nil {
		return nil, err
	}

	return &PostOutput{Body: mapPostResponse(p)}, nil
}

func (s *Server) handleDeletePost(ctx context.Context, input *DeletePostInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	requester, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, huma.Error401Unauthorized("User not found")
	}

	if err := s.services.Post.DeletePost(ctx, input.ID, userID, requester.IsAdmin()); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Post deleted"}}, nil
}

// === Helpers ===

func mapPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		LogID:     p.LogID,
		UserID:    p.UserID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
