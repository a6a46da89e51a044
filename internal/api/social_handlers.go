package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/lumbrapp/lumbr-server/internal/domain"
)

func (s *Server) registerSocialRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "likeLog",
		Method:      http.MethodPost,
		Path:        "/api/v1/logs/{id}/like",
		Summary:     "Like log",
		Description: "Records a like on a log",
		Tags:        []string{"Social"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLikeLog)

	huma.Register(s.api, huma.Operation{
		OperationID: "unlikeLog",
		Method:      http.MethodDelete,
		Path:        "/api/v1/logs/{id}/like",
		Summary:     "Unlike log",
		Description: "Removes a like on a log",
		Tags:        []string{"Social"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnlikeLog)

	huma.Register(s.api, huma.Operation{
		OperationID: "getLogLikes",
		Method:      http.MethodGet,
		Path:        "/api/v1/logs/{id}/likes",
		Summary:     "Get log likes",
		Description: "Returns the number of likes on a log",
		Tags:        []string{"Social"},
	}, s.handleGetLogLikes)

	huma.Register(s.api, huma.Operation{
		OperationID: "likePost",
		Method:      http.MethodPost,
		Path:        "/api/v1/posts/{id}/like",
		Summary:     "Like post",
		Description: "Records a like on a post",
		Tags:        []string{"Social"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLikePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "unlikePost",
		Method:      http.MethodDelete,
		Path:        "/api/v1/posts/{id}/like",
		Summary:     "Unlike post",
		Description: "Removes a like on a post",
		Tags:        []string{"Social"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnlikePost)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPostLikes",
		Method:      http.MethodGet,
		Path:        "/api/v1/posts/{id}/likes",
		Summary:     "Get post likes",
		Description: "Returns the number of likes on a post",
		Tags:        []string{"Social"},
	}, s.handleGetPostLikes)

	huma.Register(s.api, huma.Operation{
		OperationID: "followUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/{id}/follow",
		Summary:     "Follow user",
		Description: "Follows another user",
		Tags:        []string{"Social"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleFollowUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "unfollowUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/{id}/follow",
		Summary:     "Unfollow user",
		Description: "Unfollows a user",
		Tags:        []string{"Social"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnfollowUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFollowers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/followers",
		Summary:     "List followers",
		Description: "Returns the users following the given user",
		Tags:        []string{"Social"},
	}, s.handleListFollowers)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFollowing",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{id}/following",
		Summary:     "List following",
		Description: "Returns the users the given user follows",
		Tags:        []string{"Social"},
	}, s.handleListFollowing)
}

// === DTOs ===

// LikeInput contains parameters for like operations.
type LikeInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Target ID"`
}

// LikeCountInput contains parameters for reading a like count.
type LikeCountInput struct {
	ID string `path:"id" doc:"Target ID"`
}

// LikeCountResponse contains a like count.
type LikeCountResponse struct {
	Count int `json:"count" doc:"Number of likes"`
}

// LikeCountOutput wraps the like count response for Huma.
type LikeCountOutput struct {
	Body LikeCountResponse
}

// FollowInput contains parameters for follow operations.
type FollowInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Target user ID"`
}

// UserListInput contains parameters for listing related users.
type UserListInput struct {
	ID string `path:"id" doc:"User ID"`
}

// UserListResponse contains a list of users.
type UserListResponse struct {
	Users []UserResponse `json:"users" doc:"List of users"`
}

// UserListOutput wraps the user list response for Huma.
type UserListOutput struct {
	Body UserListResponse
}

// === Handlers ===

func (s *Server) handleLikeLog(ctx context.Context, input *LikeInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Social.LikeLog(ctx, input.ID, userID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Liked"}}, nil
}

func (s *Server) handleUnlikeLog(ctx context.Context, input *LikeInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Social.UnlikeLog(ctx, input.ID, userID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Unliked"}}, nil
}

func (s *Server) handleGetLogLikes(ctx context.Context, input *LikeCountInput) (*LikeCountOutput, error) {
	count, err := s.services.Social.CountLogLikes(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &LikeCountOutput{Body: LikeCountResponse{Count: count}}, nil
}

func (s *Server) handleLikePost(ctx context.Context, input *LikeInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Social.LikePost(ctx, input.ID, userID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Liked"}}, nil
}

func (s *Server) handleUnlikePost(ctx context.Context, input *LikeInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Social.UnlikePost(ctx, input.ID, userID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Unliked"}}, nil
}

func (s *Server) handleGetPostLikes(ctx context.Context, input *LikeCountInput) (*LikeCountOutput, error) {
	count, err := s.services.Social.CountPostLikes(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &LikeCountOutput{Body: LikeCountResponse{Count: count}}, nil
}

func (s *Server) handleFollowUser(ctx context.Context, input *FollowInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Social.Follow(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Following"}}, nil
}

func (s *Server) handleUnfollowUser(ctx context.Context, input *FollowInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Social.Unfollow(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Unfollowed"}}, nil
}

func (s *Server) handleListFollowers(ctx context.Context, input *UserListInput) (*UserListOutput, error) {
	users, err := s.services.Social.ListFollowers(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserListOutput{Body: UserListResponse{Users: mapUserResponses(users)}}, nil
}

func (s *Server) handleListFollowing(ctx context.Context, input *UserListInput) (*UserListOutput, error) {
	users, err := s.services.Social.ListFollowing(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserListOutput{Body: UserListResponse{Users: mapUserResponses(users)}}, nil
}

// === Helpers ===

func mapUserResponses(users []*domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapUserResponse(u, false)
	}
	return resp
}
