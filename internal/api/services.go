package api

import (
	"github.com/lumbrapp/lumbr-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth       *service.AuthService
	Session    *service.SessionService
	User       *service.UserService
	Tag        *service.TagService
	Log        *service.LogService
	Post       *service.PostService
	Comment    *service.CommentService
	Social     *service.SocialService
	Report     *service.ReportService
	Moderation *service.ModerationService
	Search     *service.SearchService
}
