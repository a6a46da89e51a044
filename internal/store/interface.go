// Package store defines the persistence interface for the Lumbr server.
package store

import (
	"context"
	"time"

	"github.com/lumbrapp/lumbr-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Moderation
	SuspendUser(ctx context.Context, userID, logID, reason string, until time.Time) error
	ListUsersSuspendedThrough(ctx context.Context, date time.Time) ([]*domain.User, error)
	ClearSuspension(ctx context.Context, userID string) error

	// Auth Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteAllUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Tags
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTagByID(ctx context.Context, id string) (*domain.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error)
	GetTagsByIDs(ctx context.Context, ids []string) ([]*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)

	// Log tag associations
	GetLogTagIDs(ctx context.Context, logID string) ([]string, error)
	AddLogTags(ctx context.Context, logID string, tagIDs []string) error
	DeleteLogTag(ctx context.Context, logID, tagID string) (bool, error)

	// User interests
	GetUserInterestTagIDs(ctx context.Context, userID string) ([]string, error)
	AddUserInterests(ctx context.Context, userID string, tagIDs []string) error
	DeleteUserInterest(ctx context.Context, userID, tagID string) (bool, error)

	// Logs
	CreateLog(ctx context.Context, log *domain.Log) error
	GetLog(ctx context.Context, id string) (*domain.Log, error)
	UpdateLog(ctx context.Context, log *domain.Log) error
	DeleteLog(ctx context.Context, id string) error
	ListLogsByUser(ctx context.Context, userID string) ([]*domain.Log, error)
	ListLogsByTagIDs(ctx context.Context, tagIDs []string, limit int) ([]*domain.Log, error)
	ListRecentLogs(ctx context.Context, limit int) ([]*domain.Log, error)

	// Posts
	CreatePost(ctx context.Context, post *domain.Post) error
	GetPost(ctx context.Context, id string) (*domain.Post, error)
	UpdatePost(ctx context.Context, post *domain.Post) error
	DeletePost(ctx context.Context, id string) error
	ListPostsByLog(ctx context.Context, logID string) ([]*domain.Post, error)
	ListPostsByUser(ctx context.Context, userID string) ([]*domain.Post, error)

	// Comments
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, id string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	ListCommentsByLog(ctx context.Context, logID string) ([]*domain.Comment, error)
	ListCommentsByPost(ctx context.Context, postID string) ([]*domain.Comment, error)

	// Likes
	LikeLog(ctx context.Context, logID, userID string) error
	UnlikeLog(ctx context.Context, logID, userID string) (bool, error)
	CountLogLikes(ctx context.Context, logID string) (int, error)
	LikePost(ctx context.Context, postID, userID string) error
	UnlikePost(ctx context.Context, postID, userID string) (bool, error)
	CountPostLikes(ctx context.Context, postID string) (int, error)

	// Follows
	CreateFollow(ctx context.Context, followerID, followedID string) error
	DeleteFollow(ctx context.Context, followerID, followedID string) (bool, error)
	ListFollowerIDs(ctx context.Context, userID string) ([]string, error)
	ListFollowedIDs(ctx context.Context, userID string) ([]string, error)
	CountFollowers(ctx context.Context, userID string) (int, error)

	// Reports
	CreateReport(ctx context.Context, report *domain.Report) error
	GetReport(ctx context.Context, id string) (*domain.Report, error)
	DeleteReport(ctx context.Context, id string) error
	ListReports(ctx context.Context) ([]*domain.Report, error)
}
