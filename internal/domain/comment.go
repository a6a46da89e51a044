package domain

import "time"

// Comment is a short message left on a log or a post. Exactly one of
// LogID and PostID is set.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	LogID     *string   `json:"log_id,omitempty"`
	PostID    *string   `json:"post_id,omitempty"`
	Body      string    `json:"body"` // 1-240 chars
	CreatedAt time.Time `json:"created_at"`
}

// Follow represents one user following another.
// Composite key (follower_id, followed_id).
type Follow struct {
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}
