package domain

import "time"

// Post is an article belonging to exactly one log.
type Post struct {
	ID        string    `json:"id"`
	LogID     string    `json:"log_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`   // 2-20 chars, unique per user
	Content   string    `json:"content"` // Sanitized markdown, 1-1000 chars
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostLike represents a user liking a post. Composite key (post_id, user_id).
type PostLike struct {
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
