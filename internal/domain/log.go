package domain

import "time"

// MaxLogTags is the maximum number of tags a log may carry.
const MaxLogTags = 5

// Log is a user-owned collection of posts, analogous to a blog.
type Log struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`       // 2-20 chars, unique per user
	Description string    `json:"description"` // Up to 60 chars
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (l *Log) Touch() {
	l.UpdatedAt = time.Now().UTC()
}

// LogTag represents the many-to-many relationship between logs and tags.
// Composite key (log_id, tag_id); rows are created and destroyed only by
// tag reconciliation or by log deletion cascades.
type LogTag struct {
	LogID     string    `json:"log_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LogLike represents a user liking a log. Composite key (log_id, user_id).
type LogLike struct {
	LogID     string    `json:"log_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
