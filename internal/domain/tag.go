package domain

import "time"

// Tag is a category label shared across all users. Immutable reference
// data, seeded at install time.
// Slug is the source of truth; clients transform for display:
// "machine-learning" → "Machine Learning".
type Tag struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"` // Canonical form: lowercase, hyphenated
	CreatedAt time.Time `json:"created_at"`
}

// UserInterest represents the many-to-many relationship between users and
// the tags they follow. Composite key (user_id, tag_id). Unlike log tags,
// interests are uncapped.
type UserInterest struct {
	UserID    string    `json:"user_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
