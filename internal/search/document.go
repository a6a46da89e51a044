// Package search provides full-text search functionality using Bleve.
// It enables federated search across users, logs, posts and comments with
// type filtering and fuzzy matching.
package search

import "github.com/lumbrapp/lumbr-server/internal/domain"

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeUser    DocType = "user"
	DocTypeLog     DocType = "log"
	DocTypePost    DocType = "post"
	DocTypeComment DocType = "comment"
)

// Document is the unified document structure for the Bleve index.
// All searchable entities are indexed as Documents with type discrimination.
type Document struct {
	// Identity
	ID   string  `json:"id"`   // Original entity ID (user_xxx, log_xxx, etc.)
	Type DocType `json:"type"` // Discriminator for result grouping

	// Primary searchable text (different meaning per type)
	// User: username, Log: title, Post: title, Comment: body
	Name string `json:"name"`

	// Secondary searchable text
	// User: display name, Log: description, Post: content
	Body string `json:"body,omitempty"`

	// Owner denormalized for display in results
	Username string `json:"username,omitempty"`

	// Tag slugs attached to the entity (logs only)
	Tags []string `json:"tags,omitempty"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but the
// mapping uses lowercase names, so we convert explicitly.
func (d *Document) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"type":       string(d.Type),
		"name":       d.Name,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Body != "" {
		m["body"] = d.Body
	}
	if d.Username != "" {
		m["username"] = d.Username
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}

	return m
}

// UserToDocument converts a domain User to a search Document.
func UserToDocument(u *domain.User) *Document {
	return &Document{
		ID:        u.ID,
		Type:      DocTypeUser,
		Name:      u.Username,
		Body:      u.Name,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.UnixMilli(),
		UpdatedAt: u.UpdatedAt.UnixMilli(),
	}
}

// LogToDocument converts a domain Log to a search Document.
// The owner's username and tag slugs are denormalized by the caller, as the
// search package should not depend on store.
func LogToDocument(l *domain.Log, username string, tagSlugs []string) *Document {
	return &Document{
		ID:        l.ID,
		Type:      DocTypeLog,
		Name:      l.Title,
		Body:      l.Description,
		Username:  username,
		Tags:      tagSlugs,
		CreatedAt: l.CreatedAt.UnixMilli(),
		UpdatedAt: l.UpdatedAt.UnixMilli(),
	}
}

// PostToDocument converts a domain Post to a search Document.
func PostToDocument(p *domain.Post, username string) *Document {
	return &Document{
		ID:        p.ID,
		Type:      DocTypePost,
		Name:      p.Title,
		Body:      p.Content,
		Username:  username,
		CreatedAt: p.CreatedAt.UnixMilli(),
		UpdatedAt: p.UpdatedAt.UnixMilli(),
	}
}

// CommentToDocument converts a domain Comment to a search Document.
func CommentToDocument(c *domain.Comment, username string) *Document {
	return &Document{
		ID:        c.ID,
		Type:      DocTypeComment,
		Name:      c.Body,
		Username:  username,
		CreatedAt: c.CreatedAt.UnixMilli(),
		UpdatedAt: c.CreatedAt.UnixMilli(),
	}
}
