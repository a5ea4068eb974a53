// Package commands defines the write-side inputs of the application
// layer, mapped from validated API requests at the boundary.
package commands

// CreatePostCommand carries the fields for creating a post. All
// referenced category and tag identifiers must resolve to existing
// records.
type CreatePostCommand struct {
	Title      string
	Content    string
	CategoryID string
	TagIDs     []string
}

// UpdatePostCommand carries the full replacement state for a post.
// Partial patches are not supported.
type UpdatePostCommand struct {
	Title      string
	Content    string
	CategoryID string
	TagIDs     []string
}
