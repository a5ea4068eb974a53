package blog

// Tag is a named label, unique by name, many-to-many with posts.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
