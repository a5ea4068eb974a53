package blog

// Category is a named classification, unique by name across all
// categories. Referenced by many posts, owned by none.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
