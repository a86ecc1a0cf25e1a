package entity

type Category struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
	Slug  string `json:"slug"`
}

// CategoryDetail is a category with its post count and, when loaded, its posts.
type CategoryDetail struct {
	Category  *Category
	PostCount int64
	Posts     []*Post
}
