package models

// Book represents a catalog entry. Reviews are keyed by the
// reviewer's username, so each user holds at most one review per book.
type Book struct {
	Title   string            `json:"title"`
	Author  string            `json:"author"`
	Reviews map[string]string `json:"reviews"`
}

// ReviewRequest represents the body of a review upsert
type ReviewRequest struct {
	Review string `json:"review"`
}

// Clone returns a deep copy safe to hand to JSON serialization
// while the store keeps mutating the original.
func (b *Book) Clone() *Book {
	reviews := make(map[string]string, len(b.Reviews))
	for user, text := range b.Reviews {
		reviews[user] = text
	}
	return &Book{
		Title:   b.Title,
		Author:  b.Author,
		Reviews: reviews,
	}
}
