package models

// Post is a single discovered submission with its fetched comments.
// CreatedAt holds a normalized "2006-01-02T15:04:05" timestamp.
type Post struct {
	ID        string    `json:"id"`
	Subreddit string    `json:"subreddit"`
	Title     string    `json:"title"`
	CreatedAt string    `json:"created_at"`
	Comments  []Comment `json:"comments"`
}

// Comment is a single comment scraped from a post's detail page.
type Comment struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// Key returns the deduplication key for the post. Ids are only unique
// within a subreddit, so the key carries both.
func (p *Post) Key() string {
	return p.Subreddit + "/" + p.ID
}

// Key returns the deduplication key for the comment. Comment trackers are
// scoped to a single post's fetch, so the bare id suffices.
func (c Comment) Key() string {
	return c.ID
}
