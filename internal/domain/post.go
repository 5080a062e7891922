package domain

// Post is one entry in a class announcement feed.
type Post struct {
	ID        int       `json:"postID"`
	ClassID   int       `json:"classID"`
	AuthorID  int       `json:"authorID"`
	Content   string    `json:"content"`
	FilePath  string    `json:"filePath,omitempty"`
	CreatedAt Timestamp `json:"createdAt"`
}
