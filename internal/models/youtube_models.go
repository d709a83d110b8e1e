package models

// CommentThread is the part of a YouTube top-level comment the analysis
// reads. TextDisplay is the HTML rendering YouTube returns.
type CommentThread struct {
	CommentID   string `json:"comment_id"`
	Author      string `json:"author"`
	TextDisplay string `json:"text_display"`
	LikeCount   int64  `json:"like_count"`
	PublishedAt string `json:"published_at"`
}
