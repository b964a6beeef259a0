package dto

import "time"

// NoticeRequest payload for create and update.
type NoticeRequest struct {
	Content  string   `json:"content"`
	Everyone bool     `json:"everyone"`
	Handles  []string `json:"handles"`
}

// ReactionRequest payload for toggling an emoji reaction.
type ReactionRequest struct {
	Emoji string `json:"emoji"`
}

// CommentRequest payload for appending a comment.
type CommentRequest struct {
	Content string `json:"content"`
}

// ReactionResponse is one emoji reaction.
type ReactionResponse struct {
	Emoji  string `json:"emoji"`
	Handle string `json:"handle"`
}

// CommentResponse is one thread comment.
type CommentResponse struct {
	ID        string             `json:"id"`
	Author    string             `json:"author"`
	Content   string             `json:"content"`
	Reactions []ReactionResponse `json:"reactions"`
	CreatedAt time.Time          `json:"created_at"`
}

// NoticeResponse is the wire form of a board notice.
type NoticeResponse struct {
	ID        string             `json:"id"`
	Author    string             `json:"author"`
	Content   string             `json:"content"`
	Everyone  bool               `json:"everyone"`
	Handles   []string           `json:"handles,omitempty"`
	Reactions []ReactionResponse `json:"reactions"`
	Comments  []CommentResponse  `json:"comments"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
