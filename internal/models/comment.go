package models

import "time"

// Comment represents a comment on a post. CreatedAt is set once at creation;
// comments of a post are always listed in (post_id, created_at) order.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	PostID    string    `json:"post" gorm:"index"`
	Comment   string    `json:"comment,omitempty" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Post    string `json:"post" validate:"required"`
	Comment string `json:"comment,omitempty" validate:"omitempty,max=500"`
}

// PostComments is the response shape for listing all comments of a post:
// the post's summary with its comments nested under it.
type PostComments struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}
