package models

import "time"

// Reaction kinds, single-letter wire values.
const (
	ReactionLike    = "L"
	ReactionDislike = "D"
)

// UserReaction is a Like/Dislike a user attaches to a post. The composite
// unique index on (user_id, post_id) is the authority for "at most one
// reaction per user and post": concurrent duplicate inserts resolve at the
// storage layer, not by an application read-then-write.
type UserReaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_reaction"`
	PostID    string    `json:"post" gorm:"index;uniqueIndex:idx_user_post_reaction"`
	Reaction  string    `json:"reaction" gorm:"size:1;default:'L'"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReactionRequest defines the request body for reacting to a post
type CreateReactionRequest struct {
	Post     string `json:"post" validate:"required"`
	Reaction string `json:"reaction,omitempty" validate:"omitempty,oneof=L D"`
}
