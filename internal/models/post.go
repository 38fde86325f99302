package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB. A post is created
// unpublished; only the publishing sweeper ever flips IsPublished, and only
// when ScheduledPublishTime has passed.
type Post struct {
	ID                   primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID               uint               `json:"user_id" bson:"user_id"`
	Title                string             `json:"title" bson:"title"`
	Message              string             `json:"message,omitempty" bson:"message,omitempty"`
	Image                string             `json:"image,omitempty" bson:"image,omitempty"`
	Hashtag              string             `json:"hashtag,omitempty" bson:"hashtag,omitempty"`
	ScheduledPublishTime *time.Time         `json:"scheduled_publish_time,omitempty" bson:"scheduled_publish_time,omitempty"`
	IsPublished          bool               `json:"is_published" bson:"is_published"`
	CreatedAt            time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title                string     `json:"title" validate:"required,min=1,max=255"`
	Message              string     `json:"message,omitempty" validate:"omitempty,max=500"`
	Hashtag              string     `json:"hashtag,omitempty" validate:"omitempty,max=255"`
	ScheduledPublishTime *time.Time `json:"scheduled_publish_time,omitempty"`
}
