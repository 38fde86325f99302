package models

import "time"

// Profile is the public identity a user presents. Identity itself lives with
// the external auth provider; UserID ties the profile back to it, and each
// user has at most one profile.
type Profile struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"uniqueIndex"`
	Username   string    `json:"username" gorm:"size:255;uniqueIndex"`
	Bio        string    `json:"bio,omitempty" gorm:"size:400"`
	ProfilePic string    `json:"profile_pic,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateProfileRequest defines the request body for creating a profile
type CreateProfileRequest struct {
	Username string `json:"username" validate:"required,min=1,max=255"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=400"`
}

// UpdateProfileRequest defines the request body for partially updating a
// profile; empty fields are left unchanged
type UpdateProfileRequest struct {
	Username string `json:"username,omitempty" validate:"omitempty,min=1,max=255"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=400"`
}
