package models

import "time"

// Follow is a directed edge between two profiles: follower follows following.
// The composite unique index keeps the edge a boolean existence fact under
// concurrent identical writes.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
