package repositories

import (
	"github.com/nanosocial/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow-graph operations. Edge
// adds and removes report whether they changed anything so callers can
// answer "already following" / "already not following" without treating the
// repeat as an error.
type FollowRepository interface {
	CreateFollow(follow *models.Follow) (created bool, err error)
	DeleteFollow(followerID, followingID uint) (removed bool, err error)
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowing(profileID uint) ([]models.Profile, error)
	GetFollowers(profileID uint) ([]models.Profile, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge if absent. ON CONFLICT DO NOTHING on the
// (follower_id, following_id) unique index makes concurrent identical calls
// safe: exactly one insert wins and the rest observe created=false.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
		DoNothing: true,
	}).Create(follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteFollow removes the edge if present
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) (bool, error) {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IsFollowing reports whether the edge follower -> following exists
func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowing returns all profiles the given profile follows, ordered by id
func (r *PostgresFollowRepository) GetFollowing(profileID uint) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("following_id").Where("follower_id = ?", profileID),
	).Order("id ASC").Find(&profiles).Error
	return profiles, err
}

// GetFollowers returns all profiles following the given profile, ordered by id
func (r *PostgresFollowRepository) GetFollowers(profileID uint) ([]models.Profile, error) {
	var profiles []models.Profile
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("following_id = ?", profileID),
	).Order("id ASC").Find(&profiles).Error
	return profiles, err
}
