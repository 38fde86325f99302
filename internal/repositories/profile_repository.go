package repositories

import (
	"errors"

	"github.com/nanosocial/backend/internal/filters"
	"github.com/nanosocial/backend/internal/models"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	CreateProfile(profile *models.Profile) error
	GetProfileByID(id uint) (*models.Profile, error)
	GetProfileByUserID(userID uint) (*models.Profile, error)
	ListProfiles(filter filters.ProfileFilter) ([]models.Profile, error)
	UpdateProfile(profile *models.Profile) error
	GetUserIDsByUsername(username string) ([]uint, error)
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

// NewPostgresProfileRepository creates a new PostgresProfileRepository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// CreateProfile creates a new profile. The unique indexes on user_id and
// username surface a duplicate as ErrDuplicateKey.
func (r *PostgresProfileRepository) CreateProfile(profile *models.Profile) error {
	return translate(r.db.Create(profile).Error)
}

// GetProfileByID retrieves a profile by its id
func (r *PostgresProfileRepository) GetProfileByID(id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, id).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// GetProfileByUserID retrieves the single profile owned by a user
func (r *PostgresProfileRepository) GetProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

// ListProfiles retrieves profiles matching the filter, ordered by id
func (r *PostgresProfileRepository) ListProfiles(filter filters.ProfileFilter) ([]models.Profile, error) {
	q := r.db.Model(&models.Profile{}).Order("id ASC")
	if filter.Username != "" {
		q = q.Where("LOWER(username) LIKE LOWER(?)", "%"+filter.Username+"%")
	}
	if filter.Bio != "" {
		q = q.Where("LOWER(bio) LIKE LOWER(?)", "%"+filter.Bio+"%")
	}
	if len(filter.Following) > 0 {
		q = q.Where("id IN (?)",
			r.db.Table("follows").Select("follower_id").Where("following_id IN ?", filter.Following),
		)
	}

	var profiles []models.Profile
	if err := q.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateProfile saves an existing profile
func (r *PostgresProfileRepository) UpdateProfile(profile *models.Profile) error {
	return translate(r.db.Save(profile).Error)
}

// GetUserIDsByUsername returns the user ids of profiles whose username
// contains the given fragment (case-insensitive)
func (r *PostgresProfileRepository) GetUserIDsByUsername(username string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Profile{}).
		Where("LOWER(username) LIKE LOWER(?)", "%"+username+"%").
		Pluck("user_id", &ids).Error
	return ids, err
}

// translate maps GORM errors onto the repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	default:
		return err
	}
}
