package repositories

import (
	"github.com/nanosocial/backend/internal/filters"
	"github.com/nanosocial/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	CreateReaction(reaction *models.UserReaction) error
	ListReactions(userID uint, filter filters.ReactionFilter) ([]models.UserReaction, error)
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// CreateReaction persists a reaction. Uniqueness of (user_id, post_id) is
// enforced by the index, so two concurrent inserts for the same pair resolve
// with one success and one ErrDuplicateKey.
func (r *PostgresReactionRepository) CreateReaction(reaction *models.UserReaction) error {
	if reaction.Reaction == "" {
		reaction.Reaction = models.ReactionLike
	}
	return translate(r.db.Create(reaction).Error)
}

// ListReactions returns the reactions owned by a user, optionally narrowed
// by post or kind, ordered by (post_id, created_at)
func (r *PostgresReactionRepository) ListReactions(userID uint, filter filters.ReactionFilter) ([]models.UserReaction, error) {
	q := r.db.Where("user_id = ?", userID).Order("post_id ASC, created_at ASC")
	if filter.PostID != "" {
		q = q.Where("post_id = ?", filter.PostID)
	}
	if filter.Reaction != "" {
		q = q.Where("UPPER(reaction) = UPPER(?)", filter.Reaction)
	}

	var reactions []models.UserReaction
	if err := q.Find(&reactions).Error; err != nil {
		return nil, err
	}
	return reactions, nil
}
