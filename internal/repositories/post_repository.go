package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/nanosocial/backend/internal/filters"
	"github.com/nanosocial/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context, filter filters.PostFilter) ([]models.Post, error)
	UpdatePost(ctx context.Context, id string, post *models.Post) error
	PublishDue(ctx context.Context, now time.Time) (int64, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post in MongoDB. Posts are always created
// unpublished; only PublishDue flips the flag.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.IsPublished = false
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// ListPosts retrieves posts matching the filter, ordered ascending by
// scheduled publish time
func (r *MongoPostRepository) ListPosts(ctx context.Context, filter filters.PostFilter) ([]models.Post, error) {
	query := bson.M{}
	if filter.Title != "" {
		query["title"] = containsPattern(filter.Title)
	}
	if filter.Message != "" {
		query["message"] = containsPattern(filter.Message)
	}
	if filter.Hashtag != "" {
		query["hashtag"] = containsPattern(filter.Hashtag)
	}
	if filter.HasOwnerFilter {
		if len(filter.OwnerIDs) == 0 {
			return []models.Post{}, nil
		}
		query["user_id"] = bson.M{"$in": filter.OwnerIDs}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "scheduled_publish_time", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates an existing post in MongoDB
func (r *MongoPostRepository) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}

	post.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":      post.Title,
			"message":    post.Message,
			"image":      post.Image,
			"hashtag":    post.Hashtag,
			"updated_at": post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PublishDue flips is_published for every unpublished post whose scheduled
// time has passed. The update is a single multi-document command: each row
// flips atomically, one bad row cannot abort the rest, and a second run at
// the same instant matches nothing. Posts without a scheduled time are never
// touched.
func (r *MongoPostRepository) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{
			"scheduled_publish_time": bson.M{"$ne": nil, "$lte": now},
			"is_published":           false,
		},
		bson.M{"$set": bson.M{"is_published": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// containsPattern builds a case-insensitive substring match
func containsPattern(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
