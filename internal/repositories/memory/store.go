// Package memory provides mutex-guarded in-memory implementations of the
// repository interfaces. They mirror the Postgres/Mongo semantics, including
// uniqueness conflicts and result ordering, and back the test suite.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nanosocial/backend/internal/filters"
	"github.com/nanosocial/backend/internal/models"
	"github.com/nanosocial/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type edge struct {
	follower  uint
	following uint
}

// Store holds every entity behind a single lock.
type Store struct {
	mu        sync.RWMutex
	profiles  map[uint]models.Profile
	follows   map[edge]time.Time
	reactions map[string]models.UserReaction
	comments  []models.Comment
	posts     map[string]models.Post

	nextProfileID  uint
	nextReactionID uint
	nextCommentID  uint
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		profiles:  make(map[uint]models.Profile),
		follows:   make(map[edge]time.Time),
		reactions: make(map[string]models.UserReaction),
		posts:     make(map[string]models.Post),
	}
}

// === ProfileRepository ===

func (s *Store) CreateProfile(profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.UserID == profile.UserID || p.Username == profile.Username {
			return repositories.ErrDuplicateKey
		}
	}

	s.nextProfileID++
	profile.ID = s.nextProfileID
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	s.profiles[profile.ID] = *profile
	return nil
}

func (s *Store) GetProfileByID(id uint) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (s *Store) GetProfileByUserID(userID uint) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.profiles {
		if p.UserID == userID {
			out := p
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *Store) ListProfiles(filter filters.ProfileFilter) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Profile{}
	for _, p := range s.profiles {
		if filter.Match(p, s.followingIDs(p.ID)) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateProfile(profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.ID]; !ok {
		return repositories.ErrNotFound
	}
	for _, p := range s.profiles {
		if p.ID != profile.ID && p.Username == profile.Username {
			return repositories.ErrDuplicateKey
		}
	}
	profile.UpdatedAt = time.Now()
	s.profiles[profile.ID] = *profile
	return nil
}

func (s *Store) GetUserIDsByUsername(username string) ([]uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := filters.ProfileFilter{Username: username}
	ids := []uint{}
	for _, p := range s.profiles {
		if f.Match(p, nil) {
			ids = append(ids, p.UserID)
		}
	}
	return ids, nil
}

// followingIDs must be called with the lock held.
func (s *Store) followingIDs(profileID uint) []uint {
	var ids []uint
	for e := range s.follows {
		if e.follower == profileID {
			ids = append(ids, e.following)
		}
	}
	return ids
}

// === FollowRepository ===

func (s *Store) CreateFollow(follow *models.Follow) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := edge{follower: follow.FollowerID, following: follow.FollowingID}
	if _, ok := s.follows[e]; ok {
		return false, nil
	}
	follow.CreatedAt = time.Now()
	s.follows[e] = follow.CreatedAt
	return true, nil
}

func (s *Store) DeleteFollow(followerID, followingID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := edge{follower: followerID, following: followingID}
	if _, ok := s.follows[e]; !ok {
		return false, nil
	}
	delete(s.follows, e)
	return true, nil
}

func (s *Store) IsFollowing(followerID, followingID uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.follows[edge{follower: followerID, following: followingID}]
	return ok, nil
}

func (s *Store) GetFollowing(profileID uint) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Profile{}
	for e := range s.follows {
		if e.follower == profileID {
			if p, ok := s.profiles[e.following]; ok {
				out = append(out, p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetFollowers(profileID uint) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Profile{}
	for e := range s.follows {
		if e.following == profileID {
			if p, ok := s.profiles[e.follower]; ok {
				out = append(out, p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// === ReactionRepository ===

func (s *Store) CreateReaction(reaction *models.UserReaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := fmt.Sprintf("%d|%s", reaction.UserID, reaction.PostID)
	if _, ok := s.reactions[key]; ok {
		return repositories.ErrDuplicateKey
	}
	if reaction.Reaction == "" {
		reaction.Reaction = models.ReactionLike
	}
	s.nextReactionID++
	reaction.ID = s.nextReactionID
	reaction.CreatedAt = time.Now()
	s.reactions[key] = *reaction
	return nil
}

func (s *Store) ListReactions(userID uint, filter filters.ReactionFilter) ([]models.UserReaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.UserReaction{}
	for _, r := range s.reactions {
		if r.UserID == userID && filter.Match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PostID != out[j].PostID {
			return out[i].PostID < out[j].PostID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// === CommentRepository ===

func (s *Store) CreateComment(comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCommentID++
	comment.ID = s.nextCommentID
	comment.CreatedAt = time.Now()
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *Store) GetCommentsByPostID(postID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// === PostRepository ===

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = primitive.NewObjectID()
	post.IsPublished = false
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	s.posts[post.ID.Hex()] = *post
	return nil
}

func (s *Store) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (s *Store) ListPosts(ctx context.Context, filter filters.PostFilter) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Post{}
	for _, p := range s.posts {
		if filter.Match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return scheduleKey(out[i]).Before(scheduleKey(out[j]))
	})
	return out, nil
}

func (s *Store) UpdatePost(ctx context.Context, id string, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	existing.Title = post.Title
	existing.Message = post.Message
	existing.Image = post.Image
	existing.Hashtag = post.Hashtag
	existing.UpdatedAt = time.Now()
	s.posts[id] = existing
	return nil
}

func (s *Store) PublishDue(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var published int64
	for id, p := range s.posts {
		if p.IsPublished || p.ScheduledPublishTime == nil {
			continue
		}
		if p.ScheduledPublishTime.After(now) {
			continue
		}
		p.IsPublished = true
		s.posts[id] = p
		published++
	}
	return published, nil
}

// scheduleKey sorts unscheduled posts first, like a null-first index scan.
func scheduleKey(p models.Post) time.Time {
	if p.ScheduledPublishTime == nil {
		return time.Time{}
	}
	return *p.ScheduledPublishTime
}
