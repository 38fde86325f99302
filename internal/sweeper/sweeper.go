// Package sweeper runs the periodic job that promotes scheduled posts to
// published once their scheduled time has passed.
package sweeper

import (
	"context"
	"log"
	"time"

	"github.com/nanosocial/backend/internal/repositories"
	"github.com/nanosocial/backend/pkg/metrics"
)

// Sweeper periodically publishes due posts. It is stateless: every run asks
// the store for the posts due at that instant, so running it twice at the
// same time changes nothing on the second run.
type Sweeper struct {
	posts    repositories.PostRepository
	interval time.Duration
}

// New creates a Sweeper over the given post store.
func New(posts repositories.PostRepository, interval time.Duration) *Sweeper {
	return &Sweeper{posts: posts, interval: interval}
}

// RunOnce performs a single sweep at the current time and returns the number
// of posts published.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	published, err := s.posts.PublishDue(ctx, time.Now())
	metrics.SweepRuns.Inc()
	if err != nil {
		metrics.SweepFailures.Inc()
		log.Printf("Publishing sweep failed: %v", err)
		return 0, err
	}
	if published > 0 {
		metrics.PostsPublished.Add(float64(published))
		log.Printf("Publishing sweep promoted %d post(s)", published)
	}
	return published, nil
}

// Start runs the sweep loop until the context is cancelled. A failed sweep
// is logged and the loop keeps going; the next tick retries.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("Publishing sweeper started with interval %s", s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("Publishing sweeper stopped.")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}
