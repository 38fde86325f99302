package sweeper

import (
	"context"
	"testing"
	"time"

	"github.com/nanosocial/backend/internal/models"
	"github.com/nanosocial/backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeper_RunOnce(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	past := time.Now().Add(-time.Second)
	future := time.Now().Add(time.Hour)
	due := &models.Post{UserID: 1, Title: "due", ScheduledPublishTime: &past}
	notYet := &models.Post{UserID: 1, Title: "notYet", ScheduledPublishTime: &future}
	unscheduled := &models.Post{UserID: 1, Title: "unscheduled"}
	require.NoError(t, store.CreatePost(ctx, due))
	require.NoError(t, store.CreatePost(ctx, notYet))
	require.NoError(t, store.CreatePost(ctx, unscheduled))

	s := New(store, time.Minute)

	published, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), published)

	got, err := store.GetPostByID(ctx, due.ID.Hex())
	require.NoError(t, err)
	assert.True(t, got.IsPublished)

	got, err = store.GetPostByID(ctx, notYet.ID.Hex())
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	got, err = store.GetPostByID(ctx, unscheduled.ID.Hex())
	require.NoError(t, err)
	assert.False(t, got.IsPublished)

	// second run publishes nothing further
	published, err = s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, published)
}

func TestSweeper_StartStopsOnCancel(t *testing.T) {
	store := memory.New()
	ctx, cancel := context.WithCancel(context.Background())

	past := time.Now().Add(-time.Second)
	due := &models.Post{UserID: 1, Title: "due", ScheduledPublishTime: &past}
	require.NoError(t, store.CreatePost(ctx, due))

	s := New(store, 5*time.Millisecond)
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		got, err := store.GetPostByID(context.Background(), due.ID.Hex())
		return err == nil && got.IsPublished
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
