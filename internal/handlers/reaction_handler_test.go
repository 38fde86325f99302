package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/nanosocial/backend/internal/models"
	"github.com/nanosocial/backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReaction(t *testing.T) {
	store := memory.New()
	h := NewReactionHandler(store, store)
	post := seedPost(t, store, 2, "bob post")

	body := fmt.Sprintf(`{"post":%q,"reaction":"L"}`, post.ID.Hex())
	c, rec := newContext(t, http.MethodPost, "/reactions", body, 1)
	require.NoError(t, h.CreateReaction(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.UserReaction
	decodeBody(t, rec, &created)
	assert.Equal(t, models.ReactionLike, created.Reaction)
	assert.Equal(t, post.ID.Hex(), created.PostID)
	assert.Equal(t, uint(1), created.UserID)
}

func TestCreateReactionDefaultsToLike(t *testing.T) {
	store := memory.New()
	h := NewReactionHandler(store, store)
	post := seedPost(t, store, 2, "bob post")

	body := fmt.Sprintf(`{"post":%q}`, post.ID.Hex())
	c, rec := newContext(t, http.MethodPost, "/reactions", body, 1)
	require.NoError(t, h.CreateReaction(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.UserReaction
	decodeBody(t, rec, &created)
	assert.Equal(t, models.ReactionLike, created.Reaction)
}

func TestCreateReactionTwiceFails(t *testing.T) {
	store := memory.New()
	h := NewReactionHandler(store, store)
	post := seedPost(t, store, 2, "bob post")

	body := fmt.Sprintf(`{"post":%q,"reaction":"L"}`, post.ID.Hex())
	c, rec := newContext(t, http.MethodPost, "/reactions", body, 1)
	require.NoError(t, h.CreateReaction(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// a second reaction, even a different kind, is rejected
	body = fmt.Sprintf(`{"post":%q,"reaction":"D"}`, post.ID.Hex())
	c, rec = newContext(t, http.MethodPost, "/reactions", body, 1)
	require.NoError(t, h.CreateReaction(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already reacted to this post.", detailOf(t, rec))
}

func TestCreateReactionOwnPostFails(t *testing.T) {
	store := memory.New()
	h := NewReactionHandler(store, store)
	post := seedPost(t, store, 1, "my post")

	body := fmt.Sprintf(`{"post":%q,"reaction":"L"}`, post.ID.Hex())
	c, rec := newContext(t, http.MethodPost, "/reactions", body, 1)
	require.NoError(t, h.CreateReaction(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You cannot like your own post.", detailOf(t, rec))
}

func TestCreateReactionPostNotFound(t *testing.T) {
	store := memory.New()
	h := NewReactionHandler(store, store)

	c, rec := newContext(t, http.MethodPost, "/reactions", `{"post":"652f8aab9d2c4e0f00000000"}`, 1)
	require.NoError(t, h.CreateReaction(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found.", detailOf(t, rec))
}

func TestCreateReactionInvalidKind(t *testing.T) {
	store := memory.New()
	h := NewReactionHandler(store, store)
	post := seedPost(t, store, 2, "bob post")

	body := fmt.Sprintf(`{"post":%q,"reaction":"X"}`, post.ID.Hex())
	c, _ := newContext(t, http.MethodPost, "/reactions", body, 1)
	httpError(t, h.CreateReaction(c), http.StatusBadRequest)
}

func TestListReactionsFilters(t *testing.T) {
	store := memory.New()
	h := NewReactionHandler(store, store)
	first := seedPost(t, store, 2, "first")
	second := seedPost(t, store, 2, "second")

	require.NoError(t, store.CreateReaction(&models.UserReaction{UserID: 1, PostID: first.ID.Hex(), Reaction: models.ReactionLike}))
	require.NoError(t, store.CreateReaction(&models.UserReaction{UserID: 1, PostID: second.ID.Hex(), Reaction: models.ReactionDislike}))
	// another user's reaction never shows up in the caller's listing
	require.NoError(t, store.CreateReaction(&models.UserReaction{UserID: 3, PostID: first.ID.Hex(), Reaction: models.ReactionLike}))

	c, rec := newContext(t, http.MethodGet, "/reactions", "", 1)
	require.NoError(t, h.ListReactions(c))
	var body struct {
		Results []models.UserReaction `json:"results"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Results, 2)

	c, rec = newContext(t, http.MethodGet, "/reactions?reaction=D", "", 1)
	require.NoError(t, h.ListReactions(c))
	decodeBody(t, rec, &body)
	require.Len(t, body.Results, 1)
	assert.Equal(t, second.ID.Hex(), body.Results[0].PostID)

	c, rec = newContext(t, http.MethodGet, "/reactions?post="+first.ID.Hex(), "", 1)
	require.NoError(t, h.ListReactions(c))
	decodeBody(t, rec, &body)
	require.Len(t, body.Results, 1)
	assert.Equal(t, models.ReactionLike, body.Results[0].Reaction)
}

func TestListReactionsUnauthenticated(t *testing.T) {
	store := memory.New()
	h := NewReactionHandler(store, store)

	c, _ := newContext(t, http.MethodGet, "/reactions", "", 0)
	httpError(t, h.ListReactions(c), http.StatusUnauthorized)
}
