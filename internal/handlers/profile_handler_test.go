package handlers

import (
	"net/http"
	"testing"

	"github.com/nanosocial/backend/internal/models"
	"github.com/nanosocial/backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProfile(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())

	c, rec := newContext(t, http.MethodPost, "/profiles", `{"username":"admin","bio":"hello"}`, 1)
	require.NoError(t, h.CreateProfile(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Profile
	decodeBody(t, rec, &created)
	assert.Equal(t, "admin", created.Username)
	assert.Equal(t, uint(1), created.UserID)
	assert.NotZero(t, created.ID)
}

func TestCreateProfileUnauthenticated(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())

	c, _ := newContext(t, http.MethodPost, "/profiles", `{"username":"admin"}`, 0)
	httpError(t, h.CreateProfile(c), http.StatusUnauthorized)
}

func TestCreateProfileTwiceFails(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())
	seedProfile(t, store, 1, "admin")

	c, rec := newContext(t, http.MethodPost, "/profiles", `{"username":"admin2"}`, 1)
	require.NoError(t, h.CreateProfile(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Profile already exists.", detailOf(t, rec))
}

func TestCreateProfileUsernameTaken(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())
	seedProfile(t, store, 1, "admin")

	c, rec := newContext(t, http.MethodPost, "/profiles", `{"username":"admin"}`, 2)
	require.NoError(t, h.CreateProfile(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Profile with this username already exists.", detailOf(t, rec))
}

func TestCreateProfileMissingUsername(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())

	c, _ := newContext(t, http.MethodPost, "/profiles", `{"bio":"no name"}`, 1)
	httpError(t, h.CreateProfile(c), http.StatusBadRequest)
}

func TestGetProfile(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())
	p := seedProfile(t, store, 1, "admin")

	c, rec := newContext(t, http.MethodGet, "/profiles/1", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.Profile
	decodeBody(t, rec, &got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "admin", got.Username)
}

func TestGetProfileNotFound(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())

	c, rec := newContext(t, http.MethodGet, "/profiles/99", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Profile not found.", detailOf(t, rec))
}

func TestUpdateProfile(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())
	seedProfile(t, store, 1, "admin")

	c, rec := newContext(t, http.MethodPatch, "/profiles/1", `{"bio":"updated bio"}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.Profile
	decodeBody(t, rec, &got)
	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, "updated bio", got.Bio)
}

func TestUpdateProfileForbiddenForNonOwner(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())
	seedProfile(t, store, 1, "admin")

	c, rec := newContext(t, http.MethodPatch, "/profiles/1", `{"bio":"hijack"}`, 2)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to perform this action.", detailOf(t, rec))
}

func TestListProfilesFilters(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())
	seedProfile(t, store, 1, "admin")
	seedProfile(t, store, 2, "administrator")
	seedProfile(t, store, 3, "bob")

	c, rec := newContext(t, http.MethodGet, "/profiles?username=admin", "", 1)
	require.NoError(t, h.ListProfiles(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []models.Profile `json:"results"`
		Meta    pageMeta         `json:"meta"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "admin", body.Results[0].Username)
	assert.Equal(t, "administrator", body.Results[1].Username)
	assert.Equal(t, 2, body.Meta.TotalItems)
}

func TestListProfilesFollowingFilter(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())
	alice := seedProfile(t, store, 1, "alice")
	bob := seedProfile(t, store, 2, "bob")
	carol := seedProfile(t, store, 3, "carol")

	_, err := store.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	require.NoError(t, err)
	_, err = store.CreateFollow(&models.Follow{FollowerID: carol.ID, FollowingID: bob.ID})
	require.NoError(t, err)

	// profiles following bob: alice and carol
	c, rec := newContext(t, http.MethodGet, "/profiles?following=2", "", 1)
	require.NoError(t, h.ListProfiles(c))

	var body struct {
		Results []models.Profile `json:"results"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Results, 2)
	assert.Equal(t, "alice", body.Results[0].Username)
	assert.Equal(t, "carol", body.Results[1].Username)
}

func TestListProfilesInvalidFollowingFilter(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())

	c, _ := newContext(t, http.MethodGet, "/profiles?following=abc", "", 1)
	httpError(t, h.ListProfiles(c), http.StatusBadRequest)
}

func TestListProfilesPagination(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())
	for i := uint(1); i <= 7; i++ {
		seedProfile(t, store, i, "user"+string(rune('a'+i-1)))
	}

	c, rec := newContext(t, http.MethodGet, "/profiles?page=2&limit=3", "", 1)
	require.NoError(t, h.ListProfiles(c))

	var body struct {
		Results []models.Profile `json:"results"`
		Meta    pageMeta         `json:"meta"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Results, 3)
	assert.Equal(t, uint(4), body.Results[0].ID)
	assert.Equal(t, 2, body.Meta.CurrentPage)
	assert.Equal(t, 3, body.Meta.TotalPages)
	assert.Equal(t, 7, body.Meta.TotalItems)
	assert.True(t, body.Meta.HasNextPage)
	assert.True(t, body.Meta.HasPreviousPage)
}
