package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nanosocial/backend/internal/middleware"
	"github.com/nanosocial/backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartImageRequest(t *testing.T, target, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUploadProfileImage(t *testing.T) {
	store := memory.New()
	uploadDir := t.TempDir()
	h := NewProfileHandler(store, uploadDir)
	seedProfile(t, store, 1, "admin")

	e := echo.New()
	req := multipartImageRequest(t, "/profiles/1/upload-image_profile", "Avatar Pic.PNG")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserIDKey, uint(1))
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.UploadProfileImage(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ID         uint   `json:"id"`
		ProfilePic string `json:"profile_pic"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, uint(1), body.ID)

	name := filepath.Base(body.ProfilePic)
	assert.True(t, strings.HasPrefix(name, "admin-"), "stored name %q should carry the username slug", name)
	assert.True(t, strings.HasSuffix(name, ".PNG"), "stored name %q should keep the original extension", name)

	_, err := os.Stat(body.ProfilePic)
	require.NoError(t, err)

	got, err := store.GetProfileByID(1)
	require.NoError(t, err)
	assert.Equal(t, body.ProfilePic, got.ProfilePic)
}

func TestUploadProfileImageForbiddenForNonOwner(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())
	seedProfile(t, store, 1, "admin")

	e := echo.New()
	req := multipartImageRequest(t, "/profiles/1/upload-image_profile", "avatar.png")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserIDKey, uint(2))
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, h.UploadProfileImage(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You do not have permission to perform this action.", detailOf(t, rec))
}

func TestUploadProfileImageMissingFile(t *testing.T) {
	store := memory.New()
	h := NewProfileHandler(store, t.TempDir())
	seedProfile(t, store, 1, "admin")

	c, _ := newContext(t, http.MethodPost, "/profiles/1/upload-image_profile", "", 1)
	c.SetParamNames("id")
	c.SetParamValues("1")
	httpError(t, h.UploadProfileImage(c), http.StatusBadRequest)
}

func TestUploadPostImage(t *testing.T) {
	store := memory.New()
	uploadDir := t.TempDir()
	h := NewPostHandler(store, store, uploadDir)
	post := seedPost(t, store, 1, "with image")

	e := echo.New()
	req := multipartImageRequest(t, "/posts/"+post.ID.Hex()+"/upload-image_post", "shot.jpg")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextUserIDKey, uint(1))
	c.SetParamNames("id")
	c.SetParamValues(post.ID.Hex())

	require.NoError(t, h.UploadPostImage(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	got, err := store.GetPostByID(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.NotEmpty(t, got.Image)
	assert.Equal(t, filepath.Join(uploadDir, "post_image"), filepath.Dir(got.Image))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "avatar-pic", slugify("Avatar Pic"))
	assert.Equal(t, "a-b-c", slugify("a_b.c"))
	assert.Equal(t, "caf", slugify("café!"))
	assert.Equal(t, "", slugify("!!!"))
}
