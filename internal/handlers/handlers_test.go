package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nanosocial/backend/internal/middleware"
	"github.com/nanosocial/backend/internal/models"
	"github.com/nanosocial/backend/internal/repositories/memory"
	"github.com/stretchr/testify/require"
)

// newContext builds an echo context for a handler call, authenticated as the
// given user (0 means unauthenticated).
func newContext(t *testing.T, method, target, body string, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != 0 {
		c.Set(middleware.ContextUserIDKey, userID)
	}
	return c, rec
}

// decodeBody unmarshals the recorded response body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// detailOf returns the "detail" message from the recorded response.
func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	return body["detail"]
}

// seedProfile creates a profile directly in the store.
func seedProfile(t *testing.T, store *memory.Store, userID uint, username string) *models.Profile {
	t.Helper()
	p := &models.Profile{UserID: userID, Username: username, Bio: username + " bio"}
	require.NoError(t, store.CreateProfile(p))
	return p
}

// seedPost creates a post directly in the store.
func seedPost(t *testing.T, store *memory.Store, userID uint, title string) *models.Post {
	t.Helper()
	p := &models.Post{UserID: userID, Title: title, Message: "about " + title}
	require.NoError(t, store.CreatePost(context.Background(), p))
	return p
}

// httpError asserts err is an *echo.HTTPError with the given status.
func httpError(t *testing.T, err error, status int) *echo.HTTPError {
	t.Helper()
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	require.Equal(t, status, httpErr.Code)
	return httpErr
}

// pageMeta is the pagination meta block of list responses.
type pageMeta struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalItems      int  `json:"totalItems"`
	ItemsPerPage    int  `json:"itemsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}
