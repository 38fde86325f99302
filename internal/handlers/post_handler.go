package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nanosocial/backend/internal/filters"
	"github.com/nanosocial/backend/internal/models"
	"github.com/nanosocial/backend/internal/repositories"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	profileRepository repositories.ProfileRepository
	uploadDir         string
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, profileRepo repositories.ProfileRepository, uploadDir string) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		profileRepository: profileRepo,
		uploadDir:         uploadDir,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.POST("/posts/:id/upload-image_post", h.UploadPostImage)
}

// CreatePost creates a new, unpublished post owned by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		UserID:               userID,
		Title:                req.Title,
		Message:              req.Message,
		Hashtag:              req.Hashtag,
		ScheduledPublishTime: req.ScheduledPublishTime,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return detail(c, http.StatusNotFound, "Post not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, post)
}

// ListPosts lists posts with optional username, title, message and hashtag
// filters (ANDed), ordered ascending by scheduled publish time
func (h *PostHandler) ListPosts(c echo.Context) error {
	filter, username := filters.ParsePostFilter(c.QueryParams())
	if username != "" {
		ownerIDs, err := h.profileRepository.GetUserIDsByUsername(username)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		filter.OwnerIDs = ownerIDs
		filter.HasOwnerFilter = true
	}

	posts, err := h.postRepository.ListPosts(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return paginated(c, posts)
}

// UploadPostImage sets a post's image; only its owner may do so
func (h *PostHandler) UploadPostImage(c echo.Context) error {
	userID := getUserIDFromContext(c)
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return detail(c, http.StatusNotFound, "Post not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != userID {
		return detail(c, http.StatusForbidden, "You do not have permission to perform this action.")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}

	path, err := saveUpload(file, filepath.Join(h.uploadDir, "post_image"), strconv.FormatUint(uint64(post.UserID), 10))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post.Image = path
	if err := h.postRepository.UpdatePost(c.Request().Context(), postID, post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"id": post.ID, "image": post.Image})
}
