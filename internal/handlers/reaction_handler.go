package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nanosocial/backend/internal/filters"
	"github.com/nanosocial/backend/internal/models"
	"github.com/nanosocial/backend/internal/repositories"
)

// ReactionHandler handles HTTP requests related to post reactions
type ReactionHandler struct {
	reactionRepository repositories.ReactionRepository
	postRepository     repositories.PostRepository
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionRepo repositories.ReactionRepository, postRepo repositories.PostRepository) *ReactionHandler {
	return &ReactionHandler{
		reactionRepository: reactionRepo,
		postRepository:     postRepo,
	}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/reactions", h.CreateReaction)
	g.GET("/reactions", h.ListReactions)
}

// CreateReaction records a Like or Dislike on a post. A user never reacts to
// their own post, and at most once to any post; the second rule is backed by
// the storage-level uniqueness constraint, so concurrent duplicates resolve
// with exactly one success.
func (h *ReactionHandler) CreateReaction(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), req.Post)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return detail(c, http.StatusNotFound, "Post not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID == userID {
		return detail(c, http.StatusBadRequest, "You cannot like your own post.")
	}

	reaction := &models.UserReaction{
		UserID:   userID,
		PostID:   req.Post,
		Reaction: req.Reaction,
	}

	if err := h.reactionRepository.CreateReaction(reaction); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return detail(c, http.StatusBadRequest, "You have already reacted to this post.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, reaction)
}

// ListReactions lists the caller's reactions, optionally narrowed by post or
// reaction kind
func (h *ReactionHandler) ListReactions(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	filter := filters.ParseReactionFilter(c.QueryParams())
	reactions, err := h.reactionRepository.ListReactions(userID, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return paginated(c, reactions)
}
