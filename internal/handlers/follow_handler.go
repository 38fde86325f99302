package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nanosocial/backend/internal/models"
	"github.com/nanosocial/backend/internal/repositories"
)

// FollowHandler handles follow-graph HTTP requests
type FollowHandler struct {
	followRepository  repositories.FollowRepository
	profileRepository repositories.ProfileRepository
	allowSelfFollow   bool
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, profileRepo repositories.ProfileRepository, allowSelfFollow bool) *FollowHandler {
	return &FollowHandler{
		followRepository:  followRepo,
		profileRepository: profileRepo,
		allowSelfFollow:   allowSelfFollow,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/set-follow/:user_id", h.SetFollow)
	g.POST("/unfollow/:user_id", h.Unfollow)
	g.GET("/my-followings", h.MyFollowings)
	g.GET("/my-subscribers", h.MySubscribers)
	g.GET("/following_to_me", h.FollowingToMe)
}

// currentProfile resolves the caller's profile.
func (h *FollowHandler) currentProfile(c echo.Context) (*models.Profile, error) {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	profile, err := h.profileRepository.GetProfileByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, detail(c, http.StatusNotFound, "Profile not found.")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return profile, nil
}

// targetProfile resolves the profile addressed by the :user_id route param.
func (h *FollowHandler) targetProfile(c echo.Context) (*models.Profile, error) {
	targetUserID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	profile, err := h.profileRepository.GetProfileByUserID(uint(targetUserID))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, detail(c, http.StatusNotFound, "User not found.")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return profile, nil
}

// SetFollow adds the caller's follow edge toward the target user. Repeating
// the call is not an error: the edge either exists or it does not.
func (h *FollowHandler) SetFollow(c echo.Context) error {
	current, err := h.currentProfile(c)
	if current == nil {
		return err
	}
	target, err := h.targetProfile(c)
	if target == nil {
		return err
	}

	if !h.allowSelfFollow && current.ID == target.ID {
		return detail(c, http.StatusBadRequest, "You cannot follow yourself.")
	}

	created, err := h.followRepository.CreateFollow(&models.Follow{
		FollowerID:  current.ID,
		FollowingID: target.ID,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !created {
		return detail(c, http.StatusOK, fmt.Sprintf(
			"You already have following to the user :%s with user_id: %d.",
			target.Username, target.UserID))
	}

	return detail(c, http.StatusOK, "You have subscribed successfully.")
}

// Unfollow removes the caller's follow edge toward the target user.
func (h *FollowHandler) Unfollow(c echo.Context) error {
	current, err := h.currentProfile(c)
	if current == nil {
		return err
	}
	target, err := h.targetProfile(c)
	if target == nil {
		return err
	}

	removed, err := h.followRepository.DeleteFollow(current.ID, target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !removed {
		return detail(c, http.StatusOK, fmt.Sprintf(
			"You already have unsubscribed from the user :%s with user_id: %d.",
			target.Username, target.UserID))
	}

	return detail(c, http.StatusOK, "You unsubscribed successfully.")
}

// MyFollowings lists the profiles the caller follows
func (h *FollowHandler) MyFollowings(c echo.Context) error {
	current, err := h.currentProfile(c)
	if current == nil {
		return err
	}

	profiles, err := h.followRepository.GetFollowing(current.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return paginated(c, profiles)
}

// MySubscribers lists the profiles following the caller
func (h *FollowHandler) MySubscribers(c echo.Context) error {
	current, err := h.currentProfile(c)
	if current == nil {
		return err
	}

	profiles, err := h.followRepository.GetFollowers(current.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return paginated(c, profiles)
}

// FollowingToMe lists the profiles that follow the caller
func (h *FollowHandler) FollowingToMe(c echo.Context) error {
	return h.MySubscribers(c)
}
