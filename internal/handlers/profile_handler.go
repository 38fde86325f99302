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

// ProfileHandler handles HTTP requests related to profiles
type ProfileHandler struct {
	profileRepository repositories.ProfileRepository
	uploadDir         string
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo repositories.ProfileRepository, uploadDir string) *ProfileHandler {
	return &ProfileHandler{
		profileRepository: profileRepo,
		uploadDir:         uploadDir,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profiles", h.ListProfiles)
	g.POST("/profiles", h.CreateProfile)
	g.GET("/profiles/:id", h.GetProfile)
	g.PATCH("/profiles/:id", h.UpdateProfile)
	g.POST("/profiles/:id/upload-image_profile", h.UploadProfileImage)
}

// CreateProfile creates the caller's profile. A user has at most one.
func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.profileRepository.GetProfileByUserID(userID); err == nil {
		return detail(c, http.StatusBadRequest, "Profile already exists.")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile := &models.Profile{
		UserID:   userID,
		Username: req.Username,
		Bio:      req.Bio,
	}

	if err := h.profileRepository.CreateProfile(profile); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			// The uniqueness constraint is the authority: either the profile
			// raced into existence or the username is taken.
			return detail(c, http.StatusBadRequest, "Profile with this username already exists.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, profile)
}

// GetProfile retrieves a profile by id
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}

	profile, err := h.profileRepository.GetProfileByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return detail(c, http.StatusNotFound, "Profile not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateProfile partially updates a profile; only its owner may do so
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileRepository.GetProfileByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return detail(c, http.StatusNotFound, "Profile not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if profile.UserID != userID {
		return detail(c, http.StatusForbidden, "You do not have permission to perform this action.")
	}

	if req.Username != "" {
		profile.Username = req.Username
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}

	if err := h.profileRepository.UpdateProfile(profile); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return detail(c, http.StatusBadRequest, "Profile with this username already exists.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profile)
}

// ListProfiles lists profiles with optional username, bio and following
// filters, ascending by id
func (h *ProfileHandler) ListProfiles(c echo.Context) error {
	filter, err := filters.ParseProfileFilter(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profiles, err := h.profileRepository.ListProfiles(filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return paginated(c, profiles)
}

// UploadProfileImage sets a profile's picture; only its owner may do so
func (h *ProfileHandler) UploadProfileImage(c echo.Context) error {
	userID := getUserIDFromContext(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid profile ID")
	}

	profile, err := h.profileRepository.GetProfileByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return detail(c, http.StatusNotFound, "Profile not found.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if profile.UserID != userID {
		return detail(c, http.StatusForbidden, "You do not have permission to perform this action.")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Image file is required")
	}

	path, err := saveUpload(file, filepath.Join(h.uploadDir, "profile_pics"), profile.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile.ProfilePic = path
	if err := h.profileRepository.UpdateProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"id": profile.ID, "profile_pic": profile.ProfilePic})
}
