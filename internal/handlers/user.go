package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meowtown/backend/internal/middleware"
	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/internal/repositories"
)

// UserHandler handles user profile HTTP requests. Identity itself comes
// from the auth provider; this handler only manages the profile row the
// social subsystem references.
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterUserRoutes registers profile routes on the authenticated group
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/auth/register", h.Register)
	g.GET("/users/me", h.GetProfile)
	g.PUT("/users/me", h.UpdateProfile)
}

// Register links the authenticated external identity to a profile row
func (h *UserHandler) Register(c echo.Context) error {
	uid, _ := c.Get(middleware.ExternalUIDKey).(string)
	if uid == "" {
		return respondError(c, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated"))
	}

	var req models.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	if existing, err := h.userRepository.GetUserByExternalUID(c.Request().Context(), uid); err == nil {
		return respondOK(c, existing, "Already registered")
	}

	user := &models.User{
		ExternalUID: uid,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		AvatarURL:   req.AvatarURL,
	}
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, user, "Profile created")
}

// GetProfile returns the caller's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, user, "")
}

// UpdateProfile updates the caller's profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.AvatarURL != "" {
		user.AvatarURL = req.AvatarURL
	}
	if err := h.userRepository.UpdateUser(c.Request().Context(), user); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, user, "Profile updated")
}
