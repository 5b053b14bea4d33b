package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meowtown/backend/internal/middleware"
	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/internal/repositories"
)

// currentUser resolves the authenticated caller to their profile row. The
// auth middleware only verifies identity; the profile row must already exist
// (created through registration).
func currentUser(c echo.Context, users repositories.UserRepository) (*models.User, error) {
	uid, _ := c.Get(middleware.ExternalUIDKey).(string)
	if uid == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := users.GetUserByExternalUID(c.Request().Context(), uid)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "No profile for authenticated user")
		}
		return nil, err
	}
	return user, nil
}
