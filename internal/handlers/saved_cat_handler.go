package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/internal/repositories"
)

// SavedCatHandler handles HTTP requests for cat report bookmarks
type SavedCatHandler struct {
	savedCatRepository repositories.SavedCatRepository
	userRepository     repositories.UserRepository
	targetRegistry     *repositories.TargetRegistry
}

// NewSavedCatHandler creates a new SavedCatHandler
func NewSavedCatHandler(
	savedCatRepo repositories.SavedCatRepository,
	userRepo repositories.UserRepository,
	registry *repositories.TargetRegistry,
) *SavedCatHandler {
	return &SavedCatHandler{
		savedCatRepository: savedCatRepo,
		userRepository:     userRepo,
		targetRegistry:     registry,
	}
}

// RegisterSavedCatRoutes registers bookmark routes
func (h *SavedCatHandler) RegisterSavedCatRoutes(g *echo.Group) {
	g.POST("/cats/:id/save", h.SaveCat)
	g.DELETE("/cats/:id/save", h.UnsaveCat)
	g.GET("/users/me/saved-cats", h.ListSavedCats)
}

// SaveCat bookmarks a cat report for the caller
func (h *SavedCatHandler) SaveCat(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	catID := c.Param("id")
	target := models.TargetRef{Kind: models.TargetCat, ID: catID}
	if err := h.targetRegistry.Resolve(c.Request().Context(), target); err != nil {
		return respondError(c, err)
	}

	if err := h.savedCatRepository.SaveCat(c.Request().Context(), user.ID, catID); err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, echo.Map{"catId": catID, "saved": true}, "Cat report saved")
}

// UnsaveCat removes the caller's bookmark on a cat report
func (h *SavedCatHandler) UnsaveCat(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	catID := c.Param("id")
	if err := h.savedCatRepository.UnsaveCat(c.Request().Context(), user.ID, catID); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, echo.Map{"catId": catID, "saved": false}, "Cat report unsaved")
}

// ListSavedCats returns the caller's bookmarked reports, most recent first
func (h *SavedCatHandler) ListSavedCats(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	page, size, err := parsePaging(c)
	if err != nil {
		return respondError(c, err)
	}
	cats, total, err := h.savedCatRepository.ListSavedCats(c.Request().Context(), user.ID, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, cats, page, size, total)
}
