package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/internal/repositories"
)

// SightingHandler handles HTTP requests for cat sightings
type SightingHandler struct {
	sightingRepository     repositories.SightingRepository
	catRepository          repositories.CatRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewSightingHandler creates a new SightingHandler
func NewSightingHandler(
	sightingRepo repositories.SightingRepository,
	catRepo repositories.CatRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *SightingHandler {
	return &SightingHandler{
		sightingRepository:     sightingRepo,
		catRepository:          catRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterSightingRoutes registers sighting-related routes
func (h *SightingHandler) RegisterSightingRoutes(g *echo.Group) {
	g.POST("/cats/:id/sightings", h.CreateSighting)
	g.GET("/cats/:id/sightings", h.ListSightings)
	g.PUT("/sightings/:id/verify", h.VerifySighting)
	g.DELETE("/sightings/:id", h.DeleteSighting)
}

// CreateSighting reports a sighting of a registered cat
func (h *SightingHandler) CreateSighting(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	cat, err := h.catRepository.GetCatByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	var req models.CreateSightingRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	sighting := &models.Sighting{
		CatID:      cat.ID,
		ReporterID: user.ID,
		Location:   req.Location,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Notes:      req.Notes,
		ImageURL:   req.ImageURL,
	}
	if req.SightingTime != nil {
		sighting.SightingTime = *req.SightingTime
	} else {
		sighting.SightingTime = time.Now()
	}

	if err := h.sightingRepository.CreateSighting(c.Request().Context(), sighting); err != nil {
		return respondError(c, err)
	}

	if cat.ReportedBy != "" && cat.ReportedBy != user.ID {
		notif := &models.Notification{
			UserID:    cat.ReportedBy,
			Type:      models.NotificationNewSighting,
			Title:     "New sighting of " + cat.Name,
			Message:   user.DisplayName + " spotted " + cat.Name + " at " + sighting.Location,
			RelatedID: &sighting.ID,
		}
		if err := h.notificationRepository.CreateNotification(c.Request().Context(), notif); err != nil {
			log.Error().Err(err).Str("sighting_id", sighting.ID).Msg("creating sighting notification")
		}
	}

	return respondCreated(c, sighting, "Sighting reported")
}

// ListSightings returns a page of sightings for a cat, most recent first
func (h *SightingHandler) ListSightings(c echo.Context) error {
	cat, err := h.catRepository.GetCatByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	page, size, err := parsePaging(c)
	if err != nil {
		return respondError(c, err)
	}
	sightings, total, err := h.sightingRepository.ListByCatID(c.Request().Context(), cat.ID, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, sightings, page, size, total)
}

// VerifySighting marks a sighting as verified; moderators only. The
// sighting's reporter is notified.
func (h *SightingHandler) VerifySighting(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}
	if !user.IsModerator() {
		return respondError(c, repositories.ErrForbidden)
	}

	sighting, err := h.sightingRepository.VerifySighting(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	if sighting.ReporterID != "" && sighting.ReporterID != user.ID {
		notif := &models.Notification{
			UserID:    sighting.ReporterID,
			Type:      models.NotificationSightingVerified,
			Title:     "Sighting verified",
			Message:   "Your sighting at " + sighting.Location + " has been verified",
			RelatedID: &sighting.ID,
		}
		if err := h.notificationRepository.CreateNotification(c.Request().Context(), notif); err != nil {
			log.Error().Err(err).Str("sighting_id", sighting.ID).Msg("creating verification notification")
		}
	}

	return respondOK(c, sighting, "Sighting verified")
}

// DeleteSighting removes a sighting and its attached interactions; only the
// reporter or a moderator may do so
func (h *SightingHandler) DeleteSighting(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	sighting, err := h.sightingRepository.GetSightingByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if sighting.ReporterID != user.ID && !user.IsModerator() {
		return respondError(c, repositories.ErrForbidden)
	}

	if err := h.sightingRepository.DeleteSighting(c.Request().Context(), sighting.ID); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nil, "Sighting deleted")
}
