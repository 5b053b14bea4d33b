package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/internal/repositories"
)

// CatHandler handles HTTP requests for cat reports
type CatHandler struct {
	catRepository          repositories.CatRepository
	likeRepository         repositories.LikeRepository
	commentRepository      repositories.CommentRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	targetRegistry         *repositories.TargetRegistry
}

// NewCatHandler creates a new CatHandler
func NewCatHandler(
	catRepo repositories.CatRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	registry *repositories.TargetRegistry,
) *CatHandler {
	return &CatHandler{
		catRepository:          catRepo,
		likeRepository:         likeRepo,
		commentRepository:      commentRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		targetRegistry:         registry,
	}
}

// RegisterCatRoutes registers cat-related routes
func (h *CatHandler) RegisterCatRoutes(g *echo.Group) {
	g.POST("/cats", h.CreateCat)
	g.GET("/cats", h.ListCats)
	g.GET("/cats/nearby", h.FindNearby)
	g.GET("/cats/search", h.SearchCats)
	g.GET("/cats/stats", h.GetStats)
	g.GET("/cats/:id", h.GetCat)
	g.PUT("/cats/:id", h.UpdateCat)
	g.DELETE("/cats/:id", h.DeleteCat)
	g.POST("/cats/:id/like", h.ToggleLike)
}

// CatView is a cat report joined with its social counts for list/detail
// responses.
type CatView struct {
	models.Cat
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
	IsLiked      bool  `json:"is_liked"`
}

// assembleViews joins like counts, comment counts and the viewer's liked
// flags onto a list of cats in batched queries instead of one set per cat.
func (h *CatHandler) assembleViews(c echo.Context, cats []models.Cat, viewerID string) ([]CatView, error) {
	ctx := c.Request().Context()

	ids := make([]string, len(cats))
	for i, cat := range cats {
		ids[i] = cat.ID
	}

	likeCounts, err := h.likeRepository.CountForTargets(ctx, models.TargetCat, ids)
	if err != nil {
		return nil, err
	}
	commentCounts, err := h.commentRepository.CountForTargets(ctx, models.TargetCat, ids)
	if err != nil {
		return nil, err
	}
	var likedSet map[string]bool
	if viewerID != "" {
		likedSet, err = h.likeRepository.LikedTargets(ctx, viewerID, models.TargetCat, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]CatView, len(cats))
	for i, cat := range cats {
		views[i] = CatView{
			Cat:          cat,
			LikeCount:    likeCounts[cat.ID],
			CommentCount: commentCounts[cat.ID],
			IsLiked:      likedSet[cat.ID],
		}
	}
	return views, nil
}

// CreateCat registers a new cat report
func (h *CatHandler) CreateCat(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	var req models.CreateCatRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	cat := &models.Cat{
		Name:         req.Name,
		Description:  req.Description,
		EstimatedAge: req.EstimatedAge,
		Gender:       req.Gender,
		Location:     req.Location,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		ReportedBy:   user.ID,
	}
	if req.IsNeutered != nil {
		cat.IsNeutered = *req.IsNeutered
	}
	for _, url := range req.ImageURLs {
		cat.Images = append(cat.Images, models.CatImage{URL: url})
	}
	for _, value := range req.Characteristics {
		cat.Characteristics = append(cat.Characteristics, models.CatCharacteristic{Value: value})
	}

	if err := h.catRepository.CreateCat(c.Request().Context(), cat); err != nil {
		return respondError(c, err)
	}

	return respondCreated(c, cat, "Cat report registered")
}

// GetCat returns a single cat report with social counts
func (h *CatHandler) GetCat(c echo.Context) error {
	cat, err := h.catRepository.GetCatByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	viewerID := ""
	if user, err := currentUser(c, h.userRepository); err == nil {
		viewerID = user.ID
	}

	views, err := h.assembleViews(c, []models.Cat{*cat}, viewerID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, views[0], "")
}

// ListCats returns a filtered, paginated cat listing
func (h *CatHandler) ListCats(c echo.Context) error {
	page, size, err := parsePaging(c)
	if err != nil {
		return respondError(c, err)
	}

	switch c.QueryParam("sortBy") {
	case "", "createdAt", "created_at":
	default:
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid sortBy parameter"))
	}
	switch c.QueryParam("sortDirection") {
	case "", "asc", "desc":
	default:
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid sortDirection parameter"))
	}

	filter := models.CatFilter{
		Name:          c.QueryParam("name"),
		Location:      c.QueryParam("location"),
		Gender:        c.QueryParam("gender"),
		SortBy:        c.QueryParam("sortBy"),
		SortDirection: c.QueryParam("sortDirection"),
	}
	if raw := c.QueryParam("neutered"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid neutered parameter"))
		}
		filter.IsNeutered = &v
	}
	if raw := c.QueryParam("isActive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid isActive parameter"))
		}
		filter.IsActive = &v
	}
	if raw := c.QueryParams()["characteristics"]; len(raw) > 0 {
		filter.Characteristics = raw
	}

	cats, total, err := h.catRepository.ListCats(c.Request().Context(), filter, page, size)
	if err != nil {
		return respondError(c, err)
	}

	viewerID := ""
	if user, err := currentUser(c, h.userRepository); err == nil {
		viewerID = user.ID
	}

	views, err := h.assembleViews(c, cats, viewerID)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, views, page, size, total)
}

// FindNearby returns active cats within a radius of a center point, closest
// first
func (h *CatHandler) FindNearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid lat parameter"))
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid lng parameter"))
	}

	radius := 2000.0
	if raw := c.QueryParam("radius"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || radius <= 0 {
			return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid radius parameter"))
		}
	}
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter"))
		}
	}

	nearby, err := h.catRepository.FindNearby(c.Request().Context(), lat, lng, radius, limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nearby, "")
}

// SearchCats returns active cats whose name contains the query
func (h *CatHandler) SearchCats(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Missing query parameter"))
	}
	page, size, err := parsePaging(c)
	if err != nil {
		return respondError(c, err)
	}

	cats, total, err := h.catRepository.SearchByName(c.Request().Context(), query, page, size)
	if err != nil {
		return respondError(c, err)
	}

	views, err := h.assembleViews(c, cats, "")
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, views, page, size, total)
}

// GetStats returns aggregate report counts for dashboards
func (h *CatHandler) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	active, err := h.catRepository.CountActive(ctx)
	if err != nil {
		return respondError(c, err)
	}
	newThisWeek, err := h.catRepository.CountNewSince(ctx, time.Now().AddDate(0, 0, -7))
	if err != nil {
		return respondError(c, err)
	}
	neutered, err := h.catRepository.CountNeutered(ctx)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, models.CatStats{
		ActiveCount:   active,
		NewThisWeek:   newThisWeek,
		NeuteredCount: neutered,
	}, "")
}

// UpdateCat updates a report; only the reporter or a moderator may do so
func (h *CatHandler) UpdateCat(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateCatRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	cat, err := h.catRepository.GetCatByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if cat.ReportedBy != user.ID && !user.IsModerator() {
		return respondError(c, repositories.ErrForbidden)
	}

	if req.Name != "" {
		cat.Name = req.Name
	}
	if req.Description != nil {
		cat.Description = *req.Description
	}
	if req.EstimatedAge != nil {
		cat.EstimatedAge = *req.EstimatedAge
	}
	if req.Gender != "" {
		cat.Gender = req.Gender
	}
	if req.IsNeutered != nil {
		cat.IsNeutered = *req.IsNeutered
	}
	if req.Location != "" {
		cat.Location = req.Location
	}
	if req.Latitude != nil {
		cat.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		cat.Longitude = req.Longitude
	}
	if req.LastSeenAt != nil {
		cat.LastSeenAt = req.LastSeenAt
	}

	if err := h.catRepository.UpdateCat(c.Request().Context(), cat); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, cat, "Cat report updated")
}

// DeleteCat deactivates a report and purges its likes and notifications.
// Comments and sightings stay with the surviving row.
func (h *CatHandler) DeleteCat(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	cat, err := h.catRepository.GetCatByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if cat.ReportedBy != user.ID && !user.IsModerator() {
		return respondError(c, repositories.ErrForbidden)
	}

	if err := h.catRepository.DeactivateCat(c.Request().Context(), cat.ID); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nil, "Cat report removed")
}

// ToggleLike toggles the caller's like on a cat and returns the new state
func (h *CatHandler) ToggleLike(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	target := models.TargetRef{Kind: models.TargetCat, ID: c.Param("id")}
	if err := h.targetRegistry.Resolve(c.Request().Context(), target); err != nil {
		return respondError(c, err)
	}

	result, err := h.likeRepository.ToggleLike(c.Request().Context(), user.ID, target)
	if err != nil {
		return respondError(c, err)
	}

	if result.IsLiked {
		if cat, err := h.catRepository.GetCatByID(c.Request().Context(), target.ID); err == nil &&
			cat.ReportedBy != "" && cat.ReportedBy != user.ID {
			notif := &models.Notification{
				UserID:    cat.ReportedBy,
				Type:      models.NotificationLike,
				Title:     "New like on your cat report",
				Message:   user.DisplayName + " liked " + cat.Name,
				RelatedID: &cat.ID,
			}
			if err := h.notificationRepository.CreateNotification(c.Request().Context(), notif); err != nil {
				log.Error().Err(err).Str("cat_id", cat.ID).Msg("creating like notification")
			}
		}
	}

	return respondOK(c, echo.Map{
		"catId":     result.TargetID,
		"isLiked":   result.IsLiked,
		"likeCount": result.LikeCount,
	}, "")
}
