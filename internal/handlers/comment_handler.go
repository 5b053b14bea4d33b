package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/internal/repositories"
)

// kindFromPath maps the URL segment naming a target collection to its
// TargetKind.
func kindFromPath(segment string) (models.TargetKind, bool) {
	switch segment {
	case "cats":
		return models.TargetCat, true
	case "sightings":
		return models.TargetSighting, true
	case "posts":
		return models.TargetPost, true
	case "comments":
		return models.TargetComment, true
	}
	return "", false
}

// CommentHandler handles HTTP requests for comments on any target kind
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	targetRegistry         *repositories.TargetRegistry
	catRepository          repositories.CatRepository
	sightingRepository     repositories.SightingRepository
	postRepository         repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler. The per-kind repositories
// are only consulted to find the target's owner for notifications.
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	registry *repositories.TargetRegistry,
	catRepo repositories.CatRepository,
	sightingRepo repositories.SightingRepository,
	postRepo repositories.PostRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		targetRegistry:         registry,
		catRepository:          catRepo,
		sightingRepository:     sightingRepo,
		postRepository:         postRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes. The same pair of
// handlers serves every commentable kind; the kind comes from the path.
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/:kind/:id/comments", h.CreateComment)
	g.GET("/:kind/:id/comments", h.ListComments)
	g.GET("/comments/:id/replies", h.ListReplies)
	g.DELETE("/comments/:id", h.DeleteComment)
}

func (h *CommentHandler) targetFromPath(c echo.Context) (models.TargetRef, error) {
	kind, ok := kindFromPath(c.Param("kind"))
	if !ok {
		return models.TargetRef{}, echo.NewHTTPError(http.StatusBadRequest, "Unknown target kind")
	}
	return models.TargetRef{Kind: kind, ID: c.Param("id")}, nil
}

// CreateComment creates a comment (or reply) on a target
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	target, err := h.targetFromPath(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	if err := h.targetRegistry.Resolve(c.Request().Context(), target); err != nil {
		return respondError(c, err)
	}

	comment := &models.Comment{
		AuthorID:   user.ID,
		TargetType: target.Kind,
		TargetID:   target.ID,
		Content:    req.Content,
		ParentID:   req.ParentID,
	}
	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return respondError(c, err)
	}

	if comment.ParentID != nil {
		h.notifyParentAuthor(c, user, comment)
	} else {
		h.notifyTargetOwner(c, user, comment, target)
	}

	comment.Replies = []models.Comment{}
	return respondCreated(c, comment, "Comment added")
}

// notifyTargetOwner tells the commented-upon entity's owner about a new
// comment. Failures only log; the comment itself is already committed.
func (h *CommentHandler) notifyTargetOwner(c echo.Context, author *models.User, comment *models.Comment, target models.TargetRef) {
	ctx := c.Request().Context()

	var ownerID string
	switch target.Kind {
	case models.TargetCat:
		if cat, err := h.catRepository.GetCatByID(ctx, target.ID); err == nil {
			ownerID = cat.ReportedBy
		}
	case models.TargetSighting:
		if sighting, err := h.sightingRepository.GetSightingByID(ctx, target.ID); err == nil {
			ownerID = sighting.ReporterID
		}
	case models.TargetPost:
		if h.postRepository != nil {
			if post, err := h.postRepository.GetPostByID(ctx, target.ID); err == nil {
				ownerID = post.AuthorID
			}
		}
	case models.TargetComment:
		if parent, err := h.commentRepository.GetCommentByID(ctx, target.ID); err == nil {
			ownerID = parent.AuthorID
		}
	}
	if ownerID == "" || ownerID == author.ID {
		return
	}

	noun := map[models.TargetKind]string{
		models.TargetCat:      "cat report",
		models.TargetSighting: "sighting",
		models.TargetPost:     "post",
		models.TargetComment:  "comment",
	}[target.Kind]

	notif := &models.Notification{
		UserID:    ownerID,
		Type:      models.NotificationComment,
		Title:     "New comment",
		Message:   author.DisplayName + " commented on your " + noun,
		RelatedID: &comment.ID,
	}
	if err := h.notificationRepository.CreateNotification(ctx, notif); err != nil {
		log.Error().Err(err).Str("comment_id", comment.ID).Msg("creating comment notification")
	}
}

// notifyParentAuthor tells the parent comment's author about a new reply.
// Failures only log; the comment itself is already committed.
func (h *CommentHandler) notifyParentAuthor(c echo.Context, author *models.User, comment *models.Comment) {
	if comment.ParentID == nil {
		return
	}
	parent, err := h.commentRepository.GetCommentByID(c.Request().Context(), *comment.ParentID)
	if err != nil || parent.AuthorID == author.ID {
		return
	}
	notif := &models.Notification{
		UserID:    parent.AuthorID,
		Type:      models.NotificationComment,
		Title:     "New reply to your comment",
		Message:   author.DisplayName + " replied to your comment",
		RelatedID: &comment.ID,
	}
	if err := h.notificationRepository.CreateNotification(c.Request().Context(), notif); err != nil {
		log.Error().Err(err).Str("comment_id", comment.ID).Msg("creating reply notification")
	}
}

// ListComments returns a page of top-level comments on a target, oldest
// first, replies included
func (h *CommentHandler) ListComments(c echo.Context) error {
	target, err := h.targetFromPath(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.targetRegistry.Resolve(c.Request().Context(), target); err != nil {
		return respondError(c, err)
	}

	page, size, err := parsePaging(c)
	if err != nil {
		return respondError(c, err)
	}
	comments, total, err := h.commentRepository.ListTopLevel(c.Request().Context(), target, page, size)
	if err != nil {
		return respondError(c, err)
	}
	return respondPage(c, comments, page, size, total)
}

// ListReplies returns the direct replies of a comment, oldest first
func (h *CommentHandler) ListReplies(c echo.Context) error {
	if _, err := h.commentRepository.GetCommentByID(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}

	replies, err := h.commentRepository.ListReplies(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, replies, "")
}

// DeleteComment removes a comment and its replies; only the author or a
// moderator may do so
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	comment, err := h.commentRepository.GetCommentByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if comment.AuthorID != user.ID && !user.IsModerator() {
		return respondError(c, repositories.ErrForbidden)
	}

	if err := h.commentRepository.DeleteComment(c.Request().Context(), comment.ID); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, nil, "Comment deleted")
}
