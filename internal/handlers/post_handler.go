package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/meowtown/backend/internal/models"
	"github.com/meowtown/backend/internal/repositories"
)

// PostHandler handles HTTP requests for community posts
type PostHandler struct {
	postRepository         repositories.PostRepository
	likeRepository         repositories.LikeRepository
	commentRepository      repositories.CommentRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	targetRegistry         *repositories.TargetRegistry
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	registry *repositories.TargetRegistry,
) *PostHandler {
	return &PostHandler{
		postRepository:         postRepo,
		likeRepository:         likeRepo,
		commentRepository:      commentRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		targetRegistry:         registry,
	}
}

// RegisterPostRoutes registers community post routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/like", h.ToggleLike)
}

// PostView is a post joined with its social counts.
type PostView struct {
	models.Post
	LikeCount    int64 `json:"like_count"`
	CommentCount int64 `json:"comment_count"`
}

// CreatePost creates a community post
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	post := &models.Post{
		AuthorID:  user.ID,
		Content:   req.Content,
		CatName:   req.CatName,
		Location:  req.Location,
		Type:      req.Type,
		ImageURLs: req.ImageURLs,
	}
	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, post, "Post created")
}

// ListPosts returns a page of community posts, newest first, with social
// counts joined in two batched queries
func (h *PostHandler) ListPosts(c echo.Context) error {
	page, size, err := parsePaging(c)
	if err != nil {
		return respondError(c, err)
	}

	posts, total, err := h.postRepository.GetAllPosts(c.Request().Context(),
		int64((page-1)*size), int64(size))
	if err != nil {
		return respondError(c, err)
	}

	ids := make([]string, len(posts))
	for i, post := range posts {
		ids[i] = post.ID.Hex()
	}
	likeCounts, err := h.likeRepository.CountForTargets(c.Request().Context(), models.TargetPost, ids)
	if err != nil {
		return respondError(c, err)
	}
	commentCounts, err := h.commentRepository.CountForTargets(c.Request().Context(), models.TargetPost, ids)
	if err != nil {
		return respondError(c, err)
	}

	views := make([]PostView, len(posts))
	for i, post := range posts {
		views[i] = PostView{
			Post:         post,
			LikeCount:    likeCounts[post.ID.Hex()],
			CommentCount: commentCounts[post.ID.Hex()],
		}
	}
	return respondPage(c, views, page, size, total)
}

// GetPost returns a single post with its social counts
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	target := models.TargetRef{Kind: models.TargetPost, ID: post.ID.Hex()}
	likeCount, err := h.likeRepository.CountForTarget(c.Request().Context(), target)
	if err != nil {
		return respondError(c, err)
	}
	commentCount, err := h.commentRepository.CountForTarget(c.Request().Context(), target)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, PostView{Post: *post, LikeCount: likeCount, CommentCount: commentCount}, "")
}

// DeletePost removes a post and purges its likes, comments and
// notifications. The post lives in MongoDB while its interactions live in
// PostgreSQL, so the cleanup is an explicit step rather than a database
// cascade.
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if post.AuthorID != user.ID && !user.IsModerator() {
		return respondError(c, repositories.ErrForbidden)
	}

	id := post.ID.Hex()
	if err := h.postRepository.DeletePost(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	target := models.TargetRef{Kind: models.TargetPost, ID: id}
	if err := h.likeRepository.DeleteAllForTarget(c.Request().Context(), nil, target); err != nil {
		log.Error().Err(err).Str("post_id", id).Msg("purging post likes")
	}
	if err := h.commentRepository.DeleteAllForTarget(c.Request().Context(), nil, target); err != nil {
		log.Error().Err(err).Str("post_id", id).Msg("purging post comments")
	}
	if err := h.notificationRepository.DeleteByRelatedID(c.Request().Context(), nil, id); err != nil {
		log.Error().Err(err).Str("post_id", id).Msg("purging post notifications")
	}

	return respondOK(c, nil, "Post deleted")
}

// ToggleLike toggles the caller's like on a post
func (h *PostHandler) ToggleLike(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return respondError(c, err)
	}

	target := models.TargetRef{Kind: models.TargetPost, ID: c.Param("id")}
	if err := h.targetRegistry.Resolve(c.Request().Context(), target); err != nil {
		return respondError(c, err)
	}

	result, err := h.likeRepository.ToggleLike(c.Request().Context(), user.ID, target)
	if err != nil {
		return respondError(c, err)
	}

	if result.IsLiked {
		if post, err := h.postRepository.GetPostByID(c.Request().Context(), target.ID); err == nil &&
			post.AuthorID != "" && post.AuthorID != user.ID {
			id := post.ID.Hex()
			notif := &models.Notification{
				UserID:    post.AuthorID,
				Type:      models.NotificationLike,
				Title:     "New like on your post",
				Message:   user.DisplayName + " liked your post",
				RelatedID: &id,
			}
			if err := h.notificationRepository.CreateNotification(c.Request().Context(), notif); err != nil {
				log.Error().Err(err).Str("post_id", id).Msg("creating like notification")
			}
		}
	}

	return respondOK(c, echo.Map{
		"postId":    result.TargetID,
		"isLiked":   result.IsLiked,
		"likeCount": result.LikeCount,
	}, "")
}
