package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devlink/devlink-api/internal/api/metrics"
	"github.com/devlink/devlink-api/internal/core/domain"
	"github.com/devlink/devlink-api/internal/core/ports"
)

// PostHandler handles HTTP requests for post aggregates and their like
// and comment collections.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

type createPostRequest struct {
	Text string `json:"text" validate:"required"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

// List handles GET /posts — all posts, newest first.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Post
// @Failure      401  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200  {object}  domain.Post
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Create handles POST /posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post text"
// @Success      200   {object}  domain.Post
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.service.Create(c.Request().Context(), actor, req.Text)
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/:id — owner only.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "post deleted"})
}

// Like handles PUT /posts/like/:id.
//
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200  {array}  domain.Like
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/like/{id} [put]
func (h *PostHandler) Like(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	likes, err := h.service.Like(c.Request().Context(), actor, c.Param("id"))
	metrics.PostMutationsTotal.WithLabelValues("like", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// Unlike handles PUT /posts/unlike/:id.
//
// @Summary      Remove own like from a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Post id"
// @Success      200  {array}  domain.Like
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/unlike/{id} [put]
func (h *PostHandler) Unlike(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	likes, err := h.service.Unlike(c.Request().Context(), actor, c.Param("id"))
	metrics.PostMutationsTotal.WithLabelValues("unlike", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

// AddComment handles POST /posts/comment/:id — any authenticated actor.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Post id"
// @Param        body  body      commentRequest  true  "Comment text"
// @Success      200   {array}   domain.Comment
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /posts/comment/{id} [post]
func (h *PostHandler) AddComment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comments, err := h.service.AddComment(c.Request().Context(), actor, c.Param("id"), req.Text)
	metrics.PostMutationsTotal.WithLabelValues("comment", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

// RemoveComment handles DELETE /posts/comment/:post_id/:comment_id —
// post owner or comment author.
//
// @Summary      Remove a comment
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        post_id     path      string  true  "Post id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200  {array}   domain.Comment
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/comment/{post_id}/{comment_id} [delete]
func (h *PostHandler) RemoveComment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	comments, err := h.service.RemoveComment(c.Request().Context(), actor, c.Param("post_id"), c.Param("comment_id"))
	metrics.PostMutationsTotal.WithLabelValues("uncomment", mutationResult(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}

func mutationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrAlreadyLiked), errors.Is(err, domain.ErrVersionConflict):
		return "conflict"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrPostNotFound), errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrNotLiked):
		return "not_found"
	default:
		return "error"
	}
}
