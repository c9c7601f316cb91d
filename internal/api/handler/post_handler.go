package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulsefeed/content-service/internal/core/domain"
	"github.com/pulsefeed/content-service/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

func toPostResponse(p domain.Post) postResponse {
	comments := make([]commentResponse, len(p.Comments))
	for i, cm := range p.Comments {
		comments[i] = commentResponse{Username: cm.Username, Text: cm.Text}
	}
	return postResponse{
		ID:       p.ID,
		Author:   p.Author,
		Body:     p.Body,
		Likes:    p.Likes,
		Comments: comments,
	}
}

// List handles GET /posts — all posts in store order, no auth required.
//
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}  postResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]postResponse, len(posts))
	for i, p := range posts {
		out[i] = toPostResponse(p)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      createPostRequest  true  "Post body"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.service.Create(c.Request().Context(), username, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(*post))
}

// Delete handles DELETE /posts/:id. Unknown ids and foreign posts are both
// answered with 403 so the endpoint discloses nothing about which ids exist.
//
// @Summary      Delete a post (owner only)
// @Tags         posts
// @Param        id  path  string  true  "Post id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), username, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusForbidden, "permission denied")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Like handles POST /posts/:id/like.
//
// @Summary      Like a post
// @Tags         posts
// @Param        id  path  string  true  "Post id"
// @Success      200
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id}/like [post]
func (h *PostHandler) Like(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	if err := h.service.Like(c.Request().Context(), username, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Comment handles POST /posts/:id/comment.
//
// @Summary      Comment on a post
// @Tags         posts
// @Accept       json
// @Param        id    path  string          true  "Post id"
// @Param        body  body  commentRequest  true  "Comment text"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id}/comment [post]
func (h *PostHandler) Comment(c echo.Context) error {
	username, err := ctxUsername(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Comment(c.Request().Context(), username, c.Param("id"), req.Text); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}
