package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePostRequest represents a new post.
type CreatePostRequest struct {
	Title      string   `json:"title" validate:"required"`
	Content    string   `json:"content" validate:"required"`
	CoverImage string   `json:"coverImage"`
	Tags       []string `json:"tags"`
}

// UpdatePostRequest is an explicit patch: absent fields stay unchanged.
type UpdatePostRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	CoverImage *string   `json:"coverImage"`
	Tags       *[]string `json:"tags"`
}

// GetAllPosts godoc
// @Summary Paginated post list
// @Tags posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param tag query string false "Filter by tag"
// @Param author query string false "Filter by author id"
// @Success 200 {object} Envelope
// @Router /posts/get-all-posts [get]
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	page, limit := pageParams(c)

	var authorID *uuid.UUID
	if author := c.QueryParam("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			return apperrors.Validation("invalid author id")
		}
		authorID = &id
	}

	result, err := h.postService.List(c.Request().Context(), page, limit, c.QueryParam("tag"), authorID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", result)
}

// GetPostsByAuthor godoc
// @Summary Paginated posts of one author
// @Tags posts
// @Produce json
// @Param authorId path string true "Author id"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} Envelope
// @Router /posts/get-posts-by-author/{authorId} [get]
func (h *PostHandler) GetPostsByAuthor(c echo.Context) error {
	authorID, err := uuid.Parse(c.Param("authorId"))
	if err != nil {
		return apperrors.Validation("invalid author id")
	}

	page, limit := pageParams(c)
	result, err := h.postService.List(c.Request().Context(), page, limit, "", &authorID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", result)
}

// GetPost godoc
// @Summary Single post by id, counts the read
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/get-post/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrPostNotFound
	}

	post, err := h.postService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", post)
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body CreatePostRequest true "Post data"
// @Success 201 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts/create-post [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation("title and content are required")
	}

	post, err := h.postService.Create(c.Request().Context(), userID, service.CreatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Post created successfully", post)
}

// UpdatePost godoc
// @Summary Update own post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Param request body UpdatePostRequest true "Post patch"
// @Success 200 {object} Envelope
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/update-post/{id} [put]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrPostNotFound
	}

	var req UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	post, err := h.postService.Update(c.Request().Context(), id, userID, service.PostPatch{
		Title:      req.Title,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Post updated successfully", post)
}

// DeletePost godoc
// @Summary Delete own post
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} Envelope
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/delete-post/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrPostNotFound
	}

	if err := h.postService.Delete(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Post deleted successfully", nil)
}

// ToggleLike godoc
// @Summary Like or unlike a post
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/toggle-like/{id} [post]
func (h *PostHandler) ToggleLike(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.ErrPostNotFound
	}

	post, liked, err := h.postService.ToggleLike(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	return respond(c, http.StatusOK, message, post)
}

func pageParams(c echo.Context) (int, int) {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}
