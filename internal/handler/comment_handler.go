package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/service"
)

// CommentHandler handles comment endpoints.
type CommentHandler struct {
	commentService service.CommentService
}

// NewCommentHandler creates a new comment handler.
func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// CommentRequest carries comment text for create and update.
type CommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// ListByPost godoc
// @Summary List a post's comments
// @Tags comments
// @Produce json
// @Param postId path string true "Post id"
// @Success 200 {object} Envelope
// @Router /comments/post/{postId} [get]
func (h *CommentHandler) ListByPost(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return apperrors.ErrPostNotFound
	}

	comments, err := h.commentService.ListByPost(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", comments)
}

// Add godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param postId path string true "Post id"
// @Param request body CommentRequest true "Comment text"
// @Success 201 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/post/{postId} [post]
func (h *CommentHandler) Add(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return apperrors.ErrPostNotFound
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation("comment text is required")
	}

	comment, err := h.commentService.Add(c.Request().Context(), postID, userID, req.Text)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "", comment)
}

// Update godoc
// @Summary Update own comment
// @Tags comments
// @Accept json
// @Produce json
// @Param commentId path string true "Comment id"
// @Param request body CommentRequest true "New text"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{commentId} [put]
func (h *CommentHandler) Update(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		return apperrors.ErrCommentNotFound
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	comment, err := h.commentService.Update(c.Request().Context(), commentID, userID, req.Text)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", comment)
}

// Delete godoc
// @Summary Delete own comment
// @Tags comments
// @Produce json
// @Param commentId path string true "Comment id"
// @Success 200 {object} Envelope
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /comments/{commentId} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	commentID, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		return apperrors.ErrCommentNotFound
	}

	if err := h.commentService.Delete(c.Request().Context(), commentID, userID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Comment deleted successfully", nil)
}
