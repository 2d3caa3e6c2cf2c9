package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, authService service.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// UpdateProfileRequest is an explicit patch: absent fields stay unchanged,
// present fields overwrite, including an empty bio.
type UpdateProfileRequest struct {
	FullName *string `json:"fullName"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}

// UpdatePasswordRequest represents a password change request.
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// GetProfile godoc
// @Summary Fetch own profile
// @Tags user
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/get-profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", profile)
}

// GetOtherUsers godoc
// @Summary List all users except the caller
// @Tags user
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/get-other-users [get]
func (h *UserHandler) GetOtherUsers(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	users, err := h.userService.ListOthers(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", users)
}

// UpdateProfile godoc
// @Summary Partially update own profile
// @Tags user
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile patch"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/update-profile [post]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, service.ProfilePatch{
		FullName: req.FullName,
		Bio:      req.Bio,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", user)
}

// UpdatePassword godoc
// @Summary Change own password
// @Tags user
// @Accept json
// @Produce json
// @Param request body UpdatePasswordRequest true "Old and new passwords"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/update-password [put]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}

	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	if err := h.userService.UpdatePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password updated successfully", nil)
}

// DeleteUser godoc
// @Summary Hard-delete own account
// @Tags user
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/delete-user [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := CurrentUserID(c)
	if err != nil {
		return err
	}
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteAccount(c.Request().Context(), userID); err != nil {
		return err
	}

	// The account is gone; make sure its token cannot outlive it.
	_ = h.authService.Logout(c.Request().Context(), claims)

	clearSessionCookie(c)
	return respond(c, http.StatusOK, "Account deleted successfully", nil)
}
