package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/service"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Gender   string `json:"gender" validate:"required,oneof=male female other"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleAuthRequest carries the access token the client obtained from Google.
type GoogleAuthRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// SessionResponse is the payload returned when a session is opened.
type SessionResponse struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// Register godoc
// @Summary Register a new account
// @Tags user
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} Envelope
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /user/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, token, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Gender:   req.Gender,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)
	return respond(c, http.StatusCreated, "Account created successfully!", SessionResponse{
		User:  user,
		Token: token,
	})
}

// Login godoc
// @Summary Authenticate with email and password
// @Tags user
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)
	return respond(c, http.StatusOK, "Login successful", SessionResponse{
		User:  user,
		Token: token,
	})
}

// GoogleAuth godoc
// @Summary Login or register through Google
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleAuthRequest true "Google access token"
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) GoogleAuth(c echo.Context) error {
	var req GoogleAuthRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, token, err := h.authService.GoogleLogin(c.Request().Context(), req.Credential)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)
	return respond(c, http.StatusOK, "Google login successful", SessionResponse{
		User:  user,
		Token: token,
	})
}

// Logout godoc
// @Summary Close the current session
// @Tags user
// @Produce json
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /user/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := CurrentClaims(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}

	clearSessionCookie(c)
	return respond(c, http.StatusOK, "User logged out successfully", nil)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.authService.TokenExpiry()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
