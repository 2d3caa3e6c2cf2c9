package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"chroniclex/internal/auth"
	apperrors "chroniclex/internal/errors"
)

// Context keys set by the session middleware.
const (
	ContextUserIDKey = "userID"
	ContextClaimsKey = "sessionClaims"
)

// Envelope is the uniform response body every endpoint returns.
type Envelope struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message,omitempty"`
	ResponseData interface{} `json:"responseData,omitempty"`
	ErrMessage   string      `json:"errMessage,omitempty"`
}

// respond writes a success envelope.
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{
		Success:      true,
		Message:      message,
		ResponseData: data,
	})
}

// CurrentUserID returns the authenticated user id the session middleware
// derived from the token. Identity is never read from the request body.
func CurrentUserID(c echo.Context) (uuid.UUID, error) {
	id, ok := c.Get(ContextUserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, apperrors.ErrInvalidToken
	}
	return id, nil
}

// CurrentClaims returns the full session claims for revocation purposes.
func CurrentClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ContextClaimsKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
