package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"chroniclex/internal/auth"
	"chroniclex/internal/config"
	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = httpErrorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(cfg.BasePath)

	// Public routes
	api.POST("/user/register", authHandler.Register)
	api.POST("/user/login", authHandler.Login)
	api.POST("/auth/google", authHandler.GoogleAuth)
	api.GET("/posts/get-all-posts", postHandler.GetAllPosts)
	api.GET("/posts/get-post/:id", postHandler.GetPost)
	api.GET("/posts/get-posts-by-author/:authorId", postHandler.GetPostsByAuthor)
	api.GET("/comments/post/:postId", commentHandler.ListByPost)

	// Secured routes: the session token is read from the HTTP-only cookie
	// (or an Authorization header) and re-validated on every request.
	secured := e.Group(cfg.BasePath, sessionMiddleware(jwtService, tokenStore), sessionContext())

	secured.POST("/user/logout", authHandler.Logout)
	secured.GET("/user/get-profile", userHandler.GetProfile)
	secured.GET("/user/get-other-users", userHandler.GetOtherUsers)
	secured.POST("/user/update-profile", userHandler.UpdateProfile)
	secured.PUT("/user/update-password", userHandler.UpdatePassword)
	secured.DELETE("/user/delete-user", userHandler.DeleteUser)

	secured.POST("/posts/create-post", postHandler.CreatePost)
	secured.PUT("/posts/update-post/:id", postHandler.UpdatePost)
	secured.DELETE("/posts/delete-post/:id", postHandler.DeletePost)
	secured.POST("/posts/toggle-like/:id", postHandler.ToggleLike)

	secured.POST("/comments/post/:postId", commentHandler.Add)
	secured.PUT("/comments/:commentId", commentHandler.Update)
	secured.DELETE("/comments/:commentId", commentHandler.Delete)
}

const sessionContextKey = "session"

// sessionMiddleware extracts and validates the session token. Parsing goes
// through the auth package so token rules live in one place; revoked tokens
// fail exactly like invalid ones.
func sessionMiddleware(jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + handler.SessionCookieName + ",header:Authorization:Bearer ",
		ContextKey:  sessionContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.Validate(tokenString)
			if err != nil {
				return nil, err
			}
			if revoked, _ := tokenStore.IsTokenRevoked(c.Request().Context(), claims.ID); revoked {
				return nil, apperrors.ErrInvalidToken
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Missing, expired and tampered tokens are indistinguishable to the caller.
			return apperrors.ErrInvalidToken
		},
	})
}

// sessionContext copies the validated claims into the keys handlers read.
func sessionContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(sessionContextKey).(*auth.Claims)
			if !ok {
				return apperrors.ErrInvalidToken
			}
			c.Set(handler.ContextUserIDKey, claims.UserID)
			c.Set(handler.ContextClaimsKey, claims)
			return next(c)
		}
	}
}

// httpErrorHandler normalizes every error into the uniform envelope.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		_ = c.JSON(echoErr.Code, apperrors.ErrorResponse{
			Success:    false,
			ErrMessage: fmt.Sprintf("%v", echoErr.Message),
		})
		return
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
