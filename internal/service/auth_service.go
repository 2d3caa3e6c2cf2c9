package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chroniclex/internal/auth"
	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/model"
	"chroniclex/internal/repository"
)

const bcryptCost = 10

const minPasswordLength = 6

// RegisterInput carries the fields required to open an account.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Gender   string
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	GoogleLogin(ctx context.Context, credential string) (*model.User, string, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	TokenExpiry() time.Duration
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	verifier   GoogleVerifier
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, verifier GoogleVerifier) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		verifier:   verifier,
	}
}

// Register creates a new account with a hashed password and issues a session token.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	email := normalizeEmail(input.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	if len(input.Password) < minPasswordLength {
		return nil, "", apperrors.Validation(fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		FullName:     strings.TrimSpace(input.FullName),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Gender:       input.Gender,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and issues a session token. Unknown email and
// wrong password fail with the same error so callers cannot probe for accounts.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// GoogleLogin resolves the external identity to an account by email. A new
// account is created when none exists; an existing unlinked account gets the
// Google identity attached (first write wins, an already-linked account keeps
// its original link).
func (s *authService) GoogleLogin(ctx context.Context, credential string) (*model.User, string, error) {
	info, err := s.verifier.Fetch(ctx, credential)
	if err != nil {
		return nil, "", apperrors.ErrInvalidToken
	}
	if !info.EmailVerified {
		return nil, "", apperrors.ErrInvalidToken
	}

	email := normalizeEmail(info.Email)
	user, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		fullName := info.Name
		if fullName == "" {
			fullName, _, _ = strings.Cut(email, "@")
		}
		user = &model.User{
			ID:       uuid.New(),
			FullName: fullName,
			Email:    email,
			GoogleID: info.Sub,
			Avatar:   info.Picture,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("create user: %w", err)
		}
	case err != nil:
		return nil, "", fmt.Errorf("find user: %w", err)
	case user.GoogleID == "":
		user.GoogleID = info.Sub
		if user.Avatar == "" && info.Picture != "" {
			user.Avatar = info.Picture
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, "", fmt.Errorf("link google identity: %w", err)
		}
	}

	token, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Logout revokes the session token for its remaining lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.ErrInvalidToken
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return s.tokenStore.RevokeToken(ctx, claims.ID, ttl)
}

// TokenExpiry exposes the session lifetime for cookie expiry.
func (s *authService) TokenExpiry() time.Duration {
	return s.jwtService.Expiry()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
