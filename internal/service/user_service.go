package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chroniclex/internal/cache"
	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/model"
	"chroniclex/internal/repository"
	"chroniclex/internal/storage"
)

const profileCacheTTL = 5 * time.Minute

// ProfilePatch is an explicit partial update: nil leaves the stored value,
// non-nil overwrites it. An empty string is a legal new value for Bio.
type ProfilePatch struct {
	FullName *string
	Bio      *string
	Avatar   *string // inline data URL, uploaded to the media store
}

// UserService exposes account operations beyond authentication.
type UserService interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListOthers(ctx context.Context, callerID uuid.UUID) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	media    storage.MediaStore
	cache    *cache.Client
}

// NewUserService builds a UserService with repository, media store and cache.
func NewUserService(userRepo repository.UserRepository, media storage.MediaStore, cache *cache.Client) UserService {
	return &userService{userRepo: userRepo, media: media, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("profile:%s", id)
}

// GetProfile fetches the caller's own profile, served from cache when warm.
func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, profileCacheTTL)
	}
	return user, nil
}

// ListOthers returns every user except the caller.
func (s *userService) ListOthers(ctx context.Context, callerID uuid.UUID) ([]model.User, error) {
	return s.userRepo.ListOthers(ctx, callerID)
}

// UpdateProfile applies an explicit patch. At least one field must be provided.
func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) (*model.User, error) {
	if patch.FullName == nil && patch.Bio == nil && patch.Avatar == nil {
		return nil, apperrors.Validation("please provide data to update")
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if patch.FullName != nil {
		name := strings.TrimSpace(*patch.FullName)
		if name == "" {
			return nil, apperrors.Validation("full name cannot be empty")
		}
		user.FullName = name
	}
	if patch.Bio != nil {
		// Empty string is "clear my bio", not "leave unchanged".
		user.Bio = sanitizeText(*patch.Bio)
	}
	if patch.Avatar != nil && *patch.Avatar != "" {
		url, err := s.media.UploadDataURL(ctx, *patch.Avatar)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUpstream, err)
		}
		user.Avatar = url
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// UpdatePassword verifies the current password before accepting a new one.
func (s *userService) UpdatePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.Validation(fmt.Sprintf("new password must be at least %d characters long", minPasswordLength))
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// DeleteAccount removes the user and cascades to their posts, comments and likes.
func (s *userService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.DeleteWithContent(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
