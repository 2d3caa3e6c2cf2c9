package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/model"
)

func strPtr(s string) *string { return &s }

func TestUserService_UpdateProfile(t *testing.T) {
	userID := uuid.New()

	freshUser := func() *model.User {
		return &model.User{ID: userID, FullName: "Jane Doe", Bio: "old bio", Avatar: "old.png"}
	}

	t.Run("no fields provided", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo, new(MockMediaStore), nil)

		_, err := svc.UpdateProfile(context.Background(), userID, ProfilePatch{})
		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("nil fields stay, empty bio clears", func(t *testing.T) {
		user := freshUser()
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)

		svc := NewUserService(userRepo, new(MockMediaStore), nil)

		updated, err := svc.UpdateProfile(context.Background(), userID, ProfilePatch{Bio: strPtr("")})
		assert.NoError(t, err)
		assert.Equal(t, "", updated.Bio)
		assert.Equal(t, "Jane Doe", updated.FullName)
		assert.Equal(t, "old.png", updated.Avatar)
	})

	t.Run("empty full name rejected", func(t *testing.T) {
		user := freshUser()
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)

		svc := NewUserService(userRepo, new(MockMediaStore), nil)

		_, err := svc.UpdateProfile(context.Background(), userID, ProfilePatch{FullName: strPtr("   ")})
		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("avatar data URL goes through the media store", func(t *testing.T) {
		user := freshUser()
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)

		media := new(MockMediaStore)
		media.On("UploadDataURL", mock.Anything, "data:image/png;base64,AAAA").
			Return("https://cdn.example.com/a.png", nil)

		svc := NewUserService(userRepo, media, nil)

		updated, err := svc.UpdateProfile(context.Background(), userID, ProfilePatch{
			Avatar: strPtr("data:image/png;base64,AAAA"),
		})
		assert.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.png", updated.Avatar)
		media.AssertExpectations(t)
	})

	t.Run("upload failure surfaces as upstream error", func(t *testing.T) {
		user := freshUser()
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)

		media := new(MockMediaStore)
		media.On("UploadDataURL", mock.Anything, mock.Anything).Return("", assert.AnError)

		svc := NewUserService(userRepo, media, nil)

		_, err := svc.UpdateProfile(context.Background(), userID, ProfilePatch{
			Avatar: strPtr("data:image/png;base64,AAAA"),
		})
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		user := &model.User{ID: userID, PasswordHash: string(hash)}
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)

		svc := NewUserService(userRepo, new(MockMediaStore), nil)

		err := svc.UpdatePassword(context.Background(), userID, "not-the-old-one", "new-password")
		assert.ErrorIs(t, err, apperrors.ErrWrongPassword)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("new password too short", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := NewUserService(userRepo, new(MockMediaStore), nil)

		err := svc.UpdatePassword(context.Background(), userID, "old-password", "tiny")
		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation)
		userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("success rehashes", func(t *testing.T) {
		user := &model.User{ID: userID, PasswordHash: string(hash)}
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		userRepo.On("Update", mock.Anything, user).Return(nil)

		svc := NewUserService(userRepo, new(MockMediaStore), nil)

		assert.NoError(t, svc.UpdatePassword(context.Background(), userID, "old-password", "new-password"))
		assert.NotEqual(t, string(hash), user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("new-password")))
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	userID := uuid.New()

	t.Run("cascades through the repository", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		userRepo.On("DeleteWithContent", mock.Anything, userID).Return(nil)

		svc := NewUserService(userRepo, new(MockMediaStore), nil)
		assert.NoError(t, svc.DeleteAccount(context.Background(), userID))
		userRepo.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(userRepo, new(MockMediaStore), nil)
		err := svc.DeleteAccount(context.Background(), userID)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		userRepo.AssertNotCalled(t, "DeleteWithContent", mock.Anything, mock.Anything)
	})
}

func TestUserService_ListOthers(t *testing.T) {
	callerID := uuid.New()
	others := []model.User{{FullName: "Someone Else"}}

	userRepo := new(MockUserRepository)
	userRepo.On("ListOthers", mock.Anything, callerID).Return(others, nil)

	svc := NewUserService(userRepo, new(MockMediaStore), nil)

	got, err := svc.ListOthers(context.Background(), callerID)
	assert.NoError(t, err)
	assert.Equal(t, others, got)
}
