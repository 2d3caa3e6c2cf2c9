package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"chroniclex/internal/auth"
	apperrors "chroniclex/internal/errors"
	"chroniclex/internal/model"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	validInput := RegisterInput{
		FullName: "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "secret123",
		Gender:   "female",
	}

	t.Run("success stores a hash, never the plaintext", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		svc := NewAuthService(userRepo, newTestJWTService(), new(MockTokenStore), new(MockGoogleVerifier))

		user, token, err := svc.Register(context.Background(), validInput)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.NotEqual(t, validInput.Password, user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(validInput.Password)))
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(&model.User{Email: "jane@example.com"}, nil)

		svc := NewAuthService(userRepo, newTestJWTService(), new(MockTokenStore), new(MockGoogleVerifier))

		_, _, err := svc.Register(context.Background(), validInput)
		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short password rejected", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(userRepo, newTestJWTService(), new(MockTokenStore), new(MockGoogleVerifier))

		input := validInput
		input.Password = "short"
		_, _, err := svc.Register(context.Background(), input)

		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation)
	})
}

func TestAuthService_Login_NoEnumerationSignal(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	stored := &model.User{Email: "jane@example.com", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		email    string
		password string
		found    *model.User
		findErr  error
		wantErr  error
	}{
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "correct-horse",
			findErr:  gorm.ErrRecordNotFound,
			wantErr:  apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "wrong",
			found:    stored,
			wantErr:  apperrors.ErrInvalidCredentials,
		},
		{
			name:     "correct credentials",
			email:    "jane@example.com",
			password: "correct-horse",
			found:    stored,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			userRepo.On("FindByEmail", mock.Anything, tt.email).Return(tt.found, tt.findErr)

			svc := NewAuthService(userRepo, newTestJWTService(), new(MockTokenStore), new(MockGoogleVerifier))

			user, token, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				// Same sentinel for both failure modes, so the message is identical too.
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, stored.Email, user.Email)
		})
	}
}

func TestAuthService_GoogleLogin(t *testing.T) {
	info := &GoogleUserInfo{
		Sub:           "google-sub-1",
		Email:         "jane@example.com",
		EmailVerified: true,
		Name:          "Jane Doe",
		Picture:       "https://example.com/p.jpg",
	}

	t.Run("creates account for unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.GoogleID == info.Sub && u.Email == info.Email && u.PasswordHash == ""
		})).Return(nil)

		verifier := new(MockGoogleVerifier)
		verifier.On("Fetch", mock.Anything, "cred").Return(info, nil)

		svc := NewAuthService(userRepo, newTestJWTService(), new(MockTokenStore), verifier)

		user, token, err := svc.GoogleLogin(context.Background(), "cred")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, info.Sub, user.GoogleID)
		userRepo.AssertExpectations(t)
	})

	t.Run("links unlinked existing account", func(t *testing.T) {
		existing := &model.User{Email: "jane@example.com"}
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(existing, nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.GoogleID == info.Sub
		})).Return(nil)

		verifier := new(MockGoogleVerifier)
		verifier.On("Fetch", mock.Anything, "cred").Return(info, nil)

		svc := NewAuthService(userRepo, newTestJWTService(), new(MockTokenStore), verifier)

		_, _, err := svc.GoogleLogin(context.Background(), "cred")
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("already linked account keeps its identity", func(t *testing.T) {
		existing := &model.User{Email: "jane@example.com", GoogleID: "older-sub"}
		userRepo := new(MockUserRepository)
		userRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(existing, nil)

		verifier := new(MockGoogleVerifier)
		verifier.On("Fetch", mock.Anything, "cred").Return(info, nil)

		svc := NewAuthService(userRepo, newTestJWTService(), new(MockTokenStore), verifier)

		user, _, err := svc.GoogleLogin(context.Background(), "cred")
		assert.NoError(t, err)
		assert.Equal(t, "older-sub", user.GoogleID)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejected credential fails uniformly", func(t *testing.T) {
		verifier := new(MockGoogleVerifier)
		verifier.On("Fetch", mock.Anything, "bad").Return(nil, assert.AnError)

		svc := NewAuthService(new(MockUserRepository), newTestJWTService(), new(MockTokenStore), verifier)

		_, _, err := svc.GoogleLogin(context.Background(), "bad")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	jwtService := newTestJWTService()
	tokenStore := new(MockTokenStore)
	tokenStore.On("RevokeToken", mock.Anything, mock.AnythingOfType("string"), mock.AnythingOfType("time.Duration")).Return(nil)

	svc := NewAuthService(new(MockUserRepository), jwtService, tokenStore, new(MockGoogleVerifier))

	token, err := jwtService.Issue(newUUID(t))
	assert.NoError(t, err)
	claims, err := jwtService.Validate(token)
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background(), claims))
	tokenStore.AssertExpectations(t)
}
