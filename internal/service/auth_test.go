package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/security"
)

const testSecret = "test-secret-test-secret-test-secret-1234"

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, time.Hour)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "ravi@example.com").Return(nil, domain.ErrNotFound)
		userRepo.On("Create", ctx, mock.Anything).Return(nil)

		user, token, err := svc.Signup(ctx, "Ravi", "Ravi@Example.com ", "secret123")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotEmpty(t, token)
		assert.Equal(t, "ravi@example.com", user.Email, "email is normalized")
		assert.Equal(t, domain.UserRoleUser, user.Role)
		assert.True(t, user.IsActive)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))

		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, domain.UserRoleUser, claims.Role)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "taken@example.com").Return(&domain.User{}, nil)

		_, _, err := svc.Signup(ctx, "Someone", "taken@example.com", "secret123")
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid input", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		_, _, err := svc.Signup(ctx, "", "not-an-email", "abc")
		require.Error(t, err)
		ve, ok := domain.AsValidation(err)
		require.True(t, ok)
		assert.Len(t, ve.Fields, 3)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	activeUser := func() *domain.User {
		return &domain.User{
			Name:         "Ravi",
			Email:        "ravi@example.com",
			PasswordHash: string(hash),
			Role:         domain.UserRoleUser,
			IsActive:     true,
			LoginCount:   3,
		}
	}

	t.Run("Success records the login", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "ravi@example.com").Return(activeUser(), nil)
		userRepo.On("RecordLogin", ctx, mock.Anything, mock.Anything).Return(nil)

		user, token, err := svc.Login(ctx, "ravi@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int32(4), user.LoginCount)
		require.NotNil(t, user.LastLoginAt)
	})

	t.Run("Wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "ravi@example.com").Return(activeUser(), nil)

		_, _, err := svc.Login(ctx, "ravi@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown email looks like a wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, _, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Deactivated account refused after password check", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens)

		u := activeUser()
		u.IsActive = false
		userRepo.On("GetByEmail", ctx, "ravi@example.com").Return(u, nil)

		_, _, err := svc.Login(ctx, "ravi@example.com", "secret123")
		assert.ErrorIs(t, err, domain.ErrAccountDisabled)
		userRepo.AssertNotCalled(t, "RecordLogin", mock.Anything, mock.Anything, mock.Anything)
	})
}
