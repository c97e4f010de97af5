package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lendledger-backend/internal/domain"
	"lendledger-backend/internal/logger"
	"lendledger-backend/internal/repository"
	"lendledger-backend/internal/security"
)

const minPasswordLength = 6

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	var ve domain.ValidationError
	if name == "" {
		ve.Fields = append(ve.Fields, domain.FieldError{Field: "name", Message: "name is required"})
	}
	if email == "" || !strings.Contains(email, "@") {
		ve.Fields = append(ve.Fields, domain.FieldError{Field: "email", Message: "a valid email is required"})
	}
	if len(password) < minPasswordLength {
		ve.Fields = append(ve.Fields, domain.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if len(ve.Fields) > 0 {
		return nil, "", &ve
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.UserRoleUser,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	logger.Info("user signed up", "user_id", user.ID.String(), "email", user.Email)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", domain.ErrAccountDisabled
	}

	loginAt := s.now()
	if err := s.userRepo.RecordLogin(ctx, user.ID, loginAt); err != nil {
		return nil, "", err
	}
	user.LastLoginAt = &loginAt
	user.LoginCount++

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	logger.Info("user logged in", "user_id", user.ID.String())
	return user, token, nil
}
