package service

import (
	"context"
	"errors"
	"fmt"
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/model"
	"skillswap_backend/internal/repository"
	"skillswap_backend/internal/util"
	"skillswap_backend/pkg/logger"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register creates a member account together with its empty public profile.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", util.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", util.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", util.ErrValidation, minPasswordLength)
	}

	exists, err := s.UserRepo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		Username:  username,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      model.Member,
		LastLogin: now,
		LastSeen:  now,
	}
	if _, err := s.UserRepo.CreateWithProfile(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.Info("user registered", zap.Uint("userId", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login accepts either the email or the username and returns a signed token.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, util.ErrUserNotFound) {
		return "", nil, util.ErrBadCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrBadCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		logger.Log.Warn("failed to record last login", zap.Uint("userId", user.ID), zap.Error(err))
	}
	return token, user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(ctx, userID)
}

// DeleteAccount removes the user with their profile, swaps and reviews.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.UserRepo.DeleteCascade(ctx, userID); err != nil {
		return err
	}
	logger.Log.Info("user deleted", zap.Uint("userId", userID))
	return nil
}
