package auth

import (
	"context"
	"time"

	"blogify/errors"
	"blogify/models"
	"blogify/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service manages account creation and credential checks. Session lifecycle
// lives in the handler layer.
type Service interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
}

type service struct {
	repo   repository.UserRepository
	logger *logrus.Logger
}

func NewService(repo repository.UserRepository, logger *logrus.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	const op = "AuthService.Signup"

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, errors.InvalidInput(op, nil, "Username, email, and password are required")
	}
	if req.Password != req.RepeatPassword {
		return nil, errors.InvalidInput(op, nil, "Passwords do not match")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to create account")
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"operation": op,
		"user_id":   user.ID,
		"username":  user.Username,
	}).Info("Account created")

	return user, nil
}

func (s *service) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	const op = "AuthService.Login"

	if req.Username == "" || req.Password == "" {
		return nil, errors.InvalidInput(op, nil, "Username and password are required")
	}

	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		// Unknown usernames and bad passwords are indistinguishable to the
		// caller.
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized(op, err, "Invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.Unauthorized(op, err, "Invalid username or password")
	}

	s.logger.WithFields(logrus.Fields{
		"operation": op,
		"user_id":   user.ID,
	}).Info("User logged in")

	return user, nil
}
