package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/papertrade/stock-trading-backend/internal/apperrors"
	"github.com/papertrade/stock-trading-backend/internal/model"
	"github.com/papertrade/stock-trading-backend/internal/repository"
)

// UserService handles account registration and credential verification.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account. Username and email uniqueness are checked
// separately so the caller can report which one collided.
func (s *UserService) Register(username, email, password string) (model.User, error) {
	taken, err := s.userRepo.UsernameExists(username)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, apperrors.ErrUsernameTaken
	}

	taken, err = s.userRepo.EmailExists(email)
	if err != nil {
		return model.User{}, err
	}
	if taken {
		return model.User{}, apperrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords both return ErrInvalidCredentials.
func (s *UserService) Authenticate(username, password string) (model.User, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return model.User{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves an account by ID.
func (s *UserService) GetUser(userID string) (model.User, error) {
	return s.userRepo.GetUserByID(userID)
}
