package service

import (
	"errors"
	"fmt"
	"time"

	"notekeep-server/internal/domain"
	"notekeep-server/internal/repository"
	"notekeep-server/pkg/hash"

	"github.com/rs/zerolog"
)

type UserService struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

func NewUserService(userRepo repository.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		log:      log,
	}
}

// UpdateProfile patches the fields present in req. A username change
// re-checks uniqueness, excluding the user's own current name.
func (s *UserService) UpdateProfile(userID string, req *domain.UpdateProfileRequest) error {
	_, err := s.userRepo.Mutate(userID, func(user *domain.User) error {
		if req.Username != nil && *req.Username != user.Username {
			exists, err := s.userRepo.UsernameExists(*req.Username)
			if err != nil {
				return fmt.Errorf("failed to check username existence: %w", err)
			}
			if exists {
				return ErrDuplicateUsername
			}
			user.Username = *req.Username
		}

		if req.FullName != nil {
			user.FullName = *req.FullName
		}

		user.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return nil
}

func (s *UserService) UpdatePassword(userID string, req *domain.UpdatePasswordRequest) error {
	_, err := s.userRepo.Mutate(userID, func(user *domain.User) error {
		if err := hash.Compare(user.PasswordHash, req.CurrentPassword); err != nil {
			return ErrWrongPassword
		}

		hashed, err := hash.Hash(req.NewPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user.PasswordHash = hashed
		user.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.log.Info().Str("userId", userID).Msg("password updated")
	return nil
}

// CheckUsername probes availability without requiring authentication; it is
// meant for signup-form feedback.
func (s *UserService) CheckUsername(username string) (*domain.UsernameAvailability, error) {
	exists, err := s.userRepo.UsernameExists(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}

	if exists {
		return &domain.UsernameAvailability{Available: false, Message: "Username not available"}, nil
	}
	return &domain.UsernameAvailability{Available: true, Message: "Username available"}, nil
}
