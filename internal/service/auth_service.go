package service

import (
	"errors"
	"fmt"
	"time"

	"notekeep-server/internal/domain"
	"notekeep-server/internal/repository"
	"notekeep-server/pkg/hash"
	"notekeep-server/pkg/jwt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AuthService struct {
	userRepo          repository.UserRepository
	jwtSecret         string
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	log               zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, accessExp, refreshExp time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		jwtSecret:         jwtSecret,
		accessExpiration:  accessExp,
		refreshExpiration: refreshExp,
		log:               log,
	}
}

func (s *AuthService) Signup(req *domain.SignupRequest) error {
	exists, err := s.userRepo.UsernameExists(req.Username)
	if err != nil {
		return fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return ErrDuplicateUsername
	}

	hashed, err := hash.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: hashed,
		Notes:        []domain.Note{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info().Str("userId", user.ID).Str("username", user.Username).Msg("user created")
	return nil
}

// Login deliberately reports a missing user and a wrong password the same
// way, so the endpoint cannot be used to enumerate usernames.
func (s *AuthService) Login(req *domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := hash.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.tokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		FullName:     user.FullName,
	}, nil
}

// RefreshToken verifies a refresh token, confirms its subject still exists,
// and reissues a full token pair. There is no rotation tracking: the old
// refresh token stays valid until it expires.
func (s *AuthService) RefreshToken(req *domain.RefreshTokenRequest) (*domain.TokenPairResponse, error) {
	claims, err := jwt.ValidateToken(req.RefreshToken, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	accessToken, refreshToken, err := s.tokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *AuthService) tokenPair(userID string) (string, string, error) {
	accessToken, err := jwt.GenerateToken(userID, s.accessExpiration, s.jwtSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(userID, s.refreshExpiration, s.jwtSecret)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}
