package service

import (
	"errors"
	"testing"
	"time"

	"notekeep-server/internal/domain"
	"notekeep-server/pkg/hash"
	"notekeep-server/pkg/jwt"
	"notekeep-server/pkg/logger"
)

func newTestAuthService(repo *mockUserRepository) *AuthService {
	return NewAuthService(repo, "test-secret", 15*time.Minute, 7*24*time.Hour, logger.Nop())
}

func TestAuthService_Signup(t *testing.T) {
	tests := []struct {
		name    string
		req     *domain.SignupRequest
		setup   func(repo *mockUserRepository)
		wantErr error
	}{
		{
			name: "successful signup",
			req: &domain.SignupRequest{
				Username: "newuser",
				Password: "Password123!",
				FullName: "New User",
			},
			setup: func(repo *mockUserRepository) {},
		},
		{
			name: "duplicate username",
			req: &domain.SignupRequest{
				Username: "taken",
				Password: "Password123!",
			},
			setup: func(repo *mockUserRepository) {
				repo.Create(&domain.User{ID: "existing-id", Username: "taken"})
			},
			wantErr: ErrDuplicateUsername,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockUserRepository()
			tt.setup(repo)
			service := newTestAuthService(repo)

			err := service.Signup(tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Signup() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Signup() error = %v", err)
			}

			user, err := repo.FindByUsername(tt.req.Username)
			if err != nil {
				t.Fatalf("user not persisted: %v", err)
			}
			if user.ID == "" {
				t.Error("Signup() did not assign a user id")
			}
			if user.PasswordHash == tt.req.Password {
				t.Error("Signup() stored the plaintext password")
			}
			if err := hash.Compare(user.PasswordHash, tt.req.Password); err != nil {
				t.Error("Signup() stored a hash that does not verify against the password")
			}
			if len(user.Notes) != 0 {
				t.Errorf("Signup() notes = %d, want empty collection", len(user.Notes))
			}
			if !user.CreatedAt.Equal(user.UpdatedAt) {
				t.Error("Signup() createdAt and updatedAt should match at creation")
			}
		})
	}
}

func TestAuthService_SignupTwiceSameUsername(t *testing.T) {
	repo := newMockUserRepository()
	service := newTestAuthService(repo)

	req := &domain.SignupRequest{Username: "onlyonce", Password: "Password123!"}

	if err := service.Signup(req); err != nil {
		t.Fatalf("first Signup() error = %v", err)
	}
	if err := service.Signup(req); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("second Signup() error = %v, want ErrDuplicateUsername", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newMockUserRepository()
	service := newTestAuthService(repo)

	if err := service.Signup(&domain.SignupRequest{
		Username: "alice",
		Password: "Password123!",
		FullName: "Alice Example",
	}); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	signedUp, _ := repo.FindByUsername("alice")

	tests := []struct {
		name    string
		req     *domain.LoginRequest
		wantErr error
	}{
		{
			name: "correct credentials",
			req:  &domain.LoginRequest{Username: "alice", Password: "Password123!"},
		},
		{
			name:    "wrong password",
			req:     &domain.LoginRequest{Username: "alice", Password: "WrongPassword!"},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:    "unknown user",
			req:     &domain.LoginRequest{Username: "nobody", Password: "Password123!"},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := service.Login(tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}

			if resp.FullName != "Alice Example" {
				t.Errorf("Login() fullName = %q, want %q", resp.FullName, "Alice Example")
			}

			// Both tokens must verify back to the user that signed up.
			for _, token := range []string{resp.AccessToken, resp.RefreshToken} {
				claims, err := jwt.ValidateToken(token, "test-secret")
				if err != nil {
					t.Fatalf("ValidateToken() error = %v", err)
				}
				if claims.UserID != signedUp.ID {
					t.Errorf("token userID = %q, want %q", claims.UserID, signedUp.ID)
				}
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	repo := newMockUserRepository()
	service := newTestAuthService(repo)

	if err := service.Signup(&domain.SignupRequest{Username: "bob", Password: "Password123!"}); err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	user, _ := repo.FindByUsername("bob")

	login, err := service.Login(&domain.LoginRequest{Username: "bob", Password: "Password123!"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	t.Run("valid refresh token reissues a pair", func(t *testing.T) {
		resp, err := service.RefreshToken(&domain.RefreshTokenRequest{RefreshToken: login.RefreshToken})
		if err != nil {
			t.Fatalf("RefreshToken() error = %v", err)
		}

		claims, err := jwt.ValidateToken(resp.AccessToken, "test-secret")
		if err != nil {
			t.Fatalf("ValidateToken() error = %v", err)
		}
		if claims.UserID != user.ID {
			t.Errorf("refreshed token userID = %q, want %q", claims.UserID, user.ID)
		}
		if resp.RefreshToken == "" {
			t.Error("RefreshToken() returned empty refresh token")
		}
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := service.RefreshToken(&domain.RefreshTokenRequest{RefreshToken: "not.a.token"})
		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Fatalf("RefreshToken() error = %v, want ErrInvalidRefreshToken", err)
		}
	})

	t.Run("expired refresh token rejected", func(t *testing.T) {
		expired, _ := jwt.GenerateRefreshToken(user.ID, -1*time.Hour, "test-secret")
		_, err := service.RefreshToken(&domain.RefreshTokenRequest{RefreshToken: expired})
		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Fatalf("RefreshToken() error = %v, want ErrInvalidRefreshToken", err)
		}
	})

	t.Run("token for a removed user rejected", func(t *testing.T) {
		token, _ := jwt.GenerateRefreshToken("ghost-user-id", 1*time.Hour, "test-secret")
		_, err := service.RefreshToken(&domain.RefreshTokenRequest{RefreshToken: token})
		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Fatalf("RefreshToken() error = %v, want ErrInvalidRefreshToken", err)
		}
	})
}
