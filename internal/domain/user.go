package domain

import "time"

// User is the unit of storage: the credential record plus its embedded
// note collection, saved as a single CouchDB document.
type User struct {
	ID           string    `json:"id"`
	Rev          string    `json:"_rev,omitempty"`
	Username     string    `json:"username"`
	FullName     string    `json:"fullName,omitempty"`
	PasswordHash string    `json:"passwordHash"`
	Notes        []Note    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	FullName     string `json:"fullName"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UpdateProfileRequest uses pointer fields so an omitted field keeps the
// stored value while a present field (even an empty string) overwrites it.
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,username"`
	FullName *string `json:"fullName"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type UsernameAvailability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
