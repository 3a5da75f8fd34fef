package service

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrNoteNotFound        = errors.New("note not found")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
