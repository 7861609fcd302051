package auth

import "errors"

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetCode   = errors.New("reset code is invalid")
	ErrResetCodeExpired   = errors.New("reset code has expired")
)
