package users

import "cvisionary/internal/shared/apperr"

var (
	ErrNotFound           = apperr.New(apperr.KindNotFound, "user_not_found", "User not found")
	ErrEmailTaken         = apperr.New(apperr.KindConflict, "email_taken", "Email already exists")
	ErrUsernameTaken      = apperr.New(apperr.KindConflict, "username_taken", "Username already exists")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "invalid_credentials", "Invalid credentials")
)
