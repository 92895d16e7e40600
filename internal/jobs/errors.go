package jobs

import "cvisionary/internal/shared/apperr"

var (
	ErrUserNotFound = apperr.New(apperr.KindNotFound, "user_not_found", "User not found")
	ErrJobNotFound  = apperr.New(apperr.KindNotFound, "job_not_found", "Job not found")
)
