package resumes

import "cvisionary/internal/shared/apperr"

var (
	ErrUserNotFound   = apperr.New(apperr.KindNotFound, "user_not_found", "User not Found . PLease Signup first")
	ErrNoResumes      = apperr.New(apperr.KindNotFound, "resumes_not_found", "No resumes Found")
	ErrResumeNotFound = apperr.New(apperr.KindNotFound, "resume_not_found", "Resume not found")
)
