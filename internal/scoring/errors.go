package scoring

import "cvisionary/internal/shared/apperr"

var ErrIDsRequired = apperr.New(apperr.KindInvalid, "ids_required", "resumeId and jobId are required")
