package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"cvisionary/internal/shared/apperr"
	"cvisionary/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body. Success and Message mirror the
// envelope the web client already reads.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Error   ErrorBody `json:"error"`
}

// FieldIssue describes one failed field in a request body.
type FieldIssue struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Success: false,
		Message: message,
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// Fail maps a service error to a status code and writes it. Unclassified
// errors become a 500 with a generic message; the cause is only logged.
func Fail(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		telemetry.Error("internal.error", map[string]any{
			"request_id": c.GetString("requestId"),
			"error":      err.Error(),
		})
		Error(c, http.StatusInternalServerError, "internal_error", "Internal Server Error", nil)
		return
	}
	if appErr.Err != nil {
		telemetry.Error("service.error", map[string]any{
			"request_id": c.GetString("requestId"),
			"kind":       string(appErr.Kind),
			"error":      appErr.Err.Error(),
		})
	}
	status := StatusFor(appErr.Kind)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		message = "Internal Server Error"
	}
	Error(c, status, appErr.Code, message, nil)
}

// StatusFor returns the HTTP status used for an error kind.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalid, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// BindError reports a request body that failed to decode or validate.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		issues := make([]FieldIssue, 0, len(verrs))
		for _, fe := range verrs {
			issues = append(issues, FieldIssue{Field: fe.Field(), Issue: fe.Tag()})
		}
		Error(c, http.StatusBadRequest, "validation_error", "invalid request body", issues)
		return
	}
	Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
}
