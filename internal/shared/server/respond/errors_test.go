package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cvisionary/internal/shared/apperr"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", func(c *gin.Context) { Fail(c, err) })

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	var body ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp, body
}

func TestFailMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperr.New(apperr.KindConflict, "email_taken", "Email already exists"), http.StatusBadRequest},
		{apperr.New(apperr.KindNotFound, "user_not_found", "User not found"), http.StatusNotFound},
		{apperr.New(apperr.KindUnauthorized, "invalid_credentials", "Invalid credentials"), http.StatusUnauthorized},
		{apperr.Invalid("userId is required"), http.StatusBadRequest},
		{apperr.Wrap(apperr.KindUpstream, "upstream_error", "github unavailable", errors.New("eof")), http.StatusBadGateway},
		{fmt.Errorf("wrapped: %w", apperr.New(apperr.KindNotFound, "x", "missing")), http.StatusNotFound},
	}
	for _, tc := range cases {
		resp, body := serveError(t, tc.err)
		if resp.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, resp.Code)
		}
		if body.Success {
			t.Fatalf("expected success=false")
		}
	}
}

func TestFailHidesInternalCause(t *testing.T) {
	resp, body := serveError(t, errors.New("pq: relation users does not exist"))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if body.Message != "Internal Server Error" {
		t.Fatalf("expected generic message, got %q", body.Message)
	}
}

func TestBindErrorListsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	type request struct {
		Email string `json:"useremail" binding:"required,email"`
	}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			BindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"useremail":"nope"}`)))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Details []FieldIssue `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Error.Details) != 1 || body.Error.Details[0].Field != "Email" || body.Error.Details[0].Issue != "email" {
		t.Fatalf("unexpected details %+v", body.Error.Details)
	}
}
