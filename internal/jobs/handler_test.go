package jobs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(NewService(NewMemoryRepo(), fakeUsers{"u1": true})).RegisterRoutes(&router.RouterGroup)
	return router
}

func TestCreateAndListJobs(t *testing.T) {
	router := newTestRouter()

	body := `{"userId":"u1","JobTitle":"Go intern","JobDescription":"apis","CompanyName":"Acme",
		"Location":"Remote","Category":["backend"],"JobType":"Internship","Stipend":15000}`
	req := httptest.NewRequest(http.MethodPost, "/jobs/create", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		Message string `json:"message"`
		Job     Job    `json:"job"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Message != "Job posted successfully" || created.Job.Stipend != "15000" || created.Job.Category[0] != "backend" {
		t.Fatalf("unexpected job: %s", resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/jobs/all", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var listed struct {
		Success bool  `json:"success"`
		Jobs    []Job `json:"jobs"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !listed.Success || len(listed.Jobs) != 1 {
		t.Fatalf("unexpected list: %s", resp.Body.String())
	}
}

func TestCreateJobMissingFields(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/jobs/create", bytes.NewBufferString(`{"userId":"u1","JobTitle":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestListJobsEmpty(t *testing.T) {
	router := newTestRouter()
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/jobs/all", nil))
	if resp.Code != http.StatusOK || !bytes.Contains(resp.Body.Bytes(), []byte(`"jobs":[]`)) {
		t.Fatalf("expected empty jobs list, got %d %s", resp.Code, resp.Body.String())
	}
}
