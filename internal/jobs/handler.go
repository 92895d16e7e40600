package jobs

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"cvisionary/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/jobs")
	g.POST("/create", h.create)
	g.GET("/all", h.list)
}

type createRequest struct {
	UserID         string     `json:"userId" binding:"required"`
	JobTitle       string     `json:"JobTitle" binding:"required"`
	JobDescription string     `json:"JobDescription" binding:"required"`
	CompanyName    string     `json:"CompanyName" binding:"required"`
	Location       string     `json:"Location" binding:"required"`
	Category       []string   `json:"Category"`
	JobType        string     `json:"JobType" binding:"required"`
	Stipend        flexString `json:"Stipend" binding:"required"`
}

// flexString accepts a JSON string or number; stipends arrive as both.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	job, err := h.Svc.Post(c.Request.Context(), Job{
		UserID:         req.UserID,
		JobTitle:       req.JobTitle,
		JobDescription: req.JobDescription,
		CompanyName:    req.CompanyName,
		Location:       req.Location,
		Category:       req.Category,
		JobType:        req.JobType,
		Stipend:        string(req.Stipend),
	})
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.Created(c, gin.H{
		"success": true,
		"message": "Job posted successfully",
		"job":     job,
	})
}

func (h *Handler) list(c *gin.Context) {
	jobs, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{
		"success": true,
		"message": "Jobs fetched successfully",
		"jobs":    jobs,
	})
}
