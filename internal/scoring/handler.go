package scoring

import (
	"github.com/gin-gonic/gin"

	"cvisionary/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

type scoreRequest struct {
	ResumeID string `json:"resumeId" binding:"required"`
	JobID    string `json:"jobId" binding:"required"`
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/score", h.score)
}

func (h *Handler) score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	report, err := h.Svc.Score(c.Request.Context(), req.ResumeID, req.JobID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{
		"success": true,
		"message": "Resume scored",
		"score":   report,
	})
}
