package resumes

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"cvisionary/internal/shared/apperr"
	"cvisionary/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/resume")
	g.POST("/build", h.build)
	g.GET("/getresumes", h.list)
}

func (h *Handler) build(c *gin.Context) {
	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	resume, err := h.Svc.Build(c.Request.Context(), req.toResume())
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.Created(c, gin.H{
		"success": true,
		"message": "Resume created successfully",
		"resume":  resume,
	})
}

// list reads the owner from ?userId= or, for older clients, a GET body.
func (h *Handler) list(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" && c.Request.Body != nil {
		var req listRequest
		if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respond.Fail(c, apperr.Invalid("invalid request body"))
			return
		}
		userID = firstNonEmpty(req.UserID, req.UserIDAlt)
	}

	resumes, err := h.Svc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{
		"message": "Resumes Found",
		"resumes": resumes,
	})
}
