package reviews

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/review")
	g.POST("/write", h.write)
	g.GET("/getreviews", h.list)
}

type writeRequest struct {
	UserID     string `json:"userId" binding:"required"`
	UserName   string `json:"UserName" binding:"required"`
	ReviewText string `json:"reviewText" binding:"required,max=5000"`
}

func (h *Handler) write(c *gin.Context) {
	var req writeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	review, err := h.Svc.Write(c.Request.Context(), req.UserID, req.UserName, req.ReviewText)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.Created(c, gin.H{
		"success": true,
		"message": "Review added successfully",
		"data":    review,
	})
}

func (h *Handler) list(c *gin.Context) {
	reviews, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{
		"message": "Success",
		"reviews": reviews,
	})
}
