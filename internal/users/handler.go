package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cvisionary/internal/shared/server/middleware"
	"cvisionary/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes mounts the /auth routes; requireAuth guards /auth/me.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	g := rg.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.GET("/getusers", h.list)
	g.GET("/me", requireAuth, h.me)
}

type registerRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"useremail" binding:"required,email"`
	Password string `json:"userpassword" binding:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"useremail" binding:"required"`
	Password string `json:"userpassword" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respond.Fail(c, err)
		return
	}

	c.Set("userId", user.ID)
	respond.Created(c, gin.H{
		"success": true,
		"message": "User registered successfully",
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}

	result, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respond.Fail(c, err)
		return
	}

	c.Set("userId", result.User.ID)
	respond.OK(c, gin.H{
		"success":     true,
		"message":     "Login successful",
		"accessToken": result.AccessToken,
		"expiresAt":   result.ExpiresAt,
		"user":        result.User.Public(),
	})
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Fail(c, err)
		return
	}
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	respond.OK(c, gin.H{"success": true, "users": out})
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"success": true, "user": user.Public()})
}
