package socials

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
	scrape := rg.Group("/Scrapper")
	scrape.GET("/github", h.githubProfile)
	scrape.GET("/github/repos", h.githubRepos)

	socials := rg.Group("/socials")
	socials.POST("/connect", h.connect)
	socials.GET("/connections", h.connections)
}

// scrapeRequest is read from the query string or, for older clients, the
// body of a GET request.
type scrapeRequest struct {
	Username    string `json:"Username"`
	UsernameAlt string `json:"username"`
	UserID      string `json:"userId"`
}

func bindScrapeRequest(c *gin.Context) (username, userID string, err error) {
	username = c.Query("username")
	userID = c.Query("userId")
	if username != "" || c.Request.Body == nil {
		return username, userID, nil
	}
	var req scrapeRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return "", "", apperr.Invalid("invalid request body")
	}
	username = req.Username
	if username == "" {
		username = req.UsernameAlt
	}
	if userID == "" {
		userID = req.UserID
	}
	return username, userID, nil
}

func (h *Handler) githubProfile(c *gin.Context) {
	username, userID, err := bindScrapeRequest(c)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	profile, err := h.Svc.GitHubProfile(c.Request.Context(), username, userID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{
		"success": true,
		"message": "Github data fetched successfully",
		"data":    profile,
	})
}

func (h *Handler) githubRepos(c *gin.Context) {
	username, userID, err := bindScrapeRequest(c)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	repos, err := h.Svc.GitHubRepos(c.Request.Context(), username, userID)
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{
		"success": true,
		"message": "Github data fetched successfully",
		"data":    repos,
	})
}

type connectRequest struct {
	UserID       string `json:"userId" binding:"required"`
	Provider     string `json:"provider" binding:"required,oneof=GitHub LinkedIn"`
	ProviderID   string `json:"providerId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) connect(c *gin.Context) {
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BindError(c, err)
		return
	}
	conn, err := h.Svc.Connect(c.Request.Context(), ConnectInput{
		UserID:       req.UserID,
		Provider:     req.Provider,
		ProviderID:   req.ProviderID,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.Created(c, gin.H{
		"success":    true,
		"message":    "Social account connected successfully",
		"connection": conn,
	})
}

func (h *Handler) connections(c *gin.Context) {
	conns, err := h.Svc.ListConnections(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respond.Fail(c, err)
		return
	}
	respond.OK(c, gin.H{"success": true, "connections": conns})
}
