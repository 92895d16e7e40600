package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cvisionary/internal/jobs"
	"cvisionary/internal/resumes"
	"cvisionary/internal/reviews"
	"cvisionary/internal/scoring"
	"cvisionary/internal/services/health"
	"cvisionary/internal/shared/config"
	"cvisionary/internal/shared/metrics"
	"cvisionary/internal/shared/server/middleware"
	"cvisionary/internal/shared/server/respond"
	"cvisionary/internal/socials"
	"cvisionary/internal/users"
)

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config        config.Config
	Verifier      middleware.TokenVerifier
	Health        *health.Service
	UserHandler   *users.Handler
	ResumeHandler *resumes.Handler
	JobHandler    *jobs.Handler
	ReviewHandler *reviews.Handler
	SocialHandler *socials.Handler
	ScoreHandler  *scoring.Handler
	// Now drives the rate limiter; nil means time.Now.
	Now func() time.Time
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: middleware.AuthRoutesGroup,
			Limiter:  middleware.NewRateLimiter(deps.Now),
			Rules: map[string]middleware.RateLimitRule{
				"AUTH": {Rate: deps.Config.AuthRateLimitRPS, Burst: deps.Config.AuthRateLimitBurst},
			},
		}),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}
	r.GET("/health", func(c *gin.Context) {
		st := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, st)
	})
	r.GET("/metrics", metrics.Handler())

	root := &r.RouterGroup
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(root, middleware.Auth(deps.Verifier))
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(root)
	}
	if deps.JobHandler != nil {
		deps.JobHandler.RegisterRoutes(root)
	}
	if deps.ReviewHandler != nil {
		deps.ReviewHandler.RegisterRoutes(root)
	}
	if deps.SocialHandler != nil {
		deps.SocialHandler.RegisterRoutes(root)
	}
	if deps.ScoreHandler != nil {
		deps.ScoreHandler.RegisterRoutes(root)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "route_not_found", "Route not found", nil)
	})

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
