package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"resume-web/internal/apiclient"
	"resume-web/internal/dashboard"
	"resume-web/internal/home"
	"resume-web/internal/landing"
	"resume-web/internal/page"
	"resume-web/internal/shared/config"
	"resume-web/internal/shared/metrics"
	"resume-web/internal/shared/server/middleware"
	"resume-web/internal/shared/server/respond"
	"resume-web/internal/shared/telemetry"
)

const (
	sweepInterval = 5 * time.Minute
	// limiterIdle outlasts the slowest bucket refill (two uploads a minute).
	limiterIdle = 30 * time.Minute
)

// Deps are the collaborators shared by every page handler.
type Deps struct {
	API   *apiclient.Client
	Repo  page.Repo
	Locks *page.KeyedLock
	Limiter *middleware.RateLimiter
}

// NewDeps builds the backend client, the page session store named by cfg and
// the rate limiter. Expired sessions and idle buckets are swept until ctx is
// done.
func NewDeps(ctx context.Context, cfg config.Config) (Deps, error) {
	api, err := apiclient.New(apiclient.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout})
	if err != nil {
		return Deps{}, errors.Wrap(err, "api client")
	}
	deps := Deps{API: api, Locks: page.NewKeyedLock(), Limiter: middleware.NewRateLimiter(nil)}
	switch cfg.PageStore {
	case "redis":
		deps.Repo = page.NewRedisRepo(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.PageSessionTTL)
	default:
		deps.Repo = page.NewMemoryRepo(cfg.PageSessionTTL)
	}
	go sweep(ctx, deps)
	telemetry.Info("server.deps_ready", map[string]any{"api": api.BaseURL(), "store": cfg.PageStore})
	return deps, nil
}

func sweep(ctx context.Context, deps Deps) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepOnce(deps)
		}
	}
}

func sweepOnce(deps Deps) {
	if mem, ok := deps.Repo.(*page.MemoryRepo); ok {
		if n := mem.Sweep(); n > 0 {
			telemetry.Info("page.sessions_swept", map[string]any{"count": n})
		}
	}
	if n := deps.Limiter.Prune(limiterIdle); n > 0 {
		telemetry.Info("ratelimit.buckets_pruned", map[string]any{"count": n, "remaining": deps.Limiter.Len()})
	}
}

// knownSession reports whether sid names a stored page session.
func knownSession(repo page.Repo) func(*gin.Context, string) bool {
	return func(c *gin.Context, sid string) bool {
		_, err := repo.Get(c.Request.Context(), sid)
		return err == nil
	}
}

// NewRouter constructs the Gin engine with middleware and pages registered.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Session(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.EventRateLimitGroup:   {Rate: cfg.EventRatePerSec, Burst: cfg.EventBurst},
				middleware.AnalyzeRateLimitGroup: {Rate: cfg.AnalyzeRatePerMin / 60, Burst: 2},
			},
			GroupFor:     middleware.PageEventGroup,
			KnownSession: knownSession(deps.Repo),
			Limiter:      deps.Limiter,
		}),
	)

	pages := []*page.Handler{
		page.NewHandler("/", landing.New(), deps.Repo, deps.API, deps.Locks, cfg.CookieSecure),
		page.NewHandler("/home", home.New(), deps.Repo, deps.API, deps.Locks, cfg.CookieSecure),
		page.NewHandler("/dashboard", dashboard.New(), deps.Repo, deps.API, deps.Locks, cfg.CookieSecure),
	}
	for _, h := range pages {
		h.RegisterRoutes(r)
	}

	r.POST("/theme", page.ThemeHandler(cfg.CookieSecure))
	r.GET("/healthz", healthHandler(deps))
	r.GET("/metrics", metrics.Handler())
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "Page not found", nil)
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
