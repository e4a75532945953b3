package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/uxforge/design-agent-backend/internal/api/http"
	"github.com/uxforge/design-agent-backend/internal/api/http/middleware"
	"github.com/uxforge/design-agent-backend/internal/pipeline"
	projecthttp "github.com/uxforge/design-agent-backend/internal/projects/http"
	"github.com/uxforge/design-agent-backend/internal/projects/repository"
	"github.com/uxforge/design-agent-backend/internal/projects/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Redis       *redis.Client
	DB          *pgxpool.Pool // optional; nil disables the audit log
	Runner      *pipeline.Runner
	Approver    string
	RateRPS     float64
	RateBurst   int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(middleware.RequestID())

	httpapi.RegisterRoot(r, dep.ServiceName, dep.Version)

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	if dep.RateRPS > 0 {
		api.Use(middleware.RateLimit(dep.RateRPS, dep.RateBurst))
	}

	projectRepo := repository.NewProjectRepository(dep.Redis)
	decisionRepo := repository.NewDecisionRepository(dep.DB)
	projectSvc := service.NewProjectService(projectRepo, decisionRepo, dep.Runner, dep.Approver)

	projecthttp.NewHandler(projectSvc).Register(api)

	return r
}
