package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/uxforge/design-agent-backend/config"
	"github.com/uxforge/design-agent-backend/internal/agents"
	"github.com/uxforge/design-agent-backend/internal/bootstrap"
	"github.com/uxforge/design-agent-backend/internal/janitor"
	"github.com/uxforge/design-agent-backend/internal/pipeline"
	"github.com/uxforge/design-agent-backend/internal/projects/repository"
)

const serviceName = "design-agent-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	// Postgres is optional: without a DSN the approval audit log is off.
	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
	if err != nil {
		if cfg.Database.DSN != "" {
			log.Fatalf("db: %v", err)
		}
		log.Println("DB_DSN not set, approval audit log disabled")
	}
	if pool != nil {
		defer pool.Close()
	}

	repo := repository.NewProjectRepository(rdb)
	runner := pipeline.NewRunner(
		repo,
		agents.NewDesigner(cfg.Pipeline.AgentDelay),
		agents.NewReviewer(cfg.Pipeline.AgentDelay),
	)

	jan := janitor.New(repo, cfg.Pipeline.StaleDeadline)
	jan.Start()
	defer jan.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Redis:       rdb,
		DB:          pool,
		Runner:      runner,
		Approver:    cfg.Pipeline.DefaultApprover,
		RateRPS:     50,
		RateBurst:   100,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("%s v%s listening on :%s", serviceName, cfg.App.Version, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
