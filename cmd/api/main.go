package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/medagenda/clinic-scheduler/internal/config"
	dbpkg "github.com/medagenda/clinic-scheduler/internal/db"
	infraRepo "github.com/medagenda/clinic-scheduler/internal/infra/repository"
	"github.com/medagenda/clinic-scheduler/internal/logger"
	"github.com/medagenda/clinic-scheduler/internal/reminders"
	"github.com/medagenda/clinic-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.Env)

	db := dbpkg.NewDB(cfg, log)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	reminderScheduler := reminders.NewScheduler(
		infraRepo.NewSchedulingGormRepository(db),
		reminders.NewQueue(rdb),
		log,
	)
	if err := reminderScheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start reminder scheduler")
	}
	defer reminderScheduler.Stop()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
