package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agriplan/internal/config"
	"agriplan/internal/mqhandler"
	"agriplan/internal/repository"
	"agriplan/pkg/db"
	"agriplan/pkg/logger"
	"agriplan/pkg/mq"
	"agriplan/pkg/redis"
	"agriplan/pkg/util"
)

const workerPort = ":8086"

func main() {
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Starting agriplan worker...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("mq_url", cfg.MQ.URL),
	)

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("Failed to init DB", zap.Error(err))
	}
	defer dbConn.Close()

	// Redis (事件去重)
	rdb := redis.NewRedisClient(cfg.Redis)
	defer rdb.Close()
	deduper := util.NewDeduper(rdb, 24*time.Hour, log)

	// Repositories
	notificationRepo := repository.NewNotificationRepository(dbConn, log)

	// MQ Handlers
	planEventHandler := mqhandler.NewPlanEventHandler(notificationRepo, deduper, log)

	// One consumer per record type, both bound to the workflow events.
	breakdownConsumer, err := mq.NewConsumer(cfg.MQ.URL, "plan.breakdown.q", "breakdown.*", log)
	if err != nil {
		log.Fatal("Failed to init breakdown consumer", zap.Error(err))
	}
	defer breakdownConsumer.Close()
	breakdownConsumer.SetHandler(planEventHandler.Handle)

	performanceConsumer, err := mq.NewConsumer(cfg.MQ.URL, "plan.performance.q", "performance.*", log)
	if err != nil {
		log.Fatal("Failed to init performance consumer", zap.Error(err))
	}
	defer performanceConsumer.Close()
	performanceConsumer.SetHandler(planEventHandler.Handle)

	go func() {
		log.Info("Starting breakdown event consumer...")
		if err := breakdownConsumer.StartConsuming(); err != nil {
			log.Fatal("Breakdown consumer failed", zap.Error(err))
		}
	}()
	go func() {
		log.Info("Starting performance event consumer...")
		if err := performanceConsumer.StartConsuming(); err != nil {
			log.Fatal("Performance consumer failed", zap.Error(err))
		}
	}()

	// HTTP Server (for health checks)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	engine.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := dbConn.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}
		if !breakdownConsumer.IsConnected() || !performanceConsumer.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	srv := &http.Server{
		Addr:    workerPort,
		Handler: engine,
	}
	go func() {
		log.Info("HTTP server starting", zap.String("port", workerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	log.Info("agriplan worker is fully initialized and running")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down agriplan worker gracefully...")

	breakdownConsumer.Stop()
	performanceConsumer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("agriplan worker stopped")
}
