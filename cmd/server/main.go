package main

import (
	"log"

	"go.uber.org/zap"

	"agriplan/internal/config"
	"agriplan/internal/handler"
	"agriplan/internal/httpserver"
	"agriplan/internal/repository"
	"agriplan/internal/service"
	"agriplan/pkg/db"
	"agriplan/pkg/logger"
	"agriplan/pkg/mq"
	"agriplan/pkg/redis"
)

func main() {
	cfg := config.Load()

	logger := logger.NewLogger()
	defer logger.Sync()

	logger.Info("Starting agriplan server...",
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("mq_url", cfg.MQ.URL),
	)

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init RabbitMQ Publisher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	// Init Redis
	rdb := redis.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Init Repositories
	planRepo := repository.NewPlanRepository(dbConn, logger)
	breakdownRepo := repository.NewBreakdownRepository(dbConn, logger)
	performanceRepo := repository.NewPerformanceRepository(dbConn, logger)
	windowRepo := repository.NewWindowRepository(dbConn, logger)
	orgRepo := repository.NewOrgRepository(dbConn, logger)
	groupRepo := repository.NewGroupRepository(dbConn, logger)
	userRepo := repository.NewUserRepository(dbConn, logger)
	commentRepo := repository.NewAdvisorCommentRepository(dbConn, logger)
	notificationRepo := repository.NewNotificationRepository(dbConn, logger)

	// Init Services
	dashboardService := service.NewDashboardService(groupRepo, orgRepo, rdb, logger)
	planningService := service.NewPlanningService(planRepo, breakdownRepo, performanceRepo, windowRepo, publisher, dashboardService, logger)
	windowService := service.NewWindowService(windowRepo, logger)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, logger)
	orgService := service.NewOrgService(orgRepo, commentRepo, logger)

	// Init Handlers
	authHandler := handler.NewAuthHandler(authService)
	planHandler := handler.NewPlanHandler(planningService)
	breakdownHandler := handler.NewBreakdownHandler(planningService)
	performanceHandler := handler.NewPerformanceHandler(planningService)
	windowHandler := handler.NewWindowHandler(windowService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	orgHandler := handler.NewOrgHandler(orgService)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	// Router
	router := httpserver.NewRouter(
		authHandler,
		planHandler,
		breakdownHandler,
		performanceHandler,
		windowHandler,
		dashboardHandler,
		orgHandler,
		notificationHandler,
		authService,
		logger,
		dbConn,
		publisher,
	)

	// Start server
	logger.Info("Starting agriplan server", zap.String("port", cfg.Server.Port))
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
