package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"agriplan/internal/handler"
	"agriplan/internal/service"
	"agriplan/internal/workflow"
	"agriplan/pkg/mq"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	authHandler *handler.AuthHandler,
	planHandler *handler.PlanHandler,
	breakdownHandler *handler.BreakdownHandler,
	performanceHandler *handler.PerformanceHandler,
	windowHandler *handler.WindowHandler,
	dashboardHandler *handler.DashboardHandler,
	orgHandler *handler.OrgHandler,
	notificationHandler *handler.NotificationHandler,
	authService *service.AuthService,
	logger *zap.Logger,
	db *pgxpool.Pool,
	publisher *mq.Publisher,
) *Router {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestMetrics(logger))

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
			return
		}

		if publisher != nil && !publisher.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}

		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.POST("/api/auth/token/", authHandler.Token)

	// Protected
	api := r.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.GET("/me/", authHandler.Me)

		api.GET("/users/", authHandler.ListUsers)
		api.POST("/users/", authHandler.CreateUser)
		api.PUT("/users/:id/", authHandler.UpdateUser)
		api.POST("/users/:id/password/", authHandler.SetPassword)

		api.GET("/annual-plans/", planHandler.List)
		api.POST("/annual-plans/", planHandler.Create)
		api.GET("/annual-plans/:id/", planHandler.Get)
		api.GET("/annual-plans/:id/progress/", planHandler.Progress)

		api.GET("/breakdowns/", breakdownHandler.List)
		api.POST("/breakdowns/", breakdownHandler.Ensure)
		api.GET("/breakdowns/:id/", breakdownHandler.Get)
		api.PUT("/breakdowns/:id/", breakdownHandler.Update)
		api.POST("/breakdowns/:id/submit/", breakdownHandler.Submit)
		api.POST("/breakdowns/:id/approve/", breakdownHandler.Review(workflow.ActionApprove))
		api.POST("/breakdowns/:id/validate/", breakdownHandler.Review(workflow.ActionValidate))
		api.POST("/breakdowns/:id/final_approve/", breakdownHandler.Review(workflow.ActionFinalApprove))
		api.POST("/breakdowns/:id/reject/", breakdownHandler.Review(workflow.ActionReject))
		api.POST("/breakdowns/:id/advisor_review/", breakdownHandler.AdvisorReview)

		api.GET("/performances/", performanceHandler.List)
		api.POST("/performances/", performanceHandler.Ensure)
		api.GET("/performances/:id/", performanceHandler.Get)
		api.PUT("/performances/:id/", performanceHandler.Update)
		api.POST("/performances/:id/submit/", performanceHandler.Submit)
		api.POST("/performances/:id/approve/", performanceHandler.Review(workflow.ActionApprove))
		api.POST("/performances/:id/validate/", performanceHandler.Review(workflow.ActionValidate))
		api.POST("/performances/:id/final_approve/", performanceHandler.Review(workflow.ActionFinalApprove))
		api.POST("/performances/:id/reject/", performanceHandler.Review(workflow.ActionReject))
		api.POST("/performances/:id/advisor_review/", performanceHandler.AdvisorReview)

		api.GET("/submission-windows/status/", windowHandler.Status)
		api.GET("/submission-windows/", windowHandler.List)
		api.POST("/submission-windows/", windowHandler.Create)
		api.PUT("/submission-windows/:id/", windowHandler.Update)
		api.DELETE("/submission-windows/:id/", windowHandler.Delete)

		api.GET("/indicator-performance/", dashboardHandler.IndicatorPerformance)

		api.GET("/sectors/", orgHandler.ListSectors)
		api.POST("/sectors/", orgHandler.CreateSector)
		api.GET("/departments/", orgHandler.ListDepartments)
		api.POST("/departments/", orgHandler.CreateDepartment)
		api.GET("/indicators/", orgHandler.ListIndicators)
		api.POST("/indicators/", orgHandler.CreateIndicator)

		api.GET("/advisor-comments/", orgHandler.ListAdvisorComments)
		api.POST("/advisor-comments/", orgHandler.CreateAdvisorComment)

		api.GET("/notifications/", notificationHandler.List)
	}

	return &Router{Engine: r}
}

func (r *Router) Run(port string) error {
	return r.Engine.Run(port)
}
