package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriplan/internal/service"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// IndicatorPerformance handles GET /api/indicator-performance/?year=
func (h *DashboardHandler) IndicatorPerformance(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	dash, err := h.dashboardService.IndicatorPerformance(c.Request.Context(), year)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
