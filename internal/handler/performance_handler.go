package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agriplan/internal/service"
	"agriplan/internal/workflow"
)

type PerformanceHandler struct {
	planningService *service.PlanningService
}

func NewPerformanceHandler(planningService *service.PlanningService) *PerformanceHandler {
	return &PerformanceHandler{planningService: planningService}
}

// List handles GET /api/performances/?year=&quarter=
func (h *PerformanceHandler) List(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	quarter, err := strconv.Atoi(c.DefaultQuery("quarter", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid quarter"})
		return
	}
	perfs, err := h.planningService.ListPerformances(c.Request.Context(), currentUser(c), year, quarter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, perfs)
}

// Get handles GET /api/performances/:id/
func (h *PerformanceHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	perf, err := h.planningService.GetPerformance(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

// Ensure handles POST /api/performances/
func (h *PerformanceHandler) Ensure(c *gin.Context) {
	var req struct {
		PlanID  int `json:"plan"`
		Quarter int `json:"quarter"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	perf, err := h.planningService.EnsurePerformance(c.Request.Context(), currentUser(c), req.PlanID, req.Quarter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

// Update handles PUT /api/performances/:id/
func (h *PerformanceHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Value float64 `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	perf, err := h.planningService.UpdatePerformance(c.Request.Context(), currentUser(c), id, req.Value)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

// Submit handles POST /api/performances/:id/submit/
func (h *PerformanceHandler) Submit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	perf, err := h.planningService.SubmitPerformance(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

// Review dispatches POST /api/performances/:id/{approve,validate,final_approve,reject}/
func (h *PerformanceHandler) Review(action workflow.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req struct {
			Comment string `json:"comment"`
		}
		_ = c.ShouldBindJSON(&req)

		perf, err := h.planningService.ReviewPerformance(c.Request.Context(), currentUser(c), id, action, req.Comment)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, perf)
	}
}

// AdvisorReview handles POST /api/performances/:id/advisor_review/
func (h *PerformanceHandler) AdvisorReview(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	perf, err := h.planningService.AdvisorReviewPerformance(c.Request.Context(), currentUser(c), id, req.Comment)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}
