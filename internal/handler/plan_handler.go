package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"agriplan/internal/calendar"
	"agriplan/internal/model"
	"agriplan/internal/service"
)

type PlanHandler struct {
	planningService *service.PlanningService
}

func NewPlanHandler(planningService *service.PlanningService) *PlanHandler {
	return &PlanHandler{planningService: planningService}
}

// yearParam reads ?year=, defaulting to the current Ethiopian planning year.
func yearParam(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return calendar.CurrentEthiopianYear(time.Now()), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid year"})
		return 0, false
	}
	return year, true
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid id"})
		return 0, false
	}
	return id, true
}

// List handles GET /api/annual-plans/?year=
func (h *PlanHandler) List(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	plans, err := h.planningService.ListPlans(c.Request.Context(), currentUser(c), year)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// Get handles GET /api/annual-plans/:id/
func (h *PlanHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	plan, err := h.planningService.GetPlan(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// Progress handles GET /api/annual-plans/:id/progress/
func (h *PlanHandler) Progress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	progress, err := h.planningService.Progress(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Create handles POST /api/annual-plans/
func (h *PlanHandler) Create(c *gin.Context) {
	var req struct {
		Year        int     `json:"year"`
		IndicatorID int     `json:"indicator"`
		Target      float64 `json:"target"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	plan := &model.AnnualPlan{Year: req.Year, IndicatorID: req.IndicatorID, Target: req.Target}
	created, err := h.planningService.CreatePlan(c.Request.Context(), currentUser(c), plan)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
