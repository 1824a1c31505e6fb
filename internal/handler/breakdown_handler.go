package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agriplan/internal/service"
	"agriplan/internal/workflow"
)

type BreakdownHandler struct {
	planningService *service.PlanningService
}

func NewBreakdownHandler(planningService *service.PlanningService) *BreakdownHandler {
	return &BreakdownHandler{planningService: planningService}
}

// List handles GET /api/breakdowns/?year=
func (h *BreakdownHandler) List(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	views, err := h.planningService.ListBreakdowns(c.Request.Context(), currentUser(c), year)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Get handles GET /api/breakdowns/:id/
func (h *BreakdownHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	view, err := h.planningService.GetBreakdown(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Ensure handles POST /api/breakdowns/ — returns the plan's breakdown,
// creating a zeroed draft on first access.
func (h *BreakdownHandler) Ensure(c *gin.Context) {
	var req struct {
		PlanID int `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	view, err := h.planningService.EnsureBreakdown(c.Request.Context(), currentUser(c), req.PlanID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Update handles PUT /api/breakdowns/:id/
func (h *BreakdownHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Q1 float64 `json:"q1"`
		Q2 float64 `json:"q2"`
		Q3 float64 `json:"q3"`
		Q4 float64 `json:"q4"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	view, err := h.planningService.UpdateBreakdown(c.Request.Context(), currentUser(c), id, req.Q1, req.Q2, req.Q3, req.Q4)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Submit handles POST /api/breakdowns/:id/submit/
func (h *BreakdownHandler) Submit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	view, err := h.planningService.SubmitBreakdown(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Review dispatches the reviewer actions:
// POST /api/breakdowns/:id/{approve,validate,final_approve,reject}/
func (h *BreakdownHandler) Review(action workflow.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req struct {
			Comment string `json:"comment"`
		}
		// Comment body is optional for every action except some rejections.
		_ = c.ShouldBindJSON(&req)

		view, err := h.planningService.ReviewBreakdown(c.Request.Context(), currentUser(c), id, action, req.Comment)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// AdvisorReview handles POST /api/breakdowns/:id/advisor_review/
func (h *BreakdownHandler) AdvisorReview(c *gin.Context) {
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
	view, err := h.planningService.AdvisorReviewBreakdown(c.Request.Context(), currentUser(c), id, req.Comment)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
