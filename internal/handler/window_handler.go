package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"agriplan/internal/model"
	"agriplan/internal/service"
)

type WindowHandler struct {
	windowService *service.WindowService
}

func NewWindowHandler(windowService *service.WindowService) *WindowHandler {
	return &WindowHandler{windowService: windowService}
}

// Status handles GET /api/submission-windows/status/?year=
func (h *WindowHandler) Status(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	status, err := h.windowService.Status(c.Request.Context(), year)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// List handles GET /api/submission-windows/
func (h *WindowHandler) List(c *gin.Context) {
	windows, err := h.windowService.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

type windowRequest struct {
	WindowType string     `json:"window_type"`
	Year       *int       `json:"year"`
	AlwaysOpen bool       `json:"always_open"`
	Start      *time.Time `json:"start"`
	End        *time.Time `json:"end"`
	Active     bool       `json:"active"`
}

func (r *windowRequest) toModel() *model.SubmissionWindow {
	return &model.SubmissionWindow{
		WindowType: model.WindowType(r.WindowType),
		Year:       r.Year,
		AlwaysOpen: r.AlwaysOpen,
		Start:      r.Start,
		End:        r.End,
		Active:     r.Active,
	}
}

// Create handles POST /api/submission-windows/
func (h *WindowHandler) Create(c *gin.Context) {
	var req windowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	created, err := h.windowService.Create(c.Request.Context(), currentUser(c), req.toModel())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/submission-windows/:id/
func (h *WindowHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req windowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	w := req.toModel()
	w.ID = id
	updated, err := h.windowService.Update(c.Request.Context(), currentUser(c), w)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/submission-windows/:id/
func (h *WindowHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.windowService.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
