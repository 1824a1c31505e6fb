package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agriplan/internal/model"
	"agriplan/internal/service"
)

type OrgHandler struct {
	orgService *service.OrgService
}

func NewOrgHandler(orgService *service.OrgService) *OrgHandler {
	return &OrgHandler{orgService: orgService}
}

// optionalIntQuery parses an optional integer query parameter.
func optionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid " + name})
		return nil, false
	}
	return &v, true
}

// ListSectors handles GET /api/sectors/
func (h *OrgHandler) ListSectors(c *gin.Context) {
	sectors, err := h.orgService.ListSectors(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sectors)
}

// CreateSector handles POST /api/sectors/
func (h *OrgHandler) CreateSector(c *gin.Context) {
	var sec model.Sector
	if err := c.ShouldBindJSON(&sec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	created, err := h.orgService.CreateSector(c.Request.Context(), currentUser(c), &sec)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListDepartments handles GET /api/departments/?sector=
func (h *OrgHandler) ListDepartments(c *gin.Context) {
	sectorID, ok := optionalIntQuery(c, "sector")
	if !ok {
		return
	}
	departments, err := h.orgService.ListDepartments(c.Request.Context(), sectorID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

// CreateDepartment handles POST /api/departments/
func (h *OrgHandler) CreateDepartment(c *gin.Context) {
	var d model.Department
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	created, err := h.orgService.CreateDepartment(c.Request.Context(), currentUser(c), &d)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListIndicators handles GET /api/indicators/?department=
func (h *OrgHandler) ListIndicators(c *gin.Context) {
	departmentID, ok := optionalIntQuery(c, "department")
	if !ok {
		return
	}
	indicators, err := h.orgService.ListIndicators(c.Request.Context(), departmentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, indicators)
}

// CreateIndicator handles POST /api/indicators/
func (h *OrgHandler) CreateIndicator(c *gin.Context) {
	var ind model.Indicator
	if err := c.ShouldBindJSON(&ind); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	created, err := h.orgService.CreateIndicator(c.Request.Context(), currentUser(c), &ind)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListAdvisorComments handles GET /api/advisor-comments/?year=&sector=&department=
func (h *OrgHandler) ListAdvisorComments(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}
	sectorID, ok := optionalIntQuery(c, "sector")
	if !ok {
		return
	}
	departmentID, ok := optionalIntQuery(c, "department")
	if !ok {
		return
	}
	comments, err := h.orgService.ListAdvisorComments(c.Request.Context(), currentUser(c), year, sectorID, departmentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// CreateAdvisorComment handles POST /api/advisor-comments/
func (h *OrgHandler) CreateAdvisorComment(c *gin.Context) {
	var comment model.AdvisorComment
	if err := c.ShouldBindJSON(&comment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	created, err := h.orgService.AddAdvisorComment(c.Request.Context(), currentUser(c), &comment)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
