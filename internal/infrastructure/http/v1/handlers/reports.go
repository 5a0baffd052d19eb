package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizledger/internal/domain/reports"
	"bizledger/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for aggregated reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetDashboardStats handles GET /dashboard/stats.
func (h *ReportsHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.service.GetDashboardStats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromDashboardStats(stats))
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.GetDashboardStats)
}
