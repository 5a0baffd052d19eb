package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bizledger/internal/core/id"
	"bizledger/internal/domain"
	"bizledger/internal/domain/documents/salesorder"
	"bizledger/internal/infrastructure/http/v1/dto"
)

// SalesOrderHandler handles HTTP requests for SalesOrder documents.
type SalesOrderHandler struct {
	*BaseDocumentHandler[*salesorder.SalesOrder, dto.CreateSalesOrderRequest, dto.UpdateSalesOrderRequest]
	service *salesorder.Service
}

// NewSalesOrderHandler creates a new sales order handler.
func NewSalesOrderHandler(base *BaseHandler, service *salesorder.Service) *SalesOrderHandler {
	cfg := BaseDocumentHandlerConfig[*salesorder.SalesOrder, dto.CreateSalesOrderRequest, dto.UpdateSalesOrderRequest]{
		Service:    service,
		EntityName: "sales-order",
		MapCreateDTO: func(req dto.CreateSalesOrderRequest) *salesorder.SalesOrder {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateSalesOrderRequest, existing *salesorder.SalesOrder) *salesorder.SalesOrder {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(order *salesorder.SalesOrder) any {
			return dto.FromSalesOrder(order)
		},
	}

	return &SalesOrderHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
	}
}

func (h *SalesOrderHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := salesorder.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if customerID := c.Query("customerId"); customerID != "" {
		if parsed, err := id.Parse(customerID); err == nil {
			filter.CustomerID = &parsed
		}
	}
	if status := c.Query("status"); status != "" {
		st := salesorder.Status(status)
		filter.Status = &st
	}
	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.SalesOrderResponse, len(result.Items))
	for i, order := range result.Items {
		items[i] = dto.FromSalesOrder(order)
	}

	c.JSON(http.StatusOK, dto.SalesOrderListResponse{
		Items:      items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers sales order routes.
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	h.BaseDocumentHandler.RegisterRoutes(rg)
}
