package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bizledger/internal/core/apperror"
	"bizledger/internal/core/id"
	"bizledger/internal/domain"
	"bizledger/internal/domain/catalogs/contact"
	"bizledger/internal/domain/documents/invoice"
	"bizledger/internal/infrastructure/http/v1/dto"
	"bizledger/internal/infrastructure/pdf"
	"bizledger/internal/infrastructure/storage/postgres"
)

// InvoiceHandler handles HTTP requests for CustomerInvoice documents.
type InvoiceHandler struct {
	*BaseDocumentHandler[*invoice.CustomerInvoice, dto.CreateInvoiceRequest, dto.UpdateInvoiceRequest]
	service  *invoice.Service
	contacts *contact.Service
	audit    *postgres.AuditService
	renderer *pdf.Renderer
}

// NewInvoiceHandler creates a new customer invoice handler. audit and
// renderer may be nil; the corresponding endpoints then report 404.
func NewInvoiceHandler(
	base *BaseHandler,
	service *invoice.Service,
	contacts *contact.Service,
	audit *postgres.AuditService,
	renderer *pdf.Renderer,
) *InvoiceHandler {
	cfg := BaseDocumentHandlerConfig[*invoice.CustomerInvoice, dto.CreateInvoiceRequest, dto.UpdateInvoiceRequest]{
		Service:    service,
		EntityName: "customer-invoice",
		MapCreateDTO: func(req dto.CreateInvoiceRequest) *invoice.CustomerInvoice {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateInvoiceRequest, existing *invoice.CustomerInvoice) *invoice.CustomerInvoice {
			req.ApplyTo(existing)
			return existing
		},
		MapToDTO: func(inv *invoice.CustomerInvoice) any {
			return dto.FromInvoice(inv)
		},
	}

	return &InvoiceHandler{
		BaseDocumentHandler: NewBaseDocumentHandler(base, cfg),
		service:             service,
		contacts:            contacts,
		audit:               audit,
		renderer:            renderer,
	}
}

func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := invoice.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"
	filter.Unpaid = c.Query("unpaid") == "true"

	if customerID := c.Query("customerId"); customerID != "" {
		if parsed, err := id.Parse(customerID); err == nil {
			filter.CustomerID = &parsed
		}
	}
	if orderID := c.Query("salesOrderId"); orderID != "" {
		if parsed, err := id.Parse(orderID); err == nil {
			filter.SalesOrderID = &parsed
		}
	}
	if status := c.Query("status"); status != "" {
		normalized, err := invoice.NormalizeStatus(status)
		if err != nil {
			h.Error(c, err)
			return
		}
		filter.Status = &normalized
	}
	if paymentStatus := c.Query("paymentStatus"); paymentStatus != "" {
		ps := invoice.PaymentStatus(paymentStatus)
		filter.PaymentStatus = &ps
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
	if dueBefore := c.Query("dueBefore"); dueBefore != "" {
		if parsed, err := time.Parse(time.RFC3339, dueBefore); err == nil {
			filter.DueBefore = &parsed
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.InvoiceResponse, len(result.Items))
	for i, inv := range result.Items {
		items[i] = dto.FromInvoice(inv)
	}

	c.JSON(http.StatusOK, dto.InvoiceListResponse{
		Items:      items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// UpdateStatus handles PATCH /customer-invoices/:id/status. The service
// maps the requested status onto the confirm, send or cancel workflow.
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	invID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateInvoiceStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.UpdateStatus(ctx, invID, req.Status)
	if err != nil {
		h.Error(c, err)
		return
	}

	response := dto.FromInvoice(inv)
	h.CompleteIdempotency(c, http.StatusOK, "application/json", response)
	c.JSON(http.StatusOK, response)
}

// RegisterPayment handles POST /customer-invoices/:id/payments.
func (h *InvoiceHandler) RegisterPayment(c *gin.Context) {
	ctx := c.Request.Context()

	invID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.RegisterPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.RegisterPayment(ctx, invID, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	response := dto.FromInvoice(inv)
	h.CompleteIdempotency(c, http.StatusOK, "application/json", response)
	c.JSON(http.StatusOK, response)
}

// NextNumber handles GET /customer-invoices/next-number. The returned
// value only labels unsaved drafts; the number assigned on save is
// authoritative.
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	number, err := h.service.DraftNumberPlaceholder(c.Request.Context(), time.Now())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"number": number})
}

// PDF handles GET /customer-invoices/:id/pdf.
func (h *InvoiceHandler) PDF(c *gin.Context) {
	ctx := c.Request.Context()

	if h.renderer == nil {
		h.Error(c, apperror.NewNotFound("endpoint", "pdf"))
		return
	}

	invID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	inv, err := h.service.GetByID(ctx, invID)
	if err != nil {
		h.Error(c, err)
		return
	}

	data := pdf.InvoiceData{Invoice: inv}
	if cust, err := h.contacts.GetByID(ctx, inv.CustomerID); err == nil {
		data.CustomerName = cust.Name
		if cust.TaxID != nil {
			data.CustomerTaxID = *cust.TaxID
		}
		if cust.BillingAddress != nil {
			data.CustomerAddress = *cust.BillingAddress
		}
	}

	rendered, err := h.renderer.RenderInvoice(data)
	if err != nil {
		h.Error(c, err)
		return
	}

	filename := "invoice.pdf"
	if inv.Number != "" {
		filename = inv.Number + ".pdf"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", rendered)
}

// Audit handles GET /customer-invoices/:id/audit.
func (h *InvoiceHandler) Audit(c *gin.Context) {
	ctx := c.Request.Context()

	if h.audit == nil {
		h.Error(c, apperror.NewNotFound("endpoint", "audit"))
		return
	}

	invID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 100)
	entries, err := h.audit.GetEntityHistory(ctx, "customer_invoice", invID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AuditEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = dto.AuditEntryResponse{
			ID:        e.ID.String(),
			Action:    string(e.Action),
			Changes:   e.Changes,
			CreatedAt: e.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, dto.AuditHistoryResponse{Items: items})
}

// RegisterRoutes registers customer invoice routes.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/next-number", h.NextNumber)
	rg.POST("", h.BaseDocumentHandler.Create)
	rg.GET("/:id", h.BaseDocumentHandler.Get)
	rg.PUT("/:id", h.BaseDocumentHandler.Update)
	rg.DELETE("/:id", h.BaseDocumentHandler.Delete)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.POST("/:id/payments", h.RegisterPayment)
	rg.GET("/:id/pdf", h.PDF)
	rg.GET("/:id/audit", h.Audit)
}
