package handler

import (
	"mypayment-ledger/internal/adapter/http/dto"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultInvoicePageSize = 20

// InvoiceHandler handles structure invoicing endpoints.
type InvoiceHandler struct {
	invoiceSvc ports.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceSvc ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceSvc: invoiceSvc}
}

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	params, ok := bindInvoiceList(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceSvc.List(c.Request.Context(), user, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, invoices)
}

// ListByStructure handles GET /invoices/structures/:id.
func (h *InvoiceHandler) ListByStructure(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	structureID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	params, ok := bindInvoiceList(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceSvc.ListByStructure(c.Request.Context(), structureID, user, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, invoices)
}

// Create handles POST /invoices/structures/:id.
func (h *InvoiceHandler) Create(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	structureID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceSvc.Create(c.Request.Context(), structureID, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, invoice)
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceSvc.Get(c.Request.Context(), invoiceID, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, invoice)
}

// MarkPaid handles PATCH /invoices/:id/paid?paid=.
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var q dto.MarkPaidQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.invoiceSvc.MarkPaid(c.Request.Context(), invoiceID, *q.Paid, user); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// MarkReceived handles PATCH /invoices/:id/received.
func (h *InvoiceHandler) MarkReceived(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceSvc.MarkReceived(c.Request.Context(), invoiceID, user); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete handles DELETE /invoices/:id.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	invoiceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceSvc.Delete(c.Request.Context(), invoiceID, user); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindInvoiceList(c *gin.Context) (ports.InvoiceListParams, bool) {
	var q dto.InvoiceListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return ports.InvoiceListParams{}, false
	}
	if err := validateRange(q.StartDate, q.EndDate); err != nil {
		response.Error(c, err)
		return ports.InvoiceListParams{}, false
	}

	params := ports.InvoiceListParams{
		From:     q.StartDate,
		To:       q.EndDate,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.PageSize == 0 {
		params.PageSize = defaultInvoicePageSize
	}
	for _, raw := range q.StructureIDs {
		// already validated by the uuid tag
		params.StructureIDs = append(params.StructureIDs, uuid.MustParse(raw))
	}
	return params, true
}
