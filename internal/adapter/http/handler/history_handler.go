package handler

import (
	"mypayment-ledger/internal/adapter/http/dto"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// HistoryHandler serves user and store wallet histories.
type HistoryHandler struct {
	historySvc ports.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historySvc ports.HistoryService) *HistoryHandler {
	return &HistoryHandler{historySvc: historySvc}
}

// UserHistory handles GET /users/me/wallet/history.
func (h *HistoryHandler) UserHistory(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	q, ok := bindDateRange(c)
	if !ok {
		return
	}

	history, err := h.historySvc.UserHistory(c.Request.Context(), user, q.StartDate, q.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, history)
}

// StoreHistory handles GET /stores/:id/history.
func (h *HistoryHandler) StoreHistory(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	q, ok := bindDateRange(c)
	if !ok {
		return
	}

	history, err := h.historySvc.StoreHistory(c.Request.Context(), storeID, user, q.StartDate, q.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, history)
}

func bindDateRange(c *gin.Context) (dto.DateRangeQuery, bool) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return q, false
	}
	if err := validateRange(q.StartDate, q.EndDate); err != nil {
		response.Error(c, err)
		return q, false
	}
	return q, true
}
