package handler

import (
	"time"

	"mypayment-ledger/internal/adapter/http/dto"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// IntegrityHandler serves the auditor feed. Access is guarded by DataVerifier.
type IntegrityHandler struct {
	integritySvc ports.IntegrityService
}

// NewIntegrityHandler creates a new IntegrityHandler.
func NewIntegrityHandler(integritySvc ports.IntegrityService) *IntegrityHandler {
	return &IntegrityHandler{integritySvc: integritySvc}
}

// Snapshot handles GET /integrity-check?isInitialisation=&lastChecked=.
func (h *IntegrityHandler) Snapshot(c *gin.Context) {
	var q dto.IntegrityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var lastChecked time.Time
	if !q.IsInitialisation {
		if q.LastChecked == nil {
			response.Error(c, apperror.Validation("lastChecked is required unless isInitialisation is set"))
			return
		}
		lastChecked = *q.LastChecked
	}

	snapshot, err := h.integritySvc.Snapshot(c.Request.Context(), q.IsInitialisation, lastChecked)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, snapshot)
}
