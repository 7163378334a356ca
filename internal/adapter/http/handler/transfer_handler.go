package handler

import (
	"mypayment-ledger/internal/adapter/http/dto"
	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransferHandler handles QR scans and their reversals.
type TransferHandler struct {
	engine ports.TransferEngine
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(engine ports.TransferEngine) *TransferHandler {
	return &TransferHandler{engine: engine}
}

// CheckScan handles POST /stores/:id/scan/check.
func (h *TransferHandler) CheckScan(c *gin.Context) {
	req, ok := h.bindScan(c)
	if !ok {
		return
	}

	valid, err := h.engine.CheckScan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.CheckScanResponse{Success: valid})
}

// Scan handles POST /stores/:id/scan.
func (h *TransferHandler) Scan(c *gin.Context) {
	req, ok := h.bindScan(c)
	if !ok {
		return
	}

	txn, err := h.engine.Scan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, txn)
}

func (h *TransferHandler) bindScan(c *gin.Context) (ports.ScanRequest, bool) {
	seller, ok := caller(c)
	if !ok {
		return ports.ScanRequest{}, false
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return ports.ScanRequest{}, false
	}

	var body dto.ScanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return ports.ScanRequest{}, false
	}

	return ports.ScanRequest{
		StoreID: storeID,
		Seller:  seller,
		Info: domain.ScanInfo{
			QRPayload: domain.QRPayload{
				ID:    body.ID,
				Tot:   body.Tot,
				Iat:   body.Iat,
				Key:   body.Key,
				Store: body.Store,
			},
			Signature:        body.Signature,
			BypassMembership: body.BypassMembership,
		},
	}, true
}

// Refund handles POST /transactions/:id/refund.
func (h *TransferHandler) Refund(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	txnID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amount := req.Amount
	if req.CompleteRefund {
		amount = nil
	} else if amount == nil {
		response.Error(c, apperror.Validation("amount is required for a partial refund"))
		return
	}

	refund, err := h.engine.Refund(c.Request.Context(), ports.RefundRequest{
		TransactionID: txnID,
		Caller:        user,
		Amount:        amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, refund)
}

// Cancel handles POST /transactions/:id/cancel.
func (h *TransferHandler) Cancel(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	txnID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.engine.Cancel(c.Request.Context(), txnID, user); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
