package handler

import (
	"mypayment-ledger/internal/adapter/http/dto"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles registration, terms of service, wallet and device endpoints.
type AccountHandler struct {
	accountSvc ports.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// Register handles POST /users/me/register.
func (h *AccountHandler) Register(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	up, err := h.accountSvc.Register(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, up)
}

// GetTOS handles GET /users/me/tos.
func (h *AccountHandler) GetTOS(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	info, err := h.accountSvc.GetTOS(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, info)
}

// SignTOS handles POST /users/me/tos.
func (h *AccountHandler) SignTOS(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	var req dto.SignTOSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.accountSvc.SignTOS(c.Request.Context(), user, req.AcceptedTOSVersion); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetWallet handles GET /users/me/wallet.
func (h *AccountHandler) GetWallet(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	wallet, err := h.accountSvc.GetWallet(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.WalletResponse{ID: wallet.ID, Balance: wallet.Balance})
}

// CreateDevice handles POST /users/me/wallet/devices.
func (h *AccountHandler) CreateDevice(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	var req dto.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	device, err := h.accountSvc.CreateDevice(c.Request.Context(), user, req.Name, req.Ed25519PublicKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, device)
}

// ListDevices handles GET /users/me/wallet/devices.
func (h *AccountHandler) ListDevices(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	devices, err := h.accountSvc.ListDevices(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, devices)
}

// GetDevice handles GET /users/me/wallet/devices/:id.
func (h *AccountHandler) GetDevice(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	deviceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	device, err := h.accountSvc.GetDevice(c.Request.Context(), user, deviceID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, device)
}

// RevokeDevice handles POST /users/me/wallet/devices/:id/revoke.
func (h *AccountHandler) RevokeDevice(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	deviceID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.accountSvc.RevokeDevice(c.Request.Context(), user, deviceID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ActivateDevice handles GET /devices/activate?token=. The link is opened from an email,
// so the route is not behind the bearer token.
func (h *AccountHandler) ActivateDevice(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, apperror.Validation("token is required"))
		return
	}

	if err := h.accountSvc.ActivateDevice(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"activated": true})
}
