package handler

import (
	"mypayment-ledger/internal/adapter/http/dto"
	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// StoreHandler handles store, seller and structure administrator endpoints.
type StoreHandler struct {
	storeSvc ports.StoreService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeSvc ports.StoreService) *StoreHandler {
	return &StoreHandler{storeSvc: storeSvc}
}

// Create handles POST /structures/:id/stores.
func (h *StoreHandler) Create(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	structureID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	store, err := h.storeSvc.CreateStore(c.Request.Context(), structureID, req.Name, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, store)
}

// ListMine handles GET /users/me/stores.
func (h *StoreHandler) ListMine(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	stores, err := h.storeSvc.ListUserStores(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stores)
}

// Rename handles PATCH /stores/:id.
func (h *StoreHandler) Rename(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.storeSvc.RenameStore(c.Request.Context(), storeID, req.Name, user); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete handles DELETE /stores/:id.
func (h *StoreHandler) Delete(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.storeSvc.DeleteStore(c.Request.Context(), storeID, user); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddSeller handles POST /stores/:id/sellers.
func (h *StoreHandler) AddSeller(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req dto.SellerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	seller, err := h.storeSvc.AddSeller(c.Request.Context(), storeID, domain.Seller{
		UserID:           req.UserID,
		StoreID:          storeID,
		CanBank:          req.CanBank,
		CanSeeHistory:    req.CanSeeHistory,
		CanCancel:        req.CanCancel,
		CanManageSellers: req.CanManageSellers,
	}, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, seller)
}

// ListSellers handles GET /stores/:id/sellers.
func (h *StoreHandler) ListSellers(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	sellers, err := h.storeSvc.ListSellers(c.Request.Context(), storeID, user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sellers)
}

// UpdateSeller handles PATCH /stores/:id/sellers/:user_id.
func (h *StoreHandler) UpdateSeller(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var update ports.SellerUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.storeSvc.UpdateSeller(c.Request.Context(), storeID, c.Param("user_id"), update, user); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RemoveSeller handles DELETE /stores/:id/sellers/:user_id.
func (h *StoreHandler) RemoveSeller(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	storeID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.storeSvc.RemoveSeller(c.Request.Context(), storeID, c.Param("user_id"), user); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddAdministrator handles POST /structures/:id/administrators/:user_id.
func (h *StoreHandler) AddAdministrator(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	structureID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.storeSvc.AddAdministrator(c.Request.Context(), structureID, c.Param("user_id"), user); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RemoveAdministrator handles DELETE /structures/:id/administrators/:user_id.
func (h *StoreHandler) RemoveAdministrator(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}
	structureID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.storeSvc.RemoveAdministrator(c.Request.Context(), structureID, c.Param("user_id"), user); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
