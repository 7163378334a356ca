package handler

import (
	"net/http"
	"net/url"

	"mypayment-ledger/internal/adapter/http/dto"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TopupHandler handles wallet top-ups through the checkout provider.
type TopupHandler struct {
	topupSvc ports.TopupService
	log      zerolog.Logger
}

// NewTopupHandler creates a new TopupHandler.
func NewTopupHandler(topupSvc ports.TopupService, log zerolog.Logger) *TopupHandler {
	return &TopupHandler{topupSvc: topupSvc, log: log}
}

// InitTopup handles POST /transfer/init.
func (h *TopupHandler) InitTopup(c *gin.Context) {
	user, ok := caller(c)
	if !ok {
		return
	}

	var req dto.TopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	checkout, err := h.topupSvc.InitTopup(c.Request.Context(), ports.TopupRequest{
		User:        user,
		Amount:      req.Amount,
		RedirectURL: req.RedirectURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.TopupResponse{URL: checkout.URL})
}

// Callback handles POST /transfer/callback. The provider signature has already
// been checked by middleware.
func (h *TopupHandler) Callback(c *gin.Context) {
	var req dto.CheckoutCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	transfer, err := h.topupSvc.ConfirmCheckout(c.Request.Context(), ports.CheckoutConfirmation{
		CheckoutID: req.CheckoutID,
		PaidAmount: req.PaidAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, transfer)
}

// Redirect handles GET /transfer/redirect. It sends the user back to a trusted
// client URL with the provider's outcome parameters.
func (h *TopupHandler) Redirect(c *gin.Context) {
	var q dto.TransferRedirectQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if !h.topupSvc.IsTrustedRedirect(q.URL) {
		h.log.Warn().Str("redirect_url", q.URL).Msg("tried to redirect to an untrusted url")
		response.Error(c, apperror.Validation("Redirect URL is not trusted"))
		return
	}

	target, err := url.Parse(q.URL)
	if err != nil {
		response.Error(c, apperror.Validation("invalid redirect url"))
		return
	}

	params := url.Values{}
	for key, value := range map[string]string{
		"checkoutIntentId": q.CheckoutIntentID,
		"code":             q.Code,
		"orderId":          q.OrderID,
		"error":            q.Error,
	} {
		if value != "" {
			params.Set(key, value)
		}
	}
	target.RawQuery = params.Encode()

	c.Redirect(http.StatusTemporaryRedirect, target.String())
}
