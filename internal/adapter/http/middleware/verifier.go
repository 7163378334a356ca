package middleware

import (
	"bytes"
	"crypto/subtle"
	"io"

	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"
	"mypayment-ledger/pkg/logger"
	"mypayment-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	HeaderDataVerifierToken = "X-Data-Verifier-Token"
	HeaderCheckoutSignature = "X-Checkout-Signature"
)

// DataVerifier guards the integrity feed with a shared secret.
// An empty secret disables the feed entirely.
func DataVerifier(token string, log zerolog.Logger) gin.HandlerFunc {
	security := logger.Component(log, logger.ComponentSecurity)
	return func(c *gin.Context) {
		if token == "" {
			response.Error(c, apperror.ErrUnavailable("Integrity check is not configured"))
			c.Abort()
			return
		}

		provided := c.GetHeader(HeaderDataVerifierToken)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			security.Warn().
				Str("client_ip", c.ClientIP()).
				Str("path", c.Request.URL.Path).
				Msg("integrity check requested with an invalid data verifier token")
			response.Error(c, apperror.ErrInvalidVerifierToken())
			c.Abort()
			return
		}

		c.Next()
	}
}

// CheckoutSignature authenticates provider callbacks: the signature header must be
// the HMAC-SHA256 of the raw body under the webhook secret.
func CheckoutSignature(signer ports.WebhookSigner, secret string, log zerolog.Logger) gin.HandlerFunc {
	security := logger.Component(log, logger.ComponentSecurity)
	return func(c *gin.Context) {
		if secret == "" {
			response.Error(c, apperror.ErrUnavailable("Top-up callbacks are not configured"))
			c.Abort()
			return
		}

		signature := c.GetHeader(HeaderCheckoutSignature)
		if signature == "" {
			response.Error(c, apperror.ErrInvalidCallbackSignature())
			c.Abort()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Error(c, apperror.Validation("cannot read request body"))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if !signer.Verify(secret, string(body), signature) {
			security.Warn().Str("client_ip", c.ClientIP()).Msg("checkout callback with an invalid signature")
			response.Error(c, apperror.ErrInvalidCallbackSignature())
			c.Abort()
			return
		}

		c.Next()
	}
}
