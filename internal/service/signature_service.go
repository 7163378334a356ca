package service

import (
	"context"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/pkg/logger"

	"github.com/rs/zerolog"
)

// Ed25519Verifier implements ports.QRVerifier.
// It has no side effects besides logging; replay is handled by the registry.
type Ed25519Verifier struct {
	log zerolog.Logger
}

// NewEd25519Verifier creates a QR signature verifier logging to the security component.
func NewEd25519Verifier(log zerolog.Logger) *Ed25519Verifier {
	return &Ed25519Verifier{log: logger.Component(log, logger.ComponentSecurity)}
}

// Verify checks a base64 Ed25519 signature over the payload's canonical bytes.
// It returns false on any malformed input and never panics.
func (v *Ed25519Verifier) Verify(ctx context.Context, payload domain.QRPayload, signature string, publicKey []byte) bool {
	warn := func(reason string) {
		v.log.Warn().
			Str("wallet_device_id", payload.Key.String()).
			Str("qr_code_id", payload.ID.String()).
			Str("request_id", logger.RequestID(ctx)).
			Msg(reason)
	}

	if len(publicKey) != ed25519.PublicKeySize {
		warn("qr signature: malformed device public key")
		return false
	}

	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		warn("qr signature: signature is not valid base64")
		return false
	}
	if len(sig) != ed25519.SignatureSize {
		warn("qr signature: wrong signature length")
		return false
	}

	msg, err := payload.CanonicalBytes()
	if err != nil {
		warn("qr signature: payload cannot be serialized")
		return false
	}

	if !ed25519.Verify(ed25519.PublicKey(publicKey), msg, sig) {
		warn("qr signature: verification failed")
		return false
	}
	return true
}

// HMACSignatureService implements ports.WebhookSigner using HMAC-SHA256.
// Checkout provider callbacks are authenticated with it.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign computes HMAC-SHA256 of payload using secretKey.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks if signature matches HMAC-SHA256(secretKey, payload).
// Uses constant-time comparison to prevent timing attacks.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	expected := s.Sign(secretKey, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
