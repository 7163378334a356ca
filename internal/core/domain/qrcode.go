package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QRPayload is the signed content of a QR code generated by a wallet device.
type QRPayload struct {
	ID    uuid.UUID `json:"id"`
	Tot   int64     `json:"tot"`
	Iat   time.Time `json:"iat"`
	Key   uuid.UUID `json:"key"` // WalletDevice id
	Store bool      `json:"store"`
}

// ScanInfo is a QR payload as submitted by a seller, with its detached signature.
type ScanInfo struct {
	QRPayload
	Signature        string `json:"signature"`
	BypassMembership bool   `json:"bypass_membership"`
}

// canonicalPayload fixes key order and the iat rendering of the signed bytes.
type canonicalPayload struct {
	ID    uuid.UUID `json:"id"`
	Tot   int64     `json:"tot"`
	Iat   string    `json:"iat"`
	Key   uuid.UUID `json:"key"`
	Store bool      `json:"store"`
}

// CanonicalBytes returns the bytes a device signs: compact JSON with keys
// id, tot, iat, key, store in that order. signature and bypass_membership
// are never part of it.
func (p QRPayload) CanonicalBytes() ([]byte, error) {
	return json.Marshal(canonicalPayload{
		ID:    p.ID,
		Tot:   p.Tot,
		Iat:   p.Iat.UTC().Format(time.RFC3339Nano),
		Key:   p.Key,
		Store: p.Store,
	})
}

// IsExpiredAt reports whether the code was issued more than expiration before now.
func (p QRPayload) IsExpiredAt(now time.Time, expiration time.Duration) bool {
	return now.Sub(p.Iat) > expiration
}

// UsedQRCode is the append-only marker of a consumed payload, kept for forensic replay.
type UsedQRCode struct {
	ID        uuid.UUID       `json:"id"`
	Tot       *int64          `json:"tot,omitempty"`
	Iat       *time.Time      `json:"iat,omitempty"`
	Key       *uuid.UUID      `json:"key,omitempty"`
	Store     *bool           `json:"store,omitempty"`
	StoreID   *uuid.UUID      `json:"store_id,omitempty"`
	Signature *string         `json:"signature,omitempty"`
	Type      TransactionType `json:"transaction_type"`
}

// NewUsedQRCode builds the marker recorded when info is scanned at storeID.
func NewUsedQRCode(info ScanInfo, storeID uuid.UUID) UsedQRCode {
	tot, iat, key, store, sig := info.Tot, info.Iat, info.Key, info.Store, info.Signature
	return UsedQRCode{
		ID:        info.ID,
		Tot:       &tot,
		Iat:       &iat,
		Key:       &key,
		Store:     &store,
		StoreID:   &storeID,
		Signature: &sig,
		Type:      TransactionTypeDirect,
	}
}
