package domain

import (
	"time"

	"github.com/google/uuid"
)

// WalletType tells whether a wallet belongs to a user or to a store.
type WalletType string

const (
	WalletTypeUser  WalletType = "user"
	WalletTypeStore WalletType = "store"
)

// Wallet holds a balance in cents. It is owned 1:1 by either a UserPayment or a Store.
type Wallet struct {
	ID      uuid.UUID  `json:"id"`
	Type    WalletType `json:"type"`
	Balance int64      `json:"balance"`
}

// WalletOwner resolves who owns a wallet. Exactly one of UserID and StoreID is set
// for a consistent ledger. Name is the store name or the user's display name.
type WalletOwner struct {
	Wallet  Wallet
	UserID  *string
	StoreID *uuid.UUID
	Name    string
}

// WalletDeviceStatus is the lifecycle state of a signing device.
type WalletDeviceStatus string

const (
	WalletDeviceStatusInactive WalletDeviceStatus = "inactive"
	WalletDeviceStatusActive   WalletDeviceStatus = "active"
	WalletDeviceStatusRevoked  WalletDeviceStatus = "revoked"
)

// WalletDevice is a registered Ed25519 key allowed to sign QR codes for a wallet.
type WalletDevice struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	WalletID        uuid.UUID          `json:"wallet_id"`
	PublicKey       []byte             `json:"-"`
	Creation        time.Time          `json:"creation"`
	Status          WalletDeviceStatus `json:"status"`
	ActivationToken string             `json:"-"`
}

// IsActive reports whether the device may sign payments.
func (d *WalletDevice) IsActive() bool {
	return d.Status == WalletDeviceStatusActive
}

// CanActivate reports whether the device may transition to ACTIVE.
// Only INACTIVE devices can; ACTIVE and REVOKED are terminal for activation.
func (d *WalletDevice) CanActivate() bool {
	return d.Status == WalletDeviceStatusInactive
}

// UserPayment links an external user to their ledger wallet and TOS acceptance.
type UserPayment struct {
	UserID               string    `json:"user_id"`
	DisplayName          string    `json:"display_name"`
	WalletID             uuid.UUID `json:"wallet_id"`
	AcceptedTOSSignature time.Time `json:"accepted_tos_signature"`
	AcceptedTOSVersion   int       `json:"accepted_tos_version"`
}

// HasSignedTOS reports whether the user accepted the given terms-of-service version.
func (u *UserPayment) HasSignedTOS(latest int) bool {
	return u.AcceptedTOSVersion == latest
}
