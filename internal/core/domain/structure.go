package domain

import (
	"time"

	"github.com/google/uuid"
)

// Structure is the legal entity owning one or more stores.
type Structure struct {
	ID                      uuid.UUID  `json:"id"`
	ShortID                 string     `json:"short_id"`
	Name                    string     `json:"name"`
	ManagerUserID           string     `json:"manager_user_id"`
	AssociationMembershipID *uuid.UUID `json:"association_membership_id,omitempty"`
	SiegeAddressStreet      string     `json:"siege_address_street"`
	SiegeAddressCity        string     `json:"siege_address_city"`
	SiegeAddressZipcode     string     `json:"siege_address_zipcode"`
	SiegeAddressCountry     string     `json:"siege_address_country"`
	Siret                   *string    `json:"siret,omitempty"`
	IBAN                    string     `json:"iban"`
	BIC                     string     `json:"bic"`
	Creation                time.Time  `json:"creation"`
	AdministratorIDs        []string   `json:"administrator_ids"`
}

// IsManagerOrAdministrator reports whether userID manages or administers the structure.
func (s *Structure) IsManagerOrAdministrator(userID string) bool {
	return s.ManagerUserID == userID || s.IsAdministrator(userID)
}

// IsAdministrator reports whether userID is listed as an administrator.
func (s *Structure) IsAdministrator(userID string) bool {
	for _, id := range s.AdministratorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Store sells on behalf of a structure and owns exactly one STORE wallet.
type Store struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	StructureID uuid.UUID `json:"structure_id"`
	WalletID    uuid.UUID `json:"wallet_id"`
	Creation    time.Time `json:"creation"`
}

// Seller is a user's membership of a store with four independent capabilities.
type Seller struct {
	UserID           string    `json:"user_id"`
	StoreID          uuid.UUID `json:"store_id"`
	CanBank          bool      `json:"can_bank"`
	CanSeeHistory    bool      `json:"can_see_history"`
	CanCancel        bool      `json:"can_cancel"`
	CanManageSellers bool      `json:"can_manage_sellers"`
}

// FullSeller grants every capability. Structure managers and administrators
// are added to each store this way.
func FullSeller(userID string, storeID uuid.UUID) Seller {
	return Seller{
		UserID:           userID,
		StoreID:          storeID,
		CanBank:          true,
		CanSeeHistory:    true,
		CanCancel:        true,
		CanManageSellers: true,
	}
}

// UserStore is a store as listed for one of its sellers.
type UserStore struct {
	Store
	CanBank          bool `json:"can_bank"`
	CanSeeHistory    bool `json:"can_see_history"`
	CanCancel        bool `json:"can_cancel"`
	CanManageSellers bool `json:"can_manage_sellers"`
}

// Membership is a user's association membership over a date range (inclusive).
type Membership struct {
	UserID                  string    `json:"user_id"`
	AssociationMembershipID uuid.UUID `json:"association_membership_id"`
	StartDate               time.Time `json:"start_date"`
	EndDate                 time.Time `json:"end_date"`
}

// ValidAt reports whether the membership covers the given instant.
func (m *Membership) ValidAt(t time.Time) bool {
	return !t.Before(m.StartDate) && !t.After(m.EndDate)
}
