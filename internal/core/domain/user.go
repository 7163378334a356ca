package domain

// AuthenticatedUser is the caller identity extracted from the host's bearer token.
type AuthenticatedUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsBankHolder bool   `json:"is_bank_holder"`
}
