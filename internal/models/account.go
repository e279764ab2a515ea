package models

import "time"

// Account is a chart-of-accounts entry under the PUC coding scheme.
// The parent-of relationship is purely structural (code prefix containment)
// and is never stored.
type Account struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Number    string    `json:"number"` // PUC hierarchical code
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Class returns the PUC class digit of the account (first digit of the
// code), or 0 for empty codes.
func (a *Account) Class() byte {
	if a.Number == "" {
		return 0
	}
	return a.Number[0]
}

// CreateAccountRequest is the payload to create a chart-of-accounts entry.
type CreateAccountRequest struct {
	CompanyID string `json:"company_id"`
	Number    string `json:"number"`
	Name      string `json:"name"`
}
