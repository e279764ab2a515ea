package models

import "time"

// Company is a tenant: a company or one of its sub-companies. Isolation is
// achieved by filtering every collection on CompanyID before it reaches the
// ledger engine; the engine itself has no tenancy concept.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// ParentID links a sub-company to its parent; empty for top-level
	// companies. A consolidated view feeds the engine the union of a parent
	// and its children.
	ParentID string `json:"parent_id,omitempty"`
	TaxID    string `json:"tax_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCompanyRequest is the payload to register a company.
type CreateCompanyRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
	TaxID    string `json:"tax_id,omitempty"`
}
