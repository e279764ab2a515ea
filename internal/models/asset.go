package models

import "time"

// FixedAsset is a static valuation entity contributing to balance-sheet
// asset totals. Assets purchased through an expense transaction keep a
// back-reference to it; manually added assets have no TransactionID.
type FixedAsset struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id"`
	Name         string `json:"name"`
	Value        Money  `json:"value"`
	PurchaseDate string `json:"purchase_date"` // YYYY-MM-DD
	// TransactionID links to the purchase expense, when one exists. The
	// original purchase cost is read from that transaction for revaluation.
	TransactionID string `json:"transaction_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RealEstate is a property valued at its recorded value.
type RealEstate struct {
	ID              string `json:"id"`
	CompanyID       string `json:"company_id"`
	Name            string `json:"name"`
	Value           Money  `json:"value"`
	AcquisitionDate string `json:"acquisition_date"` // YYYY-MM-DD

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitialBalance seeds the cash bucket and names the configured cash
// account. A company normally has a single entry.
type InitialBalance struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Balance   Money  `json:"balance"`
	// AccountingCode/AccountingName override the default cash account
	// (11050501 / CAJA PRINCIPAL) when set.
	AccountingCode string `json:"accounting_code,omitempty"`
	AccountingName string `json:"accounting_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateFixedAssetRequest is the payload to add a fixed asset manually.
type CreateFixedAssetRequest struct {
	CompanyID    string `json:"company_id"`
	Name         string `json:"name"`
	Value        Money  `json:"value"`
	PurchaseDate string `json:"purchase_date"`
}

// CreateRealEstateRequest is the payload to add a property.
type CreateRealEstateRequest struct {
	CompanyID       string `json:"company_id"`
	Name            string `json:"name"`
	Value           Money  `json:"value"`
	AcquisitionDate string `json:"acquisition_date"`
}

// CreateInitialBalanceRequest is the payload to set the opening cash balance.
type CreateInitialBalanceRequest struct {
	CompanyID      string `json:"company_id"`
	Balance        Money  `json:"balance"`
	AccountingCode string `json:"accounting_code,omitempty"`
	AccountingName string `json:"accounting_name,omitempty"`
}
