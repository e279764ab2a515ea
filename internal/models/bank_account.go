package models

import "time"

// BankAccount is a real bank account held by a company. Its balance is never
// stored; it is always derived by folding the transactions whose destination
// id matches the account.
type BankAccount struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`

	InitialBalance Money `json:"initial_balance"`
	// InitialInvestmentBalance seeds the segregated investment ("aportes")
	// sub-balance tracked apart from the main balance.
	InitialInvestmentBalance Money `json:"initial_investment_balance"`

	// AccountingCode/AccountingConcept link the account to a chart-of-accounts
	// entry. When absent, resolution falls back to the generic bank code.
	AccountingCode    string `json:"accounting_code,omitempty"`
	AccountingConcept string `json:"accounting_concept,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateBankAccountRequest is the payload to create a bank account.
type CreateBankAccountRequest struct {
	CompanyID                string `json:"company_id"`
	BankName                 string `json:"bank_name"`
	AccountNumber            string `json:"account_number"`
	InitialBalance           Money  `json:"initial_balance"`
	InitialInvestmentBalance Money  `json:"initial_investment_balance"`
	AccountingCode           string `json:"accounting_code,omitempty"`
	AccountingConcept        string `json:"accounting_concept,omitempty"`
}

// UpdateBankAccountRequest is the payload to edit a bank account.
type UpdateBankAccountRequest struct {
	BankName                 *string `json:"bank_name,omitempty"`
	AccountNumber            *string `json:"account_number,omitempty"`
	InitialBalance           *Money  `json:"initial_balance,omitempty"`
	InitialInvestmentBalance *Money  `json:"initial_investment_balance,omitempty"`
	AccountingCode           *string `json:"accounting_code,omitempty"`
	AccountingConcept        *string `json:"accounting_concept,omitempty"`
}
