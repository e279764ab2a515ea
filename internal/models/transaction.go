// Package models defines the domain entities of the bookkeeping system.
package models

import "time"

// TransactionType discriminates money direction.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Category sentinels the reporting layer must recognize.
const (
	CategoryReceivables      = "Cuentas por Cobrar"
	CategoryPayables         = "Cuentas por Pagar"
	CategoryInternalTransfer = "Transferencia Interna"
)

// Transfer leg id suffixes. Both legs of an internal transfer share a
// numeric base id and differ only in the suffix.
const (
	TransferExpenseSuffix = "-exp"
	TransferIncomeSuffix  = "-inc"
)

// Transaction is a single bookkeeping record. Transfer legs are regular
// income/expense transactions flagged internal and linked by id correlation.
type Transaction struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Amount      Money           `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Destination Destination     `json:"destination"`

	IsInternalTransfer  bool `json:"is_internal_transfer,omitempty"`
	IsFixedAsset        bool `json:"is_fixed_asset,omitempty"`
	IsReceivablePayable bool `json:"is_receivable_payable,omitempty"`

	// VoucherNumber is sequential per company per voucher type, never reused.
	VoucherNumber int64 `json:"voucher_number"`
	// Seq is the insertion sequence number. It is the explicit tie-break for
	// same-date ordering in running-balance computation.
	Seq uint64 `json:"seq"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTransferLeg reports whether the transaction is one leg of an internal
// transfer pair.
func (t *Transaction) IsTransferLeg() bool {
	return t.IsInternalTransfer
}

// SiblingID derives the id of the other leg of a transfer pair, flipping the
// -exp/-inc suffix. Returns empty string for non-transfer ids.
func (t *Transaction) SiblingID() string {
	switch {
	case len(t.ID) > len(TransferExpenseSuffix) && t.ID[len(t.ID)-len(TransferExpenseSuffix):] == TransferExpenseSuffix:
		return t.ID[:len(t.ID)-len(TransferExpenseSuffix)] + TransferIncomeSuffix
	case len(t.ID) > len(TransferIncomeSuffix) && t.ID[len(t.ID)-len(TransferIncomeSuffix):] == TransferIncomeSuffix:
		return t.ID[:len(t.ID)-len(TransferIncomeSuffix)] + TransferExpenseSuffix
	}
	return ""
}

// Year returns the four-digit year of the transaction date, or empty string
// for malformed dates.
func (t *Transaction) Year() string {
	if len(t.Date) < 4 {
		return ""
	}
	return t.Date[:4]
}

// CreateTransactionRequest is the payload to create a regular transaction.
type CreateTransactionRequest struct {
	CompanyID   string          `json:"company_id"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"`
	Amount      Money           `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Destination Destination     `json:"destination"`
	// DestinationTag carries the legacy "<id>|<name>" encoding; used only
	// when Destination is absent.
	DestinationTag string `json:"destination_tag,omitempty"`
	IsFixedAsset   bool   `json:"is_fixed_asset,omitempty"`
}

// UpdateTransactionRequest is the payload to edit a transaction.
type UpdateTransactionRequest struct {
	Date        *string      `json:"date,omitempty"`
	Amount      *Money       `json:"amount,omitempty"`
	Description *string      `json:"description,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Destination *Destination `json:"destination,omitempty"`
}

// CreateTransferRequest is the payload to create an internal transfer pair.
type CreateTransferRequest struct {
	CompanyID   string      `json:"company_id"`
	Date        string      `json:"date"`
	Amount      Money       `json:"amount"`
	Description string      `json:"description"`
	From        Destination `json:"from"`
	To          Destination `json:"to"`
}
