package models

import "time"

// Settlement status values. Pendiente transitions once to the settled value
// (Cobrado for receivables, Pagado for payables); no reversal is defined.
const (
	StatusPending   = "Pendiente"
	StatusCollected = "Cobrado"
	StatusPaid      = "Pagado"
)

// InternalPayment is one partial-payment entry against a receivable or
// payable. Payments accumulate informally while the parent stays Pendiente.
type InternalPayment struct {
	ID     string `json:"id"`
	Date   string `json:"date"` // YYYY-MM-DD
	Amount Money  `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// Receivable is money owed to the company. Creating one spawns a synthetic
// accrual transaction on the pending sentinel; collecting it re-points that
// transaction at a real asset account.
type Receivable struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	Debtor        string `json:"debtor"`
	Amount        Money  `json:"amount"`
	IssueDate     string `json:"issue_date"` // YYYY-MM-DD
	DueDate       string `json:"due_date"`   // YYYY-MM-DD
	Status        string `json:"status"`
	LinkedAccount string `json:"linked_account"` // category name for the accrual

	// TransactionID references the spawned accrual transaction.
	TransactionID string `json:"transaction_id,omitempty"`
	// InternalPayments is the partial-payment ledger. The sum of its amounts
	// never exceeds Amount; the store enforces this at the boundary.
	InternalPayments []InternalPayment `json:"internal_payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaidTotal sums the partial payments recorded so far.
func (r *Receivable) PaidTotal() Money {
	total := Money{}
	for _, p := range r.InternalPayments {
		total = NewMoney(total.Add(p.Amount.Decimal))
	}
	return total
}

// Payable is money the company owes. Lifecycle mirrors Receivable with the
// expense side of the accrual.
type Payable struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	Creditor      string `json:"creditor"`
	Amount        Money  `json:"amount"`
	IssueDate     string `json:"issue_date"`
	DueDate       string `json:"due_date"`
	Status        string `json:"status"`
	LinkedAccount string `json:"linked_account"`

	TransactionID    string            `json:"transaction_id,omitempty"`
	InternalPayments []InternalPayment `json:"internal_payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaidTotal sums the partial payments recorded so far.
func (p *Payable) PaidTotal() Money {
	total := Money{}
	for _, ip := range p.InternalPayments {
		total = NewMoney(total.Add(ip.Amount.Decimal))
	}
	return total
}

// CreateReceivableRequest is the payload to create a receivable.
type CreateReceivableRequest struct {
	CompanyID     string `json:"company_id"`
	Debtor        string `json:"debtor"`
	Amount        Money  `json:"amount"`
	IssueDate     string `json:"issue_date"`
	DueDate       string `json:"due_date"`
	LinkedAccount string `json:"linked_account"`
}

// CreatePayableRequest is the payload to create a payable.
type CreatePayableRequest struct {
	CompanyID     string `json:"company_id"`
	Creditor      string `json:"creditor"`
	Amount        Money  `json:"amount"`
	IssueDate     string `json:"issue_date"`
	DueDate       string `json:"due_date"`
	LinkedAccount string `json:"linked_account"`
}

// SettleRequest marks a receivable collected or a payable paid, naming the
// real asset account the money moved through and the settlement date.
type SettleRequest struct {
	Date        string      `json:"date"`
	Destination Destination `json:"destination"`
}

// AddPaymentRequest records a partial payment.
type AddPaymentRequest struct {
	Date   string `json:"date"`
	Amount Money  `json:"amount"`
	Note   string `json:"note,omitempty"`
}
