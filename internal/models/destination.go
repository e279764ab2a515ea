package models

import "strings"

// Well-known destination identifiers inherited from the legacy data model.
const (
	CashSentinelID       = "caja_principal"
	InvestmentAccountID  = "12950501"
	PendingPayableID     = "pending_payable"
	PendingReceivableID  = "pending_receivable"
)

// DestinationKind discriminates the asset-side account a transaction touches.
type DestinationKind string

const (
	DestinationCash              DestinationKind = "cash"
	DestinationInvestment        DestinationKind = "investment"
	DestinationPendingReceivable DestinationKind = "pending_receivable"
	DestinationPendingPayable    DestinationKind = "pending_payable"
	// DestinationRaw carries an id that is either a bank account id or a
	// literal account code; which one is decided at resolution time against
	// the company's bank accounts.
	DestinationRaw DestinationKind = "raw"
)

// Destination identifies the cash-like account side of a transaction.
// It replaces the legacy "<id>|<displayName>" string encoding; the tagged
// form is constructed once at the data-entry boundary and never re-parsed.
type Destination struct {
	Kind        DestinationKind `json:"kind"`
	ID          string          `json:"id,omitempty"`
	DisplayName string          `json:"display_name,omitempty"`
}

// IsZero reports whether the destination is absent.
func (d Destination) IsZero() bool {
	return d.Kind == "" && d.ID == "" && d.DisplayName == ""
}

// IsPending reports whether the destination is an accrual sentinel.
func (d Destination) IsPending() bool {
	return d.Kind == DestinationPendingReceivable || d.Kind == DestinationPendingPayable
}

// CashDestination returns the main cash box destination.
func CashDestination() Destination {
	return Destination{Kind: DestinationCash, ID: CashSentinelID, DisplayName: "CAJA PRINCIPAL"}
}

// BankDestination returns a destination pointing at a bank account.
func BankDestination(accountID, displayName string) Destination {
	return Destination{Kind: DestinationRaw, ID: accountID, DisplayName: displayName}
}

// PendingDestination returns the accrual sentinel for a receivable or payable.
func PendingDestination(kind DestinationKind) Destination {
	switch kind {
	case DestinationPendingReceivable:
		return Destination{Kind: kind, ID: PendingReceivableID, DisplayName: "CUENTAS POR COBRAR"}
	case DestinationPendingPayable:
		return Destination{Kind: kind, ID: PendingPayableID, DisplayName: "CUENTAS POR PAGAR"}
	}
	return Destination{}
}

// ParseDestination converts a legacy "<id>|<displayName>" tag into the
// tagged form. Malformed or empty input falls back to the cash box, which
// matches how the legacy data treated records without a destination.
func ParseDestination(tag string) Destination {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return CashDestination()
	}

	id := tag
	name := ""
	if i := strings.Index(tag, "|"); i >= 0 {
		id = strings.TrimSpace(tag[:i])
		name = strings.TrimSpace(tag[i+1:])
	}

	switch id {
	case PendingPayableID:
		return Destination{Kind: DestinationPendingPayable, ID: id, DisplayName: name}
	case PendingReceivableID:
		return Destination{Kind: DestinationPendingReceivable, ID: id, DisplayName: name}
	}

	// The cash rule is evaluated before the investment rule; the relative
	// order is load-bearing and mirrored by ledger.Resolver.
	upper := strings.ToUpper(name)
	if id == CashSentinelID || strings.Contains(upper, "CAJA") {
		return Destination{Kind: DestinationCash, ID: id, DisplayName: name}
	}
	if id == InvestmentAccountID || strings.Contains(upper, "APORTES COOPERATIVA") {
		return Destination{Kind: DestinationInvestment, ID: id, DisplayName: name}
	}

	return Destination{Kind: DestinationRaw, ID: id, DisplayName: name}
}
