package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/mfrancor/contalocal/internal/models"
)

// Posting is one side of a double-entry row.
type Posting struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// JournalEntry is a reconstructed debit/credit pair for one display row.
// The books are single-entry at capture time; the counterpart account is
// inferred from the destination tag and the category.
type JournalEntry struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	Description   string  `json:"description"`
	VoucherNumber int64   `json:"voucher_number"`
	Debit         Posting `json:"debit"`
	Credit        Posting `json:"credit"`
}

// Projector converts transactions and merged transfer rows into double-entry
// journal rows.
type Projector struct {
	resolver *Resolver
}

// NewProjector builds a Projector using the given resolver.
func NewProjector(resolver *Resolver) *Projector {
	return &Projector{resolver: resolver}
}

// Project maps one display row to its debit/credit pair.
//
// Regular transactions follow the accounting equation: an asset increase is
// a debit and revenue is recognized on credit, so income debits the asset
// side and credits the category; expenses are the mirror image. The same
// projection applies whether the asset side is cash, a bank, or a pending
// accrual account. Merged transfers debit the destination leg's account and
// credit the source leg's.
func (p *Projector) Project(row DisplayRow) JournalEntry {
	if row.Merged && row.Expense != nil && row.Income != nil {
		amount := row.Expense.Amount.Decimal
		return JournalEntry{
			ID:            row.ID,
			Date:          row.Date,
			Description:   row.Description,
			VoucherNumber: row.Expense.VoucherNumber,
			Debit:         Posting{Code: row.Target.Code, Name: row.Target.Name, Amount: amount},
			Credit:        Posting{Code: row.Source.Code, Name: row.Source.Name, Amount: amount},
		}
	}

	txn := row.Txn
	asset := p.resolver.Resolve(txn.Destination, txn.Category)
	category := p.resolver.ResolveCategory(txn.Category, txn.Type)
	amount := txn.Amount.Decimal

	entry := JournalEntry{
		ID:            txn.ID,
		Date:          txn.Date,
		Description:   txn.Description,
		VoucherNumber: txn.VoucherNumber,
	}
	if txn.Type == models.TransactionIncome {
		entry.Debit = Posting{Code: asset.Code, Name: asset.Name, Amount: amount}
		entry.Credit = Posting{Code: category.Code, Name: category.Name, Amount: amount}
	} else {
		entry.Debit = Posting{Code: category.Code, Name: category.Name, Amount: amount}
		entry.Credit = Posting{Code: asset.Code, Name: asset.Name, Amount: amount}
	}
	return entry
}

// ProjectAll maps every display row.
func (p *Projector) ProjectAll(rows []DisplayRow) []JournalEntry {
	entries := make([]JournalEntry, 0, len(rows))
	for _, row := range rows {
		if !row.Merged && row.Txn == nil {
			continue
		}
		entries = append(entries, p.Project(row))
	}
	return entries
}
