package ledger

import (
	"fmt"
	"strings"

	"github.com/mfrancor/contalocal/internal/models"
)

// DisplayRow is one display/export unit: either a single transaction or a
// merged internal-transfer pair carrying both legs.
type DisplayRow struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	// AmountLabel is the signed amount, or "-X / +X" for merged transfers.
	AmountLabel string `json:"amount_label"`

	Merged bool `json:"merged"`
	// Txn is set for single rows.
	Txn *AnnotatedTransaction `json:"txn,omitempty"`
	// Expense and Income are the two legs of a merged transfer.
	Expense *AnnotatedTransaction `json:"expense,omitempty"`
	Income  *AnnotatedTransaction `json:"income,omitempty"`

	// Source and Target are the resolved accounts of a merged transfer:
	// money left Source and entered Target.
	Source AccountRef `json:"source,omitempty"`
	Target AccountRef `json:"target,omitempty"`

	// Running is the balance snapshot shown for the row; for merged pairs it
	// is the later leg's snapshot.
	Running Balances `json:"running"`
}

// Merger pairs up internal-transfer legs into single logical movements.
type Merger struct {
	resolver *Resolver
}

// NewMerger builds a Merger using the given resolver for leg accounts.
func NewMerger(resolver *Resolver) *Merger {
	return &Merger{resolver: resolver}
}

// Merge converts annotated transactions into display rows, collapsing each
// internal-transfer pair into one merged row. Legs whose sibling is missing
// (a data-integrity problem in the stored history) pass through unmerged
// rather than being dropped.
func (m *Merger) Merge(anns []AnnotatedTransaction) []DisplayRow {
	rows := make([]DisplayRow, 0, len(anns))
	for i := range anns {
		rows = append(rows, singleRow(&anns[i]))
	}
	return m.MergeRows(rows)
}

// MergeRows merges unpaired transfer legs inside an existing row list. Rows
// already merged, and rows whose transactions are not transfer legs, pass
// through untouched, so the operation is idempotent.
func (m *Merger) MergeRows(rows []DisplayRow) []DisplayRow {
	byID := make(map[string]int, len(rows))
	for i, row := range rows {
		if !row.Merged && row.Txn != nil {
			byID[row.Txn.ID] = i
		}
	}

	consumed := make(map[string]bool)
	out := make([]DisplayRow, 0, len(rows))
	for _, row := range rows {
		if row.Merged || row.Txn == nil {
			out = append(out, row)
			continue
		}
		if consumed[row.Txn.ID] {
			continue
		}
		if !row.Txn.IsTransferLeg() {
			out = append(out, row)
			continue
		}

		siblingID := row.Txn.SiblingID()
		j, found := byID[siblingID]
		if siblingID == "" || !found || rows[j].Txn == nil || !rows[j].Txn.IsTransferLeg() {
			// Orphan leg: keep it visible as-is.
			out = append(out, row)
			continue
		}

		expense, income := row.Txn, rows[j].Txn
		if expense.Type != models.TransactionExpense {
			expense, income = income, expense
		}
		consumed[expense.ID] = true
		consumed[income.ID] = true

		out = append(out, m.mergedRow(expense, income))
	}

	return out
}

func (m *Merger) mergedRow(expense, income *AnnotatedTransaction) DisplayRow {
	source := m.resolver.Resolve(expense.Destination, expense.Category)

	// The income leg of a transfer into the cooperative keeps the investment
	// account even when its destination tag points at the bank holding it.
	var target AccountRef
	if categoryIsInvestment(income.Category) || income.Destination.Kind == models.DestinationInvestment {
		target = m.resolver.Resolve(models.Destination{Kind: models.DestinationInvestment}, income.Category)
	} else {
		target = m.resolver.Resolve(income.Destination, income.Category)
	}

	// Show the later leg's balance snapshot: the one computed after both
	// sides of the movement were applied.
	later := income
	if laterLeg(expense, income) == expense {
		later = expense
	}

	amount := expense.Amount.Decimal
	return DisplayRow{
		ID:          expense.ID,
		Date:        later.Date,
		Description: cleanTransferDescription(later.Description),
		Category:    models.CategoryInternalTransfer,
		AmountLabel: fmt.Sprintf("-%s / +%s", amount.String(), income.Amount.String()),
		Merged:      true,
		Expense:     expense,
		Income:      income,
		Source:      source,
		Target:      target,
		Running:     later.Running,
	}
}

func singleRow(a *AnnotatedTransaction) DisplayRow {
	label := a.Amount.String()
	if a.Type == models.TransactionExpense {
		label = "-" + label
	} else {
		label = "+" + label
	}
	return DisplayRow{
		ID:          a.ID,
		Date:        a.Date,
		Description: a.Description,
		Category:    a.Category,
		AmountLabel: label,
		Txn:         a,
		Running:     a.Running,
	}
}

// laterLeg returns the leg ordered later in the running-balance fold.
func laterLeg(a, b *AnnotatedTransaction) *AnnotatedTransaction {
	if a.Date != b.Date {
		if a.Date > b.Date {
			return a
		}
		return b
	}
	if a.Seq > b.Seq {
		return a
	}
	return b
}

// cleanTransferDescription strips the "Transferencia interna: " style prefix
// the create flow prepends to both legs.
func cleanTransferDescription(desc string) string {
	if i := strings.Index(desc, ": "); i >= 0 {
		return desc[i+2:]
	}
	return desc
}
