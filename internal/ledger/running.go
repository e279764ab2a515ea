package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mfrancor/contalocal/internal/models"
)

// Balances holds one value per cash-like bucket.
type Balances struct {
	Cash    decimal.Decimal `json:"cash"`
	Bank    decimal.Decimal `json:"bank"`
	Aportes decimal.Decimal `json:"aportes"`
}

// Total sums the three buckets.
func (b Balances) Total() decimal.Decimal {
	return b.Cash.Add(b.Bank).Add(b.Aportes)
}

// AnnotatedTransaction is a transaction carrying the running balances after
// applying it, plus the bucket effect that produced them. All three totals
// are snapshot on every transaction, including the ones it did not move.
type AnnotatedTransaction struct {
	models.Transaction
	Effect  Effect   `json:"effect"`
	Running Balances `json:"running"`
}

// Engine computes chronological running balances over a transaction set.
type Engine struct {
	classifier *Classifier
}

// NewEngine builds an Engine sharing the given classifier.
func NewEngine(classifier *Classifier) *Engine {
	return &Engine{classifier: classifier}
}

// OpeningBalances seeds the bucket totals from the static entities: the sum
// of initial cash balances, of bank initial balances, and of bank initial
// investment balances.
func OpeningBalances(ref RefData) Balances {
	var b Balances
	for _, ib := range ref.InitialBalances {
		b.Cash = b.Cash.Add(ib.Balance.Decimal)
	}
	for _, ba := range ref.BankAccounts {
		b.Bank = b.Bank.Add(ba.InitialBalance.Decimal)
		b.Aportes = b.Aportes.Add(ba.InitialInvestmentBalance.Decimal)
	}
	return b
}

// ComputeRunning sorts the transactions chronologically and walks them once,
// folding each one's signed amount into its bucket and snapshotting all
// three totals onto the output record.
//
// Sorting is by date with the insertion sequence number as the explicit
// tie-break, so same-date ordering does not depend on incidental storage
// order. The input slice is not modified; consumers that filter (by search
// term, date range, category) must filter the returned annotated list, never
// recompute over a subset, because balances are cumulative over the entire
// history.
func (e *Engine) ComputeRunning(opening Balances, txns []*models.Transaction) []AnnotatedTransaction {
	sorted := make([]*models.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Seq < sorted[j].Seq
	})

	running := opening
	out := make([]AnnotatedTransaction, 0, len(sorted))
	for _, txn := range sorted {
		effect := e.classifier.Classify(txn)
		if effect.Sign != 0 {
			delta := txn.Amount.Mul(decimal.NewFromInt(int64(effect.Sign)))
			switch effect.Bucket {
			case BucketCash:
				running.Cash = running.Cash.Add(delta)
			case BucketBank:
				running.Bank = running.Bank.Add(delta)
			case BucketAportes:
				running.Aportes = running.Aportes.Add(delta)
			}
		}

		out = append(out, AnnotatedTransaction{
			Transaction: *txn,
			Effect:      effect,
			Running:     running,
		})
	}

	return out
}

// BalancesAsOf folds the whole history up to and including the given date
// and returns the point-in-time bucket totals.
func (e *Engine) BalancesAsOf(opening Balances, txns []*models.Transaction, date string) Balances {
	annotated := e.ComputeRunning(opening, txns)
	balances := opening
	for _, a := range annotated {
		if a.Date > date {
			break
		}
		balances = a.Running
	}
	return balances
}
