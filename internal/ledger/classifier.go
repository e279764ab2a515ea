package ledger

import "github.com/mfrancor/contalocal/internal/models"

// Bucket is one of the cash-like balance totals a transaction can move.
type Bucket string

const (
	BucketCash    Bucket = "cash"
	BucketBank    Bucket = "bank"
	BucketAportes Bucket = "aportes"
	BucketPending Bucket = "pending"
	BucketNone    Bucket = "none"
)

// Effect is a transaction's impact on a balance bucket. Sign is +1, -1, or 0
// when the bucket total is not moved.
type Effect struct {
	Bucket Bucket `json:"bucket"`
	Sign   int    `json:"sign"`
}

// Classifier decides which balance bucket a transaction affects and with
// what sign. It shares the destination detection rules of Resolver.
type Classifier struct {
	resolver *Resolver
}

// NewClassifier builds a Classifier over the same reference data as the
// given resolver.
func NewClassifier(resolver *Resolver) *Classifier {
	return &Classifier{resolver: resolver}
}

// Classify evaluates the bucket rules in their fixed order.
//
// The aportes bucket is accumulate-only: expense legs against the investment
// account do not decrement it. This mirrors the dominant behavior of the
// legacy books; it is an assumption about the business rule, not a verified
// one, and the tests document it as such.
func (c *Classifier) Classify(txn *models.Transaction) Effect {
	// 1. Accrual sentinels move no balance.
	if txn.Destination.IsPending() {
		return Effect{Bucket: BucketPending, Sign: 0}
	}

	sign := 1
	if txn.Type == models.TransactionExpense {
		sign = -1
	}

	// 2. Investment account (by destination or category).
	if txn.Destination.Kind == models.DestinationInvestment || categoryIsInvestment(txn.Category) {
		if txn.Type == models.TransactionIncome {
			return Effect{Bucket: BucketAportes, Sign: 1}
		}
		return Effect{Bucket: BucketAportes, Sign: 0}
	}

	// 3. Cash; absent destinations default here, matching Resolver.
	if txn.Destination.Kind == models.DestinationCash || txn.Destination.IsZero() {
		return Effect{Bucket: BucketCash, Sign: sign}
	}

	// 4. Everything else is bank-like.
	return Effect{Bucket: BucketBank, Sign: sign}
}
