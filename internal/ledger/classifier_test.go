package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfrancor/contalocal/internal/models"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(NewResolver(testRefData()))

	tests := []struct {
		name string
		txn  models.Transaction
		want Effect
	}{
		{
			"pending receivable moves nothing",
			models.Transaction{Type: models.TransactionIncome, Destination: models.PendingDestination(models.DestinationPendingReceivable)},
			Effect{Bucket: BucketPending, Sign: 0},
		},
		{
			"pending payable moves nothing",
			models.Transaction{Type: models.TransactionExpense, Destination: models.PendingDestination(models.DestinationPendingPayable)},
			Effect{Bucket: BucketPending, Sign: 0},
		},
		{
			"income to cash",
			models.Transaction{Type: models.TransactionIncome, Destination: models.CashDestination()},
			Effect{Bucket: BucketCash, Sign: 1},
		},
		{
			"expense from cash",
			models.Transaction{Type: models.TransactionExpense, Destination: models.CashDestination()},
			Effect{Bucket: BucketCash, Sign: -1},
		},
		{
			"no destination counts as cash",
			models.Transaction{Type: models.TransactionExpense},
			Effect{Bucket: BucketCash, Sign: -1},
		},
		{
			"income to bank",
			models.Transaction{Type: models.TransactionIncome, Destination: models.BankDestination("bank1", "Bancolombia")},
			Effect{Bucket: BucketBank, Sign: 1},
		},
		{
			"expense from bank",
			models.Transaction{Type: models.TransactionExpense, Destination: models.BankDestination("bank1", "Bancolombia")},
			Effect{Bucket: BucketBank, Sign: -1},
		},
		{
			"income to investment",
			models.Transaction{Type: models.TransactionIncome, Destination: models.ParseDestination("12950501|APORTES COOPERATIVA FRATERNIDAD")},
			Effect{Bucket: BucketAportes, Sign: 1},
		},
		{
			"investment detected through category",
			models.Transaction{Type: models.TransactionIncome, Destination: models.BankDestination("bank1", "Bancolombia"), Category: "APORTES COOPERATIVA FRATERNIDAD"},
			Effect{Bucket: BucketAportes, Sign: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(&tt.txn))
		})
	}
}

// Documented assumption, not a verified business rule: the aportes bucket is
// accumulate-only. An expense leg against the investment account classifies
// into the bucket but with sign 0, so the total is never decremented.
func TestClassifyAportesAccumulateOnly(t *testing.T) {
	c := NewClassifier(NewResolver(testRefData()))

	got := c.Classify(&models.Transaction{
		Type:        models.TransactionExpense,
		Destination: models.ParseDestination("12950501|APORTES COOPERATIVA FRATERNIDAD"),
	})
	assert.Equal(t, Effect{Bucket: BucketAportes, Sign: 0}, got)
}
