package ledger

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrancor/contalocal/internal/models"
)

func newEngine() *Engine {
	return NewEngine(NewClassifier(NewResolver(testRefData())))
}

func txn(id string, seq uint64, typ models.TransactionType, date string, amount float64, dest models.Destination) *models.Transaction {
	return &models.Transaction{
		ID:          id,
		CompanyID:   "co1",
		Type:        typ,
		Date:        date,
		Amount:      models.MoneyFromFloat(amount),
		Destination: dest,
		Seq:         seq,
	}
}

// The worked scenario: initial cash 1000. An expense of 200 from cash on day
// one leaves cash at 800; an income of 500 to a bank on day two leaves cash
// untouched and moves only the bank bucket.
func TestComputeRunning(t *testing.T) {
	e := newEngine()
	opening := Balances{Cash: decimal.NewFromInt(1000), Bank: decimal.NewFromInt(2000)}

	txns := []*models.Transaction{
		txn("b", 2, models.TransactionIncome, "2024-01-02", 500, models.BankDestination("bank1", "Bancolombia")),
		txn("a", 1, models.TransactionExpense, "2024-01-01", 200, models.CashDestination()),
	}

	out := e.ComputeRunning(opening, txns)
	require.Len(t, out, 2)

	assert.Equal(t, "a", out[0].ID)
	assert.True(t, out[0].Running.Cash.Equal(decimal.NewFromInt(800)), "cash after A: %s", out[0].Running.Cash)
	assert.True(t, out[0].Running.Bank.Equal(decimal.NewFromInt(2000)))

	assert.Equal(t, "b", out[1].ID)
	assert.True(t, out[1].Running.Cash.Equal(decimal.NewFromInt(800)), "cash unchanged by B")
	assert.True(t, out[1].Running.Bank.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, BucketBank, out[1].Effect.Bucket)
}

func TestComputeRunningPendingMovesNothing(t *testing.T) {
	e := newEngine()
	opening := Balances{Cash: decimal.NewFromInt(100)}

	out := e.ComputeRunning(opening, []*models.Transaction{
		txn("p", 1, models.TransactionIncome, "2024-03-01", 999, models.PendingDestination(models.DestinationPendingReceivable)),
	})
	require.Len(t, out, 1)
	assert.Equal(t, BucketPending, out[0].Effect.Bucket)
	assert.True(t, out[0].Running.Cash.Equal(decimal.NewFromInt(100)))
	assert.True(t, out[0].Running.Bank.IsZero())
}

// Same-date ordering uses the insertion sequence number, not input slice
// order.
func TestComputeRunningSameDateTieBreak(t *testing.T) {
	e := newEngine()

	txns := []*models.Transaction{
		txn("second", 8, models.TransactionExpense, "2024-05-05", 300, models.CashDestination()),
		txn("first", 3, models.TransactionIncome, "2024-05-05", 300, models.CashDestination()),
	}

	out := e.ComputeRunning(Balances{}, txns)
	require.Len(t, out, 2)
	assert.Equal(t, "first", out[0].ID)
	assert.True(t, out[0].Running.Cash.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "second", out[1].ID)
	assert.True(t, out[1].Running.Cash.IsZero())
}

// Recomputing on the same input must produce identical output, and the input
// slice must come back untouched.
func TestComputeRunningDeterministicAndPure(t *testing.T) {
	e := newEngine()
	opening := Balances{Cash: decimal.NewFromInt(1000)}

	txns := []*models.Transaction{
		txn("a", 1, models.TransactionExpense, "2024-01-01", 200, models.CashDestination()),
		txn("b", 2, models.TransactionIncome, "2024-01-02", 500, models.BankDestination("bank1", "Bancolombia")),
		txn("c", 3, models.TransactionIncome, "2024-01-02", 50, models.ParseDestination("12950501|APORTES COOPERATIVA FRATERNIDAD")),
	}
	inputOrder := []string{txns[0].ID, txns[1].ID, txns[2].ID}

	first := e.ComputeRunning(opening, txns)
	second := e.ComputeRunning(opening, txns)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	for i, id := range inputOrder {
		assert.Equal(t, id, txns[i].ID, "input order must be preserved")
	}
}

// A malformed legacy amount decodes to zero and must not crash or skew the
// fold.
func TestComputeRunningMalformedAmount(t *testing.T) {
	var legacy models.Transaction
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "bad",
		"type": "expense",
		"date": "2024-02-01",
		"amount": "no-es-un-numero",
		"destination": {"kind": "cash", "id": "caja_principal"}
	}`), &legacy))
	assert.True(t, legacy.Amount.IsZero())

	e := newEngine()
	out := e.ComputeRunning(Balances{Cash: decimal.NewFromInt(500)}, []*models.Transaction{&legacy})
	require.Len(t, out, 1)
	assert.True(t, out[0].Running.Cash.Equal(decimal.NewFromInt(500)))
}

func TestOpeningBalances(t *testing.T) {
	ref := RefData{
		InitialBalances: []models.InitialBalance{
			{Balance: models.MoneyFromFloat(700)},
			{Balance: models.MoneyFromFloat(300)},
		},
		BankAccounts: []models.BankAccount{
			{InitialBalance: models.MoneyFromFloat(5000), InitialInvestmentBalance: models.MoneyFromFloat(1500)},
			{InitialBalance: models.MoneyFromFloat(2500)},
		},
	}

	b := OpeningBalances(ref)
	assert.True(t, b.Cash.Equal(decimal.NewFromInt(1000)))
	assert.True(t, b.Bank.Equal(decimal.NewFromInt(7500)))
	assert.True(t, b.Aportes.Equal(decimal.NewFromInt(1500)))
}

func TestBalancesAsOf(t *testing.T) {
	e := newEngine()
	opening := Balances{Cash: decimal.NewFromInt(1000)}

	txns := []*models.Transaction{
		txn("a", 1, models.TransactionExpense, "2023-06-01", 100, models.CashDestination()),
		txn("b", 2, models.TransactionIncome, "2024-02-01", 400, models.CashDestination()),
	}

	atClose := e.BalancesAsOf(opening, txns, "2023-12-31")
	assert.True(t, atClose.Cash.Equal(decimal.NewFromInt(900)))

	later := e.BalancesAsOf(opening, txns, "2024-12-31")
	assert.True(t, later.Cash.Equal(decimal.NewFromInt(1300)))
}
