package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfrancor/contalocal/internal/models"
)

func transferPair(base, date string, seq uint64, amount float64, from, to models.Destination) []*models.Transaction {
	exp := txn(base+models.TransferExpenseSuffix, seq, models.TransactionExpense, date, amount, from)
	inc := txn(base+models.TransferIncomeSuffix, seq+1, models.TransactionIncome, date, amount, to)
	exp.IsInternalTransfer = true
	inc.IsInternalTransfer = true
	exp.Category = models.CategoryInternalTransfer
	inc.Category = models.CategoryInternalTransfer
	exp.Description = "Transferencia interna: Consignacion efectivo"
	inc.Description = "Transferencia interna: Consignacion efectivo"
	return []*models.Transaction{exp, inc}
}

func TestMergeTransferPair(t *testing.T) {
	e := newEngine()
	m := NewMerger(NewResolver(testRefData()))
	opening := Balances{Cash: decimal.NewFromInt(800), Bank: decimal.NewFromInt(2500)}

	txns := transferPair("1700000000001", "2024-01-03", 1, 300,
		models.CashDestination(), models.BankDestination("bank1", "Bancolombia"))

	rows := m.Merge(e.ComputeRunning(opening, txns))
	require.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.Merged)
	assert.Equal(t, "-300 / +300", row.AmountLabel)
	assert.Equal(t, "Consignacion efectivo", row.Description)
	assert.Equal(t, models.CategoryInternalTransfer, row.Category)
	assert.Equal(t, AccountRef{Code: "11050501", Name: "CAJA PRINCIPAL"}, row.Source)
	assert.Equal(t, AccountRef{Code: "11100501", Name: "BANCOLOMBIA CTA CORRIENTE"}, row.Target)

	// Later leg's snapshot: both sides already applied.
	assert.True(t, row.Running.Cash.Equal(decimal.NewFromInt(500)), "cash after pair: %s", row.Running.Cash)
	assert.True(t, row.Running.Bank.Equal(decimal.NewFromInt(2800)), "bank after pair: %s", row.Running.Bank)
}

// Money leaves one bucket and enters another in equal amount: the net delta
// across all buckets over the pair is zero.
func TestMergeTransferConservation(t *testing.T) {
	e := newEngine()
	opening := Balances{Cash: decimal.NewFromInt(1000), Bank: decimal.NewFromInt(400)}

	txns := transferPair("1700000000002", "2024-02-10", 1, 250,
		models.BankDestination("bank1", "Bancolombia"), models.CashDestination())

	out := e.ComputeRunning(opening, txns)
	require.Len(t, out, 2)

	final := out[len(out)-1].Running
	assert.True(t, final.Total().Equal(opening.Total()),
		"total across buckets must be conserved: opening %s, final %s", opening.Total(), final.Total())
	assert.True(t, final.Cash.Equal(decimal.NewFromInt(1250)))
	assert.True(t, final.Bank.Equal(decimal.NewFromInt(150)))
}

func TestMergeOrphanLegPassesThrough(t *testing.T) {
	e := newEngine()
	m := NewMerger(NewResolver(testRefData()))

	orphan := txn("1700000000003"+models.TransferExpenseSuffix, 1, models.TransactionExpense,
		"2024-03-01", 120, models.CashDestination())
	orphan.IsInternalTransfer = true

	rows := m.Merge(e.ComputeRunning(Balances{}, []*models.Transaction{orphan}))
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Merged)
	assert.Equal(t, orphan.ID, rows[0].ID)
}

func TestMergeIdempotent(t *testing.T) {
	e := newEngine()
	m := NewMerger(NewResolver(testRefData()))

	txns := transferPair("1700000000004", "2024-04-01", 1, 75,
		models.CashDestination(), models.BankDestination("bank1", "Bancolombia"))
	txns = append(txns, txn("plain", 3, models.TransactionIncome, "2024-04-02", 10, models.CashDestination()))

	once := m.Merge(e.ComputeRunning(Balances{}, txns))
	twice := m.MergeRows(once)

	assert.Equal(t, once, twice, "merging already-merged rows must be a no-op")
	require.Len(t, twice, 2)
}

// A transfer whose income leg lands on the cooperative keeps the investment
// account as the merged target even though the destination tag names the
// holding bank.
func TestMergeAportesOverride(t *testing.T) {
	e := newEngine()
	m := NewMerger(NewResolver(testRefData()))

	txns := transferPair("1700000000005", "2024-05-01", 1, 500,
		models.BankDestination("bank1", "Bancolombia"), models.BankDestination("bank1", "Bancolombia"))
	txns[1].Category = "APORTES COOPERATIVA FRATERNIDAD"

	rows := m.Merge(e.ComputeRunning(Balances{}, txns))
	require.Len(t, rows, 1)
	assert.Equal(t, AccountRef{Code: "12950501", Name: "APORTES COOPERATIVA FRATERNIDAD"}, rows[0].Target)
	assert.Equal(t, AccountRef{Code: "11100501", Name: "BANCOLOMBIA CTA CORRIENTE"}, rows[0].Source)
}
