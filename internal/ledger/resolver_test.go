package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfrancor/contalocal/internal/models"
)

func testRefData() RefData {
	return RefData{
		InitialBalances: []models.InitialBalance{
			{ID: "ib1", CompanyID: "co1", Balance: models.MoneyFromFloat(1000)},
		},
		BankAccounts: []models.BankAccount{
			{
				ID:                "bank1",
				CompanyID:         "co1",
				BankName:          "Bancolombia",
				AccountingCode:    "11100501",
				AccountingConcept: "BANCOLOMBIA CTA CORRIENTE",
			},
			{ID: "bank2", CompanyID: "co1", BankName: "Davivienda"},
		},
		Accounts: []models.Account{
			{ID: "a1", Number: "4135", Name: "VENTAS"},
			{ID: "a2", Number: "5135", Name: "SERVICIOS"},
			{ID: "a3", Number: "6135", Name: "COSTO MERCANCIA"},
		},
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver(testRefData())

	tests := []struct {
		name     string
		dest     models.Destination
		category string
		want     AccountRef
	}{
		{
			"pending payable sentinel",
			models.PendingDestination(models.DestinationPendingPayable),
			"",
			AccountRef{Code: "23050101", Name: "CUENTAS POR PAGAR"},
		},
		{
			"pending receivable sentinel",
			models.PendingDestination(models.DestinationPendingReceivable),
			"",
			AccountRef{Code: "13050505", Name: "CUENTAS POR COBRAR"},
		},
		{
			"cash sentinel",
			models.CashDestination(),
			"",
			AccountRef{Code: "11050501", Name: "CAJA PRINCIPAL"},
		},
		{
			"no destination defaults to cash",
			models.Destination{},
			"VENTAS",
			AccountRef{Code: "11050501", Name: "CAJA PRINCIPAL"},
		},
		{
			"investment id",
			models.ParseDestination("12950501|APORTES COOPERATIVA FRATERNIDAD"),
			"",
			AccountRef{Code: "12950501", Name: "APORTES COOPERATIVA FRATERNIDAD"},
		},
		{
			"investment by category overrides bank match",
			models.BankDestination("bank1", "Bancolombia"),
			"APORTES COOPERATIVA FRATERNIDAD",
			AccountRef{Code: "12950501", Name: "APORTES COOPERATIVA FRATERNIDAD"},
		},
		{
			"known bank with configured code",
			models.BankDestination("bank1", "Bancolombia"),
			"SERVICIOS",
			AccountRef{Code: "11100501", Name: "BANCOLOMBIA CTA CORRIENTE"},
		},
		{
			"known bank without configured code",
			models.BankDestination("bank2", "Davivienda"),
			"",
			AccountRef{Code: "1110", Name: "Davivienda"},
		},
		{
			"raw numeric code",
			models.ParseDestination("23059901|PRESTAMOS SOCIOS"),
			"",
			AccountRef{Code: "23059901", Name: "PRESTAMOS SOCIOS"},
		},
		{
			"raw numeric code without name",
			models.Destination{Kind: models.DestinationRaw, ID: "530505"},
			"",
			AccountRef{Code: "530505", Name: "CUENTA DESTINO"},
		},
		{
			"deleted bank falls back",
			models.BankDestination("gone-bank", "Banco Viejo"),
			"",
			AccountRef{Code: "1120", Name: "Banco Viejo"},
		},
		{
			"unknown without name falls back",
			models.Destination{Kind: models.DestinationRaw, ID: "x9"},
			"",
			AccountRef{Code: "1120", Name: "BANCO DESCONOCIDO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.dest, tt.category))
		})
	}
}

// The investment rule must win over the cash rule when a conflicting input
// carries an investment destination but a cash category. Rule evaluation is
// by destination first; the category never pulls a resolved investment
// destination back to cash.
func TestResolvePriorityConflict(t *testing.T) {
	r := NewResolver(testRefData())

	got := r.Resolve(models.ParseDestination("12950501|APORTES COOPERATIVA FRATERNIDAD"), "CAJA PRINCIPAL")
	assert.Equal(t, AccountRef{Code: "12950501", Name: "APORTES COOPERATIVA FRATERNIDAD"}, got)

	// The mirror conflict: cash destination with investment category. The
	// cash rule is evaluated before the investment rule, so cash wins.
	got = r.Resolve(models.CashDestination(), "APORTES COOPERATIVA FRATERNIDAD")
	assert.Equal(t, AccountRef{Code: "11050501", Name: "CAJA PRINCIPAL"}, got)
}

func TestResolveCashOverride(t *testing.T) {
	ref := testRefData()
	ref.InitialBalances = []models.InitialBalance{
		{ID: "ib1", AccountingCode: "11050502", AccountingName: "CAJA MENOR"},
	}
	r := NewResolver(ref)

	assert.Equal(t, AccountRef{Code: "11050502", Name: "CAJA MENOR"}, r.Resolve(models.CashDestination(), ""))
}

func TestResolveCategory(t *testing.T) {
	r := NewResolver(testRefData())

	tests := []struct {
		name     string
		category string
		txnType  models.TransactionType
		want     AccountRef
	}{
		{"chart match", "VENTAS", models.TransactionIncome, AccountRef{Code: "4135", Name: "VENTAS"}},
		{"chart match case-insensitive", "servicios", models.TransactionExpense, AccountRef{Code: "5135", Name: "SERVICIOS"}},
		{"income default", "Otros Ingresos", models.TransactionIncome, AccountRef{Code: "4105", Name: "Otros Ingresos"}},
		{"expense default", "Papeleria", models.TransactionExpense, AccountRef{Code: "5105", Name: "Papeleria"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveCategory(tt.category, tt.txnType))
		})
	}
}

func TestParseDestination(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		want models.Destination
	}{
		{"empty tag is cash", "", models.CashDestination()},
		{"cash sentinel", "caja_principal|CAJA PRINCIPAL", models.Destination{Kind: models.DestinationCash, ID: "caja_principal", DisplayName: "CAJA PRINCIPAL"}},
		{"caja by name", "x1|Caja Menor", models.Destination{Kind: models.DestinationCash, ID: "x1", DisplayName: "Caja Menor"}},
		{"pending payable", "pending_payable|CUENTAS POR PAGAR", models.Destination{Kind: models.DestinationPendingPayable, ID: "pending_payable", DisplayName: "CUENTAS POR PAGAR"}},
		{"investment id", "12950501|APORTES COOPERATIVA FRATERNIDAD", models.Destination{Kind: models.DestinationInvestment, ID: "12950501", DisplayName: "APORTES COOPERATIVA FRATERNIDAD"}},
		{"bank id stays raw", "bank1|Bancolombia", models.Destination{Kind: models.DestinationRaw, ID: "bank1", DisplayName: "Bancolombia"}},
		{"id without name", "bank1", models.Destination{Kind: models.DestinationRaw, ID: "bank1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.ParseDestination(tt.tag))
		})
	}
}
