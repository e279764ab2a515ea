package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"number", `150`, 150},
		{"quoted", `"150"`, 150},
		{"decimal", `"150.25"`, 0}, // see below
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"garbage", `"N/A"`, 0},
		{"currency noise", `"$1.500"`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			require.NoError(t, json.Unmarshal([]byte(tt.in), &m))
			if tt.name == "decimal" {
				assert.True(t, m.Equal(decimal.RequireFromString("150.25")))
				return
			}
			assert.True(t, m.Equal(decimal.NewFromInt(tt.want)), "got %s", m)
		})
	}
}

func TestMoneyMarshalRoundTrip(t *testing.T) {
	m := MoneyFromString("1250.50")
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"1250.5"`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(m.Decimal))
}

func TestParseDestination(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		wantKind DestinationKind
		wantID   string
	}{
		{"empty falls back to cash", "", DestinationCash, CashSentinelID},
		{"cash sentinel id", "caja_principal|CAJA PRINCIPAL", DestinationCash, "caja_principal"},
		{"cash by name", "x9|CAJA MENOR", DestinationCash, "x9"},
		{"investment by id", "12950501|APORTES COOPERATIVA FRATERNIDAD", DestinationInvestment, "12950501"},
		{"investment by name", "z1|APORTES COOPERATIVA NUEVA", DestinationInvestment, "z1"},
		{"pending receivable", "pending_receivable|CUENTAS POR COBRAR", DestinationPendingReceivable, "pending_receivable"},
		{"pending payable", "pending_payable|CUENTAS POR PAGAR", DestinationPendingPayable, "pending_payable"},
		{"bank id", "bank-7f3a|Bancolombia", DestinationRaw, "bank-7f3a"},
		{"literal code", "11100501|CUENTA CORRIENTE", DestinationRaw, "11100501"},
		{"no separator", "bank-7f3a", DestinationRaw, "bank-7f3a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDestination(tt.tag)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestParseDestinationCashBeatsInvestment(t *testing.T) {
	// A name matching both rules resolves by rule order: cash first.
	got := ParseDestination("x1|CAJA APORTES COOPERATIVA")
	assert.Equal(t, DestinationCash, got.Kind)
}

func TestSiblingID(t *testing.T) {
	exp := &Transaction{ID: "1700000000000-exp"}
	inc := &Transaction{ID: "1700000000000-inc"}
	assert.Equal(t, "1700000000000-inc", exp.SiblingID())
	assert.Equal(t, "1700000000000-exp", inc.SiblingID())

	plain := &Transaction{ID: "some-uuid"}
	assert.Empty(t, plain.SiblingID())
}

func TestTransactionYear(t *testing.T) {
	txn := &Transaction{Date: "2024-03-15"}
	assert.Equal(t, "2024", txn.Year())

	short := &Transaction{Date: "bad"}
	assert.Empty(t, short.Year())
}
