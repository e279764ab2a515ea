package puc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"class", "1", false},
		{"group", "11", false},
		{"account", "1105", false},
		{"sub account", "110505", false},
		{"auxiliary", "11050501", false},
		{"deep auxiliary", "11050501020304", false},
		{"empty", "", true},
		{"three digits", "110", true},
		{"five digits", "11050", true},
		{"seven digits", "1105050", true},
		{"letters", "41A5", true},
		{"spaces", "11 5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCode(tt.code)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, byte(ClassAssets), ClassOf("11050501"))
	assert.Equal(t, byte(ClassIncome), ClassOf("4135"))
	assert.Equal(t, byte(ClassCosts), ClassOf("6135"))
	assert.Equal(t, byte(0), ClassOf(""))
}

func TestIsNumericCode(t *testing.T) {
	assert.True(t, IsNumericCode("1110"))
	assert.True(t, IsNumericCode("23050101"))
	assert.False(t, IsNumericCode("111"), "too short to be a group code")
	assert.False(t, IsNumericCode("caja_principal"))
	assert.False(t, IsNumericCode("bank-7f3a"))
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCatalog(t *testing.T) {
	path := writeCatalog(t, `
classes:
  - number: "1"
    name: Activos
  - number: "4"
    name: Ingresos
accounts:
  - number: "11050501"
    name: CAJA PRINCIPAL
  - number: "4135"
    name: VENTAS
`)

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, catalog.All(), 4)

	a, ok := catalog.Lookup("4135")
	require.True(t, ok)
	assert.Equal(t, "VENTAS", a.Name)

	a, ok = catalog.LookupByName("ventas")
	require.True(t, ok)
	assert.Equal(t, "4135", a.Number)

	_, ok = catalog.Lookup("9999")
	assert.False(t, ok)
}

func TestLoadCatalogRejectsBadEntries(t *testing.T) {
	t.Run("invalid code", func(t *testing.T) {
		path := writeCatalog(t, `
accounts:
  - number: "413"
    name: VENTAS
`)
		_, err := LoadCatalog(path)
		assert.Error(t, err)
	})

	t.Run("duplicate code", func(t *testing.T) {
		path := writeCatalog(t, `
accounts:
  - number: "4135"
    name: VENTAS
  - number: "4135"
    name: OTRA
`)
		_, err := LoadCatalog(path)
		assert.Error(t, err)
	})
}

func TestLoadCatalogSeedFile(t *testing.T) {
	// The shipped seed file must always load.
	catalog, err := LoadCatalog(filepath.Join("..", "..", "config", "puc-catalog.yaml"))
	require.NoError(t, err)

	for _, code := range []string{CashAccountCode, InvestmentAccountCode, ReceivablesCode, PayablesCode} {
		_, ok := catalog.Lookup(code)
		assert.True(t, ok, "seed catalog is missing well-known code %s", code)
	}
}
