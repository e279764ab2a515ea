// Package puc provides the Colombian PUC chart-of-accounts catalog: code
// validation, class lookup, and the default account seed loaded from YAML.
package puc

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known account codes the ledger engine depends on.
const (
	CashAccountCode       = "11050501"
	CashAccountName       = "CAJA PRINCIPAL"
	InvestmentAccountCode = "12950501"
	InvestmentAccountName = "APORTES COOPERATIVA FRATERNIDAD"
	ReceivablesCode       = "13050505"
	ReceivablesName       = "CUENTAS POR COBRAR"
	PayablesCode          = "23050101"
	PayablesName          = "CUENTAS POR PAGAR"
	DefaultBankCode       = "1110"
	FallbackBankCode      = "1120"
	DefaultIncomeCode     = "4105"
	DefaultExpenseCode    = "5105"
)

// PUC class digits.
const (
	ClassAssets      = '1'
	ClassLiabilities = '2'
	ClassEquity      = '3'
	ClassIncome      = '4'
	ClassExpenses    = '5'
	ClassCosts       = '6'
)

// validLengths are the code lengths the PUC hierarchy defines, from class
// (1 digit) down to auxiliary sub-accounts.
var validLengths = map[int]bool{1: true, 2: true, 4: true, 6: true, 8: true, 10: true, 12: true, 14: true}

// ValidateCode checks that a code is all digits with a valid PUC length.
func ValidateCode(code string) error {
	if code == "" {
		return fmt.Errorf("account code is empty")
	}
	if !validLengths[len(code)] {
		return fmt.Errorf("account code %q has invalid length %d (valid: 1, 2, 4, 6, 8, 10, 12, 14)", code, len(code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("account code %q contains non-digit characters", code)
		}
	}
	return nil
}

// ClassOf returns the PUC class digit of a code, or 0 for empty codes.
func ClassOf(code string) byte {
	if code == "" {
		return 0
	}
	return code[0]
}

// IsNumericCode reports whether an id can itself be treated as a PUC code:
// all digits and at least group length.
func IsNumericCode(id string) bool {
	if len(id) < 4 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SeedAccount is one default chart entry from the catalog file.
type SeedAccount struct {
	Number string `yaml:"number"`
	Name   string `yaml:"name"`
}

// Catalog is the default PUC chart seeded into new companies.
type Catalog struct {
	Classes  []SeedAccount `yaml:"classes"`
	Accounts []SeedAccount `yaml:"accounts"`

	byNumber map[string]SeedAccount
}

// LoadCatalog reads and validates a catalog YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	catalog.byNumber = make(map[string]SeedAccount)
	for _, a := range catalog.All() {
		if err := ValidateCode(a.Number); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", a.Name, err)
		}
		if _, exists := catalog.byNumber[a.Number]; exists {
			return nil, fmt.Errorf("catalog contains duplicate code %s", a.Number)
		}
		catalog.byNumber[a.Number] = a
	}

	return &catalog, nil
}

// All returns every seed entry, classes first.
func (c *Catalog) All() []SeedAccount {
	all := make([]SeedAccount, 0, len(c.Classes)+len(c.Accounts))
	all = append(all, c.Classes...)
	all = append(all, c.Accounts...)
	return all
}

// Lookup finds a seed entry by code.
func (c *Catalog) Lookup(number string) (SeedAccount, bool) {
	a, ok := c.byNumber[number]
	return a, ok
}

// LookupByName finds a seed entry by case-insensitive name.
func (c *Catalog) LookupByName(name string) (SeedAccount, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, a := range c.All() {
		if strings.ToUpper(a.Name) == name {
			return a, true
		}
	}
	return SeedAccount{}, false
}
