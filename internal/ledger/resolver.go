// Package ledger implements the balance-reconstruction and double-entry
// inference engine: account resolution, bucket classification, running
// balances, transfer-pair merging, and period report aggregation.
//
// Every function in this package is a pure fold over in-memory collections.
// Inputs are never mutated; malformed data degrades to zeroes and fallback
// accounts instead of errors, because one bad historical record must not
// take down all reports.
package ledger

import (
	"strings"

	"github.com/mfrancor/contalocal/internal/models"
	"github.com/mfrancor/contalocal/internal/puc"
)

// AccountRef is a resolved ledger account: PUC code plus display name.
type AccountRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// RefData is the read-only reference data resolution works against.
type RefData struct {
	InitialBalances []models.InitialBalance
	BankAccounts    []models.BankAccount
	Accounts        []models.Account
}

// Resolver maps a transaction's destination and category to the ledger
// account its money-movement side touches.
type Resolver struct {
	cash           AccountRef
	banksByID      map[string]models.BankAccount
	accountsByName map[string]models.Account
}

// NewResolver builds a Resolver over a company's reference data.
func NewResolver(ref RefData) *Resolver {
	r := &Resolver{
		cash:           AccountRef{Code: puc.CashAccountCode, Name: puc.CashAccountName},
		banksByID:      make(map[string]models.BankAccount, len(ref.BankAccounts)),
		accountsByName: make(map[string]models.Account, len(ref.Accounts)),
	}

	// The single initial-balance entity may override the cash account.
	for _, ib := range ref.InitialBalances {
		if ib.AccountingCode != "" {
			r.cash = AccountRef{Code: ib.AccountingCode, Name: ib.AccountingName}
			if r.cash.Name == "" {
				r.cash.Name = puc.CashAccountName
			}
			break
		}
	}

	for _, b := range ref.BankAccounts {
		r.banksByID[b.ID] = b
	}
	for _, a := range ref.Accounts {
		r.accountsByName[strings.ToUpper(a.Name)] = a
	}

	return r
}

// Resolve maps a destination and category to an account. Rules are evaluated
// in a fixed priority; the order is load-bearing. Resolution never fails:
// destinations referencing since-deleted bank accounts land on the generic
// fallback bank code.
func (r *Resolver) Resolve(dest models.Destination, category string) AccountRef {
	// 1-2. Accrual sentinels.
	switch dest.Kind {
	case models.DestinationPendingPayable:
		return AccountRef{Code: puc.PayablesCode, Name: puc.PayablesName}
	case models.DestinationPendingReceivable:
		return AccountRef{Code: puc.ReceivablesCode, Name: puc.ReceivablesName}
	}

	// 3. Cash. An absent destination defaults here too.
	if dest.Kind == models.DestinationCash || dest.IsZero() {
		return r.cash
	}

	// 4. Investment account; also detected through the category so the rule
	// overrides bank-account matching.
	if dest.Kind == models.DestinationInvestment || categoryIsInvestment(category) {
		return AccountRef{Code: puc.InvestmentAccountCode, Name: puc.InvestmentAccountName}
	}

	// 5. Known bank account.
	if bank, ok := r.banksByID[dest.ID]; ok {
		code := bank.AccountingCode
		if code == "" {
			code = puc.DefaultBankCode
		}
		name := bank.AccountingConcept
		if name == "" {
			name = bank.BankName
		}
		return AccountRef{Code: code, Name: name}
	}

	// 6. Raw PUC code carried directly in the id.
	if puc.IsNumericCode(dest.ID) {
		name := dest.DisplayName
		if name == "" {
			name = "CUENTA DESTINO"
		}
		return AccountRef{Code: dest.ID, Name: name}
	}

	// 7. Fallback for anything else, typically a deleted bank account.
	name := dest.DisplayName
	if name == "" {
		name = "BANCO DESCONOCIDO"
	}
	return AccountRef{Code: puc.FallbackBankCode, Name: name}
}

// ResolveCategory maps a category name to its chart-of-accounts entry, or to
// the income/expense default account when the chart has no match.
func (r *Resolver) ResolveCategory(category string, txnType models.TransactionType) AccountRef {
	if a, ok := r.accountsByName[strings.ToUpper(strings.TrimSpace(category))]; ok {
		return AccountRef{Code: a.Number, Name: a.Name}
	}

	code := puc.DefaultExpenseCode
	if txnType == models.TransactionIncome {
		code = puc.DefaultIncomeCode
	}
	return AccountRef{Code: code, Name: category}
}

// CategoryClass returns the PUC class digit behind a category, falling back
// to class 4 for income and class 5 for expense when the chart has no match.
func (r *Resolver) CategoryClass(category string, txnType models.TransactionType) byte {
	return puc.ClassOf(r.ResolveCategory(category, txnType).Code)
}

// Cash returns the configured cash account.
func (r *Resolver) Cash() AccountRef {
	return r.cash
}

func categoryIsInvestment(category string) bool {
	upper := strings.ToUpper(category)
	return strings.Contains(upper, "APORTES COOPERATIVA") ||
		strings.Contains(upper, puc.InvestmentAccountCode)
}
