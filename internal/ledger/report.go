package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mfrancor/contalocal/internal/models"
	"github.com/mfrancor/contalocal/internal/puc"
)

// imbalanceTolerance is the floating-point slack allowed on the balance
// sheet identity before it is flagged.
var imbalanceTolerance = decimal.RequireFromString("0.01")

// Data is the full entity set of one company (or a consolidated union of
// companies), already filtered by the caller. The builder never mutates it.
type Data struct {
	Ref          RefData
	Transactions []*models.Transaction
	Receivables  []models.Receivable
	Payables     []models.Payable
	FixedAssets  []models.FixedAsset
	RealEstate   []models.RealEstate
}

// CategoryTotal is one grouped line of the income statement.
type CategoryTotal struct {
	Category string          `json:"category"`
	Code     string          `json:"code"`
	Amount   decimal.Decimal `json:"amount"`
}

// IncomeStatement is the P&L for one fiscal year, strict period.
type IncomeStatement struct {
	Year     string          `json:"year"`
	Income   []CategoryTotal `json:"income"`
	Costs    []CategoryTotal `json:"costs"`    // class 6 accounts
	Expenses []CategoryTotal `json:"expenses"` // class 5 accounts

	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalCosts    decimal.Decimal `json:"total_costs"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

// SheetLine is one labeled amount on the balance sheet.
type SheetLine struct {
	Code   string          `json:"code,omitempty"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceSheet is the cumulative point-in-time statement as of a year end.
type BalanceSheet struct {
	Year string `json:"year"`
	AsOf string `json:"as_of"`

	CurrentAssets []SheetLine `json:"current_assets"`
	FixedAssets   []SheetLine `json:"fixed_assets"`
	TotalAssets   decimal.Decimal `json:"total_assets"`

	Liabilities      []SheetLine     `json:"liabilities"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`

	Equity      []SheetLine     `json:"equity"`
	TotalEquity decimal.Decimal `json:"total_equity"`

	// Balanced reports whether assets equal liabilities plus equity within
	// tolerance. An imbalance is a data-quality signal surfaced to the user,
	// never an error.
	Balanced   bool            `json:"balanced"`
	Difference decimal.Decimal `json:"difference"`
}

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
}

// Summary is the dashboard headline for one fiscal year.
type Summary struct {
	Year          string          `json:"year"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	Balances      Balances        `json:"balances"`
}

// Report bundles the statements for one period.
type Report struct {
	Summary         Summary         `json:"summary"`
	IncomeStatement IncomeStatement `json:"income_statement"`
	BalanceSheet    BalanceSheet    `json:"balance_sheet"`
	Categories      []CategoryShare `json:"categories"`
}

// Builder folds the full entity set into period aggregates. All page-level
// consumers (transactions view, dashboard, reports, book closings, tax
// reports) share this one implementation.
type Builder struct {
	data       Data
	resolver   *Resolver
	classifier *Classifier
	engine     *Engine
}

// NewBuilder constructs a Builder over one company's data.
func NewBuilder(data Data) *Builder {
	resolver := NewResolver(data.Ref)
	classifier := NewClassifier(resolver)
	return &Builder{
		data:       data,
		resolver:   resolver,
		classifier: classifier,
		engine:     NewEngine(classifier),
	}
}

// BuildPeriodReport assembles every statement for one fiscal year.
func (b *Builder) BuildPeriodReport(year string) Report {
	return Report{
		Summary:         b.Summary(year),
		IncomeStatement: b.IncomeStatement(year),
		BalanceSheet:    b.BalanceSheet(year),
		Categories:      b.CategoryBreakdown(year),
	}
}

// LedgerRows produces the display rows for the transactions view: running
// balances over the full history, with internal transfer pairs merged.
func (b *Builder) LedgerRows() []DisplayRow {
	anns := b.engine.ComputeRunning(OpeningBalances(b.data.Ref), b.data.Transactions)
	return NewMerger(b.resolver).Merge(anns)
}

// Journal projects the full history into double-entry journal lines.
func (b *Builder) Journal() []JournalEntry {
	return NewProjector(b.resolver).ProjectAll(b.LedgerRows())
}

// countsForPL reports whether a transaction participates in the income
// statement: internal transfers, accrual placeholder categories, and fixed
// asset purchases are excluded.
func countsForPL(txn *models.Transaction) bool {
	if txn.IsInternalTransfer || txn.IsFixedAsset {
		return false
	}
	if txn.Category == models.CategoryReceivables || txn.Category == models.CategoryPayables {
		return false
	}
	return true
}

// IncomeStatement sums income and expense transactions within the strict
// fiscal year, grouped by category. Expense categories resolving to a class
// 6 account are costs of sale; everything else on the expense side is an
// operating expense. Net profit is income minus costs minus expenses.
func (b *Builder) IncomeStatement(year string) IncomeStatement {
	income := map[string]*CategoryTotal{}
	costs := map[string]*CategoryTotal{}
	expenses := map[string]*CategoryTotal{}

	st := IncomeStatement{Year: year}
	for _, txn := range b.data.Transactions {
		if txn.Year() != year || !countsForPL(txn) {
			continue
		}

		ref := b.resolver.ResolveCategory(txn.Category, txn.Type)
		switch {
		case txn.Type == models.TransactionIncome:
			addCategory(income, txn.Category, ref.Code, txn.Amount.Decimal)
			st.TotalIncome = st.TotalIncome.Add(txn.Amount.Decimal)
		case puc.ClassOf(ref.Code) == puc.ClassCosts:
			addCategory(costs, txn.Category, ref.Code, txn.Amount.Decimal)
			st.TotalCosts = st.TotalCosts.Add(txn.Amount.Decimal)
		default:
			addCategory(expenses, txn.Category, ref.Code, txn.Amount.Decimal)
			st.TotalExpenses = st.TotalExpenses.Add(txn.Amount.Decimal)
		}
	}

	st.Income = sortedTotals(income)
	st.Costs = sortedTotals(costs)
	st.Expenses = sortedTotals(expenses)
	st.GrossProfit = st.TotalIncome.Sub(st.TotalCosts)
	st.NetProfit = st.GrossProfit.Sub(st.TotalExpenses)
	return st
}

// BalanceSheet folds every transaction up through the end of the year into
// point-in-time bucket balances and assembles the cumulative statement.
func (b *Builder) BalanceSheet(year string) BalanceSheet {
	asOf := year + "-12-31"
	opening := OpeningBalances(b.data.Ref)
	balances := b.engine.BalancesAsOf(opening, b.data.Transactions, asOf)

	sheet := BalanceSheet{Year: year, AsOf: asOf}
	cash := b.resolver.Cash()

	// Current assets: the three bucket totals plus receivables still pending
	// as of the date, net of partial payments recorded by then.
	sheet.CurrentAssets = append(sheet.CurrentAssets,
		SheetLine{Code: cash.Code, Label: cash.Name, Amount: balances.Cash},
		SheetLine{Code: puc.DefaultBankCode, Label: "BANCOS", Amount: balances.Bank},
		SheetLine{Code: puc.InvestmentAccountCode, Label: puc.InvestmentAccountName, Amount: balances.Aportes},
	)
	pendingReceivables := decimal.Zero
	for _, r := range b.data.Receivables {
		if amt, ok := b.pendingAmountAsOf(r.IssueDate, r.Status, r.TransactionID, r.Amount, r.InternalPayments, asOf); ok {
			pendingReceivables = pendingReceivables.Add(amt)
		}
	}
	sheet.CurrentAssets = append(sheet.CurrentAssets,
		SheetLine{Code: puc.ReceivablesCode, Label: puc.ReceivablesName, Amount: pendingReceivables})

	// Fixed assets and real estate at their recorded value.
	txnByID := make(map[string]*models.Transaction, len(b.data.Transactions))
	for _, txn := range b.data.Transactions {
		txnByID[txn.ID] = txn
	}
	manualAssets := decimal.Zero
	revaluation := decimal.Zero
	for _, fa := range b.data.FixedAssets {
		if fa.PurchaseDate > asOf {
			continue
		}
		sheet.FixedAssets = append(sheet.FixedAssets,
			SheetLine{Label: fa.Name, Amount: fa.Value.Decimal})
		if fa.TransactionID == "" {
			manualAssets = manualAssets.Add(fa.Value.Decimal)
		} else if txn, ok := txnByID[fa.TransactionID]; ok {
			revaluation = revaluation.Add(fa.Value.Sub(txn.Amount.Decimal))
		} else {
			// Purchase transaction deleted since: treat as a manual asset.
			manualAssets = manualAssets.Add(fa.Value.Decimal)
		}
	}
	for _, re := range b.data.RealEstate {
		if re.AcquisitionDate > asOf {
			continue
		}
		sheet.FixedAssets = append(sheet.FixedAssets,
			SheetLine{Label: re.Name, Amount: re.Value.Decimal})
		manualAssets = manualAssets.Add(re.Value.Decimal)
	}

	for _, l := range sheet.CurrentAssets {
		sheet.TotalAssets = sheet.TotalAssets.Add(l.Amount)
	}
	for _, l := range sheet.FixedAssets {
		sheet.TotalAssets = sheet.TotalAssets.Add(l.Amount)
	}

	// Liabilities: payables still pending as of the date.
	pendingPayables := decimal.Zero
	for _, p := range b.data.Payables {
		if amt, ok := b.pendingAmountAsOf(p.IssueDate, p.Status, p.TransactionID, p.Amount, p.InternalPayments, asOf); ok {
			pendingPayables = pendingPayables.Add(amt)
		}
	}
	sheet.Liabilities = append(sheet.Liabilities,
		SheetLine{Code: puc.PayablesCode, Label: puc.PayablesName, Amount: pendingPayables})
	sheet.TotalLiabilities = pendingPayables

	// Equity: initial capital base, manually-added assets, revaluation of
	// purchased assets, retained earnings from strictly-prior years, and the
	// selected year's own result.
	capital := opening.Total().Add(manualAssets).Add(revaluation)
	retained := decimal.Zero
	for _, y := range b.yearsBefore(year) {
		retained = retained.Add(b.IncomeStatement(y).NetProfit)
	}
	current := b.IncomeStatement(year).NetProfit

	sheet.Equity = append(sheet.Equity,
		SheetLine{Code: "3115", Label: "CAPITAL SOCIAL", Amount: capital},
		SheetLine{Code: "3605", Label: "UTILIDADES ACUMULADAS", Amount: retained},
		SheetLine{Code: "3605", Label: "UTILIDAD DEL EJERCICIO", Amount: current},
	)
	sheet.TotalEquity = capital.Add(retained).Add(current)

	sheet.Difference = sheet.TotalAssets.Sub(sheet.TotalLiabilities.Add(sheet.TotalEquity))
	sheet.Balanced = sheet.Difference.Abs().LessThanOrEqual(imbalanceTolerance)
	return sheet
}

// CategoryBreakdown groups the year's expense transactions by category with
// percentage of total, excluding transfers and payable placeholders.
func (b *Builder) CategoryBreakdown(year string) []CategoryShare {
	totals := map[string]decimal.Decimal{}
	grand := decimal.Zero
	for _, txn := range b.data.Transactions {
		if txn.Year() != year || txn.Type != models.TransactionExpense {
			continue
		}
		if txn.IsInternalTransfer || txn.Category == models.CategoryPayables {
			continue
		}
		totals[txn.Category] = totals[txn.Category].Add(txn.Amount.Decimal)
		grand = grand.Add(txn.Amount.Decimal)
	}

	shares := make([]CategoryShare, 0, len(totals))
	hundred := decimal.NewFromInt(100)
	for category, amount := range totals {
		share := CategoryShare{Category: category, Amount: amount}
		if grand.IsPositive() {
			share.Percent = amount.Mul(hundred).DivRound(grand, 2)
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Amount.Equal(shares[j].Amount) {
			return shares[i].Amount.GreaterThan(shares[j].Amount)
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

// Summary condenses the year for the dashboard headline.
func (b *Builder) Summary(year string) Summary {
	st := b.IncomeStatement(year)
	return Summary{
		Year:          year,
		TotalIncome:   st.TotalIncome,
		TotalExpenses: st.TotalCosts.Add(st.TotalExpenses),
		NetProfit:     st.NetProfit,
		Balances:      b.engine.BalancesAsOf(OpeningBalances(b.data.Ref), b.data.Transactions, year+"-12-31"),
	}
}

// pendingAmountAsOf decides whether a receivable/payable still counted as
// pending at the cutoff date and returns its remaining amount. A settled
// item whose settlement transaction is dated after the cutoff was still
// pending on that date.
func (b *Builder) pendingAmountAsOf(issueDate, status, txnID string, amount models.Money, payments []models.InternalPayment, asOf string) (decimal.Decimal, bool) {
	if issueDate > asOf {
		return decimal.Zero, false
	}
	if status != models.StatusPending {
		settledLater := false
		for _, txn := range b.data.Transactions {
			if txn.ID == txnID && txn.Date > asOf {
				settledLater = true
				break
			}
		}
		if !settledLater {
			return decimal.Zero, false
		}
	}

	remaining := amount.Decimal
	for _, p := range payments {
		if p.Date <= asOf {
			remaining = remaining.Sub(p.Amount.Decimal)
		}
	}
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return remaining, true
}

// yearsBefore lists the transaction years strictly before the given year,
// ascending.
func (b *Builder) yearsBefore(year string) []string {
	seen := map[string]bool{}
	for _, txn := range b.data.Transactions {
		y := txn.Year()
		if y != "" && y < year {
			seen[y] = true
		}
	}
	years := make([]string, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

func addCategory(m map[string]*CategoryTotal, category, code string, amount decimal.Decimal) {
	if t, ok := m[category]; ok {
		t.Amount = t.Amount.Add(amount)
		return
	}
	m[category] = &CategoryTotal{Category: category, Code: code, Amount: amount}
}

func sortedTotals(m map[string]*CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(m))
	for _, t := range m {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
