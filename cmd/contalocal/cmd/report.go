package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mfrancor/contalocal/internal/ledger"
	"github.com/mfrancor/contalocal/internal/store"
)

var (
	reportCompany      string
	reportYear         string
	reportConsolidated bool
)

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a fiscal-year summary for a company",
	Long: `Print a fiscal-year summary for a company: income, costs and
expenses, net result, the running bucket balances and the balance-sheet
check.

Example:
  contalocal report --company c1 --year 2024
  contalocal report --company c1 --year 2024 --consolidated`,
	Run: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportCompany, "company", "", "company ID (required)")
	reportCmd.Flags().StringVar(&reportYear, "year", "", "fiscal year YYYY (required)")
	reportCmd.Flags().BoolVar(&reportConsolidated, "consolidated", false, "include sub-companies")

	_ = reportCmd.MarkFlagRequired("company")
	_ = reportCmd.MarkFlagRequired("year")
}

func runReport(cmd *cobra.Command, args []string) {
	_, paths, err := loadConfig()
	exitOnError(err, "failed to load configuration")

	st, err := store.New(paths.DBPath())
	exitOnError(err, "failed to open store")
	defer st.Close()

	ids := []string{reportCompany}
	if reportConsolidated {
		ids, err = st.CompanyGroup(reportCompany)
		exitOnError(err, "failed to resolve company group")
	}

	data, err := st.LedgerData(ids...)
	exitOnError(err, "failed to load ledger data")

	builder := ledger.NewBuilder(data)
	report := builder.BuildPeriodReport(reportYear)

	fmt.Printf("\n=== Resultados %s ===\n", reportYear)
	fmt.Printf("Ingresos:   %s\n", report.IncomeStatement.TotalIncome)
	fmt.Printf("Costos:     %s\n", report.IncomeStatement.TotalCosts)
	fmt.Printf("Gastos:     %s\n", report.IncomeStatement.TotalExpenses)
	fmt.Printf("Utilidad:   %s\n", report.IncomeStatement.NetProfit)

	fmt.Printf("\n=== Saldos al cierre ===\n")
	fmt.Printf("Caja:       %s\n", report.Summary.Balances.Cash)
	fmt.Printf("Bancos:     %s\n", report.Summary.Balances.Bank)
	fmt.Printf("Aportes:    %s\n", report.Summary.Balances.Aportes)

	fmt.Printf("\n=== Balance general ===\n")
	fmt.Printf("Activos:    %s\n", report.BalanceSheet.TotalAssets)
	fmt.Printf("Pasivos:    %s\n", report.BalanceSheet.TotalLiabilities)
	fmt.Printf("Patrimonio: %s\n", report.BalanceSheet.TotalEquity)
	if report.BalanceSheet.Balanced {
		fmt.Println("Cuadre:     OK")
	} else {
		fmt.Printf("Cuadre:     DESCUADRE %s\n", report.BalanceSheet.Difference)
	}

	if len(report.Categories) > 0 {
		fmt.Printf("\n=== Gastos por categoria ===\n")
		for _, share := range report.Categories {
			fmt.Printf("%-30s %10s  %s%%\n", share.Category, share.Amount, share.Percent)
		}
	}
	fmt.Println()

	slog.Info("report printed", "company", reportCompany, "year", reportYear,
		"consolidated", reportConsolidated)
}
