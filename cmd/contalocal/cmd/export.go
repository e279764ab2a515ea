package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mfrancor/contalocal/internal/export"
	"github.com/mfrancor/contalocal/internal/ledger"
	"github.com/mfrancor/contalocal/internal/store"
)

var (
	exportCompany string
	exportYear    string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the journal book files for a year",
	Long: `Write the plain-text journal book ("libro diario") for one fiscal
year: one file per month with the reconstructed debit/credit lines.

The book is a projection of the database; re-running the export rebuilds
the files from scratch.

Example:
  contalocal export --company c1 --year 2024`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportCompany, "company", "", "company ID (required)")
	exportCmd.Flags().StringVar(&exportYear, "year", "", "fiscal year YYYY (required)")

	_ = exportCmd.MarkFlagRequired("company")
	_ = exportCmd.MarkFlagRequired("year")
}

func runExport(cmd *cobra.Command, args []string) {
	_, paths, err := loadConfig()
	exitOnError(err, "failed to load configuration")

	st, err := store.New(paths.DBPath())
	exitOnError(err, "failed to open store")
	defer st.Close()

	data, err := st.LedgerData(exportCompany)
	exitOnError(err, "failed to load ledger data")

	entries := ledger.NewBuilder(data).Journal()
	writer := export.NewBookWriter(paths)

	written, err := writer.WriteYear(exportYear, entries)
	exitOnError(err, "failed to write journal book")

	if len(written) == 0 {
		fmt.Printf("No entries for %s; nothing written\n", exportYear)
		return
	}
	for _, path := range written {
		fmt.Printf("Wrote %s\n", path)
	}

	slog.Info("export completed", "company", exportCompany, "year", exportYear,
		"files", len(written))
}
