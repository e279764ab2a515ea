// Package export writes the plain-text journal book ("libro diario"):
// one file per month under the book directory, each holding the
// double-entry lines reconstructed by the ledger engine.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mfrancor/contalocal/internal/ledger"
	"github.com/mfrancor/contalocal/internal/pathutil"
)

// BookWriter writes journal book files through a path resolver.
type BookWriter struct {
	paths *pathutil.PathResolver
}

// NewBookWriter creates a new BookWriter.
func NewBookWriter(paths *pathutil.PathResolver) *BookWriter {
	return &BookWriter{paths: paths}
}

// WriteYear rebuilds every monthly book file for one fiscal year from the
// given journal entries. Existing files for the year are overwritten; the
// book is a projection of the store, not a second source of truth.
func (w *BookWriter) WriteYear(year string, entries []ledger.JournalEntry) ([]string, error) {
	byMonth := make(map[string][]ledger.JournalEntry)
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Date, year+"-") || len(entry.Date) < 7 {
			continue
		}
		month := entry.Date[:7]
		byMonth[month] = append(byMonth[month], entry)
	}

	months := make([]string, 0, len(byMonth))
	for month := range byMonth {
		months = append(months, month)
	}
	sort.Strings(months)

	var written []string
	for _, month := range months {
		path, err := w.writeMonth(month, byMonth[month])
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// MonthsInYear lists the months that already have a book file, in order.
func (w *BookWriter) MonthsInYear(year string) ([]string, error) {
	yearDir := w.paths.YearDir(year)
	if !w.paths.FileExists(yearDir) {
		return []string{}, nil
	}

	dirEntries, err := os.ReadDir(yearDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read year directory: %w", err)
	}

	var months []string
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) == ".txt" {
			months = append(months, name[:len(name)-len(".txt")])
		}
	}
	sort.Strings(months)
	return months, nil
}

func (w *BookWriter) writeMonth(yearMonth string, entries []ledger.JournalEntry) (string, error) {
	path, err := w.paths.MonthFilePath(yearMonth)
	if err != nil {
		return "", fmt.Errorf("failed to get month file path: %w", err)
	}
	if err := w.paths.EnsureParentDir(path); err != nil {
		return "", fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	var b strings.Builder
	b.WriteString(fileHeader(yearMonth))
	for _, entry := range entries {
		b.WriteString(formatEntry(entry))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write book file: %w", err)
	}
	return path, nil
}

// fileHeader generates a header comment for a monthly book file.
func fileHeader(yearMonth string) string {
	now := time.Now().Format(time.RFC3339)
	return fmt.Sprintf("; Libro diario %s\n; Generado %s\n\n", yearMonth, now)
}

// formatEntry renders one journal entry as a voucher block:
//
//	2024-01-15 #3 Venta mostrador
//	  DEBE  11050501 CAJA PRINCIPAL            250
//	  HABER 4135     VENTAS                    250
func formatEntry(entry ledger.JournalEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d %s\n", entry.Date, entry.VoucherNumber, entry.Description)
	fmt.Fprintf(&b, "  DEBE  %-10s %-30s %s\n", entry.Debit.Code, entry.Debit.Name, entry.Debit.Amount)
	fmt.Fprintf(&b, "  HABER %-10s %-30s %s\n", entry.Credit.Code, entry.Credit.Name, entry.Credit.Amount)
	b.WriteString("\n")
	return b.String()
}
