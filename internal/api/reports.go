package api

import (
	"net/http"

	"github.com/mfrancor/contalocal/internal/ledger"
	"github.com/mfrancor/contalocal/internal/store"
)

// ReportsHandler serves the read-only report endpoints backed by the
// balance reconstruction engine. Every request rebuilds from the stored
// transactions; nothing is cached.
type ReportsHandler struct {
	store *store.Store
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(s *store.Store) *ReportsHandler {
	return &ReportsHandler{store: s}
}

// builder loads the company data set addressed by the request and wraps it
// in a report builder. With consolidated=true the company's sub-companies
// are folded into the same view.
func (h *ReportsHandler) builder(w http.ResponseWriter, r *http.Request) (*ledger.Builder, bool) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return nil, false
	}

	ids := []string{companyID}
	if r.URL.Query().Get("consolidated") == "true" {
		group, err := h.store.CompanyGroup(companyID)
		if err != nil {
			writeStoreError(w, err, "Failed to resolve company group")
			return nil, false
		}
		ids = group
	}

	data, err := h.store.LedgerData(ids...)
	if err != nil {
		writeStoreError(w, err, "Failed to load ledger data")
		return nil, false
	}
	return ledger.NewBuilder(data), true
}

// year extracts the required fiscal year parameter.
func year(w http.ResponseWriter, r *http.Request) (string, bool) {
	y := r.URL.Query().Get("year")
	if y == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing year")
		return "", false
	}
	return y, true
}

// Ledger handles GET /api/1/reports/ledger: the merged transaction rows
// with running cash, bank and investment balances.
func (h *ReportsHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	b, ok := h.builder(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rows": b.LedgerRows()})
}

// Journal handles GET /api/1/reports/journal: the double-entry projection
// of the full history.
func (h *ReportsHandler) Journal(w http.ResponseWriter, r *http.Request) {
	b, ok := h.builder(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": b.Journal()})
}

// IncomeStatement handles GET /api/1/reports/income_statement.
func (h *ReportsHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	b, ok := h.builder(w, r)
	if !ok {
		return
	}
	y, ok := year(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"income_statement": b.IncomeStatement(y)})
}

// BalanceSheet handles GET /api/1/reports/balance_sheet.
func (h *ReportsHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	b, ok := h.builder(w, r)
	if !ok {
		return
	}
	y, ok := year(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"balance_sheet": b.BalanceSheet(y)})
}

// Categories handles GET /api/1/reports/categories: the expense breakdown
// with percentage shares.
func (h *ReportsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	b, ok := h.builder(w, r)
	if !ok {
		return
	}
	y, ok := year(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": b.CategoryBreakdown(y)})
}

// Summary handles GET /api/1/reports/summary: the dashboard headline for
// one fiscal year.
func (h *ReportsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	b, ok := h.builder(w, r)
	if !ok {
		return
	}
	y, ok := year(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"summary": b.Summary(y)})
}

// Full handles GET /api/1/reports/full: every statement for one year in a
// single payload, the shape the yearly closing export consumes.
func (h *ReportsHandler) Full(w http.ResponseWriter, r *http.Request) {
	b, ok := h.builder(w, r)
	if !ok {
		return
	}
	y, ok := year(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"report": b.BuildPeriodReport(y)})
}
