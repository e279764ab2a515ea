package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfrancor/contalocal/internal/models"
	"github.com/mfrancor/contalocal/internal/store"
)

// ReceivablesHandler handles receivable API endpoints.
type ReceivablesHandler struct {
	store *store.Store
}

// NewReceivablesHandler creates a new ReceivablesHandler.
func NewReceivablesHandler(s *store.Store) *ReceivablesHandler {
	return &ReceivablesHandler{store: s}
}

// List handles GET /api/1/receivables.
func (h *ReceivablesHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return
	}

	items, err := h.store.ListReceivables(companyID)
	if err != nil {
		writeStoreError(w, err, "Failed to list receivables")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"receivables": items})
}

// Create handles POST /api/1/receivables. Creation spawns the linked
// accrual transaction so the revenue lands in the issue period.
func (h *ReceivablesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReceivableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	item, err := h.store.CreateReceivable(&req)
	if err != nil {
		writeStoreError(w, err, "Failed to create receivable")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"receivable": item})
}

// Collect handles POST /api/1/receivables/{id}/collect.
func (h *ReceivablesHandler) Collect(w http.ResponseWriter, r *http.Request) {
	var req models.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	item, err := h.store.CollectReceivable(chi.URLParam(r, "id"), &req)
	if err != nil {
		writeStoreError(w, err, "Failed to collect receivable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"receivable": item})
}

// AddPayment handles POST /api/1/receivables/{id}/payments.
func (h *ReceivablesHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req models.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	item, err := h.store.AddReceivablePayment(chi.URLParam(r, "id"), &req)
	if err != nil {
		writeStoreError(w, err, "Failed to record payment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"receivable": item})
}

// PayablesHandler handles payable API endpoints.
type PayablesHandler struct {
	store *store.Store
}

// NewPayablesHandler creates a new PayablesHandler.
func NewPayablesHandler(s *store.Store) *PayablesHandler {
	return &PayablesHandler{store: s}
}

// List handles GET /api/1/payables.
func (h *PayablesHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return
	}

	items, err := h.store.ListPayables(companyID)
	if err != nil {
		writeStoreError(w, err, "Failed to list payables")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"payables": items})
}

// Create handles POST /api/1/payables.
func (h *PayablesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePayableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	item, err := h.store.CreatePayable(&req)
	if err != nil {
		writeStoreError(w, err, "Failed to create payable")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"payable": item})
}

// Pay handles POST /api/1/payables/{id}/pay.
func (h *PayablesHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req models.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	item, err := h.store.PayPayable(chi.URLParam(r, "id"), &req)
	if err != nil {
		writeStoreError(w, err, "Failed to pay payable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"payable": item})
}

// AddPayment handles POST /api/1/payables/{id}/payments.
func (h *PayablesHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req models.AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	item, err := h.store.AddPayablePayment(chi.URLParam(r, "id"), &req)
	if err != nil {
		writeStoreError(w, err, "Failed to record payment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"payable": item})
}
