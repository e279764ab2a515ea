package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfrancor/contalocal/internal/models"
	"github.com/mfrancor/contalocal/internal/store"
)

// TransactionsHandler handles transaction and transfer API endpoints.
type TransactionsHandler struct {
	store *store.Store
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(s *store.Store) *TransactionsHandler {
	return &TransactionsHandler{store: s}
}

// List handles GET /api/1/transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return
	}

	txns, err := h.store.ListTransactions(companyID)
	if err != nil {
		writeStoreError(w, err, "Failed to list transactions")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"transactions": txns})
}

// Get handles GET /api/1/transactions/{id}.
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	txn, err := h.store.GetTransaction(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Failed to get transaction")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"transaction": txn})
}

// Create handles POST /api/1/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	txn, err := h.store.CreateTransaction(&req)
	if err != nil {
		writeStoreError(w, err, "Failed to create transaction")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"transaction": txn})
}

// Update handles PUT /api/1/transactions/{id}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	txn, err := h.store.UpdateTransaction(chi.URLParam(r, "id"), &req)
	if err != nil {
		writeStoreError(w, err, "Failed to update transaction")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"transaction": txn})
}

// Delete handles DELETE /api/1/transactions/{id}. Deleting one leg of an
// internal transfer removes the sibling leg as well.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteTransaction(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "Failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateTransfer handles POST /api/1/transfers. It creates both legs of an
// internal transfer atomically and returns them.
func (h *TransactionsHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	expense, income, err := h.store.CreateTransfer(&req)
	if err != nil {
		writeStoreError(w, err, "Failed to create transfer")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"expense": expense,
		"income":  income,
	})
}
