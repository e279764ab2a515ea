package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfrancor/contalocal/internal/models"
	"github.com/mfrancor/contalocal/internal/store"
)

// BankAccountsHandler handles bank account API endpoints.
type BankAccountsHandler struct {
	store *store.Store
}

// NewBankAccountsHandler creates a new BankAccountsHandler.
func NewBankAccountsHandler(s *store.Store) *BankAccountsHandler {
	return &BankAccountsHandler{store: s}
}

// List handles GET /api/1/bank_accounts.
func (h *BankAccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return
	}

	accounts, err := h.store.ListBankAccounts(companyID)
	if err != nil {
		writeStoreError(w, err, "Failed to list bank accounts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bank_accounts": accounts})
}

// Get handles GET /api/1/bank_accounts/{id}.
func (h *BankAccountsHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.store.GetBankAccount(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Failed to get bank account")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bank_account": account})
}

// Create handles POST /api/1/bank_accounts.
func (h *BankAccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if req.CompanyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return
	}
	if req.BankName == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing bank_name")
		return
	}

	account, err := h.store.CreateBankAccount(&req)
	if err != nil {
		writeStoreError(w, err, "Failed to create bank account")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"bank_account": account})
}

// Update handles PUT /api/1/bank_accounts/{id}.
func (h *BankAccountsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBankAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	account, err := h.store.UpdateBankAccount(chi.URLParam(r, "id"), &req)
	if err != nil {
		writeStoreError(w, err, "Failed to update bank account")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bank_account": account})
}

// Delete handles DELETE /api/1/bank_accounts/{id}. Historical transactions
// pointing at the deleted account keep resolving through the unknown-bank
// fallback.
func (h *BankAccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteBankAccount(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "Failed to delete bank account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
