package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfrancor/contalocal/internal/models"
	"github.com/mfrancor/contalocal/internal/store"
)

// AccountsHandler handles chart-of-accounts API endpoints.
type AccountsHandler struct {
	store *store.Store
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(s *store.Store) *AccountsHandler {
	return &AccountsHandler{store: s}
}

// List handles GET /api/1/accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return
	}

	accounts, err := h.store.ListAccounts(companyID)
	if err != nil {
		writeStoreError(w, err, "Failed to list accounts")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

// Create handles POST /api/1/accounts.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if req.CompanyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return
	}

	account, err := h.store.CreateAccount(&req)
	if err != nil {
		writeStoreError(w, err, "Failed to create account")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"account": account})
}

// Delete handles DELETE /api/1/accounts/{id}.
func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteAccount(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "Failed to delete account")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
