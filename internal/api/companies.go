package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfrancor/contalocal/internal/models"
	"github.com/mfrancor/contalocal/internal/puc"
	"github.com/mfrancor/contalocal/internal/store"
)

// CompaniesHandler handles company-related API endpoints.
type CompaniesHandler struct {
	store   *store.Store
	catalog *puc.Catalog
}

// NewCompaniesHandler creates a new CompaniesHandler.
func NewCompaniesHandler(s *store.Store, catalog *puc.Catalog) *CompaniesHandler {
	return &CompaniesHandler{store: s, catalog: catalog}
}

// List handles GET /api/1/companies.
func (h *CompaniesHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.ListCompanies()
	if err != nil {
		writeStoreError(w, err, "Failed to list companies")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
}

// Get handles GET /api/1/companies/{id}.
func (h *CompaniesHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.store.GetCompany(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err, "Failed to get company")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"company": company})
}

// Create handles POST /api/1/companies. A newly created company is seeded
// with the default chart of accounts so category resolution works from the
// first transaction.
func (h *CompaniesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}
	if req.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing name")
		return
	}

	company, err := h.store.CreateCompany(&req)
	if err != nil {
		writeStoreError(w, err, "Failed to create company")
		return
	}
	if h.catalog != nil {
		if err := h.store.SeedAccounts(company.ID, h.catalog); err != nil {
			writeStoreError(w, err, "Failed to seed chart of accounts")
			return
		}
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"company": company})
}
