package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mfrancor/contalocal/internal/models"
	"github.com/mfrancor/contalocal/internal/store"
)

// AssetsHandler handles fixed asset, real estate and initial balance
// API endpoints.
type AssetsHandler struct {
	store *store.Store
}

// NewAssetsHandler creates a new AssetsHandler.
func NewAssetsHandler(s *store.Store) *AssetsHandler {
	return &AssetsHandler{store: s}
}

// ListFixedAssets handles GET /api/1/fixed_assets.
func (h *AssetsHandler) ListFixedAssets(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return
	}

	assets, err := h.store.ListFixedAssets(companyID)
	if err != nil {
		writeStoreError(w, err, "Failed to list fixed assets")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"fixed_assets": assets})
}

// CreateFixedAsset handles POST /api/1/fixed_assets for assets registered
// directly, without a purchase transaction.
func (h *AssetsHandler) CreateFixedAsset(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFixedAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	asset, err := h.store.CreateFixedAsset(&req)
	if err != nil {
		writeStoreError(w, err, "Failed to create fixed asset")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"fixed_asset": asset})
}

// revalueRequest is the payload for a fixed asset revaluation.
type revalueRequest struct {
	Value models.Money `json:"value"`
}

// UpdateFixedAssetValue handles PUT /api/1/fixed_assets/{id}/value.
func (h *AssetsHandler) UpdateFixedAssetValue(w http.ResponseWriter, r *http.Request) {
	var req revalueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	asset, err := h.store.UpdateFixedAssetValue(chi.URLParam(r, "id"), req.Value)
	if err != nil {
		writeStoreError(w, err, "Failed to update fixed asset")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"fixed_asset": asset})
}

// DeleteFixedAsset handles DELETE /api/1/fixed_assets/{id}.
func (h *AssetsHandler) DeleteFixedAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteFixedAsset(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "Failed to delete fixed asset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRealEstate handles GET /api/1/real_estate.
func (h *AssetsHandler) ListRealEstate(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return
	}

	properties, err := h.store.ListRealEstate(companyID)
	if err != nil {
		writeStoreError(w, err, "Failed to list real estate")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"real_estate": properties})
}

// CreateRealEstate handles POST /api/1/real_estate.
func (h *AssetsHandler) CreateRealEstate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRealEstateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	property, err := h.store.CreateRealEstate(&req)
	if err != nil {
		writeStoreError(w, err, "Failed to create real estate")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"real_estate": property})
}

// DeleteRealEstate handles DELETE /api/1/real_estate/{id}.
func (h *AssetsHandler) DeleteRealEstate(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteRealEstate(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err, "Failed to delete real estate")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListInitialBalances handles GET /api/1/initial_balances.
func (h *AssetsHandler) ListInitialBalances(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeJSONError(w, http.StatusBadRequest, "invalid_parameter", "Missing company_id")
		return
	}

	balances, err := h.store.ListInitialBalances(companyID)
	if err != nil {
		writeStoreError(w, err, "Failed to list initial balances")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"initial_balances": balances})
}

// SetInitialBalance handles PUT /api/1/initial_balances. There is one
// opening cash balance per company; a second call overwrites the first.
func (h *AssetsHandler) SetInitialBalance(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInitialBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse request body")
		return
	}

	balance, err := h.store.SetInitialBalance(&req)
	if err != nil {
		writeStoreError(w, err, "Failed to set initial balance")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"initial_balance": balance})
}
