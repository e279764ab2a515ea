package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfrancor/contalocal/internal/models"
)

// CreateFixedAsset adds a fixed asset manually (without a purchase
// transaction). Purchases flagged on expense creation spawn their asset
// through CreateTransaction instead.
func (s *Store) CreateFixedAsset(req *models.CreateFixedAssetRequest) (*models.FixedAsset, error) {
	if req.CompanyID == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: missing company_id or name", ErrInvalidInput)
	}

	now := time.Now()
	asset := &models.FixedAsset{
		ID:           uuid.NewString(),
		CompanyID:    req.CompanyID,
		Name:         req.Name,
		Value:        req.Value,
		PurchaseDate: req.PurchaseDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.put(BucketFixedAssets, asset.ID, asset); err != nil {
		return nil, fmt.Errorf("failed to save fixed asset: %w", err)
	}
	return asset, nil
}

// ListFixedAssets retrieves fixed assets, optionally per company.
func (s *Store) ListFixedAssets(companyID string) ([]models.FixedAsset, error) {
	results, err := s.list(BucketFixedAssets, companyFilter(companyID))
	if err != nil {
		return nil, err
	}
	return unmarshalAll[models.FixedAsset](results)
}

// UpdateFixedAssetValue revalues an asset; the delta shows up in equity as
// asset revaluation on the next balance sheet.
func (s *Store) UpdateFixedAssetValue(id string, value models.Money) (*models.FixedAsset, error) {
	var asset models.FixedAsset
	if err := s.get(BucketFixedAssets, id, &asset); err != nil {
		return nil, err
	}

	asset.Value = value
	asset.UpdatedAt = time.Now()
	if err := s.put(BucketFixedAssets, id, &asset); err != nil {
		return nil, fmt.Errorf("failed to update fixed asset: %w", err)
	}
	return &asset, nil
}

// DeleteFixedAsset removes an asset.
func (s *Store) DeleteFixedAsset(id string) error {
	return s.delete(BucketFixedAssets, id)
}

// CreateRealEstate adds a property.
func (s *Store) CreateRealEstate(req *models.CreateRealEstateRequest) (*models.RealEstate, error) {
	if req.CompanyID == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: missing company_id or name", ErrInvalidInput)
	}

	now := time.Now()
	re := &models.RealEstate{
		ID:              uuid.NewString(),
		CompanyID:       req.CompanyID,
		Name:            req.Name,
		Value:           req.Value,
		AcquisitionDate: req.AcquisitionDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.put(BucketRealEstate, re.ID, re); err != nil {
		return nil, fmt.Errorf("failed to save real estate: %w", err)
	}
	return re, nil
}

// ListRealEstate retrieves properties, optionally per company.
func (s *Store) ListRealEstate(companyID string) ([]models.RealEstate, error) {
	results, err := s.list(BucketRealEstate, companyFilter(companyID))
	if err != nil {
		return nil, err
	}
	return unmarshalAll[models.RealEstate](results)
}

// DeleteRealEstate removes a property.
func (s *Store) DeleteRealEstate(id string) error {
	return s.delete(BucketRealEstate, id)
}

// SetInitialBalance creates or replaces the company's opening cash balance
// entry. A company keeps a single entry; setting it again overwrites.
func (s *Store) SetInitialBalance(req *models.CreateInitialBalanceRequest) (*models.InitialBalance, error) {
	if req.CompanyID == "" {
		return nil, fmt.Errorf("%w: missing company_id", ErrInvalidInput)
	}

	existing, err := s.ListInitialBalances(req.CompanyID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ib := &models.InitialBalance{
		ID:             uuid.NewString(),
		CompanyID:      req.CompanyID,
		Balance:        req.Balance,
		AccountingCode: req.AccountingCode,
		AccountingName: req.AccountingName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if len(existing) > 0 {
		ib.ID = existing[0].ID
		ib.CreatedAt = existing[0].CreatedAt
	}

	if err := s.put(BucketInitialBalances, ib.ID, ib); err != nil {
		return nil, fmt.Errorf("failed to save initial balance: %w", err)
	}
	return ib, nil
}

// ListInitialBalances retrieves opening balances, optionally per company.
func (s *Store) ListInitialBalances(companyID string) ([]models.InitialBalance, error) {
	results, err := s.list(BucketInitialBalances, companyFilter(companyID))
	if err != nil {
		return nil, err
	}
	return unmarshalAll[models.InitialBalance](results)
}
