package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfrancor/contalocal/internal/models"
	"github.com/mfrancor/contalocal/internal/puc"
)

// CreateAccount adds a chart-of-accounts entry. PUC code shape and
// uniqueness are enforced here at the boundary; malformed codes never reach
// the ledger engine.
func (s *Store) CreateAccount(req *models.CreateAccountRequest) (*models.Account, error) {
	if req.CompanyID == "" {
		return nil, fmt.Errorf("%w: missing company_id", ErrInvalidInput)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: missing account name", ErrInvalidInput)
	}
	if err := puc.ValidateCode(req.Number); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.ListAccounts(req.CompanyID)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.Number == req.Number {
			return nil, fmt.Errorf("%w: account code %s already exists", ErrDuplicate, req.Number)
		}
	}

	now := time.Now()
	account := &models.Account{
		ID:        uuid.NewString(),
		CompanyID: req.CompanyID,
		Number:    req.Number,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.put(BucketAccounts, account.ID, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	return account, nil
}

// ListAccounts retrieves the chart of accounts, optionally per company.
func (s *Store) ListAccounts(companyID string) ([]models.Account, error) {
	results, err := s.list(BucketAccounts, companyFilter(companyID))
	if err != nil {
		return nil, err
	}
	return unmarshalAll[models.Account](results)
}

// DeleteAccount removes a chart entry.
func (s *Store) DeleteAccount(id string) error {
	return s.delete(BucketAccounts, id)
}

// SeedAccounts loads the default PUC catalog into a company's chart,
// skipping codes the company already has.
func (s *Store) SeedAccounts(companyID string, catalog *puc.Catalog) error {
	existing, err := s.ListAccounts(companyID)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, a := range existing {
		have[a.Number] = true
	}

	now := time.Now()
	for _, seed := range catalog.All() {
		if have[seed.Number] {
			continue
		}
		account := &models.Account{
			ID:        uuid.NewString(),
			CompanyID: companyID,
			Number:    seed.Number,
			Name:      seed.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.put(BucketAccounts, account.ID, account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", seed.Number, err)
		}
	}
	return nil
}
