package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfrancor/contalocal/internal/models"
)

// CreateCompany registers a company or sub-company.
func (s *Store) CreateCompany(req *models.CreateCompanyRequest) (*models.Company, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: missing company name", ErrInvalidInput)
	}
	if req.ParentID != "" {
		if _, err := s.GetCompany(req.ParentID); err != nil {
			return nil, fmt.Errorf("%w: parent company %s not found", ErrInvalidInput, req.ParentID)
		}
	}

	now := time.Now()
	company := &models.Company{
		ID:        uuid.NewString(),
		Name:      req.Name,
		ParentID:  req.ParentID,
		TaxID:     req.TaxID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.put(BucketCompanies, company.ID, company); err != nil {
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	return company, nil
}

// GetCompany retrieves a company by id.
func (s *Store) GetCompany(id string) (*models.Company, error) {
	var company models.Company
	if err := s.get(BucketCompanies, id, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// ListCompanies retrieves all companies.
func (s *Store) ListCompanies() ([]models.Company, error) {
	results, err := s.list(BucketCompanies, nil)
	if err != nil {
		return nil, err
	}
	return unmarshalAll[models.Company](results)
}

// CompanyGroup returns the ids of a company plus all its sub-companies, for
// the consolidated view. Callers filter collections by the returned set
// before feeding the ledger engine.
func (s *Store) CompanyGroup(id string) ([]string, error) {
	companies, err := s.ListCompanies()
	if err != nil {
		return nil, err
	}

	group := []string{id}
	for _, c := range companies {
		if c.ParentID == id {
			group = append(group, c.ID)
		}
	}
	return group, nil
}
