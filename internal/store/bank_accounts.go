package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfrancor/contalocal/internal/models"
)

// CreateBankAccount registers a bank account. Balances are never stored on
// the record beyond the initial seeds; current balances are always derived
// from the transaction history.
func (s *Store) CreateBankAccount(req *models.CreateBankAccountRequest) (*models.BankAccount, error) {
	if req.CompanyID == "" || req.BankName == "" {
		return nil, fmt.Errorf("%w: missing company_id or bank_name", ErrInvalidInput)
	}

	now := time.Now()
	account := &models.BankAccount{
		ID:                       uuid.NewString(),
		CompanyID:                req.CompanyID,
		BankName:                 req.BankName,
		AccountNumber:            req.AccountNumber,
		InitialBalance:           req.InitialBalance,
		InitialInvestmentBalance: req.InitialInvestmentBalance,
		AccountingCode:           req.AccountingCode,
		AccountingConcept:        req.AccountingConcept,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.put(BucketBankAccounts, account.ID, account); err != nil {
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}

	return account, nil
}

// GetBankAccount retrieves a bank account by id.
func (s *Store) GetBankAccount(id string) (*models.BankAccount, error) {
	var account models.BankAccount
	if err := s.get(BucketBankAccounts, id, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// ListBankAccounts retrieves bank accounts, optionally per company.
func (s *Store) ListBankAccounts(companyID string) ([]models.BankAccount, error) {
	results, err := s.list(BucketBankAccounts, companyFilter(companyID))
	if err != nil {
		return nil, err
	}
	return unmarshalAll[models.BankAccount](results)
}

// UpdateBankAccount edits a bank account.
func (s *Store) UpdateBankAccount(id string, req *models.UpdateBankAccountRequest) (*models.BankAccount, error) {
	account, err := s.GetBankAccount(id)
	if err != nil {
		return nil, err
	}

	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.InitialBalance != nil {
		account.InitialBalance = *req.InitialBalance
	}
	if req.InitialInvestmentBalance != nil {
		account.InitialInvestmentBalance = *req.InitialInvestmentBalance
	}
	if req.AccountingCode != nil {
		account.AccountingCode = *req.AccountingCode
	}
	if req.AccountingConcept != nil {
		account.AccountingConcept = *req.AccountingConcept
	}
	account.UpdatedAt = time.Now()

	if err := s.put(BucketBankAccounts, id, account); err != nil {
		return nil, fmt.Errorf("failed to update bank account: %w", err)
	}

	return account, nil
}

// DeleteBankAccount removes a bank account. Historical transactions keep
// referencing the deleted id; the resolver's fallback rule covers them.
func (s *Store) DeleteBankAccount(id string) error {
	return s.delete(BucketBankAccounts, id)
}
