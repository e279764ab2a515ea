package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/mfrancor/contalocal/internal/models"
)

// CreateTransaction creates a regular income or expense transaction. An
// expense flagged as a fixed-asset purchase also spawns the FixedAsset
// entity back-referencing it.
func (s *Store) CreateTransaction(req *models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := validateTransactionRequest(req); err != nil {
		return nil, err
	}

	dest := req.Destination
	if dest.IsZero() && req.DestinationTag != "" {
		dest = models.ParseDestination(req.DestinationTag)
	}

	vtype := VoucherIncome
	if req.Type == models.TransactionExpense {
		vtype = VoucherExpense
	}
	voucher, err := s.NextVoucher(req.CompanyID, vtype)
	if err != nil {
		return nil, fmt.Errorf("failed to assign voucher number: %w", err)
	}

	seq, err := s.nextSeq(BucketTransactions)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	txn := &models.Transaction{
		ID:            uuid.NewString(),
		CompanyID:     req.CompanyID,
		Type:          req.Type,
		Date:          req.Date,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Destination:   dest,
		IsFixedAsset:  req.IsFixedAsset && req.Type == models.TransactionExpense,
		VoucherNumber: voucher,
		Seq:           seq,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.put(BucketTransactions, txn.ID, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	if txn.IsFixedAsset {
		asset := &models.FixedAsset{
			ID:            uuid.NewString(),
			CompanyID:     req.CompanyID,
			Name:          req.Description,
			Value:         req.Amount,
			PurchaseDate:  req.Date,
			TransactionID: txn.ID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.put(BucketFixedAssets, asset.ID, asset); err != nil {
			return nil, fmt.Errorf("failed to save fixed asset: %w", err)
		}
	}

	return txn, nil
}

// CreateTransfer creates both legs of an internal transfer in one database
// transaction: an expense leg out of From and an income leg into To, linked
// by id correlation and sharing one transfer voucher number.
func (s *Store) CreateTransfer(req *models.CreateTransferRequest) (*models.Transaction, *models.Transaction, error) {
	if req.CompanyID == "" || req.Date == "" {
		return nil, nil, fmt.Errorf("%w: missing company_id or date", ErrInvalidInput)
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, nil, fmt.Errorf("%w: transfer amount must be positive", ErrInvalidInput)
	}

	base := strconv.FormatInt(time.Now().UnixMilli(), 10)
	description := "Transferencia interna: " + req.Description
	now := time.Now()

	var expense, income *models.Transaction
	err := s.db.Update(func(tx *bolt.Tx) error {
		voucher, err := nextVoucherIn(tx, req.CompanyID, VoucherTransfer)
		if err != nil {
			return fmt.Errorf("failed to assign voucher number: %w", err)
		}

		b := tx.Bucket([]byte(BucketTransactions))
		expSeq, err := b.NextSequence()
		if err != nil {
			return err
		}
		incSeq, err := b.NextSequence()
		if err != nil {
			return err
		}

		expense = &models.Transaction{
			ID:                 base + models.TransferExpenseSuffix,
			CompanyID:          req.CompanyID,
			Type:               models.TransactionExpense,
			Date:               req.Date,
			Amount:             req.Amount,
			Description:        description,
			Category:           models.CategoryInternalTransfer,
			Destination:        req.From,
			IsInternalTransfer: true,
			VoucherNumber:      voucher,
			Seq:                expSeq,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		income = &models.Transaction{
			ID:                 base + models.TransferIncomeSuffix,
			CompanyID:          req.CompanyID,
			Type:               models.TransactionIncome,
			Date:               req.Date,
			Amount:             req.Amount,
			Description:        description,
			Category:           models.CategoryInternalTransfer,
			Destination:        req.To,
			IsInternalTransfer: true,
			VoucherNumber:      voucher,
			Seq:                incSeq,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		if err := putIn(tx, BucketTransactions, expense.ID, expense); err != nil {
			return err
		}
		return putIn(tx, BucketTransactions, income.ID, income)
	})
	if err != nil {
		return nil, nil, err
	}

	return expense, income, nil
}

// GetTransaction retrieves a transaction by id.
func (s *Store) GetTransaction(id string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.get(BucketTransactions, id, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListTransactions retrieves all transactions, optionally filtered by
// company id.
func (s *Store) ListTransactions(companyID string) ([]*models.Transaction, error) {
	results, err := s.list(BucketTransactions, companyFilter(companyID))
	if err != nil {
		return nil, err
	}

	txns, err := unmarshalAll[models.Transaction](results)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Transaction, len(txns))
	for i := range txns {
		out[i] = &txns[i]
	}
	return out, nil
}

// UpdateTransaction edits a transaction. The voucher number, sequence, and
// transfer linkage are immutable.
func (s *Store) UpdateTransaction(id string, req *models.UpdateTransactionRequest) (*models.Transaction, error) {
	txn, err := s.GetTransaction(id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.Destination != nil {
		txn.Destination = *req.Destination
	}
	txn.UpdatedAt = time.Now()

	if err := s.put(BucketTransactions, id, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return txn, nil
}

// DeleteTransaction removes a transaction. Transfer legs are always removed
// as a pair; deleting either leg deletes its sibling too.
func (s *Store) DeleteTransaction(id string) error {
	txn, err := s.GetTransaction(id)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketTransactions))
		if err := b.Delete([]byte(id)); err != nil {
			return err
		}
		if txn.IsTransferLeg() {
			if sibling := txn.SiblingID(); sibling != "" {
				return b.Delete([]byte(sibling))
			}
		}
		return nil
	})
}

func validateTransactionRequest(req *models.CreateTransactionRequest) error {
	if req.CompanyID == "" {
		return fmt.Errorf("%w: missing company_id", ErrInvalidInput)
	}
	if req.Type != models.TransactionIncome && req.Type != models.TransactionExpense {
		return fmt.Errorf("%w: type must be income or expense", ErrInvalidInput)
	}
	if req.Date == "" {
		return fmt.Errorf("%w: missing date", ErrInvalidInput)
	}
	if req.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must be non-negative", ErrInvalidInput)
	}
	return nil
}
