package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mfrancor/contalocal/internal/models"
)

// CreateReceivable registers money owed to the company and spawns its
// synthetic accrual transaction: an income on the pending sentinel so the
// revenue is recognized without moving any cash-like bucket.
func (s *Store) CreateReceivable(req *models.CreateReceivableRequest) (*models.Receivable, error) {
	if req.CompanyID == "" || req.Debtor == "" {
		return nil, fmt.Errorf("%w: missing company_id or debtor", ErrInvalidInput)
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	txn, err := s.createAccrualTransaction(req.CompanyID, models.TransactionIncome,
		models.DestinationPendingReceivable, req.IssueDate, req.Amount, req.LinkedAccount,
		"Cuenta por cobrar: "+req.Debtor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	r := &models.Receivable{
		ID:            uuid.NewString(),
		CompanyID:     req.CompanyID,
		Debtor:        req.Debtor,
		Amount:        req.Amount,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Status:        models.StatusPending,
		LinkedAccount: req.LinkedAccount,
		TransactionID: txn.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.put(BucketReceivables, r.ID, r); err != nil {
		return nil, fmt.Errorf("failed to save receivable: %w", err)
	}

	return r, nil
}

// CollectReceivable marks a receivable as collected. The accrual transaction
// is re-pointed from the pending sentinel to the real asset account the
// money arrived in and re-dated to the payment date, so the next
// running-balance recompute shows the movement from that date onward.
func (s *Store) CollectReceivable(id string, req *models.SettleRequest) (*models.Receivable, error) {
	var r models.Receivable
	if err := s.get(BucketReceivables, id, &r); err != nil {
		return nil, err
	}
	if r.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: receivable already settled", ErrInvalidInput)
	}
	if req.Destination.IsZero() || req.Destination.IsPending() {
		return nil, fmt.Errorf("%w: settlement needs a real asset destination", ErrInvalidInput)
	}

	if err := s.settleAccrualTransaction(r.TransactionID, req); err != nil {
		return nil, err
	}

	r.Status = models.StatusCollected
	r.UpdatedAt = time.Now()
	if err := s.put(BucketReceivables, r.ID, &r); err != nil {
		return nil, fmt.Errorf("failed to update receivable: %w", err)
	}

	return &r, nil
}

// AddReceivablePayment records a partial payment. The sum of partial
// payments may never exceed the receivable amount; the check lives here at
// the boundary.
func (s *Store) AddReceivablePayment(id string, req *models.AddPaymentRequest) (*models.Receivable, error) {
	var r models.Receivable
	if err := s.get(BucketReceivables, id, &r); err != nil {
		return nil, err
	}
	if r.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: receivable already settled", ErrInvalidInput)
	}

	if err := appendPayment(&r.InternalPayments, r.Amount, r.PaidTotal(), req); err != nil {
		return nil, err
	}

	r.UpdatedAt = time.Now()
	if err := s.put(BucketReceivables, r.ID, &r); err != nil {
		return nil, fmt.Errorf("failed to update receivable: %w", err)
	}
	return &r, nil
}

// ListReceivables retrieves receivables, optionally per company.
func (s *Store) ListReceivables(companyID string) ([]models.Receivable, error) {
	results, err := s.list(BucketReceivables, companyFilter(companyID))
	if err != nil {
		return nil, err
	}
	return unmarshalAll[models.Receivable](results)
}

// CreatePayable registers money the company owes, with the expense side of
// the accrual.
func (s *Store) CreatePayable(req *models.CreatePayableRequest) (*models.Payable, error) {
	if req.CompanyID == "" || req.Creditor == "" {
		return nil, fmt.Errorf("%w: missing company_id or creditor", ErrInvalidInput)
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	txn, err := s.createAccrualTransaction(req.CompanyID, models.TransactionExpense,
		models.DestinationPendingPayable, req.IssueDate, req.Amount, req.LinkedAccount,
		"Cuenta por pagar: "+req.Creditor)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &models.Payable{
		ID:            uuid.NewString(),
		CompanyID:     req.CompanyID,
		Creditor:      req.Creditor,
		Amount:        req.Amount,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Status:        models.StatusPending,
		LinkedAccount: req.LinkedAccount,
		TransactionID: txn.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.put(BucketPayables, p.ID, p); err != nil {
		return nil, fmt.Errorf("failed to save payable: %w", err)
	}

	return p, nil
}

// PayPayable marks a payable as paid, mirroring CollectReceivable.
func (s *Store) PayPayable(id string, req *models.SettleRequest) (*models.Payable, error) {
	var p models.Payable
	if err := s.get(BucketPayables, id, &p); err != nil {
		return nil, err
	}
	if p.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: payable already settled", ErrInvalidInput)
	}
	if req.Destination.IsZero() || req.Destination.IsPending() {
		return nil, fmt.Errorf("%w: settlement needs a real asset destination", ErrInvalidInput)
	}

	if err := s.settleAccrualTransaction(p.TransactionID, req); err != nil {
		return nil, err
	}

	p.Status = models.StatusPaid
	p.UpdatedAt = time.Now()
	if err := s.put(BucketPayables, p.ID, &p); err != nil {
		return nil, fmt.Errorf("failed to update payable: %w", err)
	}

	return &p, nil
}

// AddPayablePayment records a partial payment against a payable.
func (s *Store) AddPayablePayment(id string, req *models.AddPaymentRequest) (*models.Payable, error) {
	var p models.Payable
	if err := s.get(BucketPayables, id, &p); err != nil {
		return nil, err
	}
	if p.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: payable already settled", ErrInvalidInput)
	}

	if err := appendPayment(&p.InternalPayments, p.Amount, p.PaidTotal(), req); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now()
	if err := s.put(BucketPayables, p.ID, &p); err != nil {
		return nil, fmt.Errorf("failed to update payable: %w", err)
	}
	return &p, nil
}

// ListPayables retrieves payables, optionally per company.
func (s *Store) ListPayables(companyID string) ([]models.Payable, error) {
	results, err := s.list(BucketPayables, companyFilter(companyID))
	if err != nil {
		return nil, err
	}
	return unmarshalAll[models.Payable](results)
}

func (s *Store) createAccrualTransaction(companyID string, txnType models.TransactionType,
	pending models.DestinationKind, date string, amount models.Money, category, description string) (*models.Transaction, error) {

	vtype := VoucherIncome
	if txnType == models.TransactionExpense {
		vtype = VoucherExpense
	}
	voucher, err := s.NextVoucher(companyID, vtype)
	if err != nil {
		return nil, fmt.Errorf("failed to assign voucher number: %w", err)
	}
	seq, err := s.nextSeq(BucketTransactions)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	txn := &models.Transaction{
		ID:                  uuid.NewString(),
		CompanyID:           companyID,
		Type:                txnType,
		Date:                date,
		Amount:              amount,
		Description:         description,
		Category:            category,
		Destination:         models.PendingDestination(pending),
		IsReceivablePayable: true,
		VoucherNumber:       voucher,
		Seq:                 seq,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.put(BucketTransactions, txn.ID, txn); err != nil {
		return nil, fmt.Errorf("failed to save accrual transaction: %w", err)
	}
	return txn, nil
}

func (s *Store) settleAccrualTransaction(txnID string, req *models.SettleRequest) error {
	txn, err := s.GetTransaction(txnID)
	if err != nil {
		return fmt.Errorf("accrual transaction missing: %w", err)
	}

	txn.Destination = req.Destination
	if req.Date != "" {
		txn.Date = req.Date
	}
	txn.UpdatedAt = time.Now()

	if err := s.put(BucketTransactions, txn.ID, txn); err != nil {
		return fmt.Errorf("failed to settle accrual transaction: %w", err)
	}
	return nil
}

func appendPayment(payments *[]models.InternalPayment, total models.Money, paid models.Money, req *models.AddPaymentRequest) error {
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}

	remaining := total.Sub(paid.Decimal)
	if req.Amount.GreaterThan(remaining) {
		return fmt.Errorf("%w: payment %s exceeds remaining balance %s", ErrInvalidInput, req.Amount, remaining)
	}

	*payments = append(*payments, models.InternalPayment{
		ID:     uuid.NewString(),
		Date:   req.Date,
		Amount: req.Amount,
		Note:   req.Note,
	})
	return nil
}
