// Package store provides bbolt-backed persistence for all bookkeeping
// entities: one bucket per entity type, JSON values keyed by string id, and
// atomic per-company sequence counters.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	bolt "go.etcd.io/bbolt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned when a request fails boundary validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
)

// Bucket names.
const (
	BucketCompanies       = "companies"
	BucketAccounts        = "accounts"
	BucketBankAccounts    = "bank_accounts"
	BucketTransactions    = "transactions"
	BucketReceivables     = "receivables"
	BucketPayables        = "payables"
	BucketFixedAssets     = "fixed_assets"
	BucketRealEstate      = "real_estate"
	BucketInitialBalances = "initial_balances"
	BucketVouchers        = "vouchers"
)

// VoucherType scopes the sequential document numbers.
type VoucherType string

const (
	VoucherIncome   VoucherType = "income"
	VoucherExpense  VoucherType = "expense"
	VoucherTransfer VoucherType = "transfer"
)

var allBuckets = []string{
	BucketCompanies, BucketAccounts, BucketBankAccounts, BucketTransactions,
	BucketReceivables, BucketPayables, BucketFixedAssets, BucketRealEstate,
	BucketInitialBalances, BucketVouchers,
}

// Store wraps the bbolt database.
type Store struct {
	db *bolt.DB
}

// New opens the database at path and initializes the buckets.
func New(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// put stores a JSON-encoded value under key.
func (s *Store) put(bucketName, key string, value interface{}) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return putIn(tx, bucketName, key, value)
	})
}

func putIn(tx *bolt.Tx, bucketName, key string, value interface{}) error {
	b := tx.Bucket([]byte(bucketName))
	if b == nil {
		return fmt.Errorf("bucket %s not found", bucketName)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return b.Put([]byte(key), data)
}

// get retrieves a JSON-encoded value by key.
func (s *Store) get(bucketName, key string, value interface{}) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		data := b.Get([]byte(key))
		if data == nil {
			return ErrNotFound
		}

		return json.Unmarshal(data, value)
	})
}

// delete removes a value by key.
func (s *Store) delete(bucketName, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		return b.Delete([]byte(key))
	})
}

// list retrieves all values from a bucket that pass the filter.
func (s *Store) list(bucketName string, filter func(data []byte) bool) ([][]byte, error) {
	var results [][]byte

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		return b.ForEach(func(k, v []byte) error {
			if filter == nil || filter(v) {
				// Copy the value since it's only valid during the transaction.
				copied := make([]byte, len(v))
				copy(copied, v)
				results = append(results, copied)
			}
			return nil
		})
	})

	return results, err
}

// nextSeq returns the next insertion sequence number for a bucket.
func (s *Store) nextSeq(bucketName string) (uint64, error) {
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket %s not found", bucketName)
		}

		n, err := b.NextSequence()
		if err != nil {
			return err
		}
		seq = n
		return nil
	})
	return seq, err
}

// NextVoucher atomically increments and returns the voucher counter for a
// company and voucher type. Numbers are monotonically increasing within
// their scope and never reused, including after deletes.
func (s *Store) NextVoucher(companyID string, vtype VoucherType) (int64, error) {
	var next int64
	err := s.db.Update(func(tx *bolt.Tx) error {
		n, err := nextVoucherIn(tx, companyID, vtype)
		if err != nil {
			return err
		}
		next = n
		return nil
	})
	return next, err
}

func nextVoucherIn(tx *bolt.Tx, companyID string, vtype VoucherType) (int64, error) {
	b := tx.Bucket([]byte(BucketVouchers))
	if b == nil {
		return 0, fmt.Errorf("bucket %s not found", BucketVouchers)
	}

	key := []byte(companyID + "/" + string(vtype))
	current := int64(0)
	if data := b.Get(key); data != nil {
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("corrupt voucher counter %s: %w", key, err)
		}
		current = n
	}

	next := current + 1
	if err := b.Put(key, []byte(strconv.FormatInt(next, 10))); err != nil {
		return 0, err
	}
	return next, nil
}

// unmarshalAll decodes a list result into typed records.
func unmarshalAll[T any](results [][]byte) ([]T, error) {
	out := make([]T, 0, len(results))
	for _, data := range results {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// companyFilter matches records of one company by their company_id field.
func companyFilter(companyID string) func(data []byte) bool {
	if companyID == "" {
		return nil
	}
	return func(data []byte) bool {
		var probe struct {
			CompanyID string `json:"company_id"`
		}
		if err := json.Unmarshal(data, &probe); err != nil {
			return false
		}
		return probe.CompanyID == companyID
	}
}
