package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/mfrancor/contalocal/internal/ledger"
)

// Snapshot is the whole-store export of one company, mirrored as a single
// blob to the remote key-value service. Last writer wins at the blob level;
// there is no conflict resolution.
type Snapshot struct {
	CompanyID string                       `json:"company_id"`
	Buckets   map[string][]json.RawMessage `json:"buckets"`
}

// SnapshotCompany collects every record of one company across all entity
// buckets in a single read transaction.
func (s *Store) SnapshotCompany(companyID string) (*Snapshot, error) {
	snap := &Snapshot{
		CompanyID: companyID,
		Buckets:   make(map[string][]json.RawMessage),
	}

	filter := companyFilter(companyID)
	err := s.db.View(func(tx *bolt.Tx) error {
		for _, bucketName := range allBuckets {
			if bucketName == BucketVouchers {
				continue
			}
			b := tx.Bucket([]byte(bucketName))
			if b == nil {
				return fmt.Errorf("bucket %s not found", bucketName)
			}
			err := b.ForEach(func(k, v []byte) error {
				if bucketName != BucketCompanies && filter != nil && !filter(v) {
					return nil
				}
				copied := make([]byte, len(v))
				copy(copied, v)
				snap.Buckets[bucketName] = append(snap.Buckets[bucketName], copied)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// RecordCount sums the records across all buckets of the snapshot.
func (s *Snapshot) RecordCount() int {
	n := 0
	for _, records := range s.Buckets {
		n += len(records)
	}
	return n
}

// LedgerData materializes the full entity set of one company (or a
// consolidated group of companies) for the ledger engine.
func (s *Store) LedgerData(companyIDs ...string) (ledger.Data, error) {
	var data ledger.Data

	include := func(companyID string) bool {
		if len(companyIDs) == 0 {
			return true
		}
		for _, id := range companyIDs {
			if id == companyID {
				return true
			}
		}
		return false
	}

	txns, err := s.ListTransactions("")
	if err != nil {
		return data, err
	}
	for _, t := range txns {
		if include(t.CompanyID) {
			data.Transactions = append(data.Transactions, t)
		}
	}

	banks, err := s.ListBankAccounts("")
	if err != nil {
		return data, err
	}
	for _, b := range banks {
		if include(b.CompanyID) {
			data.Ref.BankAccounts = append(data.Ref.BankAccounts, b)
		}
	}

	initials, err := s.ListInitialBalances("")
	if err != nil {
		return data, err
	}
	for _, ib := range initials {
		if include(ib.CompanyID) {
			data.Ref.InitialBalances = append(data.Ref.InitialBalances, ib)
		}
	}

	accounts, err := s.ListAccounts("")
	if err != nil {
		return data, err
	}
	for _, a := range accounts {
		if include(a.CompanyID) {
			data.Ref.Accounts = append(data.Ref.Accounts, a)
		}
	}

	receivables, err := s.ListReceivables("")
	if err != nil {
		return data, err
	}
	for _, r := range receivables {
		if include(r.CompanyID) {
			data.Receivables = append(data.Receivables, r)
		}
	}

	payables, err := s.ListPayables("")
	if err != nil {
		return data, err
	}
	for _, p := range payables {
		if include(p.CompanyID) {
			data.Payables = append(data.Payables, p)
		}
	}

	assets, err := s.ListFixedAssets("")
	if err != nil {
		return data, err
	}
	for _, fa := range assets {
		if include(fa.CompanyID) {
			data.FixedAssets = append(data.FixedAssets, fa)
		}
	}

	estates, err := s.ListRealEstate("")
	if err != nil {
		return data, err
	}
	for _, re := range estates {
		if include(re.CompanyID) {
			data.RealEstate = append(data.RealEstate, re)
		}
	}

	return data, nil
}
