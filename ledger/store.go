package ledger

import (
	"fmt"
	"sync"

	"github.com/bitfsorg/fracpay-go/address"
)

// Tx is a view of the account set inside one transaction.
type Tx interface {
	// Account returns a copy of the account at key, or ErrAccountNotFound.
	Account(key address.Pubkey) (*Account, error)

	// PutAccount stages acct at key. Writes become visible to later reads in
	// the same transaction and are persisted only if the transaction commits.
	PutAccount(key address.Pubkey, acct *Account) error
}

// Store persists accounts. Update runs fn in a read-write transaction that
// commits only when fn returns nil; any error discards every write.
type Store interface {
	View(fn func(Tx) error) error
	Update(fn func(Tx) error) error
	Close() error
}

// MemStore is an in-memory Store. Update holds an exclusive lock for the
// whole transaction.
type MemStore struct {
	mu       sync.RWMutex
	accounts map[address.Pubkey]*Account
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{accounts: make(map[address.Pubkey]*Account)}
}

// View runs fn against a read-only snapshot.
func (s *MemStore) View(fn func(Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&memTx{base: s.accounts, readOnly: true})
}

// Update runs fn and applies its writes only if it returns nil.
func (s *MemStore) Update(fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{base: s.accounts, staged: make(map[address.Pubkey]*Account)}
	if err := fn(tx); err != nil {
		return err
	}
	for k, v := range tx.staged {
		s.accounts[k] = v
	}
	return nil
}

// Close is a no-op.
func (s *MemStore) Close() error { return nil }

type memTx struct {
	base     map[address.Pubkey]*Account
	staged   map[address.Pubkey]*Account
	readOnly bool
}

func (t *memTx) Account(key address.Pubkey) (*Account, error) {
	if acct, ok := t.staged[key]; ok {
		return acct.Clone(), nil
	}
	if acct, ok := t.base[key]; ok {
		return acct.Clone(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
}

func (t *memTx) PutAccount(key address.Pubkey, acct *Account) error {
	if t.readOnly {
		return fmt.Errorf("ledger: put %s in read-only transaction", key)
	}
	if acct == nil {
		return fmt.Errorf("%w: account", ErrNilParam)
	}
	t.staged[key] = acct.Clone()
	return nil
}
