package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"go.etcd.io/bbolt"

	"github.com/bitfsorg/fracpay-go/address"
)

var bucketAccounts = []byte("accounts")

// accountEnvelope is the persisted form of an Account.
type accountEnvelope struct {
	Lamports uint64 `cbor:"1,keyasint"`
	Owner    []byte `cbor:"2,keyasint"`
	Data     []byte `cbor:"3,keyasint"`
}

var envelopeEncMode = func() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("ledger: cbor enc mode: " + err.Error())
	}
	return em
}()

// BoltStore persists accounts in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAccounts); err != nil {
			return fmt.Errorf("boltstore: create bucket %q: %w", bucketAccounts, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// View runs fn in a read-only bbolt transaction.
func (s *BoltStore) View(fn func(Tx) error) error {
	return s.db.View(func(btx *bbolt.Tx) error {
		return fn(&boltTx{btx: btx})
	})
}

// Update runs fn in a read-write bbolt transaction. bbolt rolls back every
// write when fn returns an error.
func (s *BoltStore) Update(fn func(Tx) error) error {
	return s.db.Update(func(btx *bbolt.Tx) error {
		return fn(&boltTx{btx: btx})
	})
}

type boltTx struct {
	btx *bbolt.Tx
}

func (t *boltTx) Account(key address.Pubkey) (*Account, error) {
	data := t.btx.Bucket(bucketAccounts).Get(key[:])
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, key)
	}
	return decodeAccount(data)
}

func (t *boltTx) PutAccount(key address.Pubkey, acct *Account) error {
	if acct == nil {
		return fmt.Errorf("%w: account", ErrNilParam)
	}
	if !t.btx.Writable() {
		return fmt.Errorf("ledger: put %s in read-only transaction", key)
	}
	data, err := encodeAccount(acct)
	if err != nil {
		return err
	}
	if err := t.btx.Bucket(bucketAccounts).Put(key[:], data); err != nil {
		return fmt.Errorf("boltstore: put account: %w", err)
	}
	return nil
}

func encodeAccount(acct *Account) ([]byte, error) {
	env := accountEnvelope{
		Lamports: acct.Lamports,
		Owner:    acct.Owner.Bytes(),
		Data:     acct.Data,
	}
	data, err := envelopeEncMode.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("boltstore: encode account: %w", err)
	}
	return data, nil
}

func decodeAccount(data []byte) (*Account, error) {
	var env accountEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAccountData, err)
	}
	owner, err := address.FromBytes(env.Owner)
	if err != nil {
		return nil, fmt.Errorf("%w: owner: %w", ErrInvalidAccountData, err)
	}
	acct := &Account{Lamports: env.Lamports, Owner: owner}
	if len(env.Data) > 0 {
		acct.Data = env.Data
	}
	return acct, nil
}

// IsNotFound reports whether err is an ErrAccountNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound)
}
