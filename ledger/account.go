// Package ledger is the execution host for the fracpay program: it stores
// accounts, charges rent, creates program-owned accounts at derived addresses,
// verifies transaction signers, and runs each transaction all-or-nothing.
package ledger

import "github.com/bitfsorg/fracpay-go/address"

// SystemProgramID owns plain wallet accounts. It is the zero key.
var SystemProgramID address.Pubkey

// Account is the host's view of one storage region.
type Account struct {
	Lamports uint64
	Owner    address.Pubkey
	Data     []byte
}

// Clone returns a deep copy of a.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := &Account{Lamports: a.Lamports, Owner: a.Owner}
	if len(a.Data) > 0 {
		c.Data = make([]byte, len(a.Data))
		copy(c.Data, a.Data)
	}
	return c
}

// IsAllocated reports whether a holds data or belongs to a program. A
// system account that only holds lamports is not allocated, and
// CreateAccount may claim its address.
func (a *Account) IsAllocated() bool {
	return a != nil && (len(a.Data) > 0 || a.Owner != SystemProgramID)
}
