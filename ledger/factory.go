package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/bitfsorg/fracpay-go/address"
)

// CreateAccountParams describes a program-owned account to allocate.
type CreateAccountParams struct {
	Payer     address.Pubkey         // funds the new account
	ProgramID address.Pubkey         // owner of the new account
	Target    address.ProgramAddress // address plus the seed and bump that derive it
	Lamports  uint64                 // transferred from Payer
	Size      int                    // data length in bytes
}

// CreateAccount allocates a zero-filled, program-owned account of p.Size bytes
// at p.Target.Address and moves p.Lamports from the payer into it.
//
// The target must be the address derived from (ProgramID, Seed, Bump) and
// must not already hold an account. All failures wrap
// ErrStorageAllocationFailed. Writes are staged in tx and only persist if
// the surrounding transaction commits.
func CreateAccount(tx Tx, p CreateAccountParams) (*Account, error) {
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction", ErrNilParam)
	}
	if p.Size < 0 {
		return nil, fmt.Errorf("%w: negative size %d", ErrStorageAllocationFailed, p.Size)
	}

	if err := p.Target.Verify(p.ProgramID); err != nil {
		if errors.Is(err, address.ErrAddressMismatch) {
			return nil, fmt.Errorf("%w: %w", ErrAddressMismatch, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrStorageAllocationFailed, err)
	}

	existing, err := tx.Account(p.Target.Address)
	switch {
	case err == nil && existing.IsAllocated():
		return nil, fmt.Errorf("%w: %s", ErrAccountExists, p.Target.Address)
	case err != nil && !IsNotFound(err):
		return nil, err
	}

	payer, err := tx.Account(p.Payer)
	if IsNotFound(err) {
		return nil, fmt.Errorf("%w: payer %s has no account", ErrInsufficientFunds, p.Payer)
	}
	if err != nil {
		return nil, err
	}
	if payer.Lamports < p.Lamports {
		return nil, fmt.Errorf("%w: payer %s has %d, needs %d", ErrInsufficientFunds, p.Payer, payer.Lamports, p.Lamports)
	}
	payer.Lamports -= p.Lamports
	if err := tx.PutAccount(p.Payer, payer); err != nil {
		return nil, err
	}

	acct := &Account{
		Lamports: p.Lamports,
		Owner:    p.ProgramID,
		Data:     make([]byte, p.Size),
	}
	if existing != nil {
		if acct.Lamports > math.MaxUint64-existing.Lamports {
			return nil, fmt.Errorf("%w: %s", ErrBalanceOverflow, p.Target.Address)
		}
		acct.Lamports += existing.Lamports
	}
	if err := tx.PutAccount(p.Target.Address, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// Credit adds lamports to a system account, creating it if needed.
func Credit(tx Tx, key address.Pubkey, lamports uint64) error {
	if tx == nil {
		return fmt.Errorf("%w: transaction", ErrNilParam)
	}
	acct, err := tx.Account(key)
	if IsNotFound(err) {
		acct, err = &Account{Owner: SystemProgramID}, nil
	}
	if err != nil {
		return err
	}
	if acct.Lamports > math.MaxUint64-lamports {
		return fmt.Errorf("%w: %s", ErrBalanceOverflow, key)
	}
	acct.Lamports += lamports
	return tx.PutAccount(key, acct)
}
