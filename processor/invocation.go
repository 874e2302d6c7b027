package processor

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bitfsorg/fracpay-go/address"
	"github.com/bitfsorg/fracpay-go/ledger"
	"github.com/bitfsorg/fracpay-go/revshare"
)

// Invocation is the environment one instruction runs in.
type Invocation struct {
	ProgramID address.Pubkey
	Rent      ledger.Rent
	Signers   ledger.Signers
	Tx        ledger.Tx
	Log       zerolog.Logger
}

func (inv *Invocation) requireSigner(operator address.Pubkey) error {
	if !inv.Signers.IsSigner(operator) {
		inv.Log.Warn().Stringer("operator", operator).Msg("operator is not a signer")
		return fmt.Errorf("%w: %s", ErrMissingSignature, operator)
	}
	return nil
}

// allocate creates a rent-exempt, program-owned account of size bytes at slot,
// funded by payer.
func (inv *Invocation) allocate(payer address.Pubkey, slot address.ProgramAddress, size int) (*ledger.Account, error) {
	return ledger.CreateAccount(inv.Tx, ledger.CreateAccountParams{
		Payer:     payer,
		ProgramID: inv.ProgramID,
		Target:    slot,
		Lamports:  inv.Rent.MinimumBalance(size),
		Size:      size,
	})
}

// store writes data into the account at key, keeping its balance and owner.
func (inv *Invocation) store(key address.Pubkey, acct *ledger.Account, data []byte) error {
	acct.Data = data
	return inv.Tx.PutAccount(key, acct)
}

// load fetches a program-owned record of exactly codec.Size() bytes.
func load[T any](inv *Invocation, key address.Pubkey, codec revshare.Codec[T]) (*ledger.Account, *T, error) {
	acct, err := inv.Tx.Account(key)
	if ledger.IsNotFound(err) {
		return nil, nil, fmt.Errorf("%w: no account at %s", ErrInvalidAccountData, key)
	}
	if err != nil {
		return nil, nil, err
	}
	if acct.Owner != inv.ProgramID {
		return nil, nil, fmt.Errorf("%w: %s is owned by %s", ErrInvalidAccountData, key, acct.Owner)
	}
	if len(acct.Data) != codec.Size() {
		return nil, nil, fmt.Errorf("%w: %s holds %d bytes, want %d", ErrInvalidAccountData, key, len(acct.Data), codec.Size())
	}
	rec, err := codec.Decode(acct.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrInvalidAccountData, key, err)
	}
	return acct, rec, nil
}
