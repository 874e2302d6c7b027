package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageAllocationFailed is the parent of every account creation failure.
	ErrStorageAllocationFailed = errors.New("ledger: storage allocation failed")

	// ErrAccountExists indicates an account already lives at the target address.
	ErrAccountExists = fmt.Errorf("%w: account already exists", ErrStorageAllocationFailed)

	// ErrInsufficientFunds indicates the payer cannot cover the rent-exempt balance.
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", ErrStorageAllocationFailed)

	// ErrAddressMismatch indicates the target is not the address derived from
	// (program id, seed, bump).
	ErrAddressMismatch = fmt.Errorf("%w: derived address mismatch", ErrStorageAllocationFailed)

	// ErrAccountNotFound indicates no account exists at the address.
	ErrAccountNotFound = errors.New("ledger: account not found")

	// ErrInvalidSignature indicates a transaction signature failed verification.
	ErrInvalidSignature = errors.New("ledger: invalid signature")

	// ErrBalanceOverflow indicates a credit would overflow an account balance.
	ErrBalanceOverflow = errors.New("ledger: balance overflow")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("ledger: required parameter is nil")

	// ErrInvalidAccountData indicates a stored account envelope is malformed.
	ErrInvalidAccountData = errors.New("ledger: invalid account data")
)
