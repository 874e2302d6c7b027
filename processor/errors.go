package processor

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is the parent of every authorization failure.
	ErrUnauthorized = errors.New("processor: unauthorized")

	// ErrMissingSignature indicates the operator did not sign the transaction.
	ErrMissingSignature = fmt.Errorf("%w: operator is not a signer", ErrUnauthorized)

	// ErrOwnershipMismatch indicates the operator does not control a MAIN or PIECE.
	ErrOwnershipMismatch = fmt.Errorf("%w: operator does not own record", ErrUnauthorized)

	// ErrOutOfOrder indicates a REF seed does not encode the next chain index.
	ErrOutOfOrder = errors.New("processor: ref out of order")

	// ErrInvalidAccountData indicates an input account is missing, not
	// program-owned or not the expected record size.
	ErrInvalidAccountData = errors.New("processor: invalid account data")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("processor: required parameter is nil")
)
