// Package revshare defines the fixed-layout records of the revenue-splitting
// ledger: MAIN (a payee's root ledger), PIECE (a distributable work) and REF
// (one allocation in a PIECE's referral chain).
package revshare

import "github.com/bitfsorg/fracpay-go/address"

// Main is a payee's root ledger.
type Main struct {
	Flags      Flags
	Operator   address.Pubkey // immutable after creation
	Balance    uint64
	NetSum     uint64
	PieceCount uint16
}

// Piece is one distributable work owned by an operator.
type Piece struct {
	Flags     Flags
	Operator  address.Pubkey
	Balance   uint64
	NetSum    uint64
	RefCount  uint16 // REFs appended after the self-REF
	PieceSlug PieceSlug
}

// Ref is one node in a PIECE's allocation chain.
type Ref struct {
	Flags   Flags
	Target  address.Pubkey // payee of this slot
	Fract   uint32         // share of proceeds, FractScale = 100%
	NetSum  uint64
	RefSlug RefSlug
}

// IsConnected returns true if the connected status bit is set.
func (r *Ref) IsConnected() bool { return r.Flags.Has(BitConnected) }

// IsInitialized returns true if the initialized status bit is set.
func (r *Ref) IsInitialized() bool { return r.Flags.Has(BitInitialized) }

// IsReflected returns true if the reflected status bit is set.
func (r *Ref) IsReflected() bool { return r.Flags.Has(BitReflected) }
