package processor

import (
	"fmt"

	"github.com/bitfsorg/fracpay-go/address"
	"github.com/bitfsorg/fracpay-go/revshare"
)

// CreateRefParams names the accounts involved in appending a REF to a
// PIECE's chain.
type CreateRefParams struct {
	Operator address.Pubkey
	Main     address.Pubkey
	Piece    address.Pubkey
	Ref      address.ProgramAddress
	RefSlug  []byte
}

// CreateRef appends a REF at the next chain index of the PIECE. The REF's
// seed must be RefSeed(PIECE, PIECE.RefCount+1). The new REF targets the operator
// with a zero share.
func CreateRef(inv *Invocation, p CreateRefParams) error {
	if err := inv.requireSigner(p.Operator); err != nil {
		return err
	}

	_, mainRec, err := load(inv, p.Main, revshare.MainCodec)
	if err != nil {
		return err
	}
	if mainRec.Operator != p.Operator {
		inv.Log.Warn().Stringer("operator", p.Operator).Stringer("main", p.Main).Msg("operator doesn't control MAIN")
		return fmt.Errorf("%w: MAIN %s", ErrOwnershipMismatch, p.Main)
	}

	pieceAcct, piece, err := load(inv, p.Piece, revshare.PieceCodec)
	if err != nil {
		return err
	}
	if piece.Operator != p.Operator {
		inv.Log.Warn().Stringer("operator", p.Operator).Stringer("piece", p.Piece).Msg("operator doesn't control PIECE")
		return fmt.Errorf("%w: PIECE %s", ErrOwnershipMismatch, p.Piece)
	}

	index, err := revshare.ChainIndex(p.Piece, p.Ref.Seed)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfOrder, err)
	}
	if index == 0 || index-1 != piece.RefCount {
		inv.Log.Warn().Uint16("index", index).Uint16("refcount", piece.RefCount).Msg("ref seed out of order")
		return fmt.Errorf("%w: seed index %d, piece has %d refs", ErrOutOfOrder, index, piece.RefCount)
	}

	refSlug, err := revshare.NewRefSlug(p.RefSlug)
	if err != nil {
		return err
	}

	refAcct, err := inv.allocate(p.Operator, p.Ref, revshare.SizeRef)
	if err != nil {
		return err
	}
	inv.Log.Debug().Stringer("ref", p.Ref.Address).Uint16("index", index).Msg("created REF account")

	piece.RefCount++
	if err := inv.store(p.Piece, pieceAcct, revshare.PieceCodec.Encode(piece)); err != nil {
		return err
	}

	ref := &revshare.Ref{
		Flags:   revshare.ClassFlags(revshare.ClassRef),
		Target:  p.Operator,
		RefSlug: refSlug,
	}
	return inv.store(p.Ref.Address, refAcct, revshare.RefCodec.Encode(ref))
}
