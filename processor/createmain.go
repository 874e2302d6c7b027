package processor

import (
	"github.com/bitfsorg/fracpay-go/address"
	"github.com/bitfsorg/fracpay-go/revshare"
)

// CreateMainParams names the accounts of a new MAIN together with its
// self-PIECE and self-REF.
type CreateMainParams struct {
	Operator address.Pubkey
	Main     address.ProgramAddress
	Piece    address.ProgramAddress
	Ref      address.ProgramAddress

	// PieceLabelSource becomes the self-PIECE's slug. The instruction
	// dispatcher sets it to the MAIN seed.
	PieceLabelSource []byte
}

// CreateMain allocates a MAIN, its self-PIECE and self-REF, all funded by the
// operator, and writes their initial records. The operator receives 100% of
// the self-REF.
func CreateMain(inv *Invocation, p CreateMainParams) error {
	if err := inv.requireSigner(p.Operator); err != nil {
		return err
	}
	pieceSlug, err := revshare.NewPieceSlug(p.PieceLabelSource)
	if err != nil {
		return err
	}
	refSlug, err := revshare.NewRefSlug([]byte(revshare.SelfRefSlug))
	if err != nil {
		return err
	}

	mainAcct, err := inv.allocate(p.Operator, p.Main, revshare.SizeMain)
	if err != nil {
		return err
	}
	inv.Log.Debug().Stringer("main", p.Main.Address).Msg("created MAIN account")

	pieceAcct, err := inv.allocate(p.Operator, p.Piece, revshare.SizePiece)
	if err != nil {
		return err
	}
	inv.Log.Debug().Stringer("piece", p.Piece.Address).Msg("created self-PIECE account")

	refAcct, err := inv.allocate(p.Operator, p.Ref, revshare.SizeRef)
	if err != nil {
		return err
	}
	inv.Log.Debug().Stringer("ref", p.Ref.Address).Msg("created self-REF account")

	mainRec := &revshare.Main{
		Flags:    revshare.ClassFlags(revshare.ClassMain),
		Operator: p.Operator,
	}
	if err := inv.store(p.Main.Address, mainAcct, revshare.MainCodec.Encode(mainRec)); err != nil {
		return err
	}

	piece := &revshare.Piece{
		Flags:     revshare.ClassFlags(revshare.ClassSelfPiece),
		Operator:  p.Operator,
		PieceSlug: pieceSlug,
	}
	if err := inv.store(p.Piece.Address, pieceAcct, revshare.PieceCodec.Encode(piece)); err != nil {
		return err
	}

	ref := &revshare.Ref{
		Flags:   revshare.ClassFlags(revshare.ClassSelfRef),
		Target:  p.Operator,
		Fract:   revshare.FractScale,
		RefSlug: refSlug,
	}
	return inv.store(p.Ref.Address, refAcct, revshare.RefCodec.Encode(ref))
}
