package revshare

import "github.com/bitfsorg/fracpay-go/address"

// Field widths, in bytes.
const (
	FlagsLen     = 2
	PubkeyLen    = address.PubkeyLen
	BalanceLen   = 8
	NetSumLen    = 8
	CountLen     = 2
	FractLen     = 4
	PieceSlugLen = 67
	RefSlugLen   = 20
)

// Record sizes.
const (
	SizeMain  = FlagsLen + PubkeyLen + BalanceLen + NetSumLen + CountLen                // 52
	SizePiece = FlagsLen + PubkeyLen + BalanceLen + NetSumLen + CountLen + PieceSlugLen // 119
	SizeRef   = FlagsLen + PubkeyLen + FractLen + NetSumLen + RefSlugLen                // 66
)

// FractScale is the fixed-point scale of Ref.Fract: FractScale means 100%.
const FractScale uint32 = 100_000_000

// SelfRefSlug labels the REF created alongside a self-PIECE.
const SelfRefSlug = "SELF_REFERENCE"
