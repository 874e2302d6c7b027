package revshare

import "errors"

var (
	// ErrInvalidMainData indicates a MAIN record is malformed.
	ErrInvalidMainData = errors.New("revshare: invalid MAIN data")

	// ErrInvalidPieceData indicates a PIECE record is malformed.
	ErrInvalidPieceData = errors.New("revshare: invalid PIECE data")

	// ErrInvalidRefData indicates a REF record is malformed.
	ErrInvalidRefData = errors.New("revshare: invalid REF data")

	// ErrLabelTooLong indicates a slug label does not fit its fixed field.
	ErrLabelTooLong = errors.New("revshare: label too long")

	// ErrInvalidSeed indicates a seed does not encode a chain index.
	ErrInvalidSeed = errors.New("revshare: seed does not encode an index")
)
