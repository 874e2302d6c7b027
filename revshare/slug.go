package revshare

import (
	"bytes"
	"fmt"
)

// PackSlug right-pads label with zero bytes to fieldLen.
func PackSlug(label []byte, fieldLen int) ([]byte, error) {
	if len(label) > fieldLen {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrLabelTooLong, len(label), fieldLen)
	}
	buf := make([]byte, fieldLen)
	copy(buf, label)
	return buf, nil
}

// PieceSlug is the fixed-width label of a PIECE.
type PieceSlug [PieceSlugLen]byte

// NewPieceSlug packs label into a PieceSlug.
func NewPieceSlug(label []byte) (PieceSlug, error) {
	var s PieceSlug
	b, err := PackSlug(label, PieceSlugLen)
	if err != nil {
		return s, err
	}
	copy(s[:], b)
	return s, nil
}

func (s PieceSlug) String() string { return trimSlug(s[:]) }

// RefSlug is the fixed-width label of a REF.
type RefSlug [RefSlugLen]byte

// NewRefSlug packs label into a RefSlug.
func NewRefSlug(label []byte) (RefSlug, error) {
	var s RefSlug
	b, err := PackSlug(label, RefSlugLen)
	if err != nil {
		return s, err
	}
	copy(s[:], b)
	return s, nil
}

func (s RefSlug) String() string { return trimSlug(s[:]) }

func trimSlug(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}
