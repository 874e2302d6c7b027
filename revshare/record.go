package revshare

import (
	"encoding/binary"
	"fmt"
)

// Integers are little-endian; flags use their own 2-byte layout.

// SerializeMain encodes a Main into its 52-byte layout.
func SerializeMain(m *Main) []byte {
	buf := make([]byte, SizeMain)
	offset := putFlags(buf, m.Flags)
	offset += copy(buf[offset:offset+PubkeyLen], m.Operator[:])
	binary.LittleEndian.PutUint64(buf[offset:offset+BalanceLen], m.Balance)
	offset += BalanceLen
	binary.LittleEndian.PutUint64(buf[offset:offset+NetSumLen], m.NetSum)
	offset += NetSumLen
	binary.LittleEndian.PutUint16(buf[offset:offset+CountLen], m.PieceCount)
	return buf
}

// DeserializeMain decodes a 52-byte MAIN record.
func DeserializeMain(data []byte) (*Main, error) {
	if len(data) != SizeMain {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidMainData, SizeMain, len(data))
	}
	m := &Main{}
	offset := 0
	m.Flags, offset = getFlags(data, offset)
	offset += copy(m.Operator[:], data[offset:offset+PubkeyLen])
	m.Balance = binary.LittleEndian.Uint64(data[offset : offset+BalanceLen])
	offset += BalanceLen
	m.NetSum = binary.LittleEndian.Uint64(data[offset : offset+NetSumLen])
	offset += NetSumLen
	m.PieceCount = binary.LittleEndian.Uint16(data[offset : offset+CountLen])
	return m, nil
}

// SerializePiece encodes a Piece into its 119-byte layout.
func SerializePiece(p *Piece) []byte {
	buf := make([]byte, SizePiece)
	offset := putFlags(buf, p.Flags)
	offset += copy(buf[offset:offset+PubkeyLen], p.Operator[:])
	binary.LittleEndian.PutUint64(buf[offset:offset+BalanceLen], p.Balance)
	offset += BalanceLen
	binary.LittleEndian.PutUint64(buf[offset:offset+NetSumLen], p.NetSum)
	offset += NetSumLen
	binary.LittleEndian.PutUint16(buf[offset:offset+CountLen], p.RefCount)
	offset += CountLen
	copy(buf[offset:offset+PieceSlugLen], p.PieceSlug[:])
	return buf
}

// DeserializePiece decodes a 119-byte PIECE record.
func DeserializePiece(data []byte) (*Piece, error) {
	if len(data) != SizePiece {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPieceData, SizePiece, len(data))
	}
	p := &Piece{}
	offset := 0
	p.Flags, offset = getFlags(data, offset)
	offset += copy(p.Operator[:], data[offset:offset+PubkeyLen])
	p.Balance = binary.LittleEndian.Uint64(data[offset : offset+BalanceLen])
	offset += BalanceLen
	p.NetSum = binary.LittleEndian.Uint64(data[offset : offset+NetSumLen])
	offset += NetSumLen
	p.RefCount = binary.LittleEndian.Uint16(data[offset : offset+CountLen])
	offset += CountLen
	copy(p.PieceSlug[:], data[offset:offset+PieceSlugLen])
	return p, nil
}

// SerializeRef encodes a Ref into its 66-byte layout.
func SerializeRef(r *Ref) []byte {
	buf := make([]byte, SizeRef)
	offset := putFlags(buf, r.Flags)
	offset += copy(buf[offset:offset+PubkeyLen], r.Target[:])
	binary.LittleEndian.PutUint32(buf[offset:offset+FractLen], r.Fract)
	offset += FractLen
	binary.LittleEndian.PutUint64(buf[offset:offset+NetSumLen], r.NetSum)
	offset += NetSumLen
	copy(buf[offset:offset+RefSlugLen], r.RefSlug[:])
	return buf
}

// DeserializeRef decodes a 66-byte REF record.
func DeserializeRef(data []byte) (*Ref, error) {
	if len(data) != SizeRef {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidRefData, SizeRef, len(data))
	}
	r := &Ref{}
	offset := 0
	r.Flags, offset = getFlags(data, offset)
	offset += copy(r.Target[:], data[offset:offset+PubkeyLen])
	r.Fract = binary.LittleEndian.Uint32(data[offset : offset+FractLen])
	offset += FractLen
	r.NetSum = binary.LittleEndian.Uint64(data[offset : offset+NetSumLen])
	offset += NetSumLen
	copy(r.RefSlug[:], data[offset:offset+RefSlugLen])
	return r, nil
}

func putFlags(buf []byte, f Flags) int {
	b := f.Bytes()
	return copy(buf[:FlagsLen], b[:])
}

func getFlags(data []byte, offset int) (Flags, int) {
	var b [FlagsLen]byte
	copy(b[:], data[offset:offset+FlagsLen])
	return FlagsFromBytes(b), offset + FlagsLen
}
