package revshare

import "encoding/binary"

// FlagBit is a position in the 16-bit flags field. Position 0 is the most
// significant bit of the first byte on the wire.
type FlagBit uint8

// Class tag bits (0-3) and REF status bits (4-6).
const (
	BitPiece       FlagBit = 0
	BitRef         FlagBit = 1
	BitSelfRef     FlagBit = 2
	BitSelfPiece   FlagBit = 3
	BitConnected   FlagBit = 4
	BitInitialized FlagBit = 5
	BitReflected   FlagBit = 6
)

// NumFlagBits is the width of the flags field.
const NumFlagBits = 16

// Flags is the status field shared by all records.
type Flags uint16

func (b FlagBit) mask() Flags {
	return Flags(1) << (NumFlagBits - 1 - uint(b))
}

// Has reports whether bit is set.
func (f Flags) Has(bit FlagBit) bool {
	return f&bit.mask() != 0
}

// With returns f with bit set to v.
func (f Flags) With(bit FlagBit, v bool) Flags {
	if v {
		return f | bit.mask()
	}
	return f &^ bit.mask()
}

// Bytes returns the 2-byte wire form.
func (f Flags) Bytes() [FlagsLen]byte {
	var b [FlagsLen]byte
	binary.BigEndian.PutUint16(b[:], uint16(f))
	return b
}

// FlagsFromBytes decodes the 2-byte wire form.
func FlagsFromBytes(b [FlagsLen]byte) Flags {
	return Flags(binary.BigEndian.Uint16(b[:]))
}

// Bits expands f into one bool per position.
func (f Flags) Bits() [NumFlagBits]bool {
	var bits [NumFlagBits]bool
	for i := range bits {
		bits[i] = f.Has(FlagBit(i))
	}
	return bits
}

// FlagsFromBits packs one bool per position into Flags.
func FlagsFromBits(bits [NumFlagBits]bool) Flags {
	var f Flags
	for i, set := range bits {
		f = f.With(FlagBit(i), set)
	}
	return f
}

// PackFlags packs 16 positional bits into the 2-byte wire form.
func PackFlags(bits [NumFlagBits]bool) [FlagsLen]byte {
	return FlagsFromBits(bits).Bytes()
}

// UnpackFlags is the inverse of PackFlags.
func UnpackFlags(b [FlagsLen]byte) [NumFlagBits]bool {
	return FlagsFromBytes(b).Bits()
}

// Class is the record kind encoded in flag bits 0-3.
type Class uint8

const (
	ClassMain Class = iota
	ClassPiece
	ClassRef
	ClassSelfRef
	ClassSelfPiece
	ClassUnknown
)

var classNames = [...]string{"MAIN", "PIECE", "REF", "SELF_REF", "SELF_PIECE", "UNKNOWN"}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return classNames[ClassUnknown]
}

const classMask = Flags(0xf000)

// ClassFlags returns flags carrying only the class tag for c.
func ClassFlags(c Class) Flags {
	var f Flags
	switch c {
	case ClassPiece:
		f = f.With(BitPiece, true)
	case ClassRef:
		f = f.With(BitRef, true)
	case ClassSelfRef:
		f = f.With(BitSelfRef, true)
	case ClassSelfPiece:
		f = f.With(BitSelfPiece, true)
	}
	return f
}

// Class decodes the class tag. A tag with more than one bit set is
// ClassUnknown.
func (f Flags) Class() Class {
	switch f & classMask {
	case 0:
		return ClassMain
	case BitPiece.mask():
		return ClassPiece
	case BitRef.mask():
		return ClassRef
	case BitSelfRef.mask():
		return ClassSelfRef
	case BitSelfPiece.mask():
		return ClassSelfPiece
	}
	return ClassUnknown
}
