// Package instruction defines the wire format of fracpay instructions and the
// signed transactions that carry them.
//
// Instruction data is little-endian: a 1-byte tag, 1-byte bumps, and byte
// vectors prefixed with a 4-byte length.
package instruction

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bitfsorg/fracpay-go/address"
)

// Kind is the instruction tag.
type Kind uint8

const (
	KindCreateMain Kind = 0
	KindCreateRef  Kind = 1
)

func (k Kind) String() string {
	switch k {
	case KindCreateMain:
		return "CreateMain"
	case KindCreateRef:
		return "CreateRef"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Account positions shared by CreateMain and CreateRef. NumAccounts is the
// number of accounts both instructions take.
const (
	AccountOperator = iota
	AccountMain
	AccountPiece
	AccountRef
	NumAccounts
)

// Instruction is one call into the program.
type Instruction struct {
	Accounts []address.Pubkey
	Data     []byte // starts with the Kind tag
}

// Kind returns the instruction tag.
func (ix *Instruction) Kind() (Kind, error) {
	if len(ix.Data) == 0 {
		return 0, fmt.Errorf("%w: empty data", ErrInvalidInstructionData)
	}
	return Kind(ix.Data[0]), nil
}

// Account returns the account at position i.
func (ix *Instruction) Account(i int) (address.Pubkey, error) {
	if i >= len(ix.Accounts) {
		return address.Pubkey{}, fmt.Errorf("%w: need index %d, have %d", ErrNotEnoughAccounts, i, len(ix.Accounts))
	}
	return ix.Accounts[i], nil
}

// CreateMainData is the payload of a CreateMain instruction.
type CreateMainData struct {
	BumpMain  uint8
	SeedMain  []byte
	BumpPiece uint8
	SeedPiece []byte
	BumpRef   uint8
	SeedRef   []byte
}

// CreateRefData is the payload of a CreateRef instruction.
type CreateRefData struct {
	BumpRef uint8
	SeedRef []byte
	RefSlug []byte
}

// NewCreateMain builds a CreateMain instruction for the given slots.
func NewCreateMain(operator address.Pubkey, main, piece, ref address.ProgramAddress) Instruction {
	w := &writer{}
	w.u8(uint8(KindCreateMain))
	w.u8(main.Bump)
	w.bytes(main.Seed)
	w.u8(piece.Bump)
	w.bytes(piece.Seed)
	w.u8(ref.Bump)
	w.bytes(ref.Seed)
	return Instruction{
		Accounts: []address.Pubkey{operator, main.Address, piece.Address, ref.Address},
		Data:     w.buf,
	}
}

// NewCreateRef builds a CreateRef instruction appending ref to piece's chain.
func NewCreateRef(operator, main, piece address.Pubkey, ref address.ProgramAddress, refSlug []byte) Instruction {
	w := &writer{}
	w.u8(uint8(KindCreateRef))
	w.u8(ref.Bump)
	w.bytes(ref.Seed)
	w.bytes(refSlug)
	return Instruction{
		Accounts: []address.Pubkey{operator, main, piece, ref.Address},
		Data:     w.buf,
	}
}

// DecodeCreateMain parses CreateMain instruction data.
func DecodeCreateMain(data []byte) (*CreateMainData, error) {
	r := &reader{buf: data}
	if err := r.expectKind(KindCreateMain); err != nil {
		return nil, err
	}
	d := &CreateMainData{}
	d.BumpMain = r.u8()
	d.SeedMain = r.bytes()
	d.BumpPiece = r.u8()
	d.SeedPiece = r.bytes()
	d.BumpRef = r.u8()
	d.SeedRef = r.bytes()
	if err := r.finish(); err != nil {
		return nil, err
	}
	return d, nil
}

// DecodeCreateRef parses CreateRef instruction data.
func DecodeCreateRef(data []byte) (*CreateRefData, error) {
	r := &reader{buf: data}
	if err := r.expectKind(KindCreateRef); err != nil {
		return nil, err
	}
	d := &CreateRefData{}
	d.BumpRef = r.u8()
	d.SeedRef = r.bytes()
	d.RefSlug = r.bytes()
	if err := r.finish(); err != nil {
		return nil, err
	}
	return d, nil
}

type writer struct {
	buf []byte
}

func (w *writer) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *writer) u32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *writer) bytes(b []byte) {
	w.u32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// reader records the first error and turns later reads into no-ops.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) fail(format string, args ...interface{}) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInstructionData}, args...)...)
	}
}

func (r *reader) expectKind(want Kind) error {
	if len(r.buf) == 0 {
		return fmt.Errorf("%w: empty data", ErrInvalidInstructionData)
	}
	if got := Kind(r.buf[0]); got != want {
		return fmt.Errorf("%w: got %s, want %s", ErrUnknownInstruction, got, want)
	}
	r.off = 1
	return nil
}

func (r *reader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	if r.off+1 > len(r.buf) {
		r.fail("truncated at offset %d", r.off)
		return 0
	}
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *reader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	if r.off+4 > len(r.buf) {
		r.fail("truncated length at offset %d", r.off)
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off : r.off+4])
	r.off += 4
	return v
}

func (r *reader) bytes() []byte {
	n := r.u32()
	if r.err != nil {
		return nil
	}
	if uint64(n) > uint64(len(r.buf)-r.off) {
		r.fail("vector of %d bytes overruns data at offset %d", n, r.off)
		return nil
	}
	b := make([]byte, n)
	copy(b, r.buf[r.off:r.off+int(n)])
	r.off += int(n)
	return b
}

func (r *reader) finish() error {
	if r.err != nil {
		return r.err
	}
	if r.off != len(r.buf) {
		return fmt.Errorf("%w: %d trailing bytes", ErrInvalidInstructionData, len(r.buf)-r.off)
	}
	return nil
}

// maxVecLen bounds every length-prefixed vector in a message.
const maxVecLen = math.MaxUint32
