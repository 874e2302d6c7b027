// Package address defines ledger identities and program-derived addresses.
//
// A Pubkey is a 32-byte identity. Operator identities are the SHA256 of a
// compressed secp256k1 public key; program addresses are derived from a
// program id, a seed and a bump and are guaranteed to have no private key.
package address

import (
	"fmt"

	"github.com/mr-tron/base58"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// PubkeyLen is the size of a Pubkey in bytes.
const PubkeyLen = 32

// Pubkey identifies an account, an operator or a program.
type Pubkey [PubkeyLen]byte

// FromPublicKey returns the identity of a secp256k1 public key:
// SHA256(compressed public key).
func FromPublicKey(pub *ec.PublicKey) (Pubkey, error) {
	var p Pubkey
	if pub == nil {
		return p, fmt.Errorf("%w: public key", ErrNilParam)
	}
	copy(p[:], bsvhash.Sha256(pub.Compressed()))
	return p, nil
}

// FromBytes copies a 32-byte slice into a Pubkey.
func FromBytes(b []byte) (Pubkey, error) {
	var p Pubkey
	if len(b) != PubkeyLen {
		return p, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPubkey, PubkeyLen, len(b))
	}
	copy(p[:], b)
	return p, nil
}

// Parse decodes a base58 pubkey string.
func Parse(s string) (Pubkey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("%w: %w", ErrInvalidPubkey, err)
	}
	return FromBytes(b)
}

// Hash returns the Pubkey formed by SHA256(data). Used for fixed, well-known
// ids such as the default program id.
func Hash(data []byte) Pubkey {
	var p Pubkey
	copy(p[:], bsvhash.Sha256(data))
	return p
}

// String returns the base58 encoding.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Bytes returns a copy of the key bytes.
func (p Pubkey) Bytes() []byte {
	b := make([]byte, PubkeyLen)
	copy(b, p[:])
	return b
}

// IsZero reports whether p is the all-zero key.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// MarshalText implements encoding.TextMarshaler.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
