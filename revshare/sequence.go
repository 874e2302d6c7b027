package revshare

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/bitfsorg/fracpay-go/address"
)

// seedPrefixLen is how much of the parent address a chain seed carries.
// Prefix plus the 2-byte index fills address.MaxSeedLen.
const seedPrefixLen = address.MaxSeedLen - CountLen

// RefSeed builds the derivation seed of the REF at index in piece's chain.
// Index 0 is the self-REF created together with the PIECE.
func RefSeed(piece address.Pubkey, index uint16) []byte {
	return chainSeed(piece, index)
}

// PieceSeed builds the derivation seed of the PIECE at index under main.
// Index 0 is the self-PIECE.
func PieceSeed(main address.Pubkey, index uint16) []byte {
	return chainSeed(main, index)
}

func chainSeed(parent address.Pubkey, index uint16) []byte {
	seed := make([]byte, seedPrefixLen+CountLen)
	copy(seed, parent[:seedPrefixLen])
	binary.BigEndian.PutUint16(seed[seedPrefixLen:], index)
	return seed
}

// ChainIndex returns the index carried by seed after checking that seed is
// a chain seed of parent, as built by RefSeed or PieceSeed.
func ChainIndex(parent address.Pubkey, seed []byte) (uint16, error) {
	if len(seed) != seedPrefixLen+CountLen {
		return 0, fmt.Errorf("%w: %d bytes, want %d", ErrInvalidSeed, len(seed), seedPrefixLen+CountLen)
	}
	if !bytes.Equal(seed[:seedPrefixLen], parent[:seedPrefixLen]) {
		return 0, fmt.Errorf("%w: seed does not belong to %s", ErrInvalidSeed, parent)
	}
	return IndexOf(seed)
}

// IndexOf recovers the chain index from a seed built by RefSeed or PieceSeed.
func IndexOf(seed []byte) (uint16, error) {
	if len(seed) < CountLen {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidSeed, len(seed))
	}
	return binary.BigEndian.Uint16(seed[len(seed)-CountLen:]), nil
}
