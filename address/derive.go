package address

import (
	"errors"
	"fmt"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// MaxSeedLen is the maximum length of a derivation seed.
const MaxSeedLen = 32

const pdaMarker = "ProgramDerivedAddress"

// ProgramAddress is a derived address together with the parameters that
// produced it.
type ProgramAddress struct {
	Address Pubkey
	Seed    []byte
	Bump    uint8
}

// DeriveProgramAddress computes SHA256(seed || bump || programID || marker).
// The result is rejected with ErrOnCurve when it is a valid secp256k1
// x-coordinate, so that no private key can sign for a program address.
func DeriveProgramAddress(programID Pubkey, seed []byte, bump uint8) (Pubkey, error) {
	if len(seed) > MaxSeedLen {
		return Pubkey{}, fmt.Errorf("%w: %d > %d", ErrSeedTooLong, len(seed), MaxSeedLen)
	}

	preimage := make([]byte, 0, len(seed)+1+PubkeyLen+len(pdaMarker))
	preimage = append(preimage, seed...)
	preimage = append(preimage, bump)
	preimage = append(preimage, programID[:]...)
	preimage = append(preimage, pdaMarker...)

	var p Pubkey
	copy(p[:], bsvhash.Sha256(preimage))
	if isOnCurve(p) {
		return Pubkey{}, ErrOnCurve
	}
	return p, nil
}

// FindProgramAddress searches bumps from 255 down to 0 and returns the first
// off-curve address for seed.
func FindProgramAddress(programID Pubkey, seed []byte) (ProgramAddress, error) {
	for bump := 255; bump >= 0; bump-- {
		addr, err := DeriveProgramAddress(programID, seed, uint8(bump))
		if errors.Is(err, ErrOnCurve) {
			continue
		}
		if err != nil {
			return ProgramAddress{}, err
		}
		s := make([]byte, len(seed))
		copy(s, seed)
		return ProgramAddress{Address: addr, Seed: s, Bump: uint8(bump)}, nil
	}
	return ProgramAddress{}, ErrNoViableBump
}

// Verify reports whether pa.Address is the address derived from pa.Seed and
// pa.Bump under programID.
func (pa ProgramAddress) Verify(programID Pubkey) error {
	derived, err := DeriveProgramAddress(programID, pa.Seed, pa.Bump)
	if err != nil {
		return err
	}
	if derived != pa.Address {
		return fmt.Errorf("%w: derived %s, expected %s", ErrAddressMismatch, derived, pa.Address)
	}
	return nil
}

// isOnCurve reports whether p, read as an even-Y compressed point, is on the
// secp256k1 curve.
func isOnCurve(p Pubkey) bool {
	compressed := make([]byte, 0, 1+PubkeyLen)
	compressed = append(compressed, 0x02)
	compressed = append(compressed, p[:]...)
	_, err := ec.PublicKeyFromBytes(compressed)
	return err == nil
}
