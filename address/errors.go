package address

import "errors"

var (
	// ErrInvalidPubkey indicates a pubkey is not 32 bytes or not valid base58.
	ErrInvalidPubkey = errors.New("address: invalid pubkey")

	// ErrSeedTooLong indicates a derivation seed exceeds MaxSeedLen bytes.
	ErrSeedTooLong = errors.New("address: seed exceeds maximum length")

	// ErrOnCurve indicates the derived address lies on the secp256k1 curve and
	// therefore cannot be used as a program address.
	ErrOnCurve = errors.New("address: derived address is on curve")

	// ErrNoViableBump indicates no bump in [0, 255] produced an off-curve address.
	ErrNoViableBump = errors.New("address: no viable bump seed")

	// ErrAddressMismatch indicates an address is not the one derived from its
	// seed and bump.
	ErrAddressMismatch = errors.New("address: derived address mismatch")

	// ErrNilParam indicates a required parameter is nil.
	ErrNilParam = errors.New("address: required parameter is nil")
)
