package ledger

import (
	"fmt"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/bitfsorg/fracpay-go/address"
)

// Signature is one signer's approval of a transaction message.
type Signature struct {
	PublicKey []byte // compressed secp256k1 public key
	Sig       []byte // DER-encoded ECDSA signature over SHA256d(message)
}

// Signers is the set of identities whose signatures verified.
type Signers map[address.Pubkey]struct{}

// IsSigner reports whether key signed the transaction.
func (s Signers) IsSigner(key address.Pubkey) bool {
	_, ok := s[key]
	return ok
}

// Sign signs message with priv.
func Sign(priv *ec.PrivateKey, message []byte) (Signature, error) {
	if priv == nil {
		return Signature{}, fmt.Errorf("%w: private key", ErrNilParam)
	}
	sig, err := priv.Sign(chainhash.DoubleHashB(message))
	if err != nil {
		return Signature{}, fmt.Errorf("ledger: sign: %w", err)
	}
	return Signature{
		PublicKey: priv.PubKey().Compressed(),
		Sig:       sig.Serialize(),
	}, nil
}

// VerifySignatures checks every signature against message and returns the
// identities of the signers. Any invalid signature fails the whole set.
func VerifySignatures(message []byte, sigs []Signature) (Signers, error) {
	digest := chainhash.DoubleHashB(message)
	signers := make(Signers, len(sigs))
	for i, s := range sigs {
		pub, err := ec.PublicKeyFromBytes(s.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("%w: signature %d: public key: %w", ErrInvalidSignature, i, err)
		}
		sig, err := ec.ParseDERSignature(s.Sig)
		if err != nil {
			return nil, fmt.Errorf("%w: signature %d: %w", ErrInvalidSignature, i, err)
		}
		if !sig.Verify(digest, pub) {
			return nil, fmt.Errorf("%w: signature %d does not verify", ErrInvalidSignature, i)
		}
		key, err := address.FromPublicKey(pub)
		if err != nil {
			return nil, err
		}
		signers[key] = struct{}{}
	}
	return signers, nil
}
