package wallet

import (
	"fmt"

	bip32 "github.com/bsv-blockchain/go-sdk/compat/bip32"
	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	chaincfg "github.com/bsv-blockchain/go-sdk/transaction/chaincfg"

	"github.com/bitfsorg/fracpay-go/address"
)

const (
	// BIP44 path constants.
	PurposeBIP44     = 44
	CoinTypeFracpay  = 236
	OperatorChain    = 0
	OperatorKeyIndex = 0

	// BIP32 hardened offset.
	Hardened = 0x80000000
)

// Wallet is an HD wallet holding operator keys.
type Wallet struct {
	master *bip32.ExtendedKey
}

// KeyPair is a derived operator key with its ledger identity.
type KeyPair struct {
	PrivateKey *ec.PrivateKey `json:"-"`
	PublicKey  *ec.PublicKey  `json:"-"`
	Pubkey     address.Pubkey `json:"pubkey"`
	Path       string         `json:"path"`
}

// New creates a Wallet from a BIP39 seed.
func New(seed []byte) (*Wallet, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	master, err := bip32.NewMaster(seed, &chaincfg.MainNet)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	return &Wallet{master: master}, nil
}

// DeriveOperatorKey derives the operator key of account at
// m/44'/236'/account'/0/0.
func (w *Wallet) DeriveOperatorKey(account uint32) (*KeyPair, error) {
	if account >= Hardened {
		return nil, fmt.Errorf("%w: %d", ErrAccountOutOfRange, account)
	}

	key := w.master
	steps := []struct {
		name  string
		index uint32
	}{
		{"purpose", PurposeBIP44 + Hardened},
		{"coin type", CoinTypeFracpay + Hardened},
		{"account", account + Hardened},
		{"chain", OperatorChain},
		{"index", OperatorKeyIndex},
	}
	for _, s := range steps {
		var err error
		key, err = key.Child(s.index)
		if err != nil {
			return nil, fmt.Errorf("%w: %s derivation: %w", ErrDerivationFailed, s.name, err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("%w: extract private key: %w", ErrDerivationFailed, err)
	}
	pub := priv.PubKey()
	id, err := address.FromPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	return &KeyPair{
		PrivateKey: priv,
		PublicKey:  pub,
		Pubkey:     id,
		Path:       fmt.Sprintf("m/%d'/%d'/%d'/%d/%d", PurposeBIP44, CoinTypeFracpay, account, OperatorChain, OperatorKeyIndex),
	}, nil
}
