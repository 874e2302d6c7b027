package wallet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// KeystoreFile is the name of the encrypted seed file in the data directory.
const KeystoreFile = "wallet.enc"

// KeystorePath returns the keystore location inside dataDir.
func KeystorePath(dataDir string) string {
	return filepath.Join(dataDir, KeystoreFile)
}

// SaveKeystore encrypts seed and writes it to path. An existing keystore is
// never overwritten.
func SaveKeystore(path string, seed []byte, password string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrKeystoreExists, path)
	}
	data, err := EncryptSeed(seed, password)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("wallet: mkdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("wallet: write keystore: %w", err)
	}
	return nil
}

// LoadKeystore reads and decrypts the seed at path.
func LoadKeystore(path, password string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrKeystoreNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("wallet: read keystore: %w", err)
	}
	return DecryptSeed(data, password)
}

// Open loads the keystore at path and returns its wallet.
func Open(path, password string) (*Wallet, error) {
	seed, err := LoadKeystore(path, password)
	if err != nil {
		return nil, err
	}
	return New(seed)
}
