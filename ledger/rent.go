package ledger

// AccountStorageOverhead is charged on top of every account's data size.
const AccountStorageOverhead = 128

// Default rent parameters.
const (
	DefaultLamportsPerByteYear = 3480
	DefaultExemptionYears      = 2
)

// Rent holds the storage economics used to fund new accounts.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionYears      uint64
}

// DefaultRent returns the default rent parameters.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionYears:      DefaultExemptionYears,
	}
}

// MinimumBalance returns the lamports an account of size bytes must hold to
// be exempt from rent.
func (r Rent) MinimumBalance(size int) uint64 {
	return (AccountStorageOverhead + uint64(size)) * r.LamportsPerByteYear * r.ExemptionYears
}
