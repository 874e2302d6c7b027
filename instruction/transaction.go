package instruction

import (
	"fmt"
	"math"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/bitfsorg/fracpay-go/ledger"
)

// Transaction is an ordered list of instructions executed atomically, with
// the signatures that authorize them.
type Transaction struct {
	Instructions []Instruction
	Signatures   []ledger.Signature
}

// NewTransaction creates an unsigned transaction.
func NewTransaction(ixs ...Instruction) *Transaction {
	return &Transaction{Instructions: ixs}
}

// Message returns the bytes that signers sign:
//
//	count(u32) || for each instruction: nAccounts(u8) || accounts(32*n) || data(u32 len || bytes)
func (t *Transaction) Message() ([]byte, error) {
	w := &writer{}
	w.u32(uint32(len(t.Instructions)))
	for i, ix := range t.Instructions {
		if len(ix.Accounts) > math.MaxUint8 {
			return nil, fmt.Errorf("%w: instruction %d has %d", ErrTooManyAccounts, i, len(ix.Accounts))
		}
		if uint64(len(ix.Data)) > maxVecLen {
			return nil, fmt.Errorf("%w: instruction %d data too large", ErrInvalidInstructionData, i)
		}
		w.u8(uint8(len(ix.Accounts)))
		for _, a := range ix.Accounts {
			w.buf = append(w.buf, a[:]...)
		}
		w.bytes(ix.Data)
	}
	return w.buf, nil
}

// Sign appends a signature by priv over the transaction message.
func (t *Transaction) Sign(priv *ec.PrivateKey) error {
	msg, err := t.Message()
	if err != nil {
		return err
	}
	sig, err := ledger.Sign(priv, msg)
	if err != nil {
		return err
	}
	t.Signatures = append(t.Signatures, sig)
	return nil
}
