// Package processor executes signed fracpay transactions against a ledger
// store. Every instruction in a transaction runs inside one store update, so
// a failure anywhere leaves the ledger untouched.
package processor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bitfsorg/fracpay-go/address"
	"github.com/bitfsorg/fracpay-go/instruction"
	"github.com/bitfsorg/fracpay-go/ledger"
)

// DefaultProgramID is the program id used when Options leaves it unset.
var DefaultProgramID = address.Hash([]byte("fracpay"))

// Options configures a Processor. Zero fields take defaults.
type Options struct {
	ProgramID address.Pubkey
	Rent      ledger.Rent
	Logger    *zerolog.Logger
}

// Processor runs transactions against a Store.
type Processor struct {
	store     ledger.Store
	programID address.Pubkey
	rent      ledger.Rent
	log       zerolog.Logger
}

// New creates a Processor over store.
func New(store ledger.Store, opts Options) (*Processor, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", ErrNilParam)
	}
	p := &Processor{
		store:     store,
		programID: opts.ProgramID,
		rent:      opts.Rent,
		log:       zerolog.Nop(),
	}
	if p.programID.IsZero() {
		p.programID = DefaultProgramID
	}
	if p.rent == (ledger.Rent{}) {
		p.rent = ledger.DefaultRent()
	}
	if opts.Logger != nil {
		p.log = *opts.Logger
	}
	return p, nil
}

// ProgramID returns the id that owns every account the processor creates.
func (p *Processor) ProgramID() address.Pubkey { return p.programID }

// Rent returns the rent parameters used to fund new accounts.
func (p *Processor) Rent() ledger.Rent { return p.rent }

// Execute verifies tx's signatures and runs its instructions in order. The
// first failing instruction aborts the transaction and discards every write.
func (p *Processor) Execute(ctx context.Context, tx *instruction.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if tx == nil {
		return fmt.Errorf("%w: transaction", ErrNilParam)
	}
	msg, err := tx.Message()
	if err != nil {
		return err
	}
	signers, err := ledger.VerifySignatures(msg, tx.Signatures)
	if err != nil {
		return err
	}

	return p.store.Update(func(ltx ledger.Tx) error {
		for i := range tx.Instructions {
			ix := &tx.Instructions[i]
			inv := &Invocation{
				ProgramID: p.programID,
				Rent:      p.rent,
				Signers:   signers,
				Tx:        ltx,
				Log:       p.log.With().Int("instruction", i).Logger(),
			}
			if err := dispatch(inv, ix); err != nil {
				return fmt.Errorf("instruction %d: %w", i, err)
			}
		}
		return nil
	})
}

func dispatch(inv *Invocation, ix *instruction.Instruction) error {
	kind, err := ix.Kind()
	if err != nil {
		return err
	}
	var keys [instruction.NumAccounts]address.Pubkey
	for i := range keys {
		if keys[i], err = ix.Account(i); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}
	operator := keys[instruction.AccountOperator]
	mainKey := keys[instruction.AccountMain]
	pieceKey := keys[instruction.AccountPiece]
	refKey := keys[instruction.AccountRef]

	switch kind {
	case instruction.KindCreateMain:
		d, err := instruction.DecodeCreateMain(ix.Data)
		if err != nil {
			return err
		}
		inv.Log.Debug().Str("kind", kind.String()).Stringer("operator", operator).Msg("dispatch")
		return CreateMain(inv, CreateMainParams{
			Operator:         operator,
			Main:             address.ProgramAddress{Address: mainKey, Seed: d.SeedMain, Bump: d.BumpMain},
			Piece:            address.ProgramAddress{Address: pieceKey, Seed: d.SeedPiece, Bump: d.BumpPiece},
			Ref:              address.ProgramAddress{Address: refKey, Seed: d.SeedRef, Bump: d.BumpRef},
			PieceLabelSource: d.SeedMain,
		})
	case instruction.KindCreateRef:
		d, err := instruction.DecodeCreateRef(ix.Data)
		if err != nil {
			return err
		}
		inv.Log.Debug().Str("kind", kind.String()).Stringer("operator", operator).Msg("dispatch")
		return CreateRef(inv, CreateRefParams{
			Operator: operator,
			Main:     mainKey,
			Piece:    pieceKey,
			Ref:      address.ProgramAddress{Address: refKey, Seed: d.SeedRef, Bump: d.BumpRef},
			RefSlug:  d.RefSlug,
		})
	}
	return fmt.Errorf("%w: %s", instruction.ErrUnknownInstruction, kind)
}
