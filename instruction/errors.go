package instruction

import "errors"

var (
	// ErrInvalidInstructionData indicates instruction data is truncated or malformed.
	ErrInvalidInstructionData = errors.New("instruction: invalid instruction data")

	// ErrUnknownInstruction indicates an unrecognized instruction tag.
	ErrUnknownInstruction = errors.New("instruction: unknown instruction")

	// ErrNotEnoughAccounts indicates an instruction lists fewer accounts than it needs.
	ErrNotEnoughAccounts = errors.New("instruction: not enough accounts")

	// ErrTooManyAccounts indicates an instruction lists more accounts than fit the wire format.
	ErrTooManyAccounts = errors.New("instruction: too many accounts")
)
