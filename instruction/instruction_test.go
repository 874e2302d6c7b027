package instruction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"

	"github.com/bitfsorg/fracpay-go/address"
	"github.com/bitfsorg/fracpay-go/ledger"
)

func makePubkey(seed byte) address.Pubkey {
	var p address.Pubkey
	for i := range p {
		p[i] = seed
	}
	return p
}

func makeSlot(seed byte, bump uint8) address.ProgramAddress {
	return address.ProgramAddress{
		Address: makePubkey(seed),
		Seed:    []byte{seed, seed + 1, seed + 2},
		Bump:    bump,
	}
}

func TestCreateMain_Encoding(t *testing.T) {
	operator := makePubkey(0x01)
	ix := NewCreateMain(operator, makeSlot(0x10, 0xfe), makeSlot(0x20, 0xfd), makeSlot(0x30, 0xfc))

	require.Len(t, ix.Accounts, NumAccounts)
	assert.Equal(t, operator, ix.Accounts[AccountOperator])
	assert.Equal(t, makePubkey(0x10), ix.Accounts[AccountMain])
	assert.Equal(t, makePubkey(0x20), ix.Accounts[AccountPiece])
	assert.Equal(t, makePubkey(0x30), ix.Accounts[AccountRef])

	want := []byte{
		0x00,
		0xfe, 0x03, 0x00, 0x00, 0x00, 0x10, 0x11, 0x12,
		0xfd, 0x03, 0x00, 0x00, 0x00, 0x20, 0x21, 0x22,
		0xfc, 0x03, 0x00, 0x00, 0x00, 0x30, 0x31, 0x32,
	}
	assert.Equal(t, want, ix.Data)

	kind, err := ix.Kind()
	require.NoError(t, err)
	assert.Equal(t, KindCreateMain, kind)

	d, err := DecodeCreateMain(ix.Data)
	require.NoError(t, err)
	assert.Equal(t, &CreateMainData{
		BumpMain:  0xfe,
		SeedMain:  []byte{0x10, 0x11, 0x12},
		BumpPiece: 0xfd,
		SeedPiece: []byte{0x20, 0x21, 0x22},
		BumpRef:   0xfc,
		SeedRef:   []byte{0x30, 0x31, 0x32},
	}, d)
}

func TestCreateRef_Encoding(t *testing.T) {
	ix := NewCreateRef(makePubkey(0x01), makePubkey(0x02), makePubkey(0x03), makeSlot(0x40, 0xff), []byte("alice"))

	assert.Equal(t, []address.Pubkey{makePubkey(0x01), makePubkey(0x02), makePubkey(0x03), makePubkey(0x40)}, ix.Accounts)

	want := []byte{
		0x01,
		0xff, 0x03, 0x00, 0x00, 0x00, 0x40, 0x41, 0x42,
		0x05, 0x00, 0x00, 0x00, 'a', 'l', 'i', 'c', 'e',
	}
	assert.Equal(t, want, ix.Data)

	d, err := DecodeCreateRef(ix.Data)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), d.BumpRef)
	assert.Equal(t, []byte{0x40, 0x41, 0x42}, d.SeedRef)
	assert.Equal(t, []byte("alice"), d.RefSlug)
}

func TestDecode_Errors(t *testing.T) {
	good := NewCreateRef(makePubkey(1), makePubkey(2), makePubkey(3), makeSlot(4, 5), []byte("bob")).Data

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrInvalidInstructionData},
		{"wrong tag", []byte{0x00}, ErrUnknownInstruction},
		{"unknown tag", []byte{0x07}, ErrUnknownInstruction},
		{"missing bump", []byte{0x01}, ErrInvalidInstructionData},
		{"truncated length", []byte{0x01, 0xff, 0x03, 0x00}, ErrInvalidInstructionData},
		{"vector overrun", []byte{0x01, 0xff, 0x09, 0x00, 0x00, 0x00, 0x01}, ErrInvalidInstructionData},
		{"huge vector", []byte{0x01, 0xff, 0xff, 0xff, 0xff, 0xff}, ErrInvalidInstructionData},
		{"truncated", good[:len(good)-1], ErrInvalidInstructionData},
		{"trailing", append(append([]byte{}, good...), 0x00), ErrInvalidInstructionData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCreateRef(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeCreateMain_WrongTag(t *testing.T) {
	data := NewCreateRef(makePubkey(1), makePubkey(2), makePubkey(3), makeSlot(4, 5), nil).Data
	_, err := DecodeCreateMain(data)
	assert.ErrorIs(t, err, ErrUnknownInstruction)
}

func TestInstruction_Account(t *testing.T) {
	ix := Instruction{Accounts: []address.Pubkey{makePubkey(1)}}
	got, err := ix.Account(0)
	require.NoError(t, err)
	assert.Equal(t, makePubkey(1), got)

	_, err = ix.Account(AccountRef)
	assert.ErrorIs(t, err, ErrNotEnoughAccounts)

	_, err = ix.Kind()
	assert.ErrorIs(t, err, ErrInvalidInstructionData)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "CreateMain", KindCreateMain.String())
	assert.Equal(t, "CreateRef", KindCreateRef.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestMessage_Deterministic(t *testing.T) {
	tx := NewTransaction(
		NewCreateMain(makePubkey(1), makeSlot(0x10, 1), makeSlot(0x20, 2), makeSlot(0x30, 3)),
		NewCreateRef(makePubkey(1), makePubkey(0x10), makePubkey(0x20), makeSlot(0x40, 4), []byte("carol")),
	)
	msg, err := tx.Message()
	require.NoError(t, err)

	again, err := tx.Message()
	require.NoError(t, err)
	assert.Equal(t, msg, again)
}

func TestMessage_TooManyAccounts(t *testing.T) {
	ix := Instruction{Accounts: make([]address.Pubkey, 256), Data: []byte{0x00}}
	_, err := NewTransaction(ix).Message()
	assert.ErrorIs(t, err, ErrTooManyAccounts)
}

func TestTransaction_Sign(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	operator, err := address.FromPublicKey(priv.PubKey())
	require.NoError(t, err)

	tx := NewTransaction(NewCreateMain(operator, makeSlot(0x10, 1), makeSlot(0x20, 2), makeSlot(0x30, 3)))
	require.NoError(t, tx.Sign(priv))
	require.Len(t, tx.Signatures, 1)

	msg, err := tx.Message()
	require.NoError(t, err)
	signers, err := ledger.VerifySignatures(msg, tx.Signatures)
	require.NoError(t, err)
	assert.True(t, signers.IsSigner(operator))

	// Any change to the instructions invalidates the signature.
	tx.Instructions[0].Data[1] ^= 0xff
	msg, err = tx.Message()
	require.NoError(t, err)
	_, err = ledger.VerifySignatures(msg, tx.Signatures)
	assert.ErrorIs(t, err, ledger.ErrInvalidSignature)
}
