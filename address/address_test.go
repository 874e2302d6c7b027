package address

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

func makePubkey(seed byte) Pubkey {
	var p Pubkey
	for i := range p {
		p[i] = seed
	}
	return p
}

func TestFromPublicKey(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)

	p1, err := FromPublicKey(priv.PubKey())
	require.NoError(t, err)
	p2, err := FromPublicKey(priv.PubKey())
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.False(t, p1.IsZero())

	other, err := ec.NewPrivateKey()
	require.NoError(t, err)
	p3, err := FromPublicKey(other.PubKey())
	require.NoError(t, err)
	assert.NotEqual(t, p1, p3)
}

func TestFromPublicKey_Nil(t *testing.T) {
	_, err := FromPublicKey(nil)
	assert.ErrorIs(t, err, ErrNilParam)
}

func TestParse_RoundTrip(t *testing.T) {
	for _, seed := range []byte{0x00, 0x01, 0x7f, 0xff} {
		p := makePubkey(seed)
		parsed, err := Parse(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not base58", "0OIl"},
		{"too short", "3mJr7AoUXx2Wqd"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			assert.ErrorIs(t, err, ErrInvalidPubkey)
		})
	}
}

func TestFromBytes_WrongSize(t *testing.T) {
	_, err := FromBytes(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidPubkey)
}

func TestPubkey_TextMarshal(t *testing.T) {
	p := makePubkey(0x42)
	text, err := p.MarshalText()
	require.NoError(t, err)

	var decoded Pubkey
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, p, decoded)
}

func TestPubkey_BytesIsCopy(t *testing.T) {
	p := makePubkey(0x01)
	b := p.Bytes()
	b[0] = 0xff
	assert.Equal(t, byte(0x01), p[0])
}

func TestFindProgramAddress_Deterministic(t *testing.T) {
	programID := Hash([]byte("program"))

	a, err := FindProgramAddress(programID, []byte("work-1"))
	require.NoError(t, err)
	b, err := FindProgramAddress(programID, []byte("work-1"))
	require.NoError(t, err)

	assert.Equal(t, a.Address, b.Address)
	assert.Equal(t, a.Bump, b.Bump)
	assert.Equal(t, []byte("work-1"), a.Seed)
	assert.False(t, isOnCurve(a.Address))
	require.NoError(t, a.Verify(programID))
}

func TestFindProgramAddress_DistinctSeeds(t *testing.T) {
	programID := Hash([]byte("program"))
	seen := make(map[Pubkey]bool)
	for i := 0; i < 16; i++ {
		pa, err := FindProgramAddress(programID, []byte{byte(i)})
		require.NoError(t, err)
		assert.False(t, seen[pa.Address], "collision at seed %d", i)
		seen[pa.Address] = true
	}
}

func TestFindProgramAddress_DistinctPrograms(t *testing.T) {
	a, err := FindProgramAddress(Hash([]byte("a")), []byte("seed"))
	require.NoError(t, err)
	b, err := FindProgramAddress(Hash([]byte("b")), []byte("seed"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Address, b.Address)
}

func TestDeriveProgramAddress_SeedTooLong(t *testing.T) {
	_, err := DeriveProgramAddress(Hash([]byte("p")), bytes.Repeat([]byte{1}, MaxSeedLen+1), 255)
	assert.ErrorIs(t, err, ErrSeedTooLong)

	_, err = FindProgramAddress(Hash([]byte("p")), bytes.Repeat([]byte{1}, MaxSeedLen+1))
	assert.ErrorIs(t, err, ErrSeedTooLong)
}

func TestDeriveProgramAddress_MaxSeedOK(t *testing.T) {
	_, err := FindProgramAddress(Hash([]byte("p")), bytes.Repeat([]byte{1}, MaxSeedLen))
	assert.NoError(t, err)
}

func TestDeriveProgramAddress_OnCurveRejected(t *testing.T) {
	programID := Hash([]byte("program"))
	var onCurve, offCurve int
	for bump := 0; bump < 256; bump++ {
		_, err := DeriveProgramAddress(programID, []byte("x"), uint8(bump))
		switch {
		case err == nil:
			offCurve++
		default:
			require.ErrorIs(t, err, ErrOnCurve)
			onCurve++
		}
	}
	// Roughly half of all x-coordinates are on secp256k1.
	assert.Greater(t, onCurve, 0)
	assert.Greater(t, offCurve, 0)
}

func TestProgramAddress_VerifyMismatch(t *testing.T) {
	programID := Hash([]byte("program"))
	pa, err := FindProgramAddress(programID, []byte("seed"))
	require.NoError(t, err)

	pa.Address = makePubkey(0x09)
	assert.ErrorIs(t, pa.Verify(programID), ErrAddressMismatch)
}

func TestIsOnCurve_RealKey(t *testing.T) {
	priv, err := ec.NewPrivateKey()
	require.NoError(t, err)
	compressed := priv.PubKey().Compressed()

	var x Pubkey
	copy(x[:], compressed[1:])
	assert.True(t, isOnCurve(x))
}
