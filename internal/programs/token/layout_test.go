package token

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAccountRoundTrip(t *testing.T) {
	original := Account{
		Mint:            testKey(t),
		Owner:           testKey(t),
		Amount:          987654321,
		IsNativeOption:  1,
		IsNative:        2039280,
		DelegatedAmount: 5,
	}

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &original))
	require.Equal(t, AccountSize, buf.Len())

	decoded, err := DecodeAccount(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, &original, decoded)
	assert.True(t, decoded.Native())
}

func TestDecodeAccountRejectsWrongSize(t *testing.T) {
	_, err := DecodeAccount(make([]byte, AccountSize-1))
	assert.Error(t, err)
}

func TestDecodeMintRoundTrip(t *testing.T) {
	original := Mint{
		MintAuthorityOption: 1,
		MintAuthority:       testKey(t),
		Supply:              1_000_000_000,
		Decimals:            6,
		IsInitialized:       1,
	}

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &original))
	require.Equal(t, MintSize, buf.Len())

	decoded, err := DecodeMint(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, &original, decoded)
}
