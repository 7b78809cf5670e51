package token

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) solana.PublicKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key.PublicKey()
}

func TestInitializeMintEncoding(t *testing.T) {
	mint := testKey(t)
	authority := testKey(t)
	freeze := testKey(t)

	ix := InitializeMint(mint, 6, authority, &freeze)
	data, err := ix.Data()
	require.NoError(t, err)

	require.Len(t, data, 67)
	assert.EqualValues(t, opInitializeMint, data[0])
	assert.EqualValues(t, 6, data[1])
	assert.Equal(t, authority.Bytes(), data[2:34])
	assert.EqualValues(t, 1, data[34])
	assert.Equal(t, freeze.Bytes(), data[35:67])

	accounts := ix.Accounts()
	require.Len(t, accounts, 2)
	assert.True(t, accounts[0].IsWritable)
	assert.False(t, accounts[0].IsSigner)
	assert.Equal(t, solana.SysVarRentPubkey, accounts[1].PublicKey)
}

func TestInitializeMintWithoutFreezeAuthority(t *testing.T) {
	ix := InitializeMint(testKey(t), 9, testKey(t), nil)
	data, err := ix.Data()
	require.NoError(t, err)

	// Fixed width: presence flag zero, freeze slot zero-filled.
	require.Len(t, data, 67)
	assert.EqualValues(t, 0, data[34])
	assert.Equal(t, make([]byte, 32), data[35:67])
}

func TestInitializeAccountEncoding(t *testing.T) {
	account := testKey(t)
	mint := testKey(t)
	owner := testKey(t)

	ix := InitializeAccount(account, mint, owner)
	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{opInitializeAccount}, data)

	accounts := ix.Accounts()
	require.Len(t, accounts, 4)
	assert.Equal(t, account, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsWritable)
	assert.Equal(t, mint, accounts[1].PublicKey)
	assert.False(t, accounts[1].IsWritable)
	assert.Equal(t, owner, accounts[2].PublicKey)
	assert.Equal(t, solana.SysVarRentPubkey, accounts[3].PublicKey)
}

func TestTransferEncoding(t *testing.T) {
	ix := Transfer(testKey(t), testKey(t), testKey(t), 123456789)
	data, err := ix.Data()
	require.NoError(t, err)

	require.Len(t, data, 9)
	assert.EqualValues(t, opTransfer, data[0])
	assert.EqualValues(t, 123456789, binary.LittleEndian.Uint64(data[1:]))

	accounts := ix.Accounts()
	require.Len(t, accounts, 3)
	assert.True(t, accounts[0].IsWritable)
	assert.True(t, accounts[1].IsWritable)
	assert.True(t, accounts[2].IsSigner)
	assert.True(t, accounts[2].IsWritable)
}

func TestApproveEncoding(t *testing.T) {
	account := testKey(t)
	delegate := testKey(t)
	owner := testKey(t)

	ix := Approve(account, delegate, owner, 10)
	data, err := ix.Data()
	require.NoError(t, err)

	require.Len(t, data, 9)
	assert.EqualValues(t, opApprove, data[0])
	assert.EqualValues(t, 10, binary.LittleEndian.Uint64(data[1:]))

	accounts := ix.Accounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, account, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsWritable)
	assert.Equal(t, delegate, accounts[1].PublicKey)
	assert.False(t, accounts[1].IsSigner)
	assert.False(t, accounts[1].IsWritable)
	assert.Equal(t, owner, accounts[2].PublicKey)
	assert.True(t, accounts[2].IsSigner)
}

func TestMintToEncoding(t *testing.T) {
	ix := MintTo(testKey(t), testKey(t), testKey(t), 42)
	data, err := ix.Data()
	require.NoError(t, err)

	require.Len(t, data, 9)
	assert.EqualValues(t, opMintTo, data[0])
	assert.EqualValues(t, 42, binary.LittleEndian.Uint64(data[1:]))

	accounts := ix.Accounts()
	require.Len(t, accounts, 3)
	assert.True(t, accounts[2].IsSigner)
}

func TestCloseAccountEncoding(t *testing.T) {
	account := testKey(t)
	destination := testKey(t)
	owner := testKey(t)

	ix := CloseAccount(account, destination, owner)
	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, []byte{opCloseAccount}, data)

	accounts := ix.Accounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, account, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsWritable)
	assert.Equal(t, destination, accounts[1].PublicKey)
	assert.True(t, accounts[1].IsWritable)
	assert.Equal(t, owner, accounts[2].PublicKey)
	assert.False(t, accounts[2].IsWritable)
	assert.False(t, accounts[2].IsSigner)
}

func TestEncodingIsDeterministic(t *testing.T) {
	source := testKey(t)
	destination := testKey(t)
	owner := testKey(t)

	first, err := Transfer(source, destination, owner, 7).Data()
	require.NoError(t, err)
	second, err := Transfer(source, destination, owner, 7).Data()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
