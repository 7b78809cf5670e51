package token

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Account mirrors the on-chain token account layout (165 bytes, little-endian).
type Account struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       solana.PublicKey
}

// Native reports whether the account holds wrapped SOL.
func (a *Account) Native() bool {
	return a.IsNativeOption != 0
}

// DecodeAccount parses raw token account data.
func DecodeAccount(data []byte) (*Account, error) {
	if len(data) != AccountSize {
		return nil, fmt.Errorf("token account data size is not valid, expected: %d, actual: %d", AccountSize, len(data))
	}
	account := &Account{}
	if err := bin.NewBinDecoder(data).Decode(account); err != nil {
		return nil, fmt.Errorf("token account data is not valid: %w", err)
	}
	return account, nil
}

// Mint mirrors the on-chain mint layout (82 bytes, little-endian).
type Mint struct {
	MintAuthorityOption   uint32
	MintAuthority         solana.PublicKey
	Supply                uint64
	Decimals              uint8
	IsInitialized         uint8
	FreezeAuthorityOption uint32
	FreezeAuthority       solana.PublicKey
}

// DecodeMint parses raw mint account data.
func DecodeMint(data []byte) (*Mint, error) {
	if len(data) != MintSize {
		return nil, fmt.Errorf("mint data size is not valid, expected: %d, actual: %d", MintSize, len(data))
	}
	mint := &Mint{}
	if err := bin.NewBinDecoder(data).Decode(mint); err != nil {
		return nil, fmt.Errorf("mint data is not valid: %w", err)
	}
	return mint, nil
}
