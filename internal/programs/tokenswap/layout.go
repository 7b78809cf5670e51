// Package tokenswap is the client side of the SPL token-swap AMM program:
// pool state decoding, pool lookup, the constant-product quote math and the
// swap instruction encoder.
package tokenswap

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ProgramID is the deployed token-swap program.
var ProgramID = solana.MustPublicKeyFromBase58("SwaPpA9LAaLfeLi3a68M4DjnLqgtticKg6CnyNwgAC8")

// SwapLayoutSize is the exact byte size of a pool state account.
const SwapLayoutSize = 324

// Curve types understood by the program. Only constant product pools are
// quoted here.
const (
	CurveConstantProduct = 0
	CurveConstantPrice   = 1
	CurveStable          = 2
	CurveOffset          = 3
)

// Fees mirrors the fee block of the pool state.
type Fees struct {
	TradeFeeNumerator           uint64
	TradeFeeDenominator         uint64
	OwnerTradeFeeNumerator      uint64
	OwnerTradeFeeDenominator    uint64
	OwnerWithdrawFeeNumerator   uint64
	OwnerWithdrawFeeDenominator uint64
	HostFeeNumerator            uint64
	HostFeeDenominator          uint64
}

// Calculator is the curve-specific parameter block.
type Calculator struct {
	Data1 uint64
	Data2 uint64
	Data3 uint64
	Data4 uint64
}

// SwapCurve tags the curve type with its parameters.
type SwapCurve struct {
	CurveType  int8
	Calculator Calculator
}

// SwapLayout mirrors the on-chain pool state account (324 bytes, LE).
type SwapLayout struct {
	Version        int8
	IsInitialized  int8
	BumpSeed       int8
	TokenProgramId solana.PublicKey
	SwapA          solana.PublicKey
	SwapB          solana.PublicKey
	PoolToken      solana.PublicKey
	TokenA         solana.PublicKey
	TokenB         solana.PublicKey
	PoolFeeAccount solana.PublicKey
	Fees           Fees
	SwapCurve      SwapCurve
}

// DecodeSwapLayout parses a raw pool state account.
func DecodeSwapLayout(data []byte) (*SwapLayout, error) {
	if len(data) != SwapLayoutSize {
		return nil, fmt.Errorf("tokenswap account data size is not valid, expected: %d, actual: %d", SwapLayoutSize, len(data))
	}
	layout := &SwapLayout{}
	if err := bin.NewBinDecoder(data).Decode(layout); err != nil {
		return nil, fmt.Errorf("tokenswap account data is not valid: %w", err)
	}
	return layout, nil
}
