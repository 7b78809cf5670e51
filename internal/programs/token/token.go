// Package token builds and decodes SPL token program instructions and
// account state used by the swap pipeline.
package token

import (
	"github.com/gagliardetto/solana-go"
)

// ProgramID is the SPL token program.
var ProgramID = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")

// WrappedNativeMint is the mint of SOL held in token form. Closing an
// account of this mint returns the lamports to the close destination.
var WrappedNativeMint = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

// Account data sizes, fixed by the on-chain program.
const (
	AccountSize = 165
	MintSize    = 82
)

// Instruction opcodes (first byte of instruction data).
const (
	opInitializeMint    = 0
	opInitializeAccount = 1
	opTransfer          = 3
	opApprove           = 4
	opMintTo            = 7
	opCloseAccount      = 9
)
