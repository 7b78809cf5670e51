package tokenswap

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/datmassdevs/solana-swift/internal/programs/token"
)

const opSwap = 1

// SwapInstructionParams collects everything the swap op needs. Account
// order and roles are fixed by the program; HostFeeAccount is the only
// optional trailing account.
type SwapInstructionParams struct {
	ProgramID solana.PublicKey

	Pool                  solana.PublicKey
	Authority             solana.PublicKey
	UserTransferAuthority solana.PublicKey
	UserSource            solana.PublicKey
	PoolSource            solana.PublicKey
	PoolDestination       solana.PublicKey
	UserDestination       solana.PublicKey
	PoolMint              solana.PublicKey
	FeeAccount            solana.PublicKey
	HostFeeAccount        *solana.PublicKey

	AmountIn         uint64
	MinimumAmountOut uint64
}

// NewSwapInstruction encodes the token-swap program's swap op: one byte
// opcode, then amount-in and minimum-amount-out as little-endian u64.
func NewSwapInstruction(params SwapInstructionParams) solana.Instruction {
	data := make([]byte, 17)
	data[0] = opSwap
	binary.LittleEndian.PutUint64(data[1:9], params.AmountIn)
	binary.LittleEndian.PutUint64(data[9:17], params.MinimumAmountOut)

	accounts := []*solana.AccountMeta{
		{PublicKey: params.Pool, IsSigner: false, IsWritable: false},
		{PublicKey: params.Authority, IsSigner: false, IsWritable: false},
		{PublicKey: params.UserTransferAuthority, IsSigner: true, IsWritable: false},
		{PublicKey: params.UserSource, IsSigner: false, IsWritable: true},
		{PublicKey: params.PoolSource, IsSigner: false, IsWritable: true},
		{PublicKey: params.PoolDestination, IsSigner: false, IsWritable: true},
		{PublicKey: params.UserDestination, IsSigner: false, IsWritable: true},
		{PublicKey: params.PoolMint, IsSigner: false, IsWritable: true},
		{PublicKey: params.FeeAccount, IsSigner: false, IsWritable: true},
		{PublicKey: token.ProgramID, IsSigner: false, IsWritable: false},
	}
	if params.HostFeeAccount != nil {
		accounts = append(accounts, &solana.AccountMeta{
			PublicKey: *params.HostFeeAccount, IsSigner: false, IsWritable: true,
		})
	}

	return solana.NewInstruction(params.ProgramID, accounts, data)
}
