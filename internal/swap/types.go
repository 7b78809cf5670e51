// Package swap assembles complete token-swap transactions: it prepares the
// source and destination legs, computes slippage-guarded amounts and emits
// an ordered instruction bundle for direct broadcast or fee-relay
// submission.
package swap

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/datmassdevs/solana-swift/internal/blockchain/solbc"
	"github.com/datmassdevs/solana-swift/internal/programs/tokenswap"
	"github.com/datmassdevs/solana-swift/internal/wallet"
)

// Request describes one swap call. Immutable once handed to the engine.
type Request struct {
	// Owner overrides the engine's default signing wallet when set.
	Owner *wallet.Wallet

	// Pool pins a specific pool; it is used only when its mints match
	// the request, otherwise a matching pool is looked up.
	Pool *tokenswap.Pool

	Source          solana.PublicKey
	SourceMint      solana.PublicKey
	Destination     *solana.PublicKey
	DestinationMint solana.PublicKey

	// Slippage is the fractional tolerance applied to the expected
	// output, e.g. 0.01 for one percent.
	Slippage float64
	Amount   uint64

	Simulate bool
}

// Result is the outcome of a successful swap call.
type Result struct {
	TransactionID string
	// NewWallet is the base58 address of an associated token account
	// materialized for the caller during this swap, if any.
	NewWallet string
}

// AccountInstructions is the outcome of preparing one leg of a swap: the
// account to plug into the swap instruction, the setup and cleanup
// instructions bracketing it, and any keys the leg introduced.
type AccountInstructions struct {
	Account solana.PublicKey

	Setup   []solana.Instruction
	Cleanup []solana.Instruction

	// Signers holds keys that must co-sign the transaction because this
	// leg created fresh accounts.
	Signers []solana.PrivateKey

	// NewWallet is set when the leg materialized an associated account
	// the caller should learn about.
	NewWallet string

	// Secret is the private key of a freshly created temporary account,
	// retained for relay scenarios. Zero-length otherwise.
	Secret solana.PrivateKey
}

// Client is the slice of the RPC adapter the engine depends on.
type Client interface {
	GetAccountState(ctx context.Context, pubkey solana.PublicKey) (*solbc.AccountState, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error)
	GetRecentBlockhash(ctx context.Context) (solana.Hash, error)
	GetFeeRatePerSignature(ctx context.Context) (uint64, error)
	Broadcast(ctx context.Context, instructions []solana.Instruction, signers []solana.PrivateKey, payer solana.PublicKey, simulate bool) (string, error)
}

// PoolResolver finds pools and refreshes their reserves.
type PoolResolver interface {
	FindPool(ctx context.Context, sourceMint, destinationMint solana.PublicKey) (*tokenswap.Pool, error)
	LoadReserves(ctx context.Context, pool *tokenswap.Pool) error
}

// FeeRelay is a third party paying transaction fees on the user's behalf
// in exchange for an on-chain compensation swap.
type FeeRelay interface {
	FeePayer(ctx context.Context) (solana.PublicKey, error)
	SubmitSwap(ctx context.Context, params *RelayedSwapParams) (string, error)
}

// RelayedSwapParams is the bundle handed to the fee relay: the full
// instruction list, the detached signature of the temporary fee-payer
// account over the unsigned message, and the amounts the relay must hold
// both swaps to.
type RelayedSwapParams struct {
	Instructions []solana.Instruction
	Blockhash    solana.Hash
	FeePayer     solana.PublicKey

	// Signature is the temporary fee-payer account's signature over the
	// unsigned message.
	Signature solana.Signature

	// AccountSecrets are keys of temporary accounts created client-side;
	// the relay countersigns account creation with them.
	AccountSecrets []solana.PrivateKey

	MinimumOut             uint64
	CompensationMinimumOut uint64

	Simulate bool
}
