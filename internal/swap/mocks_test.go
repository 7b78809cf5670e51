package swap

import (
	"context"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/datmassdevs/solana-swift/internal/blockchain/solbc"
	"github.com/datmassdevs/solana-swift/internal/programs/token"
	"github.com/datmassdevs/solana-swift/internal/programs/tokenswap"
	"github.com/datmassdevs/solana-swift/internal/wallet"
)

const defaultTestTimeout = 5 * time.Second

// MockClient implements the Client interface.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetAccountState(ctx context.Context, pubkey solana.PublicKey) (*solbc.AccountState, error) {
	args := m.Called(ctx, pubkey)
	state, _ := args.Get(0).(*solbc.AccountState)
	return state, args.Error(1)
}

func (m *MockClient) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	args := m.Called(ctx, dataSize)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockClient) GetRecentBlockhash(ctx context.Context) (solana.Hash, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.Hash), args.Error(1)
}

func (m *MockClient) GetFeeRatePerSignature(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockClient) Broadcast(ctx context.Context, instructions []solana.Instruction, signers []solana.PrivateKey, payer solana.PublicKey, simulate bool) (string, error) {
	args := m.Called(ctx, instructions, signers, payer, simulate)
	return args.String(0), args.Error(1)
}

// MockPoolResolver implements the PoolResolver interface.
type MockPoolResolver struct {
	mock.Mock
}

func (m *MockPoolResolver) FindPool(ctx context.Context, sourceMint, destinationMint solana.PublicKey) (*tokenswap.Pool, error) {
	args := m.Called(ctx, sourceMint, destinationMint)
	pool, _ := args.Get(0).(*tokenswap.Pool)
	return pool, args.Error(1)
}

func (m *MockPoolResolver) LoadReserves(ctx context.Context, pool *tokenswap.Pool) error {
	args := m.Called(ctx, pool)
	return args.Error(0)
}

// MockFeeRelay implements the FeeRelay interface.
type MockFeeRelay struct {
	mock.Mock
}

func (m *MockFeeRelay) FeePayer(ctx context.Context) (solana.PublicKey, error) {
	args := m.Called(ctx)
	return args.Get(0).(solana.PublicKey), args.Error(1)
}

func (m *MockFeeRelay) SubmitSwap(ctx context.Context, params *RelayedSwapParams) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

// queueKeyGenerator hands out a fixed sequence of keys so tests know which
// ephemeral accounts the engine will create.
type queueKeyGenerator struct {
	keys []solana.PrivateKey
	next int
}

func (g *queueKeyGenerator) NewKey() (solana.PrivateKey, error) {
	key := g.keys[g.next]
	g.next++
	return key, nil
}

// MockedContext creates a context with a timeout for tests.
func MockedContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultTestTimeout)
}

// MockedWallet creates a test wallet.
func MockedWallet() *wallet.Wallet {
	w := solana.NewWallet()
	return wallet.FromPrivateKey(w.PrivateKey)
}

func mockedKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key
}

func mockedPubkey(t *testing.T) solana.PublicKey {
	t.Helper()
	return mockedKey(t).PublicKey()
}

// mockedPool builds a resolved pool with live reserves for the mint pair.
func mockedPool(t *testing.T, mintA, mintB solana.PublicKey, reserveA, reserveB uint64) *tokenswap.Pool {
	t.Helper()
	return &tokenswap.Pool{
		Address:    mockedPubkey(t),
		Authority:  mockedPubkey(t),
		MintA:      mintA,
		MintB:      mintB,
		VaultA:     mockedPubkey(t),
		VaultB:     mockedPubkey(t),
		PoolMint:   mockedPubkey(t),
		FeeAccount: mockedPubkey(t),
		Fees: tokenswap.Fees{
			TradeFeeNumerator:   25,
			TradeFeeDenominator: 10000,
		},
		ReserveA: reserveA,
		ReserveB: reserveB,
	}
}

// tokenAccountState is the client-side view of an SPL token account.
func tokenAccountState(owner, mint solana.PublicKey, amount uint64) *solbc.AccountState {
	return &solbc.AccountState{
		Owner:    token.ProgramID,
		Lamports: 2_039_280,
		Token: &token.Account{
			Mint:   mint,
			Owner:  owner,
			Amount: amount,
			State:  1,
		},
	}
}

// nativeAccountState is a plain system-owned wallet account.
func nativeAccountState(lamports uint64) *solbc.AccountState {
	return &solbc.AccountState{
		Owner:    solana.SystemProgramID,
		Lamports: lamports,
	}
}
