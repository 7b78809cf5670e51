package tokenswap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/datmassdevs/solana-swift/internal/blockchain/solbc"
)

var (
	// ErrPoolNotFound means no pool of the program trades the mint pair.
	ErrPoolNotFound = errors.New("no matching pool for mint pair")
)

// Pool is the resolved view of one AMM pool: addresses from the state
// account plus the derived authority and, once loaded, live reserves.
type Pool struct {
	Address   solana.PublicKey
	Authority solana.PublicKey

	MintA solana.PublicKey
	MintB solana.PublicKey

	// Reserve token accounts held by the pool, one per mint.
	VaultA solana.PublicKey
	VaultB solana.PublicKey

	PoolMint   solana.PublicKey
	FeeAccount solana.PublicKey

	Fees      Fees
	CurveType int8

	// Live balances of VaultA / VaultB. Zero until LoadReserves.
	ReserveA uint64
	ReserveB uint64
}

// Matches reports whether the pool trades exactly the given mint pair, in
// either orientation.
func (p *Pool) Matches(mintX, mintY solana.PublicKey) bool {
	if p.MintA.Equals(mintX) && p.MintB.Equals(mintY) {
		return true
	}
	return p.MintA.Equals(mintY) && p.MintB.Equals(mintX)
}

// orient returns in/out reserves and vaults for a swap entering the pool
// with sourceMint.
func (p *Pool) orient(sourceMint solana.PublicKey) (reserveIn, reserveOut uint64, vaultIn, vaultOut solana.PublicKey, err error) {
	switch {
	case p.MintA.Equals(sourceMint):
		return p.ReserveA, p.ReserveB, p.VaultA, p.VaultB, nil
	case p.MintB.Equals(sourceMint):
		return p.ReserveB, p.ReserveA, p.VaultB, p.VaultA, nil
	default:
		return 0, 0, solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("mint %s is not traded by pool %s", sourceMint, p.Address)
	}
}

// SourceVault returns the pool token account receiving the input side of a
// swap entering with sourceMint.
func (p *Pool) SourceVault(sourceMint solana.PublicKey) (solana.PublicKey, error) {
	_, _, in, _, err := p.orient(sourceMint)
	return in, err
}

// DestinationVault returns the pool token account paying the output side.
func (p *Pool) DestinationVault(sourceMint solana.PublicKey) (solana.PublicKey, error) {
	_, _, _, out, err := p.orient(sourceMint)
	return out, err
}

// PoolManager resolves pools on chain and refreshes their reserves.
type PoolManager struct {
	client    Client
	logger    *zap.Logger
	programID solana.PublicKey
}

// Client is the slice of the RPC adapter the pool manager needs.
type Client interface {
	ProgramAccounts(ctx context.Context, program solana.PublicKey, dataSize uint64) ([]*solbc.ProgramAccount, error)
	TokenBalance(ctx context.Context, account solana.PublicKey) (uint64, error)
}

// NewPoolManager builds a manager for the given swap program.
func NewPoolManager(client Client, logger *zap.Logger, programID solana.PublicKey) *PoolManager {
	return &PoolManager{
		client:    client,
		logger:    logger.Named("pool_manager"),
		programID: programID,
	}
}

// FindPool scans the swap program's pool accounts for one trading exactly
// the (sourceMint, destinationMint) pair and returns it with live reserves.
func (pm *PoolManager) FindPool(ctx context.Context, sourceMint, destinationMint solana.PublicKey) (*Pool, error) {
	accounts, err := pm.client.ProgramAccounts(ctx, pm.programID, SwapLayoutSize)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pool accounts: %w", err)
	}

	for _, account := range accounts {
		layout, err := DecodeSwapLayout(account.Data)
		if err != nil {
			pm.logger.Debug("skipping undecodable pool account",
				zap.String("account", account.PubKey.String()),
				zap.Error(err))
			continue
		}
		if layout.IsInitialized == 0 || layout.SwapCurve.CurveType != CurveConstantProduct {
			continue
		}

		pool, err := pm.buildPool(account.PubKey, layout)
		if err != nil {
			return nil, err
		}
		if !pool.Matches(sourceMint, destinationMint) {
			continue
		}

		if err := pm.LoadReserves(ctx, pool); err != nil {
			return nil, err
		}
		pm.logger.Debug("matched pool",
			zap.String("pool", pool.Address.String()),
			zap.Uint64("reserve_a", pool.ReserveA),
			zap.Uint64("reserve_b", pool.ReserveB))
		return pool, nil
	}

	return nil, ErrPoolNotFound
}

// FindPoolWithRetry wraps FindPool with exponential backoff. Lookup
// failures caused by a genuinely missing pool are not retried.
func (pm *PoolManager) FindPoolWithRetry(ctx context.Context, sourceMint, destinationMint solana.PublicKey, maxRetries int, retryDelay time.Duration) (*Pool, error) {
	backoffPolicy := backoff.NewExponentialBackOff()
	backoffPolicy.InitialInterval = retryDelay
	backoffPolicy.MaxInterval = retryDelay * 10

	notify := func(err error, duration time.Duration) {
		pm.logger.Info("retrying pool lookup",
			zap.Error(err),
			zap.Duration("backoff", duration))
	}

	operation := func() (*Pool, error) {
		pool, err := pm.FindPool(ctx, sourceMint, destinationMint)
		if errors.Is(err, ErrPoolNotFound) {
			return nil, backoff.Permanent(err)
		}
		return pool, err
	}

	pool, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoffPolicy),
		backoff.WithMaxTries(uint(maxRetries)),
		backoff.WithNotify(notify))
	if err != nil {
		pm.logger.Error("pool lookup failed",
			zap.String("source_mint", sourceMint.String()),
			zap.String("destination_mint", destinationMint.String()),
			zap.Error(err))
		return nil, err
	}
	return pool, nil
}

// LoadReserves refreshes the pool's vault balances.
func (pm *PoolManager) LoadReserves(ctx context.Context, pool *Pool) error {
	reserveA, err := pm.client.TokenBalance(ctx, pool.VaultA)
	if err != nil {
		return fmt.Errorf("failed to load reserve %s: %w", pool.VaultA, err)
	}
	reserveB, err := pm.client.TokenBalance(ctx, pool.VaultB)
	if err != nil {
		return fmt.Errorf("failed to load reserve %s: %w", pool.VaultB, err)
	}
	pool.ReserveA = reserveA
	pool.ReserveB = reserveB
	return nil
}

// RetryResolver routes every pool lookup through the manager's backoff
// policy. It satisfies the resolver interface of the swap engine.
type RetryResolver struct {
	Manager  *PoolManager
	MaxTries int
	Delay    time.Duration
}

func (r *RetryResolver) FindPool(ctx context.Context, sourceMint, destinationMint solana.PublicKey) (*Pool, error) {
	return r.Manager.FindPoolWithRetry(ctx, sourceMint, destinationMint, r.MaxTries, r.Delay)
}

func (r *RetryResolver) LoadReserves(ctx context.Context, pool *Pool) error {
	return r.Manager.LoadReserves(ctx, pool)
}

func (pm *PoolManager) buildPool(address solana.PublicKey, layout *SwapLayout) (*Pool, error) {
	authority, _, err := solana.FindProgramAddress([][]byte{address.Bytes()}, pm.programID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive authority for pool %s: %w", address, err)
	}
	return &Pool{
		Address:    address,
		Authority:  authority,
		MintA:      layout.TokenA,
		MintB:      layout.TokenB,
		VaultA:     layout.SwapA,
		VaultB:     layout.SwapB,
		PoolMint:   layout.PoolToken,
		FeeAccount: layout.PoolFeeAccount,
		Fees:       layout.Fees,
		CurveType:  layout.SwapCurve.CurveType,
	}, nil
}
