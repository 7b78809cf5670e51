package swap

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/datmassdevs/solana-swift/internal/programs/token"
	"github.com/datmassdevs/solana-swift/internal/programs/tokenswap"
	"github.com/datmassdevs/solana-swift/internal/wallet"
)

// Engine is the swap orchestrator. One call to Swap resolves the pool and
// fee payer, prepares both legs, assembles the ordered instruction bundle
// and dispatches it directly or through a fee relay.
type Engine struct {
	client    Client
	pools     PoolResolver
	relay     FeeRelay
	keygen    KeyGenerator
	wallet    *wallet.Wallet
	logger    *zap.Logger
	preparer  *Preparer
	programID solana.PublicKey
}

// Options tunes engine construction.
type Options struct {
	// Relay enables the fee-relay path when set.
	Relay FeeRelay
	// KeyGenerator overrides the random default.
	KeyGenerator KeyGenerator
	// ProgramID overrides the default token-swap program.
	ProgramID solana.PublicKey
}

// NewEngine builds an engine. The wallet is the default signing owner and
// may be nil when every request carries its own.
func NewEngine(client Client, pools PoolResolver, w *wallet.Wallet, logger *zap.Logger, opts ...Options) (*Engine, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	if pools == nil {
		return nil, fmt.Errorf("pool resolver cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	var options Options
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.KeyGenerator == nil {
		options.KeyGenerator = RandomKeyGenerator{}
	}
	if options.ProgramID.IsZero() {
		options.ProgramID = tokenswap.ProgramID
	}

	return &Engine{
		client:    client,
		pools:     pools,
		relay:     options.Relay,
		keygen:    options.KeyGenerator,
		wallet:    w,
		logger:    logger.Named("swap-engine"),
		preparer:  NewPreparer(client, options.KeyGenerator, logger),
		programID: options.ProgramID,
	}, nil
}

// Swap runs one swap request end to end and returns the transaction id
// plus the address of any wallet account created along the way.
func (e *Engine) Swap(ctx context.Context, req *Request) (*Result, error) {
	owner := req.Owner
	if owner == nil {
		owner = e.wallet
	}
	if owner == nil {
		return nil, ErrUnauthorized
	}
	ownerKey := owner.PublicKey

	// The relay moves tokens between token accounts only; it cannot
	// relay a leg that is the owner's wallet itself.
	useRelay := e.relay != nil &&
		!req.Source.Equals(ownerKey) &&
		!(req.Destination != nil && req.Destination.Equals(ownerKey))

	feePayer := ownerKey
	if useRelay {
		payer, err := e.relay.FeePayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve relay fee payer: %w", err)
		}
		feePayer = payer
	}

	pool, err := e.resolvePool(ctx, req)
	if err != nil {
		return nil, err
	}

	// Both legs depend only on the fee payer and the pool mints, so
	// their lookups run concurrently and join here.
	var source, destination *AccountInstructions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prepared, err := e.preparer.PrepareSource(gctx, ownerKey, req.Source, feePayer, req.Amount)
		source = prepared
		return err
	})
	g.Go(func() error {
		prepared, err := e.preparer.PrepareDestination(gctx, ownerKey, req.Destination, req.DestinationMint, feePayer)
		destination = prepared
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	minimumOut, err := pool.MinimumReceiveAmount(req.Amount, req.Slippage, true, req.SourceMint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPool, err)
	}

	e.logger.Info("swap prepared",
		zap.String("pool", pool.Address.String()),
		zap.String("source", source.Account.String()),
		zap.String("destination", destination.Account.String()),
		zap.Uint64("amount", req.Amount),
		zap.Uint64("minimum_out", minimumOut),
		zap.Bool("relay", useRelay))

	if useRelay {
		return e.dispatchRelayed(ctx, owner, feePayer, pool, req, source, destination, minimumOut)
	}
	return e.dispatchDirect(ctx, owner, pool, req, source, destination, minimumOut)
}

// resolvePool reuses the caller's pool only when its mints match the
// request exactly; otherwise it looks a pool up with live reserves.
func (e *Engine) resolvePool(ctx context.Context, req *Request) (*tokenswap.Pool, error) {
	if req.Pool != nil && req.Pool.Matches(req.SourceMint, req.DestinationMint) {
		pool := req.Pool
		if pool.Authority.IsZero() {
			return nil, fmt.Errorf("%w: pool %s has no authority", ErrInvalidPool, pool.Address)
		}
		return pool, nil
	}

	pool, err := e.pools.FindPool(ctx, req.SourceMint, req.DestinationMint)
	if err != nil {
		if errors.Is(err, tokenswap.ErrPoolNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("pool lookup failed: %w", err)
	}
	if pool.Authority.IsZero() {
		return nil, fmt.Errorf("%w: pool %s has no authority", ErrInvalidPool, pool.Address)
	}
	return pool, nil
}

// swapInstruction builds the AMM swap instruction for the given transfer
// authority and user-side accounts.
func (e *Engine) swapInstruction(pool *tokenswap.Pool, sourceMint, transferAuthority, userSource, userDestination solana.PublicKey, amountIn, minimumOut uint64) (solana.Instruction, error) {
	poolSource, err := pool.SourceVault(sourceMint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPool, err)
	}
	poolDestination, err := pool.DestinationVault(sourceMint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPool, err)
	}

	return tokenswap.NewSwapInstruction(tokenswap.SwapInstructionParams{
		ProgramID:             e.programID,
		Pool:                  pool.Address,
		Authority:             pool.Authority,
		UserTransferAuthority: transferAuthority,
		UserSource:            userSource,
		PoolSource:            poolSource,
		PoolDestination:       poolDestination,
		UserDestination:       userDestination,
		PoolMint:              pool.PoolMint,
		FeeAccount:            pool.FeeAccount,
		AmountIn:              amountIn,
		MinimumAmountOut:      minimumOut,
	}), nil
}

// dispatchDirect grants a fresh ephemeral authority a delegation for
// exactly the swapped amount, brackets the swap with each leg's setup and
// cleanup and broadcasts the whole bundle in one transaction.
func (e *Engine) dispatchDirect(ctx context.Context, owner *wallet.Wallet, pool *tokenswap.Pool, req *Request, source, destination *AccountInstructions, minimumOut uint64) (*Result, error) {
	ephemeral, err := e.keygen.NewKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transfer authority: %w", err)
	}

	approve := token.Approve(source.Account, ephemeral.PublicKey(), owner.PublicKey, req.Amount)
	swapIx, err := e.swapInstruction(pool, req.SourceMint, ephemeral.PublicKey(), source.Account, destination.Account, req.Amount, minimumOut)
	if err != nil {
		return nil, err
	}

	instructions := make([]solana.Instruction, 0,
		len(source.Setup)+len(destination.Setup)+2+len(source.Cleanup)+len(destination.Cleanup))
	instructions = append(instructions, source.Setup...)
	instructions = append(instructions, destination.Setup...)
	instructions = append(instructions, approve, swapIx)
	instructions = append(instructions, source.Cleanup...)
	instructions = append(instructions, destination.Cleanup...)

	signers := make([]solana.PrivateKey, 0, 2+len(source.Signers)+len(destination.Signers))
	signers = append(signers, owner.PrivateKey, ephemeral)
	signers = append(signers, source.Signers...)
	signers = append(signers, destination.Signers...)

	txID, err := e.client.Broadcast(ctx, instructions, signers, owner.PublicKey, req.Simulate)
	if err != nil {
		return nil, fmt.Errorf("broadcast failed: %w", err)
	}

	e.logger.Info("swap transaction sent",
		zap.String("transaction_id", txID),
		zap.Bool("simulate", req.Simulate))

	return &Result{
		TransactionID: txID,
		NewWallet:     destination.NewWallet,
	}, nil
}
