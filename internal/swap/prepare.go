package swap

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/datmassdevs/solana-swift/internal/blockchain/solbc"
	"github.com/datmassdevs/solana-swift/internal/programs/associatedtoken"
	"github.com/datmassdevs/solana-swift/internal/programs/system"
	"github.com/datmassdevs/solana-swift/internal/programs/token"
)

// Preparer decides, per leg of a swap, whether an existing account can be
// reused or a temporary/associated account must be created, and emits the
// paired setup and cleanup instructions for that decision.
type Preparer struct {
	client Client
	keygen KeyGenerator
	logger *zap.Logger
}

// NewPreparer builds a preparer over the given client.
func NewPreparer(client Client, keygen KeyGenerator, logger *zap.Logger) *Preparer {
	return &Preparer{
		client: client,
		keygen: keygen,
		logger: logger.Named("preparer"),
	}
}

// PrepareSource resolves the source leg. A plain SPL token account is
// reused as-is. A native balance (the owner's wallet itself, a
// wrapped-native token account, or an account not created yet) is
// wrapped into a fresh temporary account
// funded with amount plus the rent-exempt minimum, and scheduled for
// closing back to the fee payer after the swap.
func (p *Preparer) PrepareSource(ctx context.Context, owner, source, payer solana.PublicKey, amount uint64) (*AccountInstructions, error) {
	state, err := p.client.GetAccountState(ctx, source)
	if err != nil {
		if errors.Is(err, solbc.ErrAccountNotFound) {
			// Not yet created; treat it as a native balance to wrap.
			return p.prepareWrappedNative(ctx, owner, payer, amount)
		}
		return nil, fmt.Errorf("failed to fetch source account %s: %w", source, err)
	}

	native := state.Owner.Equals(system.ProgramID) ||
		(state.Token != nil && state.Token.Native())
	if !native {
		if state.Token == nil {
			return nil, fmt.Errorf("source %s is not a token account: %w", source, ErrInvalidAccount)
		}
		// Plain SPL account, nothing to set up or tear down.
		return &AccountInstructions{Account: source}, nil
	}

	return p.prepareWrappedNative(ctx, owner, payer, amount)
}

// prepareWrappedNative allocates a temporary wrapped-native account owned
// by owner: create funded by payer, initialize against the wrapped-native
// mint, close back to payer after the swap. The fresh key signs the
// transaction and its secret is retained for relay scenarios.
func (p *Preparer) prepareWrappedNative(ctx context.Context, owner, payer solana.PublicKey, amount uint64) (*AccountInstructions, error) {
	rent, err := p.client.GetMinimumBalanceForRentExemption(ctx, token.AccountSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rent-exempt minimum: %w", err)
	}

	key, err := p.keygen.NewKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate temporary account key: %w", err)
	}
	account := key.PublicKey()

	p.logger.Debug("wrapping native balance",
		zap.String("account", account.String()),
		zap.Uint64("amount", amount),
		zap.Uint64("rent", rent))

	return &AccountInstructions{
		Account: account,
		Setup: []solana.Instruction{
			system.CreateAccount(payer, account, amount+rent, token.AccountSize, token.ProgramID),
			token.InitializeAccount(account, token.WrappedNativeMint, owner),
		},
		Cleanup: []solana.Instruction{
			token.CloseAccount(account, payer, owner),
		},
		Signers: []solana.PrivateKey{key},
		Secret:  key,
	}, nil
}

// PrepareDestination resolves the destination leg. An explicit destination
// distinct from the owner's wallet is reused verbatim. Otherwise the
// canonical associated account for (owner, mint) is used, created on the
// fly when missing; wrapped-native destinations are scheduled for closing
// so proceeds unwrap after the swap.
func (p *Preparer) PrepareDestination(ctx context.Context, owner solana.PublicKey, destination *solana.PublicKey, mint, payer solana.PublicKey) (*AccountInstructions, error) {
	if destination != nil && !destination.Equals(owner) {
		return &AccountInstructions{Account: *destination}, nil
	}

	ata, err := associatedtoken.Derive(owner, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive associated account: %w", err)
	}

	var cleanup []solana.Instruction
	if mint.Equals(token.WrappedNativeMint) {
		// Unwrap proceeds to native form once the swap has landed.
		cleanup = []solana.Instruction{token.CloseAccount(ata, payer, owner)}
	}

	state, err := p.client.GetAccountState(ctx, ata)
	switch {
	case err == nil:
		if state.Token == nil || !state.Token.Owner.Equals(owner) {
			return nil, fmt.Errorf("associated account %s belongs to a different owner: %w", ata, ErrInvalidAccount)
		}
		return &AccountInstructions{Account: ata, Cleanup: cleanup}, nil

	case errors.Is(err, solbc.ErrAccountNotFound):
		// Not yet created; materialize it now.
		create, ata, err := associatedtoken.Create(payer, owner, mint)
		if err != nil {
			return nil, fmt.Errorf("failed to build associated account creation: %w", err)
		}
		p.logger.Debug("creating associated account",
			zap.String("account", ata.String()),
			zap.String("mint", mint.String()))
		return &AccountInstructions{
			Account:   ata,
			Setup:     []solana.Instruction{create},
			Cleanup:   cleanup,
			NewWallet: ata.String(),
		}, nil

	default:
		return nil, fmt.Errorf("failed to fetch associated account %s: %w", ata, err)
	}
}
