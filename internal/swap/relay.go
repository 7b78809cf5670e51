package swap

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/datmassdevs/solana-swift/internal/programs/token"
	"github.com/datmassdevs/solana-swift/internal/programs/tokenswap"
	"github.com/datmassdevs/solana-swift/internal/wallet"
)

const (
	// extraRelaySignatures is the fixed allowance the relay charges on
	// top of the client-side signers, covering the relay itself and the
	// user authority.
	extraRelaySignatures = 2

	// relaySlippage is the tolerance applied to the compensation swap.
	relaySlippage = 0.01
)

// dispatchRelayed hands the swap to the fee relay. The owner signs the
// swap itself (no separate delegation); the relay is compensated through a
// second swap that pays source tokens into a temporary wrapped-native
// account owned by the fee payer, unwrapped to it on cleanup.
func (e *Engine) dispatchRelayed(
	ctx context.Context,
	owner *wallet.Wallet,
	feePayer solana.PublicKey,
	pool *tokenswap.Pool,
	req *Request,
	source, destination *AccountInstructions,
	minimumOut uint64,
) (*Result, error) {
	feeTemp, err := e.preparer.prepareWrappedNative(ctx, feePayer, feePayer, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeePayerUnavailable, err)
	}

	compensationPool, err := e.pools.FindPool(ctx, token.WrappedNativeMint, req.SourceMint)
	if err != nil {
		return nil, fmt.Errorf("compensation pool lookup: %w", err)
	}
	if compensationPool.Authority.IsZero() {
		return nil, fmt.Errorf("%w: compensation pool %s has no authority", ErrInvalidPool, compensationPool.Address)
	}

	feeAmount, err := e.relayFeeAmount(ctx, source, destination, feeTemp)
	if err != nil {
		return nil, err
	}

	compensationIn, err := compensationPool.InputAmountFor(feeAmount, req.SourceMint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPool, err)
	}
	compensationMin, err := compensationPool.MinimumReceiveAmount(compensationIn, relaySlippage, true, req.SourceMint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPool, err)
	}

	swapIx, err := e.swapInstruction(pool, req.SourceMint, owner.PublicKey, source.Account, destination.Account, req.Amount, minimumOut)
	if err != nil {
		return nil, err
	}
	compensationIx, err := e.swapInstruction(compensationPool, req.SourceMint, owner.PublicKey, source.Account, feeTemp.Account, compensationIn, compensationMin)
	if err != nil {
		return nil, err
	}

	instructions := make([]solana.Instruction, 0,
		len(source.Setup)+len(destination.Setup)+len(feeTemp.Setup)+2+
			len(source.Cleanup)+len(destination.Cleanup)+len(feeTemp.Cleanup))
	instructions = append(instructions, source.Setup...)
	instructions = append(instructions, destination.Setup...)
	instructions = append(instructions, feeTemp.Setup...)
	instructions = append(instructions, swapIx, compensationIx)
	instructions = append(instructions, source.Cleanup...)
	instructions = append(instructions, destination.Cleanup...)
	instructions = append(instructions, feeTemp.Cleanup...)

	blockhash, err := e.client.GetRecentBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	signature, err := detachedSignature(instructions, blockhash, feePayer, feeTemp.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeePayerUnavailable, err)
	}

	secrets := make([]solana.PrivateKey, 0, 2)
	if len(source.Secret) > 0 {
		secrets = append(secrets, source.Secret)
	}
	secrets = append(secrets, feeTemp.Secret)

	e.logger.Info("submitting relayed swap",
		zap.String("fee_payer", feePayer.String()),
		zap.Uint64("fee_amount", feeAmount),
		zap.Uint64("compensation_in", compensationIn),
		zap.Uint64("compensation_minimum_out", compensationMin))

	txID, err := e.relay.SubmitSwap(ctx, &RelayedSwapParams{
		Instructions:           instructions,
		Blockhash:              blockhash,
		FeePayer:               feePayer,
		Signature:              signature,
		AccountSecrets:         secrets,
		MinimumOut:             minimumOut,
		CompensationMinimumOut: compensationMin,
		Simulate:               req.Simulate,
	})
	if err != nil {
		return nil, fmt.Errorf("relay submission failed: %w", err)
	}

	return &Result{
		TransactionID: txID,
		NewWallet:     destination.NewWallet,
	}, nil
}

// relayFeeAmount computes what the relay must recover: one network fee per
// signature, with the fixed extra allowance, plus rent when the swap had
// to materialize the destination account.
func (e *Engine) relayFeeAmount(ctx context.Context, source, destination, feeTemp *AccountInstructions) (uint64, error) {
	lamportsPerSignature, err := e.client.GetFeeRatePerSignature(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch fee schedule: %w", err)
	}

	signatures := uint64(len(source.Signers) + len(destination.Signers) + len(feeTemp.Signers) + extraRelaySignatures)
	feeAmount := signatures * lamportsPerSignature

	if destination.NewWallet != "" {
		rent, err := e.client.GetMinimumBalanceForRentExemption(ctx, token.AccountSize)
		if err != nil {
			return 0, fmt.Errorf("failed to fetch rent-exempt minimum: %w", err)
		}
		feeAmount += rent
	}
	return feeAmount, nil
}

// detachedSignature signs the unsigned message formed by the instruction
// list with the temporary fee-payer key, without attaching it to a
// transaction.
func detachedSignature(instructions []solana.Instruction, blockhash solana.Hash, feePayer solana.PublicKey, key solana.PrivateKey) (solana.Signature, error) {
	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(feePayer))
	if err != nil {
		return solana.Signature{}, err
	}
	message, err := tx.Message.MarshalBinary()
	if err != nil {
		return solana.Signature{}, err
	}
	return key.Sign(message)
}
