package solbc

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Broadcast assembles the instructions into a single transaction paid by
// payer, signs it with every provided key and either simulates or submits
// it. The returned string is the transaction signature.
func (c *Client) Broadcast(
	ctx context.Context,
	instructions []solana.Instruction,
	signers []solana.PrivateKey,
	payer solana.PublicKey,
	simulate bool,
) (string, error) {
	if len(signers) == 0 {
		return "", fmt.Errorf("no signers provided")
	}

	blockhash, err := c.GetRecentBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}

	keys := make(map[solana.PublicKey]*solana.PrivateKey, len(signers))
	for i := range signers {
		key := signers[i]
		keys[key.PublicKey()] = &key
	}
	if _, err := tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		return keys[pub]
	}); err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if simulate {
		result, err := c.rpc.SimulateTransaction(ctx, tx)
		if err != nil {
			c.logger.Error("SimulateTransaction error", zap.Error(err))
			return "", err
		}
		if result != nil && result.Value != nil && result.Value.Err != nil {
			return "", fmt.Errorf("simulation failed: %v", result.Value.Err)
		}
		return tx.Signatures[0].String(), nil
	}

	sig, err := c.rpc.SendTransaction(ctx, tx)
	if err != nil {
		c.logger.Error("SendTransaction error", zap.Error(err))
		return "", err
	}
	return sig.String(), nil
}
