// Package solbc is a thin adapter between the swap pipeline and the Solana
// RPC layer in solana-go. Everything that touches the network lives here.
package solbc

import (
	"context"
	"errors"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

var (
	// ErrAccountNotFound is returned when the queried account does not
	// exist on chain yet.
	ErrAccountNotFound = errors.New("account not found")
)

// IsAccountNotFoundError reports whether err means a missing account,
// either our sentinel or the RPC layer's own wording.
func IsAccountNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAccountNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}

// Client wraps a solana-go RPC client.
type Client struct {
	rpc    *rpc.Client
	logger *zap.Logger
}

// NewClient builds a client for the given RPC endpoint.
func NewClient(rpcURL string, logger *zap.Logger) *Client {
	return &Client{
		rpc:    rpc.New(rpcURL),
		logger: logger.Named("solbc-client"),
	}
}

// GetRecentBlockhash returns the latest finalized blockhash.
func (c *Client) GetRecentBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		c.logger.Error("GetRecentBlockhash error", zap.Error(err))
		return solana.Hash{}, err
	}
	return result.Value.Blockhash, nil
}

// GetMinimumBalanceForRentExemption returns the lamports an account of the
// given data size must hold to be rent exempt.
func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	lamports, err := c.rpc.GetMinimumBalanceForRentExemption(ctx, dataSize, rpc.CommitmentFinalized)
	if err != nil {
		c.logger.Error("GetMinimumBalanceForRentExemption error", zap.Error(err))
		return 0, err
	}
	return lamports, nil
}

// GetFeeRatePerSignature returns the current network fee in lamports per
// transaction signature.
func (c *Client) GetFeeRatePerSignature(ctx context.Context) (uint64, error) {
	result, err := c.rpc.GetFees(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		c.logger.Error("GetFees error", zap.Error(err))
		return 0, err
	}
	if result == nil || result.Value == nil {
		return 0, errors.New("empty fee schedule response")
	}
	return result.Value.FeeCalculator.LamportsPerSignature, nil
}

// GetAccountInfo fetches raw account info.
func (c *Client) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	result, err := c.rpc.GetAccountInfo(ctx, pubkey)
	if err != nil {
		c.logger.Debug("GetAccountInfo error",
			zap.String("pubkey", pubkey.String()),
			zap.Error(err))
		return nil, err
	}
	return result, nil
}
