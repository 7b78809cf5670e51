package solbc

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/datmassdevs/solana-swift/internal/programs/token"
)

// AccountState is the decoded view of an on-chain account as the swap
// pipeline needs it: the owning program plus token-account fields when the
// account belongs to the token program.
type AccountState struct {
	Owner    solana.PublicKey
	Lamports uint64
	Token    *token.Account
}

// ProgramAccount is one entry of a program-accounts scan.
type ProgramAccount struct {
	PubKey solana.PublicKey
	Data   []byte
}

// GetAccountState fetches and decodes the account at pubkey. A missing
// account maps to ErrAccountNotFound so callers can treat it as "not yet
// created" rather than a hard failure.
func (c *Client) GetAccountState(ctx context.Context, pubkey solana.PublicKey) (*AccountState, error) {
	result, err := c.GetAccountInfo(ctx, pubkey)
	if err != nil {
		if IsAccountNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if result == nil || result.Value == nil {
		return nil, ErrAccountNotFound
	}

	state := &AccountState{
		Owner:    result.Value.Owner,
		Lamports: result.Value.Lamports,
	}
	if state.Owner.Equals(token.ProgramID) {
		decoded, err := token.DecodeAccount(result.Value.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("decode token account %s: %w", pubkey, err)
		}
		state.Token = decoded
	}
	return state, nil
}

// TokenBalance returns the raw token amount held by a token account.
func (c *Client) TokenBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	state, err := c.GetAccountState(ctx, account)
	if err != nil {
		return 0, err
	}
	if state.Token == nil {
		return 0, fmt.Errorf("account %s is not a token account", account)
	}
	return state.Token.Amount, nil
}

// ProgramAccounts scans all accounts of the given program with the exact
// data size, returning their raw contents.
func (c *Client) ProgramAccounts(ctx context.Context, program solana.PublicKey, dataSize uint64) ([]*ProgramAccount, error) {
	result, err := c.rpc.GetProgramAccountsWithOpts(ctx, program, &rpc.GetProgramAccountsOpts{
		Encoding: solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{DataSize: dataSize},
		},
	})
	if err != nil {
		c.logger.Debug("GetProgramAccounts error",
			zap.String("program", program.String()),
			zap.Error(err))
		return nil, err
	}

	accounts := make([]*ProgramAccount, 0, len(result))
	for _, keyed := range result {
		accounts = append(accounts, &ProgramAccount{
			PubKey: keyed.Pubkey,
			Data:   keyed.Account.Data.GetBinary(),
		})
	}
	return accounts, nil
}
