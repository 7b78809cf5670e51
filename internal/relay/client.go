// Package relay is the HTTP client for a fee-relay proxy: a service that
// pays transaction fees on the user's behalf and is compensated through an
// on-chain swap built by the caller.
package relay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/datmassdevs/solana-swift/internal/swap"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to a fee-relay service over HTTP/JSON.
type Client struct {
	http    *http.Client
	logger  *zap.Logger
	baseURL string
}

// NewClient builds a relay client for the given base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultRequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxConnsPerHost:     100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:  logger.Named("relay-client"),
		baseURL: baseURL,
	}
}

type feePayerResponse struct {
	FeePayer string `json:"fee_payer"`
}

// FeePayer returns the address the relay pays transaction fees from.
func (c *Client) FeePayer(ctx context.Context) (solana.PublicKey, error) {
	var resp feePayerResponse
	if err := c.get(ctx, "/fee_payer", &resp); err != nil {
		return solana.PublicKey{}, err
	}
	payer, err := solana.PublicKeyFromBase58(resp.FeePayer)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid fee payer address from relay: %w", err)
	}
	return payer, nil
}

// wireAccount is one account reference of a serialized instruction.
type wireAccount struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

// wireInstruction is the JSON form of one instruction.
type wireInstruction struct {
	ProgramID string        `json:"program_id"`
	Accounts  []wireAccount `json:"accounts"`
	Data      string        `json:"data"`
}

type submitSwapRequest struct {
	Instructions           []wireInstruction `json:"instructions"`
	Blockhash              string            `json:"blockhash"`
	FeePayer               string            `json:"fee_payer"`
	Signature              string            `json:"signature"`
	AccountSecrets         []string          `json:"account_secrets"`
	MinimumOut             uint64            `json:"minimum_out"`
	CompensationMinimumOut uint64            `json:"compensation_minimum_out"`
	Simulate               bool              `json:"simulate"`
}

type submitSwapResponse struct {
	TransactionID string `json:"transaction_id"`
}

// SubmitSwap hands the prepared bundle to the relay for signing and
// broadcast; the relay returns the transaction id.
func (c *Client) SubmitSwap(ctx context.Context, params *swap.RelayedSwapParams) (string, error) {
	body := submitSwapRequest{
		Blockhash:              params.Blockhash.String(),
		FeePayer:               params.FeePayer.String(),
		Signature:              params.Signature.String(),
		MinimumOut:             params.MinimumOut,
		CompensationMinimumOut: params.CompensationMinimumOut,
		Simulate:               params.Simulate,
	}
	for _, ix := range params.Instructions {
		wire, err := encodeInstruction(ix)
		if err != nil {
			return "", err
		}
		body.Instructions = append(body.Instructions, wire)
	}
	for _, secret := range params.AccountSecrets {
		body.AccountSecrets = append(body.AccountSecrets, secret.String())
	}

	var resp submitSwapResponse
	if err := c.post(ctx, "/swap", body, &resp); err != nil {
		return "", err
	}
	if resp.TransactionID == "" {
		return "", fmt.Errorf("relay returned no transaction id")
	}
	return resp.TransactionID, nil
}

func encodeInstruction(ix solana.Instruction) (wireInstruction, error) {
	data, err := ix.Data()
	if err != nil {
		return wireInstruction{}, fmt.Errorf("failed to serialize instruction data: %w", err)
	}
	wire := wireInstruction{
		ProgramID: ix.ProgramID().String(),
		Data:      base64.StdEncoding.EncodeToString(data),
	}
	for _, account := range ix.Accounts() {
		wire.Accounts = append(wire.Accounts, wireAccount{
			Pubkey:     account.PublicKey.String(),
			IsSigner:   account.IsSigner,
			IsWritable: account.IsWritable,
		})
	}
	return wire, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("relay request failed",
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relay returned status %d: %s", resp.StatusCode, body)
	}
	return json.Unmarshal(body, out)
}
