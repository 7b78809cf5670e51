package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "swapper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

const validConfig = `
rpc_url: "https://api.mainnet-beta.solana.com"
wallets_file: "wallets.csv"
swap:
  source: "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
  source_mint: "So11111111111111111111111111111111111111112"
  destination_mint: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
  amount: 1000000
`

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, validConfig)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.RPCURL)
	assert.Equal(t, "wallets.csv", cfg.WalletsFile)
	assert.Equal(t, uint64(1000000), cfg.Swap.Amount)
	// Defaults kick in for everything left unset.
	assert.Equal(t, DefaultSlippage, cfg.Swap.Slippage)
	assert.Equal(t, DefaultRetries, cfg.Retries)
	assert.Equal(t, "default", cfg.WalletName)
	assert.False(t, cfg.Swap.Simulate)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SWAPPER_RPC_URL", "http://localhost:8899")

	path := writeConfig(t, validConfig)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8899", cfg.RPCURL)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{
			name: "missing rpc url",
			contents: `
wallets_file: "wallets.csv"
swap:
  source: "x"
  source_mint: "a"
  destination_mint: "b"
  amount: 1
`,
			wantErr: "rpc_url",
		},
		{
			name: "missing wallets file",
			contents: `
rpc_url: "http://localhost:8899"
swap:
  source: "x"
  source_mint: "a"
  destination_mint: "b"
  amount: 1
`,
			wantErr: "wallets_file",
		},
		{
			name: "missing mints",
			contents: `
rpc_url: "http://localhost:8899"
wallets_file: "wallets.csv"
swap:
  source: "x"
  amount: 1
`,
			wantErr: "source_mint",
		},
		{
			name: "zero amount",
			contents: `
rpc_url: "http://localhost:8899"
wallets_file: "wallets.csv"
swap:
  source: "x"
  source_mint: "a"
  destination_mint: "b"
`,
			wantErr: "amount",
		},
		{
			name: "slippage out of range",
			contents: `
rpc_url: "http://localhost:8899"
wallets_file: "wallets.csv"
swap:
  source: "x"
  source_mint: "a"
  destination_mint: "b"
  amount: 1
  slippage: 1.5
`,
			wantErr: "slippage",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.contents))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
