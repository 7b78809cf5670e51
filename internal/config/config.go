// Package config loads and validates the swapper configuration.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// SwapConfig describes the single swap the CLI executes.
type SwapConfig struct {
	Source          string  `mapstructure:"source"`
	SourceMint      string  `mapstructure:"source_mint"`
	Destination     string  `mapstructure:"destination"`
	DestinationMint string  `mapstructure:"destination_mint"`
	Amount          uint64  `mapstructure:"amount"`
	Slippage        float64 `mapstructure:"slippage"`
	Simulate        bool    `mapstructure:"simulate"`
}

// Config is the top-level configuration.
type Config struct {
	RPCURL        string     `mapstructure:"rpc_url"`
	RelayURL      string     `mapstructure:"relay_url"`
	WalletsFile   string     `mapstructure:"wallets_file"`
	WalletName    string     `mapstructure:"wallet_name"`
	SwapProgramID string     `mapstructure:"swap_program_id"`
	DebugLogging  bool       `mapstructure:"debug_logging"`
	Retries       int        `mapstructure:"retries"`
	Swap          SwapConfig `mapstructure:"swap"`
}

const (
	DefaultSlippage = 0.01
	DefaultRetries  = 3
)

// LoadConfig reads the config file at path and validates it.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("retries", DefaultRetries)
	v.SetDefault("swap.slippage", DefaultSlippage)
	v.SetDefault("wallet_name", "default")

	v.SetEnvPrefix("SWAPPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.RPCURL == "" {
		return errors.New("rpc_url is missing in configuration")
	}
	if cfg.WalletsFile == "" {
		return errors.New("wallets_file is missing in configuration")
	}
	if cfg.Swap.SourceMint == "" || cfg.Swap.DestinationMint == "" {
		return errors.New("swap.source_mint and swap.destination_mint are required")
	}
	if cfg.Swap.Source == "" {
		return errors.New("swap.source is required")
	}
	if cfg.Swap.Amount == 0 {
		return errors.New("swap.amount must be positive")
	}
	if cfg.Swap.Slippage < 0 || cfg.Swap.Slippage >= 1 {
		return errors.New("swap.slippage must be a fraction in [0, 1)")
	}
	return nil
}
