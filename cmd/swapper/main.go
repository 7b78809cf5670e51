package main

import (
	"context"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/datmassdevs/solana-swift/internal/blockchain/solbc"
	"github.com/datmassdevs/solana-swift/internal/config"
	"github.com/datmassdevs/solana-swift/internal/logger"
	"github.com/datmassdevs/solana-swift/internal/programs/tokenswap"
	"github.com/datmassdevs/solana-swift/internal/relay"
	"github.com/datmassdevs/solana-swift/internal/swap"
	"github.com/datmassdevs/solana-swift/internal/wallet"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := "configs/swapper.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fallback := logger.New(true)
		fallback.Fatal("Failed to load configuration", zap.Error(err))
	}

	log := logger.New(cfg.DebugLogging)
	defer log.Sync()
	log.Info("Starting swapper", zap.String("config", configPath))

	wallets, err := wallet.LoadWallets(cfg.WalletsFile)
	if err != nil {
		log.Fatal("Failed to load wallets", zap.Error(err))
	}
	owner, ok := wallets[cfg.WalletName]
	if !ok {
		log.Fatal("Wallet not found", zap.String("name", cfg.WalletName))
	}

	client := solbc.NewClient(cfg.RPCURL, log)

	programID := tokenswap.ProgramID
	if cfg.SwapProgramID != "" {
		programID, err = solana.PublicKeyFromBase58(cfg.SwapProgramID)
		if err != nil {
			log.Fatal("Invalid swap program id", zap.Error(err))
		}
	}
	pools := &tokenswap.RetryResolver{
		Manager:  tokenswap.NewPoolManager(client, log, programID),
		MaxTries: cfg.Retries,
		Delay:    time.Second,
	}

	options := swap.Options{ProgramID: programID}
	if cfg.RelayURL != "" {
		options.Relay = relay.NewClient(cfg.RelayURL, log)
	}

	engine, err := swap.NewEngine(client, pools, owner, log, options)
	if err != nil {
		log.Fatal("Failed to build swap engine", zap.Error(err))
	}

	request, err := buildRequest(cfg)
	if err != nil {
		log.Fatal("Invalid swap parameters", zap.Error(err))
	}

	result, err := engine.Swap(ctx, request)
	if err != nil {
		log.Fatal("Swap failed", zap.Error(err))
	}

	log.Info("Swap submitted",
		zap.String("transaction_id", result.TransactionID),
		zap.String("new_wallet", result.NewWallet))
}

func buildRequest(cfg *config.Config) (*swap.Request, error) {
	source, err := solana.PublicKeyFromBase58(cfg.Swap.Source)
	if err != nil {
		return nil, err
	}
	sourceMint, err := solana.PublicKeyFromBase58(cfg.Swap.SourceMint)
	if err != nil {
		return nil, err
	}
	destinationMint, err := solana.PublicKeyFromBase58(cfg.Swap.DestinationMint)
	if err != nil {
		return nil, err
	}

	request := &swap.Request{
		Source:          source,
		SourceMint:      sourceMint,
		DestinationMint: destinationMint,
		Slippage:        cfg.Swap.Slippage,
		Amount:          cfg.Swap.Amount,
		Simulate:        cfg.Swap.Simulate,
	}
	if cfg.Swap.Destination != "" {
		destination, err := solana.PublicKeyFromBase58(cfg.Swap.Destination)
		if err != nil {
			return nil, err
		}
		request.Destination = &destination
	}
	return request, nil
}
