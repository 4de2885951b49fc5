package api

import (
	"context"
	"math/big"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github/chapool/evm-wallet/internal/config"
	"github/chapool/evm-wallet/internal/metrics"
	"github/chapool/evm-wallet/internal/wallet/fee"
	"github/chapool/evm-wallet/internal/wallet/network"
	"github/chapool/evm-wallet/internal/wallet/provider"
	"github/chapool/evm-wallet/internal/wallet/reader"
	"github/chapool/evm-wallet/internal/wallet/signer"
	"github/chapool/evm-wallet/internal/wallet/transfer"
)

const redisConnectTimeout = 5 * time.Second

// NewRedis connects to WALLET_REDIS_URL. It returns a nil client when no URL is configured.
func NewRedis(cfg config.Server) (*redis.Client, error) {
	if cfg.Wallet.RedisURL == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
	defer cancel()

	client, err := network.DialRedis(ctx, cfg.Wallet.RedisURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to network store")
	}

	return client, nil
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewNetworkStore(cfg config.Server, client *redis.Client) network.Store {
	if client == nil {
		log.Debug().Msg("Using in-memory network store")
		return network.NewMemoryStore()
	}

	log.Debug().Str("key", cfg.Wallet.RedisNetworkKey).Msg("Using redis network store")

	return network.NewRedisStore(client, cfg.Wallet.RedisNetworkKey)
}

func NewNetworkRegistry(cfg config.Server, store network.Store) *network.Registry {
	defaultEndpoint := network.NewEndpoint(cfg.Wallet.DefaultRPCURL)
	if tag, ok := network.ParseTag(cfg.Wallet.DefaultTag); ok {
		defaultEndpoint.Tag = tag
	}

	configured := make([]network.Endpoint, 0, len(cfg.Wallet.Networks))
	for _, n := range cfg.Wallet.Networks {
		e := network.Endpoint{Name: n.Name, URL: n.RPCURL}
		if n.Tag != "" {
			if tag, ok := network.ParseTag(n.Tag); ok {
				e.Tag = tag
			} else {
				log.Warn().Str("network", n.Name).Str("tag", n.Tag).Msg("Ignoring unknown network tag, detecting from URL")
			}
		}
		configured = append(configured, e)
	}

	return network.NewRegistry(store, defaultEndpoint, configured...)
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewDialer() provider.Dialer {
	return provider.DefaultDialer
}

func NewFeeConfig(cfg config.Server) fee.Config {
	return fee.Config{
		MaxAttempts:   cfg.Fee.MaxAttempts,
		BackoffStep:   cfg.Fee.BackoffStep,
		MinGasPrice:   big.NewInt(cfg.Fee.MinGasPriceWei),
		MaxGasPrice:   big.NewInt(cfg.Fee.MaxGasPriceWei),
		MarginPercent: cfg.Fee.MarginPercent,
	}
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewFeeOracle(feeConfig fee.Config, metricsService *metrics.Service) fee.Oracle {
	return fee.NewOracle(feeConfig, fee.WithObserver(metricsService))
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewTransferService(dialer provider.Dialer, oracle fee.Oracle, signerService signer.Service, metricsService *metrics.Service) transfer.Service {
	return transfer.NewService(dialer, oracle, signerService, transfer.WithObserver(metricsService))
}

//nolint:ireturn // Returning interface is intentional for dependency injection
func NewReaderService(cfg config.Server, dialer provider.Dialer) (reader.Service, error) {
	return reader.NewService(dialer, reader.WithMaxScanBlocks(cfg.Wallet.MaxScanBlocks))
}
