//go:build wireinject

package api

import (
	"testing"

	"github.com/google/wire"
	"github/chapool/evm-wallet/internal/config"
	"github/chapool/evm-wallet/internal/metrics"
	"github/chapool/evm-wallet/internal/wallet/provider"
	"github/chapool/evm-wallet/internal/wallet/signer"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewRedis,
	NewNetworkStore,
	NewNetworkRegistry,
	metrics.New,
	NewFeeConfig,
	NewFeeOracle,
	signer.NewService,
	NewTransferService,
	NewReaderService,
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewDialer)
	return new(Server), nil
}

// InitNewServerWithDialer returns a new Server instance talking to the chain through dialer.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithDialer(
	_ config.Server,
	_ provider.Dialer,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
