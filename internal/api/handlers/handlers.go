package handlers

import (
	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/api/handlers/chain"
	"github/chapool/evm-wallet/internal/api/handlers/networks"
	"github/chapool/evm-wallet/internal/api/handlers/system"
	"github/chapool/evm-wallet/internal/api/handlers/transaction"
	"github/chapool/evm-wallet/internal/api/handlers/wallet"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		system.GetHealthRoute(s),
		system.GetReadyRoute(s),
		system.GetHealthyRoute(s),
		system.GetEnvRoute(s),
		wallet.PostCreateWalletRoute(s),
		wallet.PostFromPrivateKeyRoute(s),
		wallet.PostGetAddressRoute(s),
		wallet.PostGenerateMnemonicRoute(s),
		wallet.PostGenerateMnemonicCustomRoute(s),
		wallet.PostFromMnemonicRoute(s),
		wallet.PostFromMnemonicPathRoute(s),
		transaction.PostSendNativeRoute(s),
		transaction.PostSendErc20Route(s),
		transaction.PostEstimateGasRoute(s),
		transaction.PostTransactionReceiptRoute(s),
		transaction.PostTransactionDetailsRoute(s),
		transaction.PostTransactionHistoryRoute(s),
		transaction.PostAllTransactionHistoryRoute(s),
		chain.PostNativeBalanceRoute(s),
		chain.PostErc20BalanceRoute(s),
		chain.PostErc20EventsRoute(s),
		chain.GetCurrentBlockRoute(s),
		networks.GetNetworksRoute(s),
		networks.PostAddNetworkRoute(s),
		networks.PostRemoveNetworkRoute(s),
	}

	if s.Config.Management.EnableMetrics {
		s.Router.Routes = append(s.Router.Routes, system.GetMetricsRoute(s))
	}
}
