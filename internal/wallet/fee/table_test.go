package fee_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github/chapool/evm-wallet/internal/wallet/fee"
	"github/chapool/evm-wallet/internal/wallet/network"
)

func TestFallbackPrice(t *testing.T) {
	tests := []struct {
		url  string
		want int64
	}{
		{"https://mainnet.infura.io/v3/key", 30 * gwei},
		{"https://eth-mainnet.alchemyapi.io", 30 * gwei},
		{"https://polygon-rpc.com", 35 * gwei},
		{"https://rpc-mainnet.matic.network", 35 * gwei},
		{"https://bsc-dataseed.binance.org", 8 * gwei},
		{"https://arb1.arbitrum.io/rpc", 2 * gwei},
		{"https://mainnet.optimism.io", 10_000_000},
		{"https://unknown-network.com", 25 * gwei},
		{"https://polygon-mainnet.infura.io", 35 * gwei},
		{"https://arbitrum-ethereum-mainnet.example", 2 * gwei},
	}

	for _, tt := range tests {
		assert.Equal(t, big.NewInt(tt.want), fee.FallbackPrice(tt.url), tt.url)
	}
}

func TestFallbackPriceSaneForEveryFamily(t *testing.T) {
	for _, url := range []string{"https://api.avax.network/ext/bc/C/rpc", "https://rpc.ftm.tools", "https://rpc.fantom.network"} {
		price := fee.FallbackPrice(url)
		assert.Positive(t, price.Sign(), url)
		assert.Negative(t, price.Cmp(new(big.Int).Mul(big.NewInt(1000), big.NewInt(gwei))), url)
	}
}

func TestFallbackPriceIsACopy(t *testing.T) {
	price := fee.FallbackPriceFor(network.TagEthereum)
	price.SetInt64(1)

	assert.Equal(t, big.NewInt(30*gwei), fee.FallbackPriceFor(network.TagEthereum))
}

func TestMinPriorityFeeDefaults(t *testing.T) {
	assert.Equal(t, big.NewInt(gwei/10), fee.MinPriorityFee(network.TagUnknown))
	assert.Equal(t, big.NewInt(30*gwei), fee.MinPriorityFee(network.TagPolygon))
}
