package fee

import (
	"math/big"
	"time"

	"github/chapool/evm-wallet/internal/wallet/network"
)

const (
	gwei = int64(1_000_000_000)

	defaultMaxAttempts = 3
	defaultBackoffStep = 500 * time.Millisecond

	minSaneGasPrice = int64(1_000_000)         // 0.001 gwei
	maxSaneGasPrice = int64(1_000_000_000_000) // 1000 gwei

	fixedGasPrice    = 1 * gwei
	fixedPriorityFee = 1 * gwei

	maxFeeMultiplier   = 2
	priorityFeeDivisor = 10

	defaultFallbackPrice = 25 * gwei
	defaultMinPriority   = gwei / 10
)

var fallbackPrices = map[network.Tag]int64{
	network.TagVery:      fixedGasPrice,
	network.TagEthereum:  30 * gwei,
	network.TagPolygon:   35 * gwei,
	network.TagBSC:       8 * gwei,
	network.TagArbitrum:  2 * gwei,
	network.TagOptimism:  gwei / 100,
	network.TagAvalanche: 25 * gwei,
	network.TagFantom:    20 * gwei,
}

var minPriorityFees = map[network.Tag]int64{
	network.TagVery:      fixedPriorityFee,
	network.TagEthereum:  gwei,
	network.TagPolygon:   30 * gwei,
	network.TagBSC:       gwei / 10,
	network.TagArbitrum:  gwei / 1000,
	network.TagOptimism:  gwei / 1000,
	network.TagAvalanche: gwei,
	network.TagFantom:    gwei,
}

// FallbackPrice is the static gas price used for url when its node cannot
// provide a usable one.
func FallbackPrice(url string) *big.Int {
	return FallbackPriceFor(network.Detect(url))
}

func FallbackPriceFor(tag network.Tag) *big.Int {
	if price, ok := fallbackPrices[tag]; ok {
		return big.NewInt(price)
	}

	return big.NewInt(defaultFallbackPrice)
}

// MinPriorityFee is the floor applied to a computed priority fee.
func MinPriorityFee(tag network.Tag) *big.Int {
	if tip, ok := minPriorityFees[tag]; ok {
		return big.NewInt(tip)
	}

	return big.NewInt(defaultMinPriority)
}
