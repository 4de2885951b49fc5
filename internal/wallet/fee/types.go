package fee

import (
	"context"
	"math/big"
	"time"

	"github/chapool/evm-wallet/internal/wallet/network"
)

type Source string

const (
	SourceFixed    Source = "fixed"
	SourceRPC      Source = "rpc"
	SourceFallback Source = "fallback"
)

// Quote is a complete EIP-1559 fee proposal.
// MaxFeePerGas >= MaxPriorityFeePerGas > 0 always holds.
type Quote struct {
	GasPrice             *big.Int `json:"gas_price"`
	MaxFeePerGas         *big.Int `json:"max_fee_per_gas"`
	MaxPriorityFeePerGas *big.Int `json:"max_priority_fee_per_gas"`
	Source               Source   `json:"source"`
}

// GasPricer is the part of a provider the oracle talks to.
type GasPricer interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	MaxPriorityFeePerGas(ctx context.Context) (*big.Int, error)
}

// Observer is notified about every quote and every degradation.
type Observer interface {
	ObserveFeeQuote(tag string, source string)
	ObserveFeeDegradation(tag string, reason string)
}

// Oracle resolves fees for an endpoint. Resolve never fails: RPC problems
// degrade to fallback values and are reported through logs and the Observer.
type Oracle interface {
	Resolve(ctx context.Context, client GasPricer, endpoint network.Endpoint) Quote
}

type Config struct {
	MaxAttempts   int
	BackoffStep   time.Duration
	MinGasPrice   *big.Int
	MaxGasPrice   *big.Int
	MarginPercent int64
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:   defaultMaxAttempts,
		BackoffStep:   defaultBackoffStep,
		MinGasPrice:   big.NewInt(minSaneGasPrice),
		MaxGasPrice:   big.NewInt(maxSaneGasPrice),
		MarginPercent: 0,
	}
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error
