// Package fee produces EIP-1559 fee quotes for an endpoint, degrading to
// static per-network values when the node cannot provide usable ones.
package fee

import (
	"context"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"
	"github/chapool/evm-wallet/internal/wallet/network"
)

const (
	reasonNoProvider          = "no_provider"
	reasonRPCError            = "rpc_error"
	reasonOutOfRange          = "out_of_range"
	reasonPriorityUnavailable = "priority_unavailable"
)

type oracle struct {
	cfg      Config
	observer Observer
	sleep    SleepFunc
}

type Option func(o *oracle)

func WithObserver(observer Observer) Option {
	return func(o *oracle) {
		o.observer = observer
	}
}

// WithSleep replaces the backoff wait, mostly for tests.
func WithSleep(sleep SleepFunc) Option {
	return func(o *oracle) {
		o.sleep = sleep
	}
}

// NewOracle creates an Oracle. Zero fields of cfg take their DefaultConfig value.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewOracle(cfg Config, opts ...Option) Oracle {
	def := DefaultConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.BackoffStep <= 0 {
		cfg.BackoffStep = def.BackoffStep
	}
	if cfg.MinGasPrice == nil || cfg.MinGasPrice.Sign() <= 0 {
		cfg.MinGasPrice = def.MinGasPrice
	}
	if cfg.MaxGasPrice == nil || cfg.MaxGasPrice.Cmp(cfg.MinGasPrice) < 0 {
		cfg.MaxGasPrice = def.MaxGasPrice
	}
	if cfg.MarginPercent < 0 {
		cfg.MarginPercent = 0
	}

	o := &oracle{
		cfg:   cfg,
		sleep: sleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *oracle) Resolve(ctx context.Context, client GasPricer, endpoint network.Endpoint) Quote {
	tag := endpoint.Identity()

	if tag == network.TagVery {
		o.observeQuote(tag, SourceFixed)
		return Quote{
			GasPrice:             big.NewInt(fixedGasPrice),
			MaxFeePerGas:         big.NewInt(maxFeeMultiplier * fixedGasPrice),
			MaxPriorityFeePerGas: big.NewInt(fixedPriorityFee),
			Source:               SourceFixed,
		}
	}

	source := SourceRPC
	price, reason := o.fetchGasPrice(ctx, client, endpoint)
	if price == nil {
		price = FallbackPriceFor(tag)
		source = SourceFallback
		o.degrade(tag, reason)

		log.Warn().
			Str("endpoint", endpoint.URL).
			Str("tag", string(tag)).
			Str("reason", reason).
			Str("gas_price_wei", price.String()).
			Msg("Using fallback gas price")
	}

	maxFee := new(big.Int).Mul(price, big.NewInt(maxFeeMultiplier))
	tip := o.priorityFee(ctx, client, endpoint, tag, price)
	if tip.Cmp(maxFee) > 0 {
		tip = new(big.Int).Set(maxFee)
	}

	o.observeQuote(tag, source)

	log.Debug().
		Str("endpoint", endpoint.URL).
		Str("source", string(source)).
		Str("gas_price_wei", price.String()).
		Str("max_fee_wei", maxFee.String()).
		Str("priority_fee_wei", tip.String()).
		Msg("Resolved fee quote")

	return Quote{
		GasPrice:             price,
		MaxFeePerGas:         maxFee,
		MaxPriorityFeePerGas: tip,
		Source:               source,
	}
}

// fetchGasPrice returns nil and a degradation reason when no acceptable
// price could be fetched.
func (o *oracle) fetchGasPrice(ctx context.Context, client GasPricer, endpoint network.Endpoint) (*big.Int, string) {
	if client == nil {
		return nil, reasonNoProvider
	}

	for attempt := 1; attempt <= o.cfg.MaxAttempts; attempt++ {
		price, err := client.SuggestGasPrice(ctx)
		if err == nil && price != nil {
			if price.Cmp(o.cfg.MinGasPrice) < 0 || price.Cmp(o.cfg.MaxGasPrice) > 0 {
				log.Warn().
					Str("endpoint", endpoint.URL).
					Str("gas_price_wei", price.String()).
					Str("min_wei", o.cfg.MinGasPrice.String()).
					Str("max_wei", o.cfg.MaxGasPrice.String()).
					Msg("Gas price outside accepted range")

				return nil, reasonOutOfRange
			}

			return o.withMargin(price), ""
		}

		log.Warn().
			Str("endpoint", endpoint.URL).
			Int("attempt", attempt).
			Int("max_attempts", o.cfg.MaxAttempts).
			Err(err).
			Msg("Failed to fetch gas price")

		if attempt == o.cfg.MaxAttempts {
			break
		}

		if err := o.sleep(ctx, time.Duration(attempt)*o.cfg.BackoffStep); err != nil {
			log.Warn().Str("endpoint", endpoint.URL).Err(err).Msg("Gas price retries aborted")
			break
		}
	}

	return nil, reasonRPCError
}

func (o *oracle) withMargin(price *big.Int) *big.Int {
	if o.cfg.MarginPercent == 0 {
		return price
	}

	margin := new(big.Int).Mul(price, big.NewInt(o.cfg.MarginPercent))
	margin.Quo(margin, big.NewInt(100))

	return margin.Add(margin, price)
}

func (o *oracle) priorityFee(ctx context.Context, client GasPricer, endpoint network.Endpoint, tag network.Tag, price *big.Int) *big.Int {
	if client != nil {
		tip, err := client.MaxPriorityFeePerGas(ctx)
		if err == nil && tip != nil && tip.Sign() > 0 {
			return tip
		}

		log.Debug().Str("endpoint", endpoint.URL).Err(err).Msg("Node did not suggest a priority fee, computing one")
	}
	o.degrade(tag, reasonPriorityUnavailable)

	tip := new(big.Int).Quo(price, big.NewInt(priorityFeeDivisor))
	if floor := MinPriorityFee(tag); tip.Cmp(floor) < 0 {
		tip = floor
	}

	return tip
}

func (o *oracle) degrade(tag network.Tag, reason string) {
	if o.observer != nil {
		o.observer.ObserveFeeDegradation(string(tag), reason)
	}
}

func (o *oracle) observeQuote(tag network.Tag, source Source) {
	if o.observer != nil {
		o.observer.ObserveFeeQuote(string(tag), string(source))
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
