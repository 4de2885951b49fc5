package fee_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/evm-wallet/internal/wallet/fee"
	"github/chapool/evm-wallet/internal/wallet/network"
)

const gwei = int64(1_000_000_000)

var errNode = errors.New("connection refused")

type stubPricer struct {
	mu        sync.Mutex
	prices    []*big.Int
	priceErrs []error
	tip       *big.Int
	tipErr    error
	calls     int
}

func (s *stubPricer) SuggestGasPrice(_ context.Context) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	s.calls++
	if i < len(s.priceErrs) && s.priceErrs[i] != nil {
		return nil, s.priceErrs[i]
	}
	if i < len(s.prices) {
		return s.prices[i], nil
	}

	return nil, errNode
}

func (s *stubPricer) MaxPriorityFeePerGas(_ context.Context) (*big.Int, error) {
	return s.tip, s.tipErr
}

type recordedSleep struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (r *recordedSleep) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waits = append(r.waits, d)

	return nil
}

type recordingObserver struct {
	quotes       []string
	degradations []string
}

func (r *recordingObserver) ObserveFeeQuote(tag string, source string) {
	r.quotes = append(r.quotes, tag+"/"+source)
}

func (r *recordingObserver) ObserveFeeDegradation(tag string, reason string) {
	r.degradations = append(r.degradations, tag+"/"+reason)
}

func newOracle(t *testing.T, opts ...fee.Option) (fee.Oracle, *recordedSleep) {
	t.Helper()

	sleeps := &recordedSleep{}
	opts = append([]fee.Option{fee.WithSleep(sleeps.sleep)}, opts...)

	return fee.NewOracle(fee.DefaultConfig(), opts...), sleeps
}

func assertQuoteInvariant(t *testing.T, q fee.Quote) {
	t.Helper()

	require.NotNil(t, q.MaxFeePerGas)
	require.NotNil(t, q.MaxPriorityFeePerGas)
	assert.Positive(t, q.MaxPriorityFeePerGas.Sign())
	assert.GreaterOrEqual(t, q.MaxFeePerGas.Cmp(q.MaxPriorityFeePerGas), 0)
}

func TestResolveFixedPriceNetwork(t *testing.T) {
	o, sleeps := newOracle(t)
	client := &stubPricer{}

	q := o.Resolve(t.Context(), client, network.NewEndpoint("https://rpc.verylabs.io"))

	assert.Equal(t, fee.SourceFixed, q.Source)
	assert.Equal(t, big.NewInt(gwei), q.GasPrice)
	assert.Equal(t, big.NewInt(2*gwei), q.MaxFeePerGas)
	assert.Equal(t, big.NewInt(gwei), q.MaxPriorityFeePerGas)
	assert.Zero(t, client.calls)
	assert.Empty(t, sleeps.waits)
	assertQuoteInvariant(t, q)
}

func TestResolveFromRPC(t *testing.T) {
	o, _ := newOracle(t)
	client := &stubPricer{prices: []*big.Int{big.NewInt(20 * gwei)}, tip: big.NewInt(2 * gwei)}

	q := o.Resolve(t.Context(), client, network.NewEndpoint("https://eth-mainnet.example"))

	assert.Equal(t, fee.SourceRPC, q.Source)
	assert.Equal(t, big.NewInt(20*gwei), q.GasPrice)
	assert.Equal(t, big.NewInt(40*gwei), q.MaxFeePerGas)
	assert.Equal(t, big.NewInt(2*gwei), q.MaxPriorityFeePerGas)
	assert.Equal(t, 1, client.calls)
	assertQuoteInvariant(t, q)
}

func TestResolveRetriesThenSucceeds(t *testing.T) {
	o, sleeps := newOracle(t)
	client := &stubPricer{
		priceErrs: []error{errNode, errNode},
		prices:    []*big.Int{nil, nil, big.NewInt(5 * gwei)},
		tip:       big.NewInt(gwei),
	}

	q := o.Resolve(t.Context(), client, network.NewEndpoint("https://eth-mainnet.example"))

	assert.Equal(t, fee.SourceRPC, q.Source)
	assert.Equal(t, big.NewInt(5*gwei), q.GasPrice)
	assert.Equal(t, 3, client.calls)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, time.Second}, sleeps.waits)
}

func TestResolveFallbackAfterFailures(t *testing.T) {
	tests := []struct {
		url  string
		want int64
	}{
		{"https://polygon-rpc.com", 35 * gwei},
		{"https://bsc-dataseed.binance.org", 8 * gwei},
		{"https://arb1.arbitrum.io/rpc", 2 * gwei},
		{"https://optimism-mainnet.example", 10_000_000},
		{"https://eth-mainnet.example", 30 * gwei},
		{"https://unknown-network.com", 25 * gwei},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			observer := &recordingObserver{}
			o, sleeps := newOracle(t, fee.WithObserver(observer))
			client := &stubPricer{tipErr: errNode}

			q := o.Resolve(t.Context(), client, network.NewEndpoint(tt.url))

			assert.Equal(t, fee.SourceFallback, q.Source)
			assert.Equal(t, big.NewInt(tt.want), q.GasPrice)
			assert.Equal(t, new(big.Int).Mul(big.NewInt(tt.want), big.NewInt(2)), q.MaxFeePerGas)
			assert.Equal(t, 3, client.calls)
			assertQuoteInvariant(t, q)

			var total time.Duration
			for _, w := range sleeps.waits {
				total += w
			}
			assert.LessOrEqual(t, total, 3*time.Second)

			tag := string(network.Detect(tt.url))
			assert.Contains(t, observer.degradations, tag+"/rpc_error")
			assert.Contains(t, observer.degradations, tag+"/priority_unavailable")
			assert.Equal(t, []string{tag + "/fallback"}, observer.quotes)
		})
	}
}

func TestResolveOutOfRangeSkipsRetries(t *testing.T) {
	for _, price := range []*big.Int{big.NewInt(1), big.NewInt(999_999), new(big.Int).Mul(big.NewInt(1001), big.NewInt(gwei))} {
		o, sleeps := newOracle(t)
		client := &stubPricer{prices: []*big.Int{price, big.NewInt(gwei)}, tip: big.NewInt(1)}

		q := o.Resolve(t.Context(), client, network.NewEndpoint("https://polygon-rpc.com"))

		assert.Equal(t, fee.SourceFallback, q.Source, price.String())
		assert.Equal(t, big.NewInt(35*gwei), q.GasPrice)
		assert.Equal(t, 1, client.calls)
		assert.Empty(t, sleeps.waits)
	}
}

func TestResolveRangeBoundsAccepted(t *testing.T) {
	for _, price := range []*big.Int{big.NewInt(1_000_000), big.NewInt(1000 * gwei)} {
		o, _ := newOracle(t)
		client := &stubPricer{prices: []*big.Int{price}, tip: big.NewInt(1)}

		q := o.Resolve(t.Context(), client, network.NewEndpoint("https://eth-mainnet.example"))
		assert.Equal(t, fee.SourceRPC, q.Source)
		assert.Equal(t, price, q.GasPrice)
	}
}

func TestComputedPriorityFee(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		price int64
		want  int64
	}{
		{"tenth of price", "https://eth-mainnet.example", 50 * gwei, 5 * gwei},
		{"network minimum", "https://eth-mainnet.example", 5 * gwei, gwei},
		{"elevated minimum", "https://polygon-rpc.com", 40 * gwei, 30 * gwei},
		{"l2 minimum", "https://arb1.arbitrum.io/rpc", 10_000_000, 1_000_000},
		{"clamped to max fee", "https://polygon-rpc.com", 2 * gwei, 4 * gwei},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := newOracle(t)
			client := &stubPricer{prices: []*big.Int{big.NewInt(tt.price)}, tipErr: errNode}

			q := o.Resolve(t.Context(), client, network.NewEndpoint(tt.url))

			assert.Equal(t, fee.SourceRPC, q.Source)
			assert.Equal(t, big.NewInt(tt.want), q.MaxPriorityFeePerGas)
			assertQuoteInvariant(t, q)
		})
	}
}

func TestRPCPriorityFeeClampedToMaxFee(t *testing.T) {
	o, _ := newOracle(t)
	client := &stubPricer{prices: []*big.Int{big.NewInt(gwei)}, tip: big.NewInt(500 * gwei)}

	q := o.Resolve(t.Context(), client, network.NewEndpoint("https://eth-mainnet.example"))

	assert.Equal(t, q.MaxFeePerGas, q.MaxPriorityFeePerGas)
	assertQuoteInvariant(t, q)
}

func TestZeroRPCPriorityFeeIsComputed(t *testing.T) {
	o, _ := newOracle(t)
	client := &stubPricer{prices: []*big.Int{big.NewInt(20 * gwei)}, tip: big.NewInt(0)}

	q := o.Resolve(t.Context(), client, network.NewEndpoint("https://eth-mainnet.example"))

	assert.Equal(t, big.NewInt(2*gwei), q.MaxPriorityFeePerGas)
}

func TestResolveWithMargin(t *testing.T) {
	cfg := fee.DefaultConfig()
	cfg.MarginPercent = 10
	o := fee.NewOracle(cfg, fee.WithSleep((&recordedSleep{}).sleep))
	client := &stubPricer{prices: []*big.Int{big.NewInt(20 * gwei)}, tip: big.NewInt(gwei)}

	q := o.Resolve(t.Context(), client, network.NewEndpoint("https://eth-mainnet.example"))

	assert.Equal(t, big.NewInt(22*gwei), q.GasPrice)
	assert.Equal(t, big.NewInt(44*gwei), q.MaxFeePerGas)
}

func TestResolveWithoutClient(t *testing.T) {
	o, _ := newOracle(t)

	q := o.Resolve(t.Context(), nil, network.NewEndpoint("https://bsc-dataseed.binance.org"))

	assert.Equal(t, fee.SourceFallback, q.Source)
	assert.Equal(t, big.NewInt(8*gwei), q.GasPrice)
	assert.Equal(t, big.NewInt(800_000_000), q.MaxPriorityFeePerGas)
	assertQuoteInvariant(t, q)
}

func TestResolveCancelledContextStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	o := fee.NewOracle(fee.DefaultConfig())
	client := &stubPricer{tipErr: errNode}

	start := time.Now()
	q := o.Resolve(ctx, client, network.NewEndpoint("https://arb1.arbitrum.io/rpc"))

	assert.Less(t, time.Since(start), 400*time.Millisecond)
	assert.Equal(t, fee.SourceFallback, q.Source)
	assert.Equal(t, 1, client.calls)
}

func TestExplicitTagOverridesURL(t *testing.T) {
	o, _ := newOracle(t)

	q := o.Resolve(t.Context(), nil, network.Endpoint{URL: "http://10.0.0.5:8545", Tag: network.TagPolygon})

	assert.Equal(t, big.NewInt(35*gwei), q.GasPrice)
}
