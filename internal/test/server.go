package test

import (
	"context"
	"testing"
	"time"

	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/api/router"
	"github/chapool/evm-wallet/internal/config"
)

// TestServerConfig returns the env config with settings suitable for tests:
// no redis, no configured signing key and no fee backoff.
func TestServerConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Logger.PrettyPrintConsole = false
	cfg.Echo.EnableLoggerMiddleware = false
	cfg.Wallet.RedisURL = ""
	cfg.Wallet.DefaultPrivateKey = ""
	cfg.Wallet.DefaultRPCURL = "http://localhost:8545"
	cfg.Wallet.DefaultTag = ""
	cfg.Wallet.Networks = nil
	cfg.Fee.BackoffStep = 0

	return cfg
}

// WithTestServer executes closure with a fully initialized server whose
// chain access goes through an unconfigured StubProvider.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, TestServerConfig(), &StubProvider{}, closure)
}

// WithTestServerProvider is WithTestServer with chain calls answered by p.
func WithTestServerProvider(t *testing.T, p *StubProvider, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, TestServerConfig(), p, closure)
}

func WithTestServerConfigurable(t *testing.T, cfg config.Server, p *StubProvider, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServerWithDialer(cfg, p.Dialer(), t)
	if err != nil {
		t.Fatalf("Failed to initialize server: %v", err)
	}

	if err := router.Init(s); err != nil {
		t.Fatalf("Failed to init router: %v", err)
	}

	closure(s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if errs := s.Shutdown(ctx); len(errs) > 0 {
		t.Fatalf("Failed to shutdown server: %v", errs)
	}
}
