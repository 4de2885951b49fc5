package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github/chapool/evm-wallet/internal/config"
	"github/chapool/evm-wallet/internal/metrics"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/fee"
	"github/chapool/evm-wallet/internal/wallet/network"
	"github/chapool/evm-wallet/internal/wallet/provider"
	"github/chapool/evm-wallet/internal/wallet/reader"
	"github/chapool/evm-wallet/internal/wallet/signer"
	"github/chapool/evm-wallet/internal/wallet/transfer"
)

type Router struct {
	Routes      []*echo.Route
	Root        *echo.Group
	Management  *echo.Group
	Wallet      *echo.Group
	Transaction *echo.Group
	Balance     *echo.Group
	Events      *echo.Group
	Block       *echo.Group
	Networks    *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config   config.Server
	Redis    *redis.Client `ready:"-"` // only set with WALLET_REDIS_URL
	Metrics  *metrics.Service
	Networks *network.Registry
	Dialer   provider.Dialer
	Fee      fee.Oracle
	Signer   signer.Service
	Transfer transfer.Service
	Reader   reader.Service
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	redisClient *redis.Client,
	metricsService *metrics.Service,
	networks *network.Registry,
	dialer provider.Dialer,
	oracle fee.Oracle,
	signerService signer.Service,
	transferService transfer.Service,
	readerService reader.Service,
) *Server {
	return &Server{
		Config:   cfg,
		Redis:    redisClient,
		Metrics:  metricsService,
		Networks: networks,
		Dialer:   dialer,
		Fee:      oracle,
		Signer:   signerService,
		Transfer: transferService,
		Reader:   readerService,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

// Probe checks the external dependencies: the redis network store if
// configured and the default RPC endpoint.
func (s *Server) Probe(ctx context.Context) error {
	if s.Redis != nil {
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to ping redis: %w", err)
		}
	}

	endpoint := s.Networks.Default()
	p, err := s.Dialer.Dial(ctx, endpoint.URL)
	if err != nil {
		return fmt.Errorf("failed to dial default endpoint: %w", err)
	}
	defer p.Close()

	if _, err := p.BlockNumber(ctx); err != nil {
		return fmt.Errorf("failed to query default endpoint: %w", err)
	}

	return nil
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Redis != nil {
		log.Debug().Msg("Closing redis connection")

		if err := s.Redis.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			log.Error().Err(err).Msg("Failed to close redis connection")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
