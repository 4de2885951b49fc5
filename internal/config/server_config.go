package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	DefaultRPCURL     = "https://rpc.verylabs.io"
	DefaultServerPort = "3000"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableCORSMiddleware           bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
	RequestTimeout                 time.Duration
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogRequestBody     bool
	LogResponseBody    bool
	PrettyPrintConsole bool
}

type ManagementServer struct {
	LivenessPath          string
	ReadinessPath         string
	ProbeReadinessTimeout time.Duration
	EnableMetrics         bool
}

// NamedNetwork is a network preconfigured through WALLET_NETWORKS.
type NamedNetwork struct {
	Name   string
	RPCURL string
	Tag    string
}

type Wallet struct {
	DefaultRPCURL string
	DefaultTag    string
	Networks      []NamedNetwork

	// DefaultPrivateKey signs requests that carry no private_key.
	DefaultPrivateKey string `json:"-"`

	RedisURL        string `json:"-"`
	RedisNetworkKey string

	MaxScanBlocks uint64
}

type Fee struct {
	MaxAttempts    int
	BackoffStep    time.Duration
	MinGasPriceWei int64
	MaxGasPriceWei int64
	MarginPercent  int64
}

type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Management ManagementServer
	Wallet     Wallet
	Fee        Fee
}

// DefaultServiceConfigFromEnv returns the server config as parsed from
// environment variables and their respective defaults. A .env file in the
// working directory is loaded first if present; real env vars take precedence.
func DefaultServiceConfigFromEnv() Server {
	DotEnvTryLoad(filepath.Join(".", ".env"))

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return Server{
		Echo: EchoServer{
			Debug:                          v.GetBool("SERVER_ECHO_DEBUG"),
			ListenAddress:                  listenAddress(v),
			HideInternalServerErrorDetails: v.GetBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS"),
			EnableCORSMiddleware:           v.GetBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE"),
			EnableRecoverMiddleware:        v.GetBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE"),
			EnableRequestIDMiddleware:      v.GetBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE"),
			EnableLoggerMiddleware:         v.GetBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE"),
			RequestTimeout:                 v.GetDuration("SERVER_ECHO_REQUEST_TIMEOUT"),
		},
		Logger: LoggerServer{
			Level:              parseLevel(v.GetString("SERVER_LOGGER_LEVEL"), zerolog.InfoLevel),
			RequestLevel:       parseLevel(v.GetString("SERVER_LOGGER_REQUEST_LEVEL"), zerolog.DebugLevel),
			LogRequestBody:     v.GetBool("SERVER_LOGGER_LOG_REQUEST_BODY"),
			LogResponseBody:    v.GetBool("SERVER_LOGGER_LOG_RESPONSE_BODY"),
			PrettyPrintConsole: v.GetBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE"),
		},
		Management: ManagementServer{
			LivenessPath:          v.GetString("SERVER_MANAGEMENT_LIVENESS_PATH"),
			ReadinessPath:         v.GetString("SERVER_MANAGEMENT_READINESS_PATH"),
			ProbeReadinessTimeout: v.GetDuration("SERVER_MANAGEMENT_PROBE_READINESS_TIMEOUT"),
			EnableMetrics:         v.GetBool("SERVER_MANAGEMENT_ENABLE_METRICS"),
		},
		Wallet: Wallet{
			DefaultRPCURL:     v.GetString("RPC_ENDPOINT"),
			DefaultTag:        v.GetString("WALLET_DEFAULT_NETWORK_TAG"),
			Networks:          ParseNamedNetworks(v.GetString("WALLET_NETWORKS")),
			DefaultPrivateKey: v.GetString("PRIVATE_KEY"),
			RedisURL:          v.GetString("WALLET_REDIS_URL"),
			RedisNetworkKey:   v.GetString("WALLET_REDIS_NETWORK_KEY"),
			MaxScanBlocks:     v.GetUint64("WALLET_MAX_SCAN_BLOCKS"),
		},
		Fee: Fee{
			MaxAttempts:    v.GetInt("WALLET_FEE_MAX_ATTEMPTS"),
			BackoffStep:    v.GetDuration("WALLET_FEE_BACKOFF_STEP"),
			MinGasPriceWei: v.GetInt64("WALLET_FEE_MIN_GAS_PRICE_WEI"),
			MaxGasPriceWei: v.GetInt64("WALLET_FEE_MAX_GAS_PRICE_WEI"),
			MarginPercent:  v.GetInt64("WALLET_FEE_MARGIN_PERCENT"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ECHO_DEBUG", false)
	v.SetDefault("SERVER_PORT", DefaultServerPort)
	v.SetDefault("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true)
	v.SetDefault("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true)
	v.SetDefault("SERVER_ECHO_REQUEST_TIMEOUT", 2*time.Minute)

	v.SetDefault("SERVER_LOGGER_LEVEL", zerolog.InfoLevel.String())
	v.SetDefault("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())
	v.SetDefault("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false)

	v.SetDefault("SERVER_MANAGEMENT_LIVENESS_PATH", "/-/healthy")
	v.SetDefault("SERVER_MANAGEMENT_READINESS_PATH", "/-/ready")
	v.SetDefault("SERVER_MANAGEMENT_PROBE_READINESS_TIMEOUT", 4*time.Second)
	v.SetDefault("SERVER_MANAGEMENT_ENABLE_METRICS", true)

	v.SetDefault("RPC_ENDPOINT", DefaultRPCURL)
	v.SetDefault("WALLET_REDIS_NETWORK_KEY", "evm-wallet:networks")
	v.SetDefault("WALLET_MAX_SCAN_BLOCKS", 1000)

	v.SetDefault("WALLET_FEE_MAX_ATTEMPTS", 3)
	v.SetDefault("WALLET_FEE_BACKOFF_STEP", 500*time.Millisecond)
	v.SetDefault("WALLET_FEE_MIN_GAS_PRICE_WEI", 1_000_000)
	v.SetDefault("WALLET_FEE_MAX_GAS_PRICE_WEI", 1_000_000_000_000)
	v.SetDefault("WALLET_FEE_MARGIN_PERCENT", 0)
}

// listenAddress honours SERVER_ECHO_LISTEN_ADDRESS and falls back to SERVER_PORT.
func listenAddress(v *viper.Viper) string {
	if addr := v.GetString("SERVER_ECHO_LISTEN_ADDRESS"); addr != "" {
		return addr
	}

	return ":" + v.GetString("SERVER_PORT")
}

// ParseNamedNetworks parses "name=url[,url...][@tag];name=url" entries.
func ParseNamedNetworks(raw string) []NamedNetwork {
	networks := make([]NamedNetwork, 0)
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, rest, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(rest) == "" {
			log.Warn().Str("entry", entry).Msg("Ignoring malformed WALLET_NETWORKS entry")
			continue
		}

		n := NamedNetwork{Name: strings.TrimSpace(name), RPCURL: strings.TrimSpace(rest)}
		if i := strings.LastIndex(n.RPCURL, "@"); i > 0 && !strings.Contains(n.RPCURL[i:], "/") {
			n.Tag = n.RPCURL[i+1:]
			n.RPCURL = n.RPCURL[:i]
		}
		networks = append(networks, n)
	}

	return networks
}

func parseLevel(s string, fallback zerolog.Level) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return fallback
	}

	return level
}

// DotEnvTryLoad loads the given .env file into the process environment
// without overriding variables that are already set.
func DotEnvTryLoad(absolutePathToEnvFile string) {
	if _, err := os.Stat(absolutePathToEnvFile); err != nil {
		return
	}

	if err := gotenv.Load(absolutePathToEnvFile); err != nil {
		log.Warn().Err(err).Str("path", absolutePathToEnvFile).Msg(".env file could not be loaded")
	}
}
