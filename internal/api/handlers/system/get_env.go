package system

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/config"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
)

func GetEnvRoute(s *api.Server) *echo.Route {
	return s.Router.Root.GET("/env", getEnvHandler(s))
}

func getEnvHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		endpoint := s.Networks.Default()

		port := s.Config.Echo.ListenAddress
		if i := strings.LastIndex(port, ":"); i >= 0 {
			port = port[i+1:]
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.EnvInfoResponse{
			RPCEndpoint:   endpoint.URL,
			PrivateKeySet: s.Config.Wallet.DefaultPrivateKey != "",
			ServerPort:    port,
			NetworkTag:    string(endpoint.Identity()),
			Version:       config.GetFormattedBuildArgs(),
		})
	}
}
