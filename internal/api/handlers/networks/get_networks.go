package networks

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/network"
)

func GetNetworksRoute(s *api.Server) *echo.Route {
	return s.Router.Networks.GET("", getNetworksHandler(s))
}

func getNetworksHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		endpoints, err := s.Networks.List(ctx)
		if err != nil {
			util.LogFromContext(ctx).Error().Err(err).Msg("Failed to list networks")
			return err
		}

		res := &types.NetworksResponse{
			Default:  networkInfo(s.Networks.Default()),
			Networks: make([]types.NetworkInfo, 0, len(endpoints)),
		}
		for _, e := range endpoints {
			res.Networks = append(res.Networks, networkInfo(e))
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}

func networkInfo(e network.Endpoint) types.NetworkInfo {
	return types.NetworkInfo{
		Name:   e.Name,
		RPCURL: e.URL,
		Tag:    string(e.Identity()),
	}
}
