package chain

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
)

func GetCurrentBlockRoute(s *api.Server) *echo.Route {
	return s.Router.Block.GET("/current", getCurrentBlockHandler(s))
}

// getCurrentBlockHandler takes an optional ?network= query parameter.
func getCurrentBlockHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var network *string
		if n := c.QueryParam("network"); n != "" {
			network = &n
		}

		endpoint, err := s.ResolveNetwork(ctx, network)
		if err != nil {
			return err
		}

		block, err := s.Reader.CurrentBlock(ctx, endpoint)
		if err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Msg("Failed to get current block")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.CurrentBlockResponse{CurrentBlock: block})
	}
}
