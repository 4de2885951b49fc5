package networks

import (
	"fmt"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
)

func PostRemoveNetworkRoute(s *api.Server) *echo.Route {
	return s.Router.Networks.POST("/remove", postRemoveNetworkHandler(s))
}

func postRemoveNetworkHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostRemoveNetworkPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		name := swag.StringValue(body.Name)
		if err := s.Networks.Remove(ctx, name); err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Str("network", name).Msg("Failed to remove network")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.MessageResponse{Message: fmt.Sprintf("Network %s removed", name)})
	}
}
