package networks

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/api/httperrors"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/network"
)

func PostAddNetworkRoute(s *api.Server) *echo.Route {
	return s.Router.Networks.POST("/add", postAddNetworkHandler(s))
}

func postAddNetworkHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostAddNetworkPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		var tag network.Tag
		if body.Tag != nil && *body.Tag != "" {
			var ok bool
			if tag, ok = network.ParseTag(*body.Tag); !ok {
				return httperrors.NewHTTPValidationError(
					http.StatusBadRequest,
					types.PublicHTTPErrorTypeValidation,
					"Unknown network tag",
					[]*types.HTTPValidationErrorDetail{
						{
							Key:   swag.String("tag"),
							In:    swag.String("body"),
							Error: swag.String("unknown network tag"),
						},
					},
				)
			}
		}

		endpoint, err := s.Networks.Add(ctx, swag.StringValue(body.Name), swag.StringValue(body.RPCURL), tag)
		if err != nil {
			log.Debug().Err(err).Msg("Failed to add network")
			return err
		}

		log.Info().Str("network", endpoint.Name).Str("tag", string(endpoint.Identity())).Msg("Network added")

		return util.ValidateAndReturn(c, http.StatusOK, &types.NetworkResponse{Network: networkInfo(endpoint)})
	}
}
