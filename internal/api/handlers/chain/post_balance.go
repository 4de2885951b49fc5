package chain

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/keys"
	"github/chapool/evm-wallet/internal/wallet/units"
)

func PostNativeBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.Balance.POST("/native", postNativeBalanceHandler(s))
}

func PostErc20BalanceRoute(s *api.Server) *echo.Route {
	return s.Router.Balance.POST("/erc20", postErc20BalanceHandler(s))
}

func postNativeBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostBalancePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		account, err := keys.ParseAddress(swag.StringValue(body.Address))
		if err != nil {
			return err
		}

		endpoint, err := s.ResolveNetwork(ctx, body.Network)
		if err != nil {
			return err
		}

		balance, err := s.Reader.NativeBalance(ctx, account, endpoint)
		if err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Str("address", account.Hex()).Msg("Failed to get native balance")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.BalanceResponse{
			Balance:  units.FormatEther(balance),
			Raw:      balance.String(),
			Decimals: units.EtherDecimals,
		})
	}
}

func postErc20BalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostErc20BalancePayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		account, err := keys.ParseAddress(swag.StringValue(body.Address))
		if err != nil {
			return err
		}

		token, err := keys.ParseAddress(swag.StringValue(body.TokenAddress))
		if err != nil {
			return err
		}

		endpoint, err := s.ResolveNetwork(ctx, body.Network)
		if err != nil {
			return err
		}

		balance, err := s.Reader.TokenBalance(ctx, account, token, endpoint)
		if err != nil {
			log.Warn().Err(err).Str("address", account.Hex()).Str("token", token.Hex()).Msg("Failed to get ERC20 balance")
			return err
		}

		decimals, err := s.Reader.TokenDecimals(ctx, token, endpoint)
		if err != nil {
			log.Warn().Err(err).Str("token", token.Hex()).Msg("Failed to get ERC20 decimals")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.BalanceResponse{
			Balance:  units.FormatUnits(balance, decimals),
			Raw:      balance.String(),
			Decimals: decimals,
		})
	}
}
