package transaction

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/keys"
	"github/chapool/evm-wallet/internal/wallet/reader"
)

func PostTransactionHistoryRoute(s *api.Server) *echo.Route {
	return s.Router.Transaction.POST("/history", postTransactionHistoryHandler(s))
}

func PostAllTransactionHistoryRoute(s *api.Server) *echo.Route {
	return s.Router.Transaction.POST("/history/all", postAllTransactionHistoryHandler(s))
}

func postTransactionHistoryHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostTransactionHistoryPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		address, err := keys.ParseAddress(swag.StringValue(body.Address))
		if err != nil {
			return err
		}

		endpoint, err := s.ResolveNetwork(ctx, body.Network)
		if err != nil {
			return err
		}

		records, err := s.Reader.NativeTransfers(ctx, reader.NativeTransferQuery{
			Address:   &address,
			FromBlock: body.FromBlock,
			ToBlock:   body.ToBlock,
		}, endpoint)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Str("address", address.Hex()).Msg("Failed to get native transaction history")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, historyResponse(records))
	}
}

func postAllTransactionHistoryHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostAllTransactionHistoryPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		endpoint, err := s.ResolveNetwork(ctx, body.Network)
		if err != nil {
			return err
		}

		records, err := s.Reader.NativeTransfers(ctx, reader.NativeTransferQuery{
			FromBlock: body.FromBlock,
			ToBlock:   body.ToBlock,
		}, endpoint)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to get all native transaction history")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, historyResponse(records))
	}
}
