package chain

import (
	"math/big"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/keys"
	"github/chapool/evm-wallet/internal/wallet/reader"
)

func PostErc20EventsRoute(s *api.Server) *echo.Route {
	return s.Router.Events.POST("/erc20Transfers", postErc20EventsHandler(s))
}

func postErc20EventsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostErc20EventsPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		token, err := keys.ParseAddress(swag.StringValue(body.TokenAddress))
		if err != nil {
			return err
		}

		query := reader.TokenTransferQuery{
			Token:     token,
			FromBlock: body.FromBlock,
			ToBlock:   body.ToBlock,
		}
		if body.AddressFilter != nil && *body.AddressFilter != "" {
			sender, err := keys.ParseAddress(*body.AddressFilter)
			if err != nil {
				return err
			}
			query.From = &sender
		}

		endpoint, err := s.ResolveNetwork(ctx, body.Network)
		if err != nil {
			return err
		}

		events, err := s.Reader.TokenTransfers(ctx, query, endpoint)
		if err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Str("token", token.Hex()).Msg("Failed to get ERC20 events")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, eventsResponse(events))
	}
}

func eventsResponse(events []reader.TransferEvent) *types.Erc20EventsResponse {
	res := &types.Erc20EventsResponse{
		Events: make([]types.Erc20TransferEvent, 0, len(events)),
	}
	for _, e := range events {
		res.Events = append(res.Events, types.Erc20TransferEvent{
			TransactionHash: e.TransactionHash.Hex(),
			BlockNumber:     e.BlockNumber,
			FromAddress:     e.From.Hex(),
			ToAddress:       e.To.Hex(),
			Amount:          amountString(e.Amount),
			LogIndex:        uint64(e.LogIndex),
		})
	}

	return res
}

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}

	return v.String()
}
