package transaction

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/keys"
	"github/chapool/evm-wallet/internal/wallet/transfer"
	"github/chapool/evm-wallet/internal/wallet/units"
)

func PostSendErc20Route(s *api.Server) *echo.Route {
	return s.Router.Transaction.POST("/sendErc20", postSendErc20Handler(s))
}

func postSendErc20Handler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSendErc20Payload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		w, err := s.SigningWallet(body.PrivateKey)
		if err != nil {
			return err
		}

		to, err := keys.ParseAddress(swag.StringValue(body.To))
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

		decimals, err := s.Reader.TokenDecimals(ctx, token, endpoint)
		if err != nil {
			log.Debug().Err(err).Str("token", token.Hex()).Msg("Failed to read token decimals")
			return err
		}

		amount, err := units.ParseUnits(swag.StringValue(body.Amount), decimals)
		if err != nil {
			return err
		}

		res, err := s.Transfer.SendToken(ctx, w, transfer.Request{To: to, Amount: amount, Token: &token}, endpoint)
		if err != nil {
			log.Warn().Err(err).Str("from", w.Address).Str("token", token.Hex()).Msg("Failed to send ERC20 token")
			return err
		}

		log.Info().Str("tx_hash", res.TxHash.Hex()).Str("token", token.Hex()).Uint64("nonce", res.Nonce).Msg("Token transfer submitted")

		return util.ValidateAndReturn(c, http.StatusOK, transactionResponse(res))
	}
}
