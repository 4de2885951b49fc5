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

func PostSendNativeRoute(s *api.Server) *echo.Route {
	return s.Router.Transaction.POST("/sendNative", postSendNativeHandler(s))
}

func postSendNativeHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostSendNativePayload
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

		amount, err := units.ParseEther(swag.StringValue(body.Amount))
		if err != nil {
			return err
		}

		endpoint, err := s.ResolveNetwork(ctx, body.Network)
		if err != nil {
			return err
		}

		res, err := s.Transfer.SendNative(ctx, w, transfer.Request{To: to, Amount: amount}, endpoint)
		if err != nil {
			log.Warn().Err(err).Str("from", w.Address).Str("to", to.Hex()).Msg("Failed to send native coin")
			return err
		}

		log.Info().Str("tx_hash", res.TxHash.Hex()).Str("from", res.From.Hex()).Uint64("nonce", res.Nonce).Msg("Native transfer submitted")

		return util.ValidateAndReturn(c, http.StatusOK, transactionResponse(res))
	}
}
