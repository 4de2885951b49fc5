package wallet

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/keys"
)

func PostFromPrivateKeyRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/fromPrivateKey", postFromPrivateKeyHandler(s))
}

func postFromPrivateKeyHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := util.LogFromContext(c.Request().Context())

		var body types.PostFromPrivateKeyPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		w, err := keys.FromPrivateKey(swag.StringValue(body.PrivateKey))
		if err != nil {
			log.Debug().Err(err).Msg("Failed to import private key")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, walletResponse(w))
	}
}
