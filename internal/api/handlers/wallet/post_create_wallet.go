package wallet

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/keys"
)

func PostCreateWalletRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/create", postCreateWalletHandler(s))
}

func postCreateWalletHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := util.LogFromContext(c.Request().Context())

		w, err := keys.GenerateRandom()
		if err != nil {
			log.Error().Err(err).Msg("Failed to generate wallet")
			return err
		}

		log.Debug().Str("address", w.Address).Msg("Generated wallet")

		return util.ValidateAndReturn(c, http.StatusOK, walletResponse(w))
	}
}
