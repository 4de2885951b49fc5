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

func PostFromMnemonicRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/fromMnemonic", postFromMnemonicHandler(s))
}

func PostFromMnemonicPathRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/fromMnemonicPath", postFromMnemonicPathHandler(s))
}

func postFromMnemonicHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body types.PostFromMnemonicPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		w, err := keys.FromMnemonic(swag.StringValue(body.Mnemonic))
		if err != nil {
			util.LogFromContext(c.Request().Context()).Debug().Err(err).Msg("Failed to create wallet from mnemonic")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, walletResponse(w))
	}
}

func postFromMnemonicPathHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body types.PostFromMnemonicPathPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		path := keys.DefaultDerivationPath
		if body.Path != nil {
			path = *body.Path
		}

		w, err := keys.DeriveFromMnemonic(swag.StringValue(body.Mnemonic), path)
		if err != nil {
			util.LogFromContext(c.Request().Context()).Debug().Err(err).Str("path", path).Msg("Failed to derive wallet from mnemonic")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, walletResponse(w))
	}
}
