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

// DefaultMnemonicWordCount is used when no word count is requested.
const DefaultMnemonicWordCount = 24

func PostGenerateMnemonicRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/generateMnemonic", postGenerateMnemonicHandler(s))
}

func PostGenerateMnemonicCustomRoute(s *api.Server) *echo.Route {
	return s.Router.Wallet.POST("/generateMnemonicCustom", postGenerateMnemonicCustomHandler(s))
}

func postGenerateMnemonicHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		return generateMnemonic(c, DefaultMnemonicWordCount)
	}
}

func postGenerateMnemonicCustomHandler(_ *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body types.PostGenerateMnemonicPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		wordCount := DefaultMnemonicWordCount
		if body.WordCount != nil {
			wordCount = int(swag.Int64Value(body.WordCount))
		}

		return generateMnemonic(c, wordCount)
	}
}

func generateMnemonic(c echo.Context, wordCount int) error {
	phrase, err := keys.GenerateMnemonic(wordCount)
	if err != nil {
		util.LogFromContext(c.Request().Context()).Debug().Err(err).Int("word_count", wordCount).Msg("Failed to generate mnemonic")
		return err
	}

	return util.ValidateAndReturn(c, http.StatusOK, &types.MnemonicResponse{Mnemonic: phrase})
}
