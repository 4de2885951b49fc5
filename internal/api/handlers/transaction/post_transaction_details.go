package transaction

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/errs"
)

const txHashHexLength = 2 + 2*common.HashLength

func PostTransactionDetailsRoute(s *api.Server) *echo.Route {
	return s.Router.Transaction.POST("/details", postTransactionDetailsHandler(s))
}

// PostTransactionReceiptRoute serves the same record as /details.
func PostTransactionReceiptRoute(s *api.Server) *echo.Route {
	return s.Router.Transaction.POST("/receipt", postTransactionDetailsHandler(s))
}

func postTransactionDetailsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostTransactionDetailsPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		hash, err := parseTxHash(swag.StringValue(body.TxHash))
		if err != nil {
			return err
		}

		endpoint, err := s.ResolveNetwork(ctx, body.Network)
		if err != nil {
			return err
		}

		receipt, err := s.Reader.TransactionDetails(ctx, hash, endpoint)
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Str("tx_hash", hash.Hex()).Msg("Failed to get transaction details")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.TransactionDetailsResponse{Transaction: receiptResponse(*receipt)})
	}
}

func parseTxHash(s string) (common.Hash, error) {
	s = strings.TrimSpace(s)
	if len(s) != txHashHexLength || !strings.HasPrefix(s, "0x") {
		return common.Hash{}, errs.Newf(errs.KindInvalidArgument, "parse transaction hash", "invalid transaction hash %q", s)
	}

	b := common.FromHex(s)
	if len(b) != common.HashLength {
		return common.Hash{}, errs.Newf(errs.KindInvalidArgument, "parse transaction hash", "invalid transaction hash %q", s)
	}

	return common.BytesToHash(b), nil
}
