package transaction

import (
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github/chapool/evm-wallet/internal/api"
	"github/chapool/evm-wallet/internal/types"
	"github/chapool/evm-wallet/internal/util"
	"github/chapool/evm-wallet/internal/wallet/errs"
	"github/chapool/evm-wallet/internal/wallet/keys"
	"github/chapool/evm-wallet/internal/wallet/network"
	"github/chapool/evm-wallet/internal/wallet/transfer"
	"github/chapool/evm-wallet/internal/wallet/units"
)

func PostEstimateGasRoute(s *api.Server) *echo.Route {
	return s.Router.Transaction.POST("/estimateGas", postEstimateGasHandler(s))
}

func postEstimateGasHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostEstimateGasPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		from, err := estimateSender(s, &body)
		if err != nil {
			return err
		}

		to, err := keys.ParseAddress(swag.StringValue(body.To))
		if err != nil {
			return err
		}

		endpoint, err := s.ResolveNetwork(ctx, body.Network)
		if err != nil {
			return err
		}

		var estimate *transfer.Estimate
		if body.TokenAddress != nil {
			estimate, err = estimateToken(c, s, from, to, &body, endpoint)
		} else {
			estimate, err = estimateNative(c, s, from, to, &body, endpoint)
		}
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Str("from", from.Hex()).Msg("Failed to estimate gas")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, estimateResponse(estimate))
	}
}

func estimateSender(s *api.Server, body *types.PostEstimateGasPayload) (common.Address, error) {
	if body.From != nil {
		return keys.ParseAddress(*body.From)
	}

	w, err := s.SigningWallet(body.PrivateKey)
	if err != nil {
		return common.Address{}, err
	}

	return w.Account(), nil
}

func estimateNative(c echo.Context, s *api.Server, from common.Address, to common.Address, body *types.PostEstimateGasPayload, endpoint network.Endpoint) (*transfer.Estimate, error) {
	var amount *big.Int
	if body.Amount != nil {
		var err error
		if amount, err = units.ParseEther(*body.Amount); err != nil {
			return nil, err
		}
	}

	return s.Transfer.EstimateNativeTransferCost(c.Request().Context(), from, transfer.Request{To: to, Amount: amount}, endpoint)
}

func estimateToken(c echo.Context, s *api.Server, from common.Address, to common.Address, body *types.PostEstimateGasPayload, endpoint network.Endpoint) (*transfer.Estimate, error) {
	ctx := c.Request().Context()

	token, err := keys.ParseAddress(*body.TokenAddress)
	if err != nil {
		return nil, err
	}
	if body.Amount == nil {
		return nil, errs.New(errs.KindInvalidArgument, "estimate token transfer", "amount is required for token transfers")
	}

	decimals, err := s.Reader.TokenDecimals(ctx, token, endpoint)
	if err != nil {
		return nil, err
	}

	amount, err := units.ParseUnits(*body.Amount, decimals)
	if err != nil {
		return nil, err
	}

	return s.Transfer.EstimateTokenTransferCost(ctx, from, transfer.Request{To: to, Amount: amount, Token: &token}, endpoint)
}
