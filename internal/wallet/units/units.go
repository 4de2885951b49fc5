// Package units converts between integer base units and decimal strings.
package units

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github/chapool/evm-wallet/internal/wallet/errs"
)

const EtherDecimals = 18

var maxUint256 = decimal.NewFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)), 0)

// FormatUnits renders amount scaled down by decimals, trimming trailing
// fractional zeros and a dangling decimal point.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}

	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

func FormatEther(wei *big.Int) string {
	return FormatUnits(wei, EtherDecimals)
}

// ParseUnits converts a non-negative plain decimal string into base units.
// Amounts with more fractional digits than decimals are rejected, never
// rounded, as are exponent forms and results above the uint256 maximum.
func ParseUnits(amount string, decimals uint8) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, errs.New(errs.KindInvalidArgument, "parse amount", "amount must not be empty")
	}

	if strings.ContainsAny(amount, "eE") {
		return nil, errs.Newf(errs.KindInvalidArgument, "parse amount", "invalid amount %q", amount)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, errs.Newf(errs.KindInvalidArgument, "parse amount", "invalid amount %q", amount)
	}
	if d.IsNegative() {
		return nil, errs.Newf(errs.KindInvalidArgument, "parse amount", "amount %q must not be negative", amount)
	}

	scaled := d.Shift(int32(decimals))
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, errs.Newf(errs.KindInvalidArgument, "parse amount",
			"amount %q has more than %d fractional digits", amount, decimals)
	}

	if scaled.GreaterThan(maxUint256) {
		return nil, errs.Newf(errs.KindInvalidArgument, "parse amount", "amount %q does not fit into uint256", amount)
	}

	return scaled.BigInt(), nil
}

func ParseEther(amount string) (*big.Int, error) {
	return ParseUnits(amount, EtherDecimals)
}
