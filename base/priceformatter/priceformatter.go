package priceformatter

import (
	"github.com/shopspring/decimal"

	"github.com/astromart/goledger/domain"
)

// nativeDecimals is the number of decimals of the ledger's native currency
const nativeDecimals = 24

// DisplayPrice renders an amount of minimal currency units as a whole-token
// decimal string for events and views.
func DisplayPrice(amount string) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", domain.ErrInvalidNumberFormat
	}
	return d.Shift(-nativeDecimals).String(), nil
}
