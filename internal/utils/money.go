package utils

import "github.com/shopspring/decimal"

// MoneyToFloat rounds to cents for JSON output.
func MoneyToFloat(amount decimal.Decimal) float64 {
	f, _ := amount.Round(2).Float64()
	return f
}

func MoneyFromFloat(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// OptionalMoneyToFloat maps nil to nil, used for metrics that are undefined rather than zero.
func OptionalMoneyToFloat(amount *decimal.Decimal) *float64 {
	if amount == nil {
		return nil
	}
	f := MoneyToFloat(*amount)
	return &f
}
