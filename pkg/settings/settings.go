package settings

import (
	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/shopspring/decimal"
)

// DefaultIrsMileageDeduction is the per-mile rate used when the user never stored settings.
var DefaultIrsMileageDeduction = decimal.RequireFromString("0.70")

type Settings struct {
	IrsMileageDeduction decimal.Decimal
}

func Default() Settings {
	return Settings{IrsMileageDeduction: DefaultIrsMileageDeduction}
}

func (s Settings) Validate() error {
	if s.IrsMileageDeduction.IsNegative() {
		return validation.New("IRS mileage deduction cannot be negative")
	}
	return nil
}
