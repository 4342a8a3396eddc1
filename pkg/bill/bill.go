package bill

import (
	"strings"

	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/shopspring/decimal"
)

// Bill is a recurring monthly obligation. DueDate is only a day of month; it gets a concrete
// month and year when projected against a reference date.
type Bill struct {
	Id        int
	Name      string
	Amount    decimal.Decimal
	DueDate   int
	UseInPlan bool
	IsActive  bool
}

func (b Bill) Validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return validation.New("Bill name is required")
	}
	if b.Amount.IsNegative() {
		return validation.New("Bill amount cannot be negative")
	}
	if b.DueDate < 1 || b.DueDate > 31 {
		return validation.Newf("Due date must be a day of month between 1 and 31, got %d", b.DueDate)
	}
	return nil
}
