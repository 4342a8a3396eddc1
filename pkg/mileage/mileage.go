package mileage

import (
	"time"

	"github.com/RichardMcSorley/breather/pkg/validation"
	"github.com/shopspring/decimal"
)

type Classification string

const (
	Work     Classification = "work"
	Personal Classification = "personal"
)

// Entry is an odometer reading taken on a given day.
type Entry struct {
	Id             int
	Odometer       decimal.Decimal
	Date           time.Time
	Classification Classification
}

func (e Entry) Validate() error {
	if e.Odometer.IsNegative() {
		return validation.New("Odometer reading cannot be negative")
	}
	if e.Date.IsZero() {
		return validation.New("Mileage date is required")
	}
	if e.Classification != Work && e.Classification != Personal {
		return validation.Newf("Classification must be %q or %q", Work, Personal)
	}
	return nil
}
