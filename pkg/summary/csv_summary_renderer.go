package summary

import (
	"bytes"
	"encoding/csv"

	"github.com/RichardMcSorley/breather/internal/utils"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderSummary(snapshot Snapshot) (string, error)
}

type CsvSummaryRendererImpl struct {
}

func NewCsvSummaryRenderer() *CsvSummaryRendererImpl {
	return &CsvSummaryRendererImpl{}
}

// RenderSummary writes the snapshot as metric,value rows. Undefined ratios are left empty.
func (r *CsvSummaryRendererImpl) RenderSummary(snapshot Snapshot) (string, error) {
	data := [][]string{
		{"Metric", "Value"},
		{"As of", utils.FormatDate(snapshot.AsOf)},
		{"View mode", string(snapshot.ViewMode)},
		{"Period start", utils.FormatDate(snapshot.PeriodStart)},
		{"Period end", utils.FormatDate(snapshot.PeriodEnd)},
		{"Gross total", money(snapshot.GrossTotal)},
		{"Variable expenses", money(snapshot.VariableExpenses)},
		{"Free cash", money(snapshot.FreeCash)},
		{"Total bills due", money(snapshot.TotalBillsDue)},
		{"Unpaid bills", money(snapshot.UnpaidBills)},
		{"Today income", money(snapshot.TodayIncome)},
		{"Today expenses", money(snapshot.TodayExpenses)},
		{"Today net", money(snapshot.TodayNet)},
		{"Miles last 30 days", snapshot.MileageMilesLast30.String()},
		{"IRS mileage rate", snapshot.IrsMileageRate.StringFixed(2)},
		{"Mileage savings", money(snapshot.MileageSavings)},
		{"Earnings per mile", optionalMoney(snapshot.EarningsPerMile)},
		{"Earnings per hour", optionalMoney(snapshot.EarningsPerHour)},
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func optionalMoney(amount *decimal.Decimal) string {
	if amount == nil {
		return ""
	}
	return money(*amount)
}
