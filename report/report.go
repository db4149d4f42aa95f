// Package report renders a prognosis as two console tables.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/psi43/bitfinex-investment-prognosis/inventory"
)

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	headerStyle = lipgloss.NewStyle().Foreground(highlight).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	valueStyle  = cellStyle.Align(lipgloss.Right)
)

// Row is one labeled value.
type Row struct {
	Description string
	Value       string
}

// OverviewRows 持仓概览。
func OverviewRows(r inventory.Report) []Row {
	return []Row{
		{"BTC Balance", r.Balance.StringFixed(8) + " BTC"},
		{"Current Value (USD)", usd(r.Value)},
		{"Total Investment (USD)", usd(r.TotalInvestment)},
		{"Unrealized P&L (USD)", usd(r.UnrealizedPnL)},
	}
}

// AnalysisRows 目标价分析。
func AnalysisRows(r inventory.Report) []Row {
	return []Row{
		{"Target Value (USD)", usd(r.Target)},
		{"Current BTC Price", groupedUSD(r.CurrentPrice)},
		{"Required BTC Price", groupedUSD(r.RequiredPrice)},
		{"Price Difference", groupedUSD(r.PriceDifference)},
		{"Percentage Change", r.PercentChange.StringFixed(2) + " %"},
	}
}

// Render writes the overview table followed by the analysis table.
func Render(w io.Writer, r inventory.Report) {
	fmt.Fprintln(w, Table(OverviewRows(r)))
	fmt.Fprintln(w, Table(AnalysisRows(r)))
}

// Table renders rows under a "Description | Value" header.
func Table(rows []Row) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("Description", "Value").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return valueStyle
			}
			return cellStyle
		})
	for _, r := range rows {
		t.Row(r.Description, r.Value)
	}
	return t.Render()
}

func usd(d decimal.Decimal) string {
	return d.StringFixed(2) + " $"
}

// groupedUSD 带千分位，例如 60,000.00 $。
func groupedUSD(d decimal.Decimal) string {
	abs := d.Round(2).Abs()
	_, frac, _ := strings.Cut(abs.StringFixed(2), ".")
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	return sign + humanize.BigComma(abs.Truncate(0).BigInt()) + "." + frac + " $"
}
