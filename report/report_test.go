package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psi43/bitfinex-investment-prognosis/inventory"
)

func sampleReport() inventory.Report {
	return inventory.Analyze(inventory.Holdings{
		Balance:         decimal.NewFromInt(1),
		TotalInvestment: decimal.RequireFromString("42000.5"),
	}, decimal.NewFromInt(50000), decimal.NewFromInt(60000))
}

func TestOverviewRows(t *testing.T) {
	rows := OverviewRows(sampleReport())
	require.Len(t, rows, 4)
	assert.Equal(t, Row{"BTC Balance", "1.00000000 BTC"}, rows[0])
	assert.Equal(t, Row{"Current Value (USD)", "50000.00 $"}, rows[1])
	assert.Equal(t, Row{"Total Investment (USD)", "42000.50 $"}, rows[2])
	assert.Equal(t, Row{"Unrealized P&L (USD)", "7999.50 $"}, rows[3])
}

func TestAnalysisRows(t *testing.T) {
	rows := AnalysisRows(sampleReport())
	require.Len(t, rows, 5)
	assert.Equal(t, Row{"Target Value (USD)", "60000.00 $"}, rows[0])
	assert.Equal(t, Row{"Current BTC Price", "50,000.00 $"}, rows[1])
	assert.Equal(t, Row{"Required BTC Price", "60,000.00 $"}, rows[2])
	assert.Equal(t, Row{"Price Difference", "10,000.00 $"}, rows[3])
	assert.Equal(t, Row{"Percentage Change", "20.00 %"}, rows[4])
}

func TestGroupedUSDNegative(t *testing.T) {
	assert.Equal(t, "-1,234.57 $", groupedUSD(decimal.RequireFromString("-1234.567")))
	assert.Equal(t, "0.00 $", groupedUSD(decimal.Zero))
	assert.Equal(t, "-0.50 $", groupedUSD(decimal.RequireFromString("-0.499")))
	assert.Equal(t, "12,345,678,901,234,567.89 $", groupedUSD(decimal.RequireFromString("12345678901234567.891")))
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, sampleReport())
	out := buf.String()

	for _, want := range []string{
		"Description", "Value",
		"BTC Balance", "1.00000000 BTC",
		"Total Investment (USD)",
		"Required BTC Price", "60,000.00 $",
		"Percentage Change", "20.00 %",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "BTC Balance"), strings.Index(out, "Target Value (USD)"))
}
