package inventory

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Valuation 基于当前价格计算持仓市值与未实现盈亏。
func (h Holdings) Valuation(price decimal.Decimal) (value decimal.Decimal, pnl decimal.Decimal) {
	value = h.Balance.Mul(price)
	pnl = value.Sub(h.TotalInvestment)
	return
}

// Report is everything printed for one run.
type Report struct {
	Balance         decimal.Decimal
	Value           decimal.Decimal
	TotalInvestment decimal.Decimal
	UnrealizedPnL   decimal.Decimal

	Target          decimal.Decimal
	CurrentPrice    decimal.Decimal
	RequiredPrice   decimal.Decimal
	PriceDifference decimal.Decimal
	PercentChange   decimal.Decimal
}

// Analyze computes the price at which the holdings reach target.
// RequiredPrice is zero without a positive balance; PercentChange is zero
// without a positive current price.
func Analyze(h Holdings, price, target decimal.Decimal) Report {
	value, pnl := h.Valuation(price)
	r := Report{
		Balance:         h.Balance,
		Value:           value,
		TotalInvestment: h.TotalInvestment,
		UnrealizedPnL:   pnl,
		Target:          target,
		CurrentPrice:    price,
	}
	if h.Balance.IsPositive() {
		r.RequiredPrice = target.Div(h.Balance)
	}
	r.PriceDifference = r.RequiredPrice.Sub(price)
	if price.IsPositive() {
		r.PercentChange = r.PriceDifference.Div(price).Mul(hundred)
	}
	return r
}
