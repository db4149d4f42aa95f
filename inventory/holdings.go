package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/psi43/bitfinex-investment-prognosis/gateway"
)

const (
	DefaultWalletType = "exchange"
	DefaultCurrency   = "BTC"
)

// Holdings 汇总单次运行所需的持仓数据。
type Holdings struct {
	Balance         decimal.Decimal
	TotalInvestment decimal.Decimal
}

// FromWallets builds Holdings for the walletType/currency record.
func FromWallets(wallets []gateway.Wallet, walletType, currency string) Holdings {
	return Holdings{
		Balance:         FindBalance(wallets, walletType, currency),
		TotalInvestment: TotalInvestment(wallets),
	}
}

// TotalInvestment 累加所有记录中可识别成交的 price*|amount|。
func TotalInvestment(wallets []gateway.Wallet) decimal.Decimal {
	total := decimal.Zero
	for _, w := range wallets {
		for _, d := range w.TradeDetails {
			total = total.Add(d.Notional())
		}
	}
	return total
}

// FindBalance returns the balance of the first record whose type matches
// exactly and whose currency matches case-insensitively, or zero.
func FindBalance(wallets []gateway.Wallet, walletType, currency string) decimal.Decimal {
	for _, w := range wallets {
		if w.Type == walletType && strings.EqualFold(w.Currency, currency) {
			return w.Balance
		}
	}
	return decimal.Zero
}
