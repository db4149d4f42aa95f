// Package prognosis runs one fetch-compute-print cycle.
package prognosis

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/psi43/bitfinex-investment-prognosis/gateway"
	"github.com/psi43/bitfinex-investment-prognosis/infrastructure/logger"
	"github.com/psi43/bitfinex-investment-prognosis/inventory"
	"github.com/psi43/bitfinex-investment-prognosis/report"
)

// WalletSource 提供带原始响应体的钱包记录。
type WalletSource interface {
	Wallets(ctx context.Context) ([]gateway.Wallet, []byte, error)
}

// ReportRecorder receives the computed report, e.g. metrics.Collector.
type ReportRecorder interface {
	RecordReport(r inventory.Report)
}

type Runner struct {
	Wallets    WalletSource
	Prices     gateway.TickerSource
	Symbol     string
	WalletType string
	Currency   string
	PriceField gateway.PriceField
	Dump       logger.WalletDump
	Out        io.Writer
	Logger     *zap.Logger
	Recorder   ReportRecorder
}

// Run fetches wallets then the ticker, computes the report for target and
// renders it. Nothing is printed when a fetch fails.
func (r *Runner) Run(ctx context.Context, target decimal.Decimal) (inventory.Report, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	wallets, raw, err := r.Wallets.Wallets(ctx)
	if err != nil {
		return inventory.Report{}, err
	}
	if err := r.Dump.Write(raw); err != nil {
		return inventory.Report{}, err
	}
	walletType, currency := r.WalletType, r.Currency
	if walletType == "" {
		walletType = inventory.DefaultWalletType
	}
	if currency == "" {
		currency = inventory.DefaultCurrency
	}
	holdings := inventory.FromWallets(wallets, walletType, currency)
	log.Debug("wallets loaded",
		zap.Int("records", len(wallets)),
		zap.String("balance", holdings.Balance.String()),
		zap.String("totalInvestment", holdings.TotalInvestment.String()))

	ticker, err := r.Prices.Ticker(ctx, r.Symbol)
	if err != nil {
		return inventory.Report{}, err
	}
	price := ticker.Price(r.PriceField)
	if r.Dump.Verbosity == logger.VerbosityConsole {
		fmt.Fprintf(out, "Current BTC/USD price: %s $\n", price.StringFixed(2))
	}

	rep := inventory.Analyze(holdings, price, target)
	if r.Recorder != nil {
		r.Recorder.RecordReport(rep)
	}
	report.Render(out, rep)
	return rep, nil
}

// PrintError 输出 "An error occurred: ..."，调用方随后正常退出。
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "An error occurred: %v\n", err)
}
