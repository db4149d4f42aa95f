// Command bitfinex_prognosis reports the BTC price needed for the exchange
// wallet to reach a target USD value.
//
// Usage:
//
//	bitfinex_prognosis --target 200 --debug-level 0 [--config config.yaml]
//
// Credentials come from the config file or BFX_API_KEY / BFX_API_SECRET.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/psi43/bitfinex-investment-prognosis/config"
	"github.com/psi43/bitfinex-investment-prognosis/gateway"
	"github.com/psi43/bitfinex-investment-prognosis/infrastructure/logger"
	"github.com/psi43/bitfinex-investment-prognosis/internal/prognosis"
	"github.com/psi43/bitfinex-investment-prognosis/internal/prompt"
	"github.com/psi43/bitfinex-investment-prognosis/metrics"
)

func main() {
	cfgPath := flag.String("config", "", "optional path to yaml config")
	target := flag.Float64("target", 0, "Target value in USD (e.g., 200); prompts when omitted")
	debugLevel := flag.Int("debug-level", 0,
		"Set debug output level: 0 (none), 1 (console only), 2 (console + log), 3 (log only).")
	flag.Parse()

	verbosity, err := logger.ParseVerbosity(*debugLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --debug-level: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Close()

	if cfg.Gateway.APIKey == config.PlaceholderAPIKey {
		lg.Warn("using placeholder API credentials; set BFX_API_KEY/BFX_API_SECRET")
	}

	targetValue, err := prompt.Target(*target, prompt.Ask)
	if err != nil {
		prognosis.PrintError(os.Stdout, err)
		return
	}

	timeout := time.Duration(cfg.Gateway.TimeoutMs) * time.Millisecond
	collector := metrics.NewCollector()
	priceField, _ := gateway.ParsePriceField(cfg.Report.PriceField) // 已在 Validate 中校验
	rest, prices, err := gateway.BuildBitfinexClients(gateway.ClientOptions{
		BaseURL:     cfg.Gateway.BaseURL,
		WSURL:       cfg.Gateway.WSURL,
		APIKey:      cfg.Gateway.APIKey,
		APISecret:   cfg.Gateway.APISecret,
		PriceSource: cfg.Gateway.PriceSource,
		Timeout:     timeout,
		Logger:      lg.Logger,
		Observer:    collector,
	})
	if err != nil {
		log.Fatalf("build clients: %v", err)
	}

	runner := &prognosis.Runner{
		Wallets:    rest,
		Prices:     prices,
		Symbol:     cfg.Report.Symbol,
		WalletType: cfg.Report.WalletType,
		Currency:   cfg.Report.Currency,
		PriceField: priceField,
		Dump: logger.WalletDump{
			Verbosity: verbosity,
			Console:   os.Stdout,
			FilePath:  cfg.Report.DebugFile,
		},
		Out:      os.Stdout,
		Logger:   lg.Logger,
		Recorder: collector,
	}

	ctx := context.Background()
	if _, err := runner.Run(ctx, targetValue); err != nil {
		lg.Debug("run failed", zap.Error(err))
		prognosis.PrintError(os.Stdout, err)
	}

	if cfg.Metrics.PushgatewayURL != "" {
		if err := collector.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job, timeout); err != nil {
			lg.Warn("metrics push failed", zap.String("url", cfg.Metrics.PushgatewayURL), zap.Error(err))
		}
	}
}
