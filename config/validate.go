package config

import (
	"fmt"
	"net/url"

	"github.com/psi43/bitfinex-investment-prognosis/gateway"
)

// ErrInvalid 用于参数验证错误。
type ErrInvalid string

func (e ErrInvalid) Error() string { return string(e) }

// Validate ensures required fields are present.
func Validate(cfg AppConfig) error {
	if cfg.Gateway.APIKey == "" || cfg.Gateway.APISecret == "" {
		return ErrInvalid("gateway.apiKey/apiSecret is required (or BFX_API_KEY/BFX_API_SECRET)")
	}
	if err := validateURL("gateway.baseURL", cfg.Gateway.BaseURL, "http", "https"); err != nil {
		return err
	}
	switch cfg.Gateway.PriceSource {
	case gateway.PriceSourceREST:
	case gateway.PriceSourceWS:
		if err := validateURL("gateway.wsURL", cfg.Gateway.WSURL, "ws", "wss"); err != nil {
			return err
		}
	default:
		return ErrInvalid(fmt.Sprintf("gateway.priceSource must be %q or %q, got %q",
			gateway.PriceSourceREST, gateway.PriceSourceWS, cfg.Gateway.PriceSource))
	}
	if cfg.Gateway.TimeoutMs <= 0 {
		return ErrInvalid("gateway.timeoutMs must be > 0")
	}
	if cfg.Report.Symbol == "" {
		return ErrInvalid("report.symbol is required")
	}
	if cfg.Report.WalletType == "" || cfg.Report.Currency == "" {
		return ErrInvalid("report.walletType/currency is required")
	}
	if _, err := gateway.ParsePriceField(cfg.Report.PriceField); err != nil {
		return ErrInvalid("report." + err.Error())
	}
	if cfg.Report.DebugFile == "" {
		return ErrInvalid("report.debugFile is required")
	}
	if cfg.Metrics.PushgatewayURL != "" {
		if err := validateURL("metrics.pushgatewayURL", cfg.Metrics.PushgatewayURL, "http", "https"); err != nil {
			return err
		}
		if cfg.Metrics.Job == "" {
			return ErrInvalid("metrics.job is required when pushgatewayURL is set")
		}
	}
	return nil
}

func validateURL(field, raw string, schemes ...string) error {
	if raw == "" {
		return ErrInvalid(field + " is required")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ErrInvalid(fmt.Sprintf("%s %q is not a valid url", field, raw))
	}
	for _, s := range schemes {
		if u.Scheme == s {
			return nil
		}
	}
	return ErrInvalid(fmt.Sprintf("%s scheme must be one of %v", field, schemes))
}
