package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/psi43/bitfinex-investment-prognosis/gateway"
	"github.com/psi43/bitfinex-investment-prognosis/infrastructure/logger"
	"github.com/psi43/bitfinex-investment-prognosis/inventory"
)

// 运行前需替换为真实凭证，或通过环境变量覆盖。
const (
	PlaceholderAPIKey    = "your_API_key"
	PlaceholderAPISecret = "your_API_secret"
)

// AppConfig holds the process-wide configuration, loaded once at startup.
type AppConfig struct {
	Env     string        `yaml:"env"`
	Gateway GatewayConfig `yaml:"gateway"`
	Report  ReportConfig  `yaml:"report"`
	Log     logger.Config `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type GatewayConfig struct {
	APIKey      string `yaml:"apiKey"`
	APISecret   string `yaml:"apiSecret"`
	BaseURL     string `yaml:"baseURL"`
	WSURL       string `yaml:"wsURL"`
	PriceSource string `yaml:"priceSource"` // rest 或 ws
	TimeoutMs   int    `yaml:"timeoutMs"`
}

type ReportConfig struct {
	Symbol     string `yaml:"symbol"`
	WalletType string `yaml:"walletType"`
	Currency   string `yaml:"currency"`
	PriceField string `yaml:"priceField"` // last 或 mid
	DebugFile  string `yaml:"debugFile"`
}

type MetricsConfig struct {
	PushgatewayURL string `yaml:"pushgatewayURL"` // 为空则不推送
	Job            string `yaml:"job"`
}

// Default 返回默认配置，凭证为占位值。
func Default() AppConfig {
	return AppConfig{
		Env: "prod",
		Gateway: GatewayConfig{
			APIKey:      PlaceholderAPIKey,
			APISecret:   PlaceholderAPISecret,
			BaseURL:     gateway.DefaultBaseURL,
			WSURL:       gateway.DefaultWSEndpoint,
			PriceSource: gateway.PriceSourceREST,
			TimeoutMs:   10000,
		},
		Report: ReportConfig{
			Symbol:     gateway.DefaultSymbol,
			WalletType: inventory.DefaultWalletType,
			Currency:   inventory.DefaultCurrency,
			PriceField: string(gateway.PriceFieldLast),
			DebugFile:  logger.DefaultDebugFile,
		},
		Log: logger.DefaultConfig(),
		Metrics: MetricsConfig{
			Job: "bitfinex_prognosis",
		},
	}
}

// Load reads YAML config from path over the defaults and validates it.
func Load(path string) (AppConfig, error) {
	cfg, err := read(path)
	if err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func read(path string) (AppConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides sensitive fields from env vars if present.
// An empty path, or a missing file at path, means defaults.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg := Default()
	if path != "" {
		loaded, err := read(path)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, fs.ErrNotExist):
			// 文件不存在时使用默认值
		default:
			return cfg, err
		}
	}
	if v := os.Getenv("BFX_API_KEY"); v != "" {
		cfg.Gateway.APIKey = v
	}
	if v := os.Getenv("BFX_API_SECRET"); v != "" {
		cfg.Gateway.APISecret = v
	}
	if v := os.Getenv("BFX_BASE_URL"); v != "" {
		cfg.Gateway.BaseURL = v
	}
	if v := os.Getenv("BFX_PUSHGATEWAY_URL"); v != "" {
		cfg.Metrics.PushgatewayURL = v
	}
	return cfg, Validate(cfg)
}
