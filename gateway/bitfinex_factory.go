package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	PriceSourceREST = "rest"
	PriceSourceWS   = "ws"
)

// TickerSource 是价格来源的最小接口，REST 与 WS 均实现。
type TickerSource interface {
	Ticker(ctx context.Context, symbol string) (Ticker, error)
}

// ClientOptions 汇总构建客户端所需的参数，通常来自 config.GatewayConfig。
type ClientOptions struct {
	BaseURL     string
	WSURL       string
	APIKey      string
	APISecret   string
	PriceSource string
	Timeout     time.Duration
	HTTPClient  *http.Client
	Logger      *zap.Logger
	Observer    RequestObserver
}

// BuildBitfinexClients 构建 REST 客户端以及选定的价格来源（仅骨架，不发起连接）。
func BuildBitfinexClients(opts ClientOptions) (*BitfinexRESTClient, TickerSource, error) {
	httpCli := opts.HTTPClient
	if httpCli == nil {
		httpCli = NewDefaultHTTPClient(opts.Timeout)
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	rest := &BitfinexRESTClient{
		BaseURL:    baseURL,
		APIKey:     opts.APIKey,
		Secret:     opts.APISecret,
		HTTPClient: httpCli,
		Logger:     opts.Logger,
		Observer:   opts.Observer,
	}
	switch opts.PriceSource {
	case "", PriceSourceREST:
		return rest, rest, nil
	case PriceSourceWS:
		return rest, NewBitfinexWSTicker(opts.WSURL, opts.Timeout), nil
	}
	return nil, nil, fmt.Errorf("unknown price source %q", opts.PriceSource)
}
