package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.bitfinex.com"

	WalletsPath = "/v2/auth/r/wallets"
	TickerPath  = "/v2/ticker/"

	endpointWallets = "wallets"
	endpointTicker  = "ticker"
)

// RequestObserver 接收每次请求的结果，用于指标统计。
type RequestObserver interface {
	ObserveRequest(endpoint string, code int, elapsed time.Duration)
}

// BitfinexRESTClient 签名 REST 客户端；HTTPClient 可注入 httptest。
type BitfinexRESTClient struct {
	BaseURL    string
	APIKey     string
	Secret     string
	HTTPClient *http.Client
	Logger     *zap.Logger
	Observer   RequestObserver

	nonces NonceSource
}

// Wallets 调用 /v2/auth/r/wallets，返回解析后的记录和原始响应体。
func (c *BitfinexRESTClient) Wallets(ctx context.Context) ([]Wallet, []byte, error) {
	if c == nil || c.HTTPClient == nil {
		return nil, nil, fmt.Errorf("http client not set")
	}
	headers := Sign(c.APIKey, c.Secret, WalletsPath, "", c.nonces.Next())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+WalletsPath, bytes.NewBuffer(nil))
	if err != nil {
		return nil, nil, errors.Wrap(err, "build wallets request")
	}
	headers.Apply(req)

	body, err := c.do(req, endpointWallets)
	if err != nil {
		return nil, nil, errors.Wrap(err, "retrieve wallet data")
	}
	wallets, err := ParseWallets(body)
	if err != nil {
		return nil, body, errors.Wrap(err, "decode wallet data")
	}
	return wallets, body, nil
}

// Ticker 调用公共 /v2/ticker/<symbol>，不签名。
func (c *BitfinexRESTClient) Ticker(ctx context.Context, symbol string) (Ticker, error) {
	if c == nil || c.HTTPClient == nil {
		return Ticker{}, fmt.Errorf("http client not set")
	}
	if symbol == "" {
		symbol = DefaultSymbol
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+TickerPath+symbol, nil)
	if err != nil {
		return Ticker{}, errors.Wrap(err, "build ticker request")
	}

	body, err := c.do(req, endpointTicker)
	if err != nil {
		return Ticker{}, errors.Wrapf(err, "retrieve %s price", symbol)
	}
	t, err := ParseTicker(body)
	if err != nil {
		return Ticker{}, errors.Wrapf(err, "decode %s ticker", symbol)
	}
	return t, nil
}

func (c *BitfinexRESTClient) do(req *http.Request, endpoint string) ([]byte, error) {
	log := c.logger()
	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.observe(endpoint, 0, time.Since(start))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.observe(endpoint, resp.StatusCode, elapsed)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	log.Debug("bitfinex request",
		zap.String("endpoint", endpoint),
		zap.String("method", req.Method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed))

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{
			Endpoint:   req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       string(bytes.TrimSpace(body)),
		}
	}
	return body, nil
}

func (c *BitfinexRESTClient) observe(endpoint string, code int, elapsed time.Duration) {
	if c.Observer != nil {
		c.Observer.ObserveRequest(endpoint, code, elapsed)
	}
}

func (c *BitfinexRESTClient) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// NewDefaultHTTPClient 提供一个带超时的 http.Client。
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
