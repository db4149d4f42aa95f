// Package metrics provides Prometheus metrics for one prognosis run.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/psi43/bitfinex-investment-prognosis/inventory"
)

// Collector 持有独立的 Registry，运行结束后一次性推送到 Pushgateway。
type Collector struct {
	Registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	BTCBalance      prometheus.Gauge
	TotalInvestment prometheus.Gauge
	CurrentPrice    prometheus.Gauge
	RequiredPrice   prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Collector{
		Registry: reg,
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bfx_requests_total",
			Help: "Bitfinex API requests by endpoint and HTTP status (0 = transport error)",
		}, []string{"endpoint", "code"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bfx_request_duration_seconds",
			Help:    "Bitfinex API request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		BTCBalance: f.NewGauge(prometheus.GaugeOpts{
			Name: "prognosis_btc_balance",
			Help: "BTC balance of the exchange wallet",
		}),
		TotalInvestment: f.NewGauge(prometheus.GaugeOpts{
			Name: "prognosis_total_investment_usd",
			Help: "Sum of trade price * |amount| over wallet trade details",
		}),
		CurrentPrice: f.NewGauge(prometheus.GaugeOpts{
			Name: "prognosis_current_price_usd",
			Help: "Reference BTC/USD price at report time",
		}),
		RequiredPrice: f.NewGauge(prometheus.GaugeOpts{
			Name: "prognosis_required_price_usd",
			Help: "BTC/USD price at which the balance reaches the target",
		}),
	}
}

// ObserveRequest implements gateway.RequestObserver.
func (c *Collector) ObserveRequest(endpoint string, code int, elapsed time.Duration) {
	c.Requests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
	c.RequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RecordReport 更新报表相关的 gauge。
func (c *Collector) RecordReport(r inventory.Report) {
	c.BTCBalance.Set(r.Balance.InexactFloat64())
	c.TotalInvestment.Set(r.TotalInvestment.InexactFloat64())
	c.CurrentPrice.Set(r.CurrentPrice.InexactFloat64())
	c.RequiredPrice.Set(r.RequiredPrice.InexactFloat64())
}

// Push 将 Registry 推送到 Pushgateway；timeout 同时限制连接与响应等待，<=0 时使用 10s。
func (c *Collector) Push(ctx context.Context, url, job string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pusher := push.New(url, job).
		Client(&http.Client{Timeout: timeout}).
		Gatherer(c.Registry)
	if err := pusher.PushContext(ctx); err != nil {
		return errors.Wrap(err, "push metrics")
	}
	return nil
}
