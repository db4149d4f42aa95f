package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
	codes []int
}

func (o *recordingObserver) ObserveRequest(endpoint string, code int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, endpoint)
	o.codes = append(o.codes, code)
}

func TestBitfinexRESTClientWalletsAndTicker(t *testing.T) {
	timeNowMillis = func() int64 { return 1700000000000 } // deterministic
	defer func() { timeNowMillis = func() int64 { return time.Now().UnixMilli() } }()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case WalletsPath:
			if r.Method != http.MethodPost {
				t.Fatalf("unexpected method %s", r.Method)
			}
			want := Sign("key", "secret", WalletsPath, "", 1700000000000)
			if r.Header.Get("bfx-signature") != want.Signature || r.Header.Get("bfx-nonce") != want.Nonce {
				t.Fatalf("bad signature headers: %v", r.Header)
			}
			if r.Header.Get("bfx-apikey") != "key" {
				t.Fatalf("missing api key")
			}
			io.WriteString(w, `[["exchange","BTC",1.0,0,1.0,null,{"trade_price":100,"trade_amount":-2}]]`)
		case TickerPath + "tBTCUSD":
			if r.Method != http.MethodGet {
				t.Fatalf("unexpected method %s", r.Method)
			}
			if r.Header.Get("bfx-signature") != "" {
				t.Fatalf("ticker must not be signed")
			}
			io.WriteString(w, `[49990,1,50010,1,0,0,50000,10,51000,49000]`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	obs := &recordingObserver{}
	cli := &BitfinexRESTClient{
		BaseURL:    ts.URL,
		APIKey:     "key",
		Secret:     "secret",
		HTTPClient: ts.Client(),
		Observer:   obs,
	}

	wallets, raw, err := cli.Wallets(context.Background())
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Contains(t, string(raw), `"exchange"`)

	tk, err := cli.Ticker(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "50000", tk.LastPrice.String())

	assert.Equal(t, []string{endpointWallets, endpointTicker}, obs.calls)
	assert.Equal(t, []int{200, 200}, obs.codes)
}

func TestBitfinexRESTClientNonSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `["error",10100,"apikey: invalid"]`)
	}))
	defer ts.Close()

	cli := &BitfinexRESTClient{BaseURL: ts.URL, APIKey: "k", Secret: "s", HTTPClient: ts.Client()}

	_, _, err := cli.Wallets(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestFailed))
	var re *RequestError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, http.StatusInternalServerError, re.StatusCode)
	assert.Equal(t, WalletsPath, re.Endpoint)
	assert.Contains(t, err.Error(), "apikey: invalid")

	_, err = cli.Ticker(context.Background(), "tBTCUSD")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRequestFailed))
}

func TestBitfinexRESTClientMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"unexpected":true}`)
	}))
	defer ts.Close()

	cli := &BitfinexRESTClient{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, raw, err := cli.Wallets(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
	assert.NotEmpty(t, raw)

	_, err = cli.Ticker(context.Background(), "")
	assert.True(t, errors.Is(err, ErrParse))
}

func TestBitfinexRESTClientNotConfigured(t *testing.T) {
	var cli *BitfinexRESTClient
	_, _, err := cli.Wallets(context.Background())
	assert.Error(t, err)
	_, err = (&BitfinexRESTClient{}).Ticker(context.Background(), "")
	assert.Error(t, err)
}

func TestBuildBitfinexClients(t *testing.T) {
	rest, src, err := BuildBitfinexClients(ClientOptions{APIKey: "k", APISecret: "s"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, rest.BaseURL)
	assert.Same(t, rest, src)

	_, src, err = BuildBitfinexClients(ClientOptions{PriceSource: PriceSourceWS, Timeout: time.Second})
	require.NoError(t, err)
	ws, ok := src.(*BitfinexWSTicker)
	require.True(t, ok)
	assert.Equal(t, DefaultWSEndpoint, ws.Endpoint)
	assert.Equal(t, time.Second, ws.ReadTimeout)

	_, _, err = BuildBitfinexClients(ClientOptions{PriceSource: "carrier-pigeon"})
	assert.Error(t, err)
}
