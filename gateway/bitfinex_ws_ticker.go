package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const DefaultWSEndpoint = "wss://api-pub.bitfinex.com/ws/2"

// BitfinexWSTicker 订阅 ticker 频道，读到第一份快照后立即断开。
type BitfinexWSTicker struct {
	Endpoint    string
	Dialer      *websocket.Dialer
	ReadTimeout time.Duration
}

func NewBitfinexWSTicker(endpoint string, readTimeout time.Duration) *BitfinexWSTicker {
	if endpoint == "" {
		endpoint = DefaultWSEndpoint
	}
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	return &BitfinexWSTicker{
		Endpoint:    endpoint,
		Dialer:      websocket.DefaultDialer,
		ReadTimeout: readTimeout,
	}
}

type wsSubscribe struct {
	Event   string `json:"event"`
	Channel string `json:"channel"`
	Symbol  string `json:"symbol"`
}

type wsEvent struct {
	Event string `json:"event"`
	Msg   string `json:"msg"`
	Code  int    `json:"code"`
}

// Ticker dials, subscribes to symbol and decodes the first snapshot.
func (b *BitfinexWSTicker) Ticker(ctx context.Context, symbol string) (Ticker, error) {
	if symbol == "" {
		symbol = DefaultSymbol
	}
	dialer := b.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	conn, _, err := dialer.DialContext(ctx, b.Endpoint, nil)
	if err != nil {
		return Ticker{}, errors.Wrap(err, "dial ticker stream")
	}
	defer conn.Close()

	deadline := time.Now().Add(b.ReadTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetReadDeadline(deadline)

	if err := conn.WriteJSON(wsSubscribe{Event: "subscribe", Channel: "ticker", Symbol: symbol}); err != nil {
		return Ticker{}, errors.Wrap(err, "subscribe ticker")
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return Ticker{}, errors.Wrapf(err, "read %s ticker", symbol)
		}
		message = bytes.TrimSpace(message)
		if len(message) == 0 {
			continue
		}
		if message[0] == '{' {
			var evt wsEvent
			if err := json.Unmarshal(message, &evt); err != nil {
				continue
			}
			if evt.Event == "error" {
				return Ticker{}, &RequestError{
					Endpoint:   fmt.Sprintf("ws ticker %s", symbol),
					StatusCode: evt.Code,
					Body:       evt.Msg,
				}
			}
			// info / subscribed
			continue
		}

		var frame []json.RawMessage
		if err := json.Unmarshal(message, &frame); err != nil || len(frame) < 2 {
			continue
		}
		var fields []json.RawMessage
		if err := json.Unmarshal(frame[1], &fields); err != nil {
			// 心跳 [chanId,"hb"]
			continue
		}
		t, err := tickerFromFields(fields)
		if err != nil {
			return Ticker{}, errors.Wrapf(err, "decode %s ticker", symbol)
		}
		return t, nil
	}
}
