package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// 交易对 ticker 数组的字段位置（REST 与 WS 快照相同）。
const (
	tickerBidPos = iota
	tickerBidSizePos
	tickerAskPos
	tickerAskSizePos
	tickerDailyChangePos
	tickerDailyChangeRelativePos
	tickerLastPricePos
	tickerVolumePos
	tickerHighPos
	tickerLowPos
)

// DefaultSymbol is the only pair the report looks at.
const DefaultSymbol = "tBTCUSD"

// PriceField selects which ticker value is used as the reference price.
type PriceField string

const (
	// PriceFieldLast is the value at fixed position 6.
	PriceFieldLast PriceField = "last"
	// PriceFieldMid is (bid+ask)/2.
	PriceFieldMid PriceField = "mid"
)

// ParsePriceField accepts "" as PriceFieldLast.
func ParsePriceField(s string) (PriceField, error) {
	switch PriceField(s) {
	case "", PriceFieldLast:
		return PriceFieldLast, nil
	case PriceFieldMid:
		return PriceFieldMid, nil
	}
	return "", fmt.Errorf("unknown price field %q", s)
}

type Ticker struct {
	Bid                 decimal.Decimal
	BidSize             decimal.Decimal
	Ask                 decimal.Decimal
	AskSize             decimal.Decimal
	DailyChange         decimal.Decimal
	DailyChangeRelative decimal.Decimal
	LastPrice           decimal.Decimal
	Volume              decimal.Decimal
	High                decimal.Decimal
	Low                 decimal.Decimal
}

// Mid 返回买一卖一均价。
func (t Ticker) Mid() decimal.Decimal {
	return t.Bid.Add(t.Ask).Div(decimal.NewFromInt(2))
}

// Price returns the reference price for field.
func (t Ticker) Price(field PriceField) decimal.Decimal {
	if field == PriceFieldMid {
		return t.Mid()
	}
	return t.LastPrice
}

// ParseTicker decodes a /v2/ticker/<symbol> body.
func ParseTicker(body []byte) (Ticker, error) {
	var fields []json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Ticker{}, &ParseError{Object: "ticker", Position: -1, Reason: "body is not an array"}
	}
	return tickerFromFields(fields)
}

func tickerFromFields(fields []json.RawMessage) (Ticker, error) {
	if len(fields) <= tickerLastPricePos {
		return Ticker{}, &ParseError{Object: "ticker", Position: tickerLastPricePos, Reason: "array too short"}
	}
	var t Ticker
	targets := []*decimal.Decimal{
		tickerBidPos:                 &t.Bid,
		tickerBidSizePos:             &t.BidSize,
		tickerAskPos:                 &t.Ask,
		tickerAskSizePos:             &t.AskSize,
		tickerDailyChangePos:         &t.DailyChange,
		tickerDailyChangeRelativePos: &t.DailyChangeRelative,
		tickerLastPricePos:           &t.LastPrice,
		tickerVolumePos:              &t.Volume,
		tickerHighPos:                &t.High,
		tickerLowPos:                 &t.Low,
	}
	for pos, dst := range targets {
		if pos >= len(fields) {
			break
		}
		// 只有参考价位置是必填
		if isNull(fields[pos]) && pos != tickerLastPricePos {
			continue
		}
		v, err := decimalAt(fields, "ticker", pos)
		if err != nil {
			return Ticker{}, err
		}
		*dst = v
	}
	return t, nil
}
