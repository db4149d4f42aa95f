package gateway

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// /v2/auth/r/wallets 每条记录的字段位置。
const (
	walletTypePos = iota
	walletCurrencyPos
	walletBalancePos
	walletUnsettledInterestPos
	walletAvailableBalancePos
	walletLastChangePos
	walletTradeDetailsPos
	walletExtraDetailsPos
)

// tradeDetailPositions are scanned for trade_price/trade_amount objects.
var tradeDetailPositions = []int{walletTradeDetailsPos, walletExtraDetailsPos}

// TradeDetail is one recoverable trade attached to a wallet record.
type TradeDetail struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// Notional returns price * |amount|.
func (d TradeDetail) Notional() decimal.Decimal {
	return d.Price.Mul(d.Amount.Abs())
}

// Wallet 对应一条钱包记录。
type Wallet struct {
	Type              string
	Currency          string
	Balance           decimal.Decimal
	UnsettledInterest decimal.Decimal
	AvailableBalance  decimal.NullDecimal
	LastChange        string
	TradeDetails      []TradeDetail
}

// ParseWallets decodes the wallets response body.
func ParseWallets(body []byte) ([]Wallet, error) {
	var wallets []Wallet
	if err := json.Unmarshal(body, &wallets); err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return nil, pe
		}
		return nil, &ParseError{Object: "wallets", Position: -1, Reason: err.Error()}
	}
	return wallets, nil
}

func (w *Wallet) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return &ParseError{Object: "wallet", Position: -1, Reason: "record is not an array"}
	}
	if len(fields) <= walletBalancePos {
		return &ParseError{Object: "wallet", Position: walletBalancePos, Reason: "record too short"}
	}

	var out Wallet
	var err error
	if out.Type, err = stringAt(fields, "wallet", walletTypePos); err != nil {
		return err
	}
	if out.Currency, err = stringAt(fields, "wallet", walletCurrencyPos); err != nil {
		return err
	}
	if out.Balance, err = decimalAt(fields, "wallet", walletBalancePos); err != nil {
		return err
	}
	// 以下字段不参与计算，格式不对时保持零值
	if len(fields) > walletUnsettledInterestPos {
		if v, err := decimalAt(fields, "wallet", walletUnsettledInterestPos); err == nil {
			out.UnsettledInterest = v
		}
	}
	if len(fields) > walletAvailableBalancePos {
		if v, err := decimalAt(fields, "wallet", walletAvailableBalancePos); err == nil {
			out.AvailableBalance = decimal.NewNullDecimal(v)
		}
	}
	if len(fields) > walletLastChangePos && !isNull(fields[walletLastChangePos]) {
		_ = json.Unmarshal(fields[walletLastChangePos], &out.LastChange)
	}
	for _, pos := range tradeDetailPositions {
		if pos >= len(fields) {
			break
		}
		if d, ok := tradeDetailFrom(fields[pos]); ok {
			out.TradeDetails = append(out.TradeDetails, d)
		}
	}
	*w = out
	return nil
}

// tradeDetailFrom reports ok only for an object holding both keys with numeric values.
func tradeDetailFrom(raw json.RawMessage) (TradeDetail, bool) {
	if isNull(raw) {
		return TradeDetail{}, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return TradeDetail{}, false
	}
	priceRaw, ok := obj["trade_price"]
	if !ok || isNull(priceRaw) {
		return TradeDetail{}, false
	}
	amountRaw, ok := obj["trade_amount"]
	if !ok || isNull(amountRaw) {
		return TradeDetail{}, false
	}
	var d TradeDetail
	if err := d.Price.UnmarshalJSON(priceRaw); err != nil {
		return TradeDetail{}, false
	}
	if err := d.Amount.UnmarshalJSON(amountRaw); err != nil {
		return TradeDetail{}, false
	}
	return d, true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func stringAt(fields []json.RawMessage, object string, pos int) (string, error) {
	var s string
	if isNull(fields[pos]) {
		return "", &ParseError{Object: object, Position: pos, Reason: "missing string"}
	}
	if err := json.Unmarshal(fields[pos], &s); err != nil {
		return "", &ParseError{Object: object, Position: pos, Reason: "expected string"}
	}
	return s, nil
}

func decimalAt(fields []json.RawMessage, object string, pos int) (decimal.Decimal, error) {
	var d decimal.Decimal
	if isNull(fields[pos]) {
		return d, &ParseError{Object: object, Position: pos, Reason: "missing number"}
	}
	if err := d.UnmarshalJSON(fields[pos]); err != nil {
		return d, &ParseError{Object: object, Position: pos, Reason: "expected number"}
	}
	return d, nil
}
