package gateway

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrRequestFailed 交易所返回非 200 状态。
	ErrRequestFailed = errors.New("request failed")
	// ErrParse 响应结构与预期的固定位置字段不符。
	ErrParse = errors.New("unexpected response layout")
)

// RequestError carries the endpoint and the raw body of a non-success response.
type RequestError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// ParseError 指出哪个对象的哪个位置解析失败。
type ParseError struct {
	Object   string
	Position int
	Reason   string
}

func (e *ParseError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("parse %s: %s", e.Object, e.Reason)
	}
	return fmt.Sprintf("parse %s[%d]: %s", e.Object, e.Position, e.Reason)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }
