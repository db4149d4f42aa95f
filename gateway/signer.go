package gateway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"
)

// signaturePrefix 是 Bitfinex v2 签名串的固定前缀。
const signaturePrefix = "/api"

const (
	HeaderAPIKey    = "bfx-apikey"
	HeaderNonce     = "bfx-nonce"
	HeaderSignature = "bfx-signature"
)

var timeNowMillis = func() int64 { return time.Now().UnixMilli() }

// AuthHeaders is the per-request authentication header set.
type AuthHeaders struct {
	APIKey    string
	Nonce     string
	Signature string
}

// Apply 写入认证头以及 JSON Content-Type。
func (h AuthHeaders) Apply(req *http.Request) {
	req.Header.Set(HeaderAPIKey, h.APIKey)
	req.Header.Set(HeaderNonce, h.Nonce)
	req.Header.Set(HeaderSignature, h.Signature)
	req.Header.Set("Content-Type", "application/json")
}

// Sign builds the headers for path/payload with the given nonce.
// signature = hex(HMAC-SHA384(secret, "/api" + path + nonce + payload)).
func Sign(apiKey, secret, path, payload string, nonce int64) AuthHeaders {
	n := strconv.FormatInt(nonce, 10)
	mac := hmac.New(sha512.New384, []byte(secret))
	mac.Write([]byte(signaturePrefix + path + n + payload))
	return AuthHeaders{
		APIKey:    apiKey,
		Nonce:     n,
		Signature: hex.EncodeToString(mac.Sum(nil)),
	}
}

// NonceSource 基于毫秒时间戳生成严格递增的 nonce；零值可直接使用。
type NonceSource struct {
	last atomic.Int64
}

// Next returns the current millisecond time, or last+1 if the clock has not moved.
func (s *NonceSource) Next() int64 {
	for {
		prev := s.last.Load()
		now := timeNowMillis()
		if now <= prev {
			now = prev + 1
		}
		if s.last.CompareAndSwap(prev, now) {
			return now
		}
	}
}
