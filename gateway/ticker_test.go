package gateway

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTicker(t *testing.T) {
	tk, err := ParseTicker([]byte(`[49990,10.5,50010,4.2,-120,-0.0024,50000,1234.5,51000,48000]`))
	require.NoError(t, err)
	assert.True(t, tk.LastPrice.Equal(decimal.NewFromInt(50000)))
	assert.True(t, tk.Bid.Equal(decimal.NewFromInt(49990)))
	assert.True(t, tk.Low.Equal(decimal.NewFromInt(48000)))

	assert.True(t, tk.Price(PriceFieldLast).Equal(decimal.NewFromInt(50000)))
	assert.True(t, tk.Price(PriceFieldMid).Equal(decimal.NewFromInt(50000)))
}

func TestParseTickerMid(t *testing.T) {
	tk, err := ParseTicker([]byte(`[100,1,102,1,0,0,105]`))
	require.NoError(t, err)
	assert.True(t, tk.Mid().Equal(decimal.NewFromInt(101)))
	assert.True(t, tk.Price(PriceFieldLast).Equal(decimal.NewFromInt(105)))
}

func TestParseTickerErrors(t *testing.T) {
	for _, body := range []string{`{"x":1}`, `[1,2,3]`, `[1,2,3,4,5,6,null]`, `[1,2,3,4,5,6,"x"]`} {
		_, err := ParseTicker([]byte(body))
		require.Error(t, err, body)
		assert.True(t, errors.Is(err, ErrParse), body)
	}
}

func TestParsePriceField(t *testing.T) {
	f, err := ParsePriceField("")
	require.NoError(t, err)
	assert.Equal(t, PriceFieldLast, f)

	f, err = ParsePriceField("mid")
	require.NoError(t, err)
	assert.Equal(t, PriceFieldMid, f)

	_, err = ParsePriceField("vwap")
	assert.Error(t, err)
}
