package ftx

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp(t *testing.T) {
	t.Parallel()
	for want, ts := range map[string]time.Time{
		"1609459200":        time.Unix(1609459200, 0),
		"1609459200.5":      time.Unix(1609459200, int64(500*time.Millisecond)),
		"1609459200.000001": time.Unix(1609459200, int64(time.Microsecond)),
		"1609459200.12345":  time.Unix(1609459200, 123450000),
		"1609459200.999999": time.Unix(1609459200, 999999999),
		"0":                 time.Unix(0, 0),
	} {
		assert.Equal(t, want, formatTimestamp(ts))
	}
}

func TestParametersValues(t *testing.T) {
	t.Parallel()
	p := parameters{}.
		Set("market", "BTC-PERP").
		Set("showAvgPrice", false).
		Set("resolution", 300).
		Set("leverage", 2.5).
		Set("size", decimal.RequireFromString("0.0001")).
		Set("end_time", time.Unix(1609459200, int64(250*time.Millisecond))).
		SetOptional("limit", int64(0)).
		SetOptional("side", "").
		SetOptional("price", decimal.Zero).
		SetOptional("start_time", time.Time{}).
		SetOptional("orderId", int64(42)).
		SetOptional("missing", nil)

	assert.Equal(t, url.Values{
		"market":       {"BTC-PERP"},
		"showAvgPrice": {"false"},
		"resolution":   {"300"},
		"leverage":     {"2.5"},
		"size":         {"0.0001"},
		"end_time":     {"1609459200.25"},
		"orderId":      {"42"},
	}, p.Values())
}

func TestParametersJSON(t *testing.T) {
	t.Parallel()
	p := parameters{}.
		Set("market", "BTC-PERP").
		Set("price", nil).
		Set("size", decimal.RequireFromString("1.50")).
		Set("ioc", true).
		SetOptional("clientId", "").
		SetOptional("rejectAfterTs", time.Unix(1609459200, 0))

	body, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"market":"BTC-PERP","price":null,"size":1.5,"ioc":true,"rejectAfterTs":1609459200}`, string(body))
}
