package ftx

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// parameters collects query or body fields for a request. Optional fields
// holding their zero value are dropped so they never reach the wire.
type parameters map[string]interface{}

// Set stores a field that is always sent
func (p parameters) Set(key string, value interface{}) parameters {
	p[key] = normalise(value)
	return p
}

// SetOptional stores a field only when it holds a non-zero value
func (p parameters) SetOptional(key string, value interface{}) parameters {
	if isUnset(value) {
		return p
	}
	return p.Set(key, value)
}

// Values formats the fields as a query string set
func (p parameters) Values() url.Values {
	v := make(url.Values, len(p))
	for key, value := range p {
		switch val := value.(type) {
		case string:
			v.Set(key, val)
		case json.Number:
			v.Set(key, val.String())
		case bool:
			v.Set(key, strconv.FormatBool(val))
		case int64:
			v.Set(key, strconv.FormatInt(val, 10))
		case float64:
			v.Set(key, strconv.FormatFloat(val, 'f', -1, 64))
		case nil:
			v.Set(key, "")
		}
	}
	return v
}

// normalise converts values into types that encode identically in a query
// string and a JSON body
func normalise(value interface{}) interface{} {
	switch val := value.(type) {
	case decimal.Decimal:
		return json.Number(val.String())
	case time.Time:
		return json.Number(formatTimestamp(val))
	case int:
		return int64(val)
	default:
		return value
	}
}

func isUnset(value interface{}) bool {
	switch val := value.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case int:
		return val == 0
	case int64:
		return val == 0
	case float64:
		return val == 0
	case decimal.Decimal:
		return val.IsZero()
	case time.Time:
		return val.IsZero()
	default:
		return false
	}
}

// formatTimestamp renders t as unix seconds with up to microsecond
// precision, trimming trailing zeros from the fraction
func formatTimestamp(t time.Time) string {
	secs := strconv.FormatInt(t.Unix(), 10)
	micros := t.Nanosecond() / int(time.Microsecond)
	if micros == 0 {
		return secs
	}
	frac := strings.TrimRight(fmt.Sprintf("%06d", micros), "0")
	return secs + "." + frac
}
