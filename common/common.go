package common

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

// ErrStartAfterEnd is returned when a time range is inverted
var ErrStartAfterEnd = errors.New("start date after end date")

// NewHTTPClientWithTimeout initialises a new HTTP client and its underlying
// transport IdleConnTimeout with the specified timeout duration
func NewHTTPClientWithTimeout(t time.Duration) *http.Client {
	tr := &http.Transport{
		// Added IdleConnTimeout to reduce the time of idle connections which
		// could potentially slow macOS reconnection when there is a sudden
		// network disconnection/issue
		IdleConnTimeout: t,
		Proxy:           http.ProxyFromEnvironment,
	}
	return &http.Client{
		Transport: tr,
		Timeout:   t,
	}
}

// EncodeURLValues concatenates url values onto a url string and returns a
// string
func EncodeURLValues(urlPath string, values url.Values) string {
	if len(values) == 0 {
		return urlPath
	}
	return urlPath + "?" + values.Encode()
}

// StartEndTimeCheck provides some basic checks which occur frequently in the
// codebase. Unset times are not checked against each other and an equal
// start and end is allowed.
func StartEndTimeCheck(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	if start.After(end) {
		return ErrStartAfterEnd
	}
	return nil
}
