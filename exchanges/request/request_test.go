package request

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	sm := http.NewServeMux()
	sm.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"response":true}`)
	})
	sm.HandleFunc("/error", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":true}`)
	})
	sm.HandleFunc("/html", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<html>teapot</html>`)
	})
	sm.HandleFunc("/timeout", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Millisecond * 200)
		w.WriteHeader(http.StatusGatewayTimeout)
	})
	sm.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"method":  r.Method,
			"ua":      r.Header.Get(userAgent),
			"key":     r.Header.Get("FTX-KEY"),
			"body":    string(body),
			"rawPath": r.URL.RequestURI(),
		})
	})
	server := httptest.NewServer(sm)
	t.Cleanup(server.Close)
	return server
}

func TestSendPayload(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)
	r := New("test", server.Client(), WithUserAgent("ftxclient"))

	var resp struct {
		Response bool `json:"response"`
	}
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: server.URL, Result: &resp, Verbose: true}, nil
	})
	require.NoError(t, err)
	assert.True(t, resp.Response)

	var echo map[string]string
	err = r.SendPayload(WithVerbose(context.Background()), func() (*Item, error) {
		return &Item{
			Method:        http.MethodPost,
			Path:          server.URL + "/echo?market=BTC-PERP",
			Headers:       map[string]string{"FTX-KEY": "key"},
			Body:          strings.NewReader(`{"size":1}`),
			Result:        &echo,
			HTTPDebugging: true,
		}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, echo["method"])
	assert.Equal(t, "ftxclient", echo["ua"])
	assert.Equal(t, "key", echo["key"])
	assert.Equal(t, `{"size":1}`, echo["body"])
	assert.Equal(t, "/echo?market=BTC-PERP", echo["rawPath"])
}

func TestSendPayloadHTTPError(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)
	r := New("test", server.Client())

	var raw json.RawMessage
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: server.URL + "/error", Result: &raw}, nil
	})
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, `{"error":true}`, string(httpErr.Body))
	assert.Contains(t, httpErr.Error(), "400")
	assert.Nil(t, raw, "result must not be decoded on error status")
}

func TestSendPayloadDecodeError(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)
	r := New("test", server.Client())

	var raw json.RawMessage
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: server.URL + "/html", Result: &raw}, nil
	})
	require.Error(t, err)
	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr), "2xx decode failures are not http errors")
}

func TestSendPayloadContextDeadline(t *testing.T) {
	t.Parallel()
	server := newTestServer(t)
	r := New("test", server.Client())

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*20)
	defer cancel()
	err := r.SendPayload(ctx, func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: server.URL + "/timeout"}, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSendPayloadValidation(t *testing.T) {
	t.Parallel()
	var r *Requester
	assert.ErrorIs(t, r.SendPayload(context.Background(), nil), errRequestSystemIsNil)

	r = New("test", nil)
	assert.ErrorIs(t, r.SendPayload(context.Background(), nil), errHTTPClientIsNil)

	r = New("test", http.DefaultClient)
	assert.ErrorIs(t, r.SendPayload(context.Background(), nil), errRequestFunctionIsNil)

	assert.ErrorIs(t, r.SendPayload(context.Background(), func() (*Item, error) {
		return nil, nil
	}), errRequestItemNil)

	assert.ErrorIs(t, r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{}, nil
	}), errInvalidPath)

	errGenerate := errors.New("generate failure")
	assert.ErrorIs(t, r.SendPayload(context.Background(), func() (*Item, error) {
		return nil, errGenerate
	}), errGenerate)
}

func TestIsVerbose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	require.False(t, IsVerbose(ctx, false))
	require.True(t, IsVerbose(ctx, true))
	require.True(t, IsVerbose(WithVerbose(ctx), false))
	require.False(t, IsVerbose(context.WithValue(ctx, contextVerboseFlag, false), false))
	require.False(t, IsVerbose(context.WithValue(ctx, contextVerboseFlag, "bruh"), false))
}
