package ftx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/rvugdt/ftxclient/common"
	"github.com/rvugdt/ftxclient/common/crypto"
	"github.com/rvugdt/ftxclient/config"
	"github.com/rvugdt/ftxclient/exchanges/request"
	"github.com/rvugdt/ftxclient/log"
)

// Ftx is the REST client for the FTX exchange. It is safe for concurrent use
// once constructed.
type Ftx struct {
	Name          string
	Verbose       bool
	HTTPDebugging bool
	Requester     *request.Requester

	apiURL    string
	apiPath   string
	apiKey    string
	apiSecret string
	now       func() time.Time
}

const (
	ftxAPIURL = "https://ftx.com/api"
	userAgent = "ftxclient"

	// Markets
	getMarkets              = "/markets"
	getMarket               = "/markets/%s"
	getOrderbook            = "/markets/%s/orderbook"
	getTrades               = "/markets/%s/trades"
	getHistoricalPrices     = "/markets/%s/candles"
	getLastHistoricalPrices = "/markets/%s/candles/last"

	// Futures
	getFutures        = "/futures"
	getFuture         = "/futures/%s"
	getExpiredFutures = "/expired_futures"
	getFutureStats    = "/futures/%s/stats"
	getFundingRates   = "/funding_rates"

	// Account
	getAccountInfo     = "/account"
	getPositions       = "/positions"
	setLeverage        = "/account/leverage"
	getFundingPayments = "/funding_payments"
	getLatencyStats    = "/stats/latency_stats"

	// Wallet
	getCoins           = "/wallet/coins"
	getBalances        = "/wallet/balances"
	getAllBalances     = "/wallet/all_balances"
	getDepositAddress  = "/wallet/deposit_address/%s"
	getDepositHistory  = "/wallet/deposits"
	getWithdrawalFee   = "/wallet/withdrawal_fee"
	withdrawRequest    = "/wallet/withdrawals"
	getSavedAddresses  = "/wallet/saved_addresses"
	fiatWithdrawalPath = "/wallet/fiat_withdrawals"

	// Orders
	ordersPath              = "/orders"
	getOrderHistory         = "/orders/history"
	orderByID               = "/orders/%s"
	orderByClientID         = "/orders/by_client_id/%s"
	modifyOrderByID         = "/orders/%s/modify"
	modifyOrderByClientID   = "/orders/by_client_id/%s/modify"
	conditionalOrders       = "/conditional_orders"
	conditionalOrderHistory = "/conditional_orders/history"
	conditionalOrderByID    = "/conditional_orders/%s"
	conditionalTriggers     = "/conditional_orders/%s/triggers"
	getFills                = "/fills"

	// Spot margin
	getBorrowRates      = "/spot_margin/borrow_rates"
	getBorrowHistory    = "/spot_margin/borrow_history"
	getLendingHistory   = "/spot_margin/lending_history"
	getMarginMarketInfo = "/spot_margin/market_info"

	// Staking
	getStakingBalances = "/staking/balances"
	getStakes          = "/staking/stakes"
	getStakingRewards  = "/staking/staking_rewards"
	srmStakes          = "/srm_stakes/stakes"

	// Subaccounts
	subaccountsPath       = "/subaccounts"
	getSubaccountBalances = "/subaccounts/%s/balances"

	tradesPageLimit           = 100
	defaultCandleResolution   = 300
	defaultLatencyStatsWindow = 1
	defaultStakingCoin        = "SRM"
)

// New returns a client configured from cfg. The config must carry an API key
// and secret. Every request, public ones included, is signed with them.
func New(cfg *config.Config, opts ...request.RequesterOption) (*Ftx, error) {
	if cfg == nil {
		return nil, errConfigNil
	}
	c := *cfg
	if err := c.CheckConfig(); err != nil {
		return nil, err
	}

	apiURL := strings.TrimSuffix(c.APIURL, "/")
	if apiURL == "" {
		apiURL = ftxAPIURL
	}
	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", apiURL, err)
	}

	opts = append([]request.RequesterOption{request.WithUserAgent(userAgent)}, opts...)
	return &Ftx{
		Name:      "FTX",
		Verbose:   c.Verbose,
		Requester: request.New("FTX", common.NewHTTPClientWithTimeout(c.HTTPTimeout), opts...),
		apiURL:    apiURL,
		apiPath:   u.EscapedPath(),
		apiKey:    c.APIKey,
		apiSecret: c.APISecret,
		now:       time.Now,
	}, nil
}

// GetMarkets gets market data
func (f *Ftx) GetMarkets(ctx context.Context) ([]MarketData, error) {
	var resp []MarketData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getMarkets, nil, nil, &resp)
}

// GetMarket gets market data for a provided asset type
func (f *Ftx) GetMarket(ctx context.Context, marketName string) (*MarketData, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	var resp MarketData
	return &resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getMarket, marketName), nil, nil, &resp)
}

// GetOrderbook gets the orderbook of a market. A depth of zero returns the
// exchange default.
func (f *Ftx) GetOrderbook(ctx context.Context, marketName string, depth int64) (*Orderbook, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	params := parameters{}.SetOptional("depth", depth)
	var resp Orderbook
	return &resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getOrderbook, marketName), params.Values(), nil, &resp)
}

// GetTrades gets a single page of trades for a market
func (f *Ftx) GetTrades(ctx context.Context, marketName string, startTime, endTime time.Time, limit int64) ([]TradeData, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime).
		SetOptional("limit", limit)
	var resp []TradeData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getTrades, marketName), params.Values(), nil, &resp)
}

// GetHistoricalPrices gets historical candles for a market. Resolution is in
// seconds and defaults to 300.
func (f *Ftx) GetHistoricalPrices(ctx context.Context, marketName string, resolution int64, limit int64, startTime, endTime time.Time) ([]OHLCVData, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	if resolution <= 0 {
		resolution = defaultCandleResolution
	}
	params := parameters{}.
		Set("resolution", resolution).
		SetOptional("limit", limit).
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime)
	var resp []OHLCVData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getHistoricalPrices, marketName), params.Values(), nil, &resp)
}

// GetLastHistoricalPrices gets the most recent candle of a market
func (f *Ftx) GetLastHistoricalPrices(ctx context.Context, marketName string, resolution int64) (*OHLCVData, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	if resolution <= 0 {
		resolution = defaultCandleResolution
	}
	params := parameters{}.Set("resolution", resolution)
	var resp OHLCVData
	return &resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getLastHistoricalPrices, marketName), params.Values(), nil, &resp)
}

// GetFutures gets data on futures
func (f *Ftx) GetFutures(ctx context.Context) ([]FuturesData, error) {
	var resp []FuturesData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getFutures, nil, nil, &resp)
}

// GetFuture gets data on a given future
func (f *Ftx) GetFuture(ctx context.Context, futureName string) (*FuturesData, error) {
	if futureName == "" {
		return nil, errMarketNameEmpty
	}
	var resp FuturesData
	return &resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getFuture, futureName), nil, nil, &resp)
}

// GetExpiredFutures gets data on expired futures
func (f *Ftx) GetExpiredFutures(ctx context.Context) ([]FuturesData, error) {
	var resp []FuturesData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getExpiredFutures, nil, nil, &resp)
}

// GetFutureStats gets data on a given future's stats
func (f *Ftx) GetFutureStats(ctx context.Context, futureName string) (*FutureStatsData, error) {
	if futureName == "" {
		return nil, errMarketNameEmpty
	}
	var resp FutureStatsData
	return &resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getFutureStats, futureName), nil, nil, &resp)
}

// GetFundingRates gets funding rates for a future or for all futures when
// futureName is empty
func (f *Ftx) GetFundingRates(ctx context.Context, futureName string, startTime, endTime time.Time) ([]FundingRatesData, error) {
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("future", futureName).
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime)
	var resp []FundingRatesData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getFundingRates, params.Values(), nil, &resp)
}

// GetAllFundingRates gets the latest funding rates of every future
func (f *Ftx) GetAllFundingRates(ctx context.Context) ([]FundingRatesData, error) {
	return f.GetFundingRates(ctx, "", time.Time{}, time.Time{})
}

// GetAccountInfo gets account info
func (f *Ftx) GetAccountInfo(ctx context.Context) (*AccountInfoData, error) {
	var resp AccountInfoData
	return &resp, f.SendHTTPRequest(ctx, http.MethodGet, getAccountInfo, nil, nil, &resp)
}

// GetPositions gets the user's positions
func (f *Ftx) GetPositions(ctx context.Context, showAveragePrice bool) ([]PositionData, error) {
	params := parameters{}.Set("showAvgPrice", showAveragePrice)
	var resp []PositionData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getPositions, params.Values(), nil, &resp)
}

// ChangeAccountLeverage changes default leverage used by account
func (f *Ftx) ChangeAccountLeverage(ctx context.Context, leverage float64) error {
	if leverage <= 0 {
		return errInvalidLeverage
	}
	body := parameters{}.Set("leverage", leverage)
	return f.SendHTTPRequest(ctx, http.MethodPost, setLeverage, nil, body, nil)
}

// GetFundingPayments gets funding payments
func (f *Ftx) GetFundingPayments(ctx context.Context, futureName string, startTime, endTime time.Time) ([]FundingPaymentsData, error) {
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("future", futureName).
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime)
	var resp []FundingPaymentsData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getFundingPayments, params.Values(), nil, &resp)
}

// GetLatencyStats gets order placement latency statistics over the last
// number of days, defaulting to one
func (f *Ftx) GetLatencyStats(ctx context.Context, days int64, subaccountNickname string) ([]LatencyStatsData, error) {
	if days <= 0 {
		days = defaultLatencyStatsWindow
	}
	params := parameters{}.
		Set("days", days).
		SetOptional("subaccount_nickname", subaccountNickname)
	var resp []LatencyStatsData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getLatencyStats, params.Values(), nil, &resp)
}

// GetSubaccountBalances gets the balances of a subaccount
func (f *Ftx) GetSubaccountBalances(ctx context.Context, nickname string) ([]WalletBalance, error) {
	if nickname == "" {
		return nil, errNicknameEmpty
	}
	var resp []WalletBalance
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getSubaccountBalances, url.PathEscape(nickname)), nil, nil, &resp)
}

// CreateSubaccount creates a new subaccount
func (f *Ftx) CreateSubaccount(ctx context.Context, nickname string) (*Subaccount, error) {
	if nickname == "" {
		return nil, errNicknameEmpty
	}
	body := parameters{}.Set("nickname", nickname)
	var resp Subaccount
	return &resp, f.SendHTTPRequest(ctx, http.MethodPost, subaccountsPath, nil, body, &resp)
}

// GenerateSignature returns the hex encoded HMAC-SHA256 of the request
// prehash: millisecond timestamp, upper case method, request path including
// the query string and, when present, the JSON body
func GenerateSignature(secret string, ts int64, method, path string, body []byte) (string, error) {
	prehash := strconv.FormatInt(ts, 10) + method + path + string(body)
	hmac, err := crypto.GetHMAC(crypto.HashSHA256, []byte(prehash), []byte(secret))
	if err != nil {
		return "", err
	}
	return crypto.HexEncodeToString(hmac), nil
}

// SendHTTPRequest signs and sends a request then unwraps the response
// envelope into result. A nil result discards the envelope's result field.
func (f *Ftx) SendHTTPRequest(ctx context.Context, method, endpoint string, params url.Values, data, result interface{}) error {
	path := common.EncodeURLValues(endpoint, params)

	var body []byte
	if data != nil {
		var err error
		body, err = json.Marshal(data)
		if err != nil {
			return err
		}
	}

	var raw json.RawMessage
	err := f.Requester.SendPayload(ctx, func() (*request.Item, error) {
		ts := f.now().UnixMilli()
		sign, err := GenerateSignature(f.apiSecret, ts, method, f.apiPath+path, body)
		if err != nil {
			return nil, err
		}
		headers := map[string]string{
			"FTX-KEY":  f.apiKey,
			"FTX-SIGN": sign,
			"FTX-TS":   strconv.FormatInt(ts, 10),
		}
		var reader io.Reader
		if body != nil {
			headers["Content-Type"] = "application/json"
			reader = bytes.NewReader(body)
		}
		return &request.Item{
			Method:        method,
			Path:          f.apiURL + path,
			Headers:       headers,
			Body:          reader,
			Result:        &raw,
			Verbose:       f.Verbose,
			HTTPDebugging: f.HTTPDebugging,
		}, nil
	})

	res, err := normaliseResponse(raw, err)
	if err != nil {
		log.Debugf(log.ExchangeSys, "%s %s %s failed: %v", f.Name, method, endpoint, err)
		return err
	}
	if result == nil {
		return nil
	}
	return json.Unmarshal(res, result)
}

// normaliseResponse reduces a response envelope to its result field. An
// envelope with success set to false becomes an *APIError carrying the
// exchange message. Bodies that are not envelopes yield the transport error
// when there is one.
func normaliseResponse(body []byte, transportErr error) (json.RawMessage, error) {
	var statusCode int
	var httpErr *request.HTTPError
	switch {
	case errors.As(transportErr, &httpErr):
		body = httpErr.Body
		statusCode = httpErr.StatusCode
	case transportErr != nil:
		return nil, transportErr
	}

	success, err := jsonparser.GetBoolean(body, "success")
	if err != nil {
		if transportErr != nil {
			return nil, transportErr
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !success {
		msg, _ := jsonparser.GetString(body, "error")
		return nil, &APIError{Message: msg, StatusCode: statusCode}
	}

	value, dataType, _, err := jsonparser.Get(body, "result")
	if err != nil {
		if transportErr != nil {
			return nil, transportErr
		}
		return nil, fmt.Errorf("%w: result: %v", ErrMalformedResponse, err)
	}
	if dataType == jsonparser.String {
		quoted := make([]byte, 0, len(value)+2)
		quoted = append(quoted, '"')
		quoted = append(quoted, value...)
		quoted = append(quoted, '"')
		return quoted, nil
	}
	return value, nil
}
