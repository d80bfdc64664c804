package ftx

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order sides and types accepted by the order endpoints
const (
	SideBuy  = "buy"
	SideSell = "sell"

	OrderTypeLimit  = "limit"
	OrderTypeMarket = "market"
)

// ConditionalOrderType is the kind of trigger order placed with
// PlaceConditionalOrder
type ConditionalOrderType string

// Conditional order types
const (
	ConditionalOrderStop         ConditionalOrderType = "stop"
	ConditionalOrderTakeProfit   ConditionalOrderType = "take_profit"
	ConditionalOrderTrailingStop ConditionalOrderType = "trailing_stop"
)

// wireType returns the type value the exchange expects in request bodies
func (c ConditionalOrderType) wireType() (string, error) {
	switch c {
	case ConditionalOrderStop:
		return "stop", nil
	case ConditionalOrderTakeProfit:
		return "takeProfit", nil
	case ConditionalOrderTrailingStop:
		return "trailingStop", nil
	default:
		return "", fmt.Errorf("%w: conditional order type %q must be one of %s, %s or %s",
			ErrInvalidRequest, c, ConditionalOrderStop, ConditionalOrderTakeProfit, ConditionalOrderTrailingStop)
	}
}

// Public errors
var (
	// ErrInvalidRequest is wrapped by every argument validation failure
	// raised before a request is sent
	ErrInvalidRequest = errors.New("invalid request")
	// ErrMalformedResponse is returned when a response body is not a
	// success/result envelope
	ErrMalformedResponse = errors.New("malformed response")
)

var (
	errConfigNil            = errors.New("config is nil")
	errMarketNameEmpty      = fmt.Errorf("%w: market name cannot be empty", ErrInvalidRequest)
	errCoinEmpty            = fmt.Errorf("%w: coin cannot be empty", ErrInvalidRequest)
	errInvalidOrderID       = fmt.Errorf("%w: order id must be set", ErrInvalidRequest)
	errInvalidSide          = fmt.Errorf("%w: side must be buy or sell", ErrInvalidRequest)
	errInvalidOrderType     = fmt.Errorf("%w: order type must be limit or market", ErrInvalidRequest)
	errInvalidSize          = fmt.Errorf("%w: size must be greater than zero", ErrInvalidRequest)
	errInvalidPrice         = fmt.Errorf("%w: limit orders require a price", ErrInvalidRequest)
	errOrderReference       = fmt.Errorf("%w: exactly one of existing order id or existing client order id must be set", ErrInvalidRequest)
	errModifyNothing        = fmt.Errorf("%w: price or size must be set", ErrInvalidRequest)
	errTriggerPriceRequired = fmt.Errorf("%w: trigger price is required", ErrInvalidRequest)
	errTrailValueRequired   = fmt.Errorf("%w: trailing stops require a trail value", ErrInvalidRequest)
	errTrailingTrigger      = fmt.Errorf("%w: trailing stops cannot have a trigger price", ErrInvalidRequest)
	errNicknameEmpty        = fmt.Errorf("%w: subaccount nickname cannot be empty", ErrInvalidRequest)
	errInvalidLeverage      = fmt.Errorf("%w: leverage must be greater than zero", ErrInvalidRequest)
	errAddressEmpty         = fmt.Errorf("%w: withdrawal address cannot be empty", ErrInvalidRequest)
	errStartAfterEnd        = fmt.Errorf("%w: start time cannot be after end time", ErrInvalidRequest)
)

// APIError is returned when the exchange answers with success set to false.
// Error returns the exchange message unchanged.
type APIError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// MarketData stores market data
type MarketData struct {
	Name                  string          `json:"name"`
	BaseCurrency          string          `json:"baseCurrency"`
	QuoteCurrency         string          `json:"quoteCurrency"`
	Underlying            string          `json:"underlying"`
	MarketType            string          `json:"type"`
	Enabled               bool            `json:"enabled"`
	PostOnly              bool            `json:"postOnly"`
	Restricted            bool            `json:"restricted"`
	HighLeverageFeeExempt bool            `json:"highLeverageFeeExempt"`
	Ask                   decimal.Decimal `json:"ask"`
	Bid                   decimal.Decimal `json:"bid"`
	Last                  decimal.Decimal `json:"last"`
	Price                 decimal.Decimal `json:"price"`
	PriceIncrement        decimal.Decimal `json:"priceIncrement"`
	SizeIncrement         decimal.Decimal `json:"sizeIncrement"`
	MinProvideSize        decimal.Decimal `json:"minProvideSize"`
	QuoteVolume24H        decimal.Decimal `json:"quoteVolume24h"`
	VolumeUSD24H          decimal.Decimal `json:"volumeUsd24h"`
	Change1H              float64         `json:"change1h"`
	Change24H             float64         `json:"change24h"`
	ChangeBOD             float64         `json:"changeBod"`
}

// OrderbookLevel is a single price level of an orderbook side
type OrderbookLevel struct {
	Price decimal.Decimal
	Size  decimal.Decimal
}

// UnmarshalJSON decodes the [price, size] pair sent by the exchange
func (o *OrderbookLevel) UnmarshalJSON(data []byte) error {
	var pair [2]decimal.Decimal
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	o.Price, o.Size = pair[0], pair[1]
	return nil
}

// Orderbook stores the bids and asks of a market
type Orderbook struct {
	Asks []OrderbookLevel `json:"asks"`
	Bids []OrderbookLevel `json:"bids"`
}

// TradeData stores data from trades
type TradeData struct {
	ID          int64           `json:"id"`
	Liquidation bool            `json:"liquidation"`
	Price       decimal.Decimal `json:"price"`
	Side        string          `json:"side"`
	Size        decimal.Decimal `json:"size"`
	Time        time.Time       `json:"time"`
}

// OHLCVData stores historical OHLCV data
type OHLCVData struct {
	Close     decimal.Decimal `json:"close"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Open      decimal.Decimal `json:"open"`
	StartTime time.Time       `json:"startTime"`
	Volume    decimal.Decimal `json:"volume"`
}

// FuturesData stores data for futures
type FuturesData struct {
	Name                string          `json:"name"`
	Underlying          string          `json:"underlying"`
	Description         string          `json:"description"`
	Group               string          `json:"group"`
	Type                string          `json:"type"`
	Enabled             bool            `json:"enabled"`
	Expired             bool            `json:"expired"`
	Perpetual           bool            `json:"perpetual"`
	PostOnly            bool            `json:"postOnly"`
	Expiry              time.Time       `json:"expiry"`
	Ask                 decimal.Decimal `json:"ask"`
	Bid                 decimal.Decimal `json:"bid"`
	Index               decimal.Decimal `json:"index"`
	Last                decimal.Decimal `json:"last"`
	Mark                decimal.Decimal `json:"mark"`
	MarginPrice         decimal.Decimal `json:"marginPrice"`
	LowerBound          decimal.Decimal `json:"lowerBound"`
	UpperBound          decimal.Decimal `json:"upperBound"`
	PriceIncrement      decimal.Decimal `json:"priceIncrement"`
	SizeIncrement       decimal.Decimal `json:"sizeIncrement"`
	OpenInterest        decimal.Decimal `json:"openInterest"`
	OpenInterestUSD     decimal.Decimal `json:"openInterestUsd"`
	Volume              decimal.Decimal `json:"volume"`
	VolumeUSD24H        decimal.Decimal `json:"volumeUsd24h"`
	IMFFactor           float64         `json:"imfFactor"`
	PositionLimitWeight float64         `json:"positionLimitWeight"`
	Change1H            float64         `json:"change1h"`
	Change24H           float64         `json:"change24h"`
	ChangeBOD           float64         `json:"changeBod"`
}

// FutureStatsData stores data on futures stats
type FutureStatsData struct {
	Volume                   decimal.Decimal `json:"volume"`
	NextFundingRate          float64         `json:"nextFundingRate"`
	NextFundingTime          time.Time       `json:"nextFundingTime"`
	ExpirationPrice          decimal.Decimal `json:"expirationPrice"`
	PredictedExpirationPrice decimal.Decimal `json:"predictedExpirationPrice"`
	StrikePrice              decimal.Decimal `json:"strikePrice"`
	OpenInterest             decimal.Decimal `json:"openInterest"`
}

// FundingRatesData stores data on funding rates
type FundingRatesData struct {
	Future string    `json:"future"`
	Rate   float64   `json:"rate"`
	Time   time.Time `json:"time"`
}

// PositionData stores data of an open position
type PositionData struct {
	Future                       string          `json:"future"`
	Side                         string          `json:"side"`
	Cost                         decimal.Decimal `json:"cost"`
	CollateralUsed               decimal.Decimal `json:"collateralUsed"`
	EntryPrice                   decimal.Decimal `json:"entryPrice"`
	EstimatedLiquidationPrice    decimal.Decimal `json:"estimatedLiquidationPrice"`
	RecentAverageOpenPrice       decimal.Decimal `json:"recentAverageOpenPrice"`
	RecentBreakEvenPrice         decimal.Decimal `json:"recentBreakEvenPrice"`
	RecentPNL                    decimal.Decimal `json:"recentPnl"`
	InitialMarginRequirement     float64         `json:"initialMarginRequirement"`
	MaintenanceMarginRequirement float64         `json:"maintenanceMarginRequirement"`
	LongOrderSize                decimal.Decimal `json:"longOrderSize"`
	ShortOrderSize               decimal.Decimal `json:"shortOrderSize"`
	NetSize                      decimal.Decimal `json:"netSize"`
	OpenSize                     decimal.Decimal `json:"openSize"`
	Size                         decimal.Decimal `json:"size"`
	CumulativeBuySize            decimal.Decimal `json:"cumulativeBuySize"`
	CumulativeSellSize           decimal.Decimal `json:"cumulativeSellSize"`
	RealizedPNL                  decimal.Decimal `json:"realizedPnl"`
	UnrealizedPNL                decimal.Decimal `json:"unrealizedPnl"`
}

// AccountInfoData stores account data
type AccountInfoData struct {
	Username                     string          `json:"username"`
	BackstopProvider             bool            `json:"backstopProvider"`
	Liquidating                  bool            `json:"liquidating"`
	Collateral                   decimal.Decimal `json:"collateral"`
	FreeCollateral               decimal.Decimal `json:"freeCollateral"`
	TotalAccountValue            decimal.Decimal `json:"totalAccountValue"`
	TotalPositionSize            decimal.Decimal `json:"totalPositionSize"`
	InitialMarginRequirement     float64         `json:"initialMarginRequirement"`
	MaintenanceMarginRequirement float64         `json:"maintenanceMarginRequirement"`
	Leverage                     float64         `json:"leverage"`
	MakerFee                     float64         `json:"makerFee"`
	TakerFee                     float64         `json:"takerFee"`
	MarginFraction               float64         `json:"marginFraction"`
	OpenMarginFraction           float64         `json:"openMarginFraction"`
	Positions                    []PositionData  `json:"positions"`
}

// FundingPaymentsData stores funding payments received or paid
type FundingPaymentsData struct {
	ID      int64           `json:"id"`
	Future  string          `json:"future"`
	Payment decimal.Decimal `json:"payment"`
	Rate    float64         `json:"rate"`
	Time    time.Time       `json:"time"`
}

// LatencyStatsData stores order placement latency statistics
type LatencyStatsData struct {
	Bursty       bool    `json:"bursty"`
	P50          float64 `json:"p50"`
	RequestCount int64   `json:"requestCount"`
}

// WalletCoinsData stores data about wallet coins
type WalletCoinsData struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	CanDeposit       bool     `json:"canDeposit"`
	CanWithdraw      bool     `json:"canWithdraw"`
	HasTag           bool     `json:"hasTag"`
	Collateral       bool     `json:"collateral"`
	USDFungible      bool     `json:"usdFungible"`
	IsETF            bool     `json:"isEtf"`
	IsToken          bool     `json:"isToken"`
	Fiat             bool     `json:"fiat"`
	CollateralWeight float64  `json:"collateralWeight"`
	Methods          []string `json:"methods"`
}

// WalletBalance stores the balance of a single coin
type WalletBalance struct {
	Coin                   string          `json:"coin"`
	Free                   decimal.Decimal `json:"free"`
	Total                  decimal.Decimal `json:"total"`
	USDValue               decimal.Decimal `json:"usdValue"`
	AvailableWithoutBorrow decimal.Decimal `json:"availableWithoutBorrow"`
	SpotBorrow             decimal.Decimal `json:"spotBorrow"`
}

// AllWalletBalances stores the balances of every account keyed by account
// name
type AllWalletBalances map[string][]WalletBalance

// DepositAddress stores deposit address data of a given coin
type DepositAddress struct {
	Address string `json:"address"`
	Tag     string `json:"tag"`
	Method  string `json:"method"`
	Coin    string `json:"coin"`
}

// DepositItem stores data about a single deposit
type DepositItem struct {
	ID            int64           `json:"id"`
	Coin          string          `json:"coin"`
	Confirmations int64           `json:"confirmations"`
	ConfirmedTime time.Time       `json:"confirmedTime"`
	SentTime      time.Time       `json:"sentTime"`
	Time          time.Time       `json:"time"`
	Fee           decimal.Decimal `json:"fee"`
	Size          decimal.Decimal `json:"size"`
	Status        string          `json:"status"`
	TxID          string          `json:"txid"`
	Notes         string          `json:"notes"`
}

// WithdrawItem stores data about a single withdrawal
type WithdrawItem struct {
	ID      int64           `json:"id"`
	Coin    string          `json:"coin"`
	Address string          `json:"address"`
	Tag     string          `json:"tag"`
	Method  string          `json:"method"`
	Fee     decimal.Decimal `json:"fee"`
	Size    decimal.Decimal `json:"size"`
	Status  string          `json:"status"`
	Time    time.Time       `json:"time"`
	TxID    string          `json:"txid"`
	Notes   string          `json:"notes"`
}

// WithdrawalFee stores the fee quoted for a prospective withdrawal
type WithdrawalFee struct {
	Method    string          `json:"method"`
	Address   string          `json:"address"`
	Fee       decimal.Decimal `json:"fee"`
	Congested bool            `json:"congested"`
}

// SavedAddress stores a whitelisted withdrawal address
type SavedAddress struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Coin             string    `json:"coin"`
	Address          string    `json:"address"`
	Tag              string    `json:"tag"`
	Fiat             bool      `json:"fiat"`
	IsPrimeTrust     bool      `json:"isPrimetrust"`
	Whitelisted      bool      `json:"whitelisted"`
	LastUsedAt       time.Time `json:"lastUsedAt"`
	WhitelistedAfter time.Time `json:"whitelistedAfter"`
}

// WithdrawRequest holds the parameters of a crypto withdrawal. Password and
// Code are only required when the account enforces them.
type WithdrawRequest struct {
	Coin     string
	Size     decimal.Decimal
	Address  string
	Tag      string
	Method   string
	Password string
	Code     string
}

// OrderData stores order data
type OrderData struct {
	ID            int64           `json:"id"`
	ClientID      string          `json:"clientId"`
	Market        string          `json:"market"`
	Future        string          `json:"future"`
	Side          string          `json:"side"`
	OrderType     string          `json:"type"`
	Status        string          `json:"status"`
	Price         decimal.Decimal `json:"price"`
	AvgFillPrice  decimal.Decimal `json:"avgFillPrice"`
	Size          decimal.Decimal `json:"size"`
	FilledSize    decimal.Decimal `json:"filledSize"`
	RemainingSize decimal.Decimal `json:"remainingSize"`
	ReduceOnly    bool            `json:"reduceOnly"`
	IOC           bool            `json:"ioc"`
	PostOnly      bool            `json:"postOnly"`
	Liquidation   bool            `json:"liquidation"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PlaceOrderRequest holds the parameters of a new order. Type defaults to
// limit when empty and Price is ignored for market orders.
type PlaceOrderRequest struct {
	Market      string
	Side        string
	Price       decimal.Decimal
	Size        decimal.Decimal
	Type        string
	ReduceOnly  bool
	IOC         bool
	PostOnly    bool
	ClientID    string
	RejectAfter time.Time
}

// ModifyOrderRequest references an existing order by exactly one of its
// exchange id or client id and carries the new price and/or size
type ModifyOrderRequest struct {
	ExistingOrderID       int64
	ExistingClientOrderID string
	Price                 decimal.Decimal
	Size                  decimal.Decimal
	ClientOrderID         string
}

// ConditionalOrderRequest holds the parameters of a trigger order. A zero
// LimitPrice places a market order once triggered. CancelLimitOnTrigger
// defaults to true when nil.
type ConditionalOrderRequest struct {
	Market               string
	Side                 string
	Size                 decimal.Decimal
	Type                 ConditionalOrderType
	LimitPrice           decimal.Decimal
	TriggerPrice         decimal.Decimal
	TrailValue           decimal.Decimal
	ReduceOnly           bool
	CancelLimitOnTrigger *bool
}

// TriggerOrderData stores conditional order data
type TriggerOrderData struct {
	ID               int64           `json:"id"`
	OrderID          int64           `json:"orderId"`
	Market           string          `json:"market"`
	Future           string          `json:"future"`
	Side             string          `json:"side"`
	TriggerOrderType string          `json:"type"`
	OrderType        string          `json:"orderType"`
	Status           string          `json:"status"`
	Error            string          `json:"error"`
	CancelReason     string          `json:"cancelReason"`
	OrderPrice       decimal.Decimal `json:"orderPrice"`
	TriggerPrice     decimal.Decimal `json:"triggerPrice"`
	TrailStart       decimal.Decimal `json:"trailStart"`
	TrailValue       decimal.Decimal `json:"trailValue"`
	AvgFillPrice     decimal.Decimal `json:"avgFillPrice"`
	Size             decimal.Decimal `json:"size"`
	FilledSize       decimal.Decimal `json:"filledSize"`
	ReduceOnly       bool            `json:"reduceOnly"`
	RetryUntilFilled bool            `json:"retryUntilFilled"`
	CreatedAt        time.Time       `json:"createdAt"`
	TriggeredAt      time.Time       `json:"triggeredAt"`
}

// TriggerData stores the orders sent when a conditional order triggered
type TriggerData struct {
	OrderID    int64           `json:"orderId"`
	Error      string          `json:"error"`
	FilledSize decimal.Decimal `json:"filledSize"`
	OrderSize  decimal.Decimal `json:"orderSize"`
	Time       time.Time       `json:"time"`
}

// FillsData stores fills' data
type FillsData struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"orderId"`
	TradeID       int64           `json:"tradeId"`
	Market        string          `json:"market"`
	Future        string          `json:"future"`
	BaseCurrency  string          `json:"baseCurrency"`
	QuoteCurrency string          `json:"quoteCurrency"`
	Side          string          `json:"side"`
	Type          string          `json:"type"`
	Liquidity     string          `json:"liquidity"`
	Price         decimal.Decimal `json:"price"`
	Size          decimal.Decimal `json:"size"`
	Fee           decimal.Decimal `json:"fee"`
	FeeCurrency   string          `json:"feeCurrency"`
	FeeRate       float64         `json:"feeRate"`
	Time          time.Time       `json:"time"`
}

// BorrowRate stores the current and estimated borrow rate of a coin
type BorrowRate struct {
	Coin     string  `json:"coin"`
	Estimate float64 `json:"estimate"`
	Previous float64 `json:"previous"`
}

// BorrowHistory stores a single hourly borrow payment
type BorrowHistory struct {
	Coin   string          `json:"coin"`
	Cost   decimal.Decimal `json:"cost"`
	FeeUSD decimal.Decimal `json:"feeUsd"`
	Rate   float64         `json:"rate"`
	Size   decimal.Decimal `json:"size"`
	Time   time.Time       `json:"time"`
}

// LendingHistory stores a single hourly lending payout
type LendingHistory struct {
	Coin     string          `json:"coin"`
	Proceeds decimal.Decimal `json:"proceeds"`
	Rate     float64         `json:"rate"`
	Size     decimal.Decimal `json:"size"`
	Time     time.Time       `json:"time"`
}

// MarginMarketInfo stores spot margin availability for a market's coins
type MarginMarketInfo struct {
	Coin          string          `json:"coin"`
	Borrowed      decimal.Decimal `json:"borrowed"`
	Free          decimal.Decimal `json:"free"`
	EstimatedRate float64         `json:"estimatedRate"`
	PreviousRate  float64         `json:"previousRate"`
}

// StakingBalance stores staking information of a coin
type StakingBalance struct {
	Coin             string          `json:"coin"`
	LifetimeRewards  decimal.Decimal `json:"lifetimeRewards"`
	ScheduledUnstake decimal.Decimal `json:"scheduledUnstake"`
	Staked           decimal.Decimal `json:"staked"`
}

// Stake stores a single stake
type Stake struct {
	ID        int64           `json:"id"`
	Coin      string          `json:"coin"`
	Size      decimal.Decimal `json:"size"`
	CreatedAt time.Time       `json:"createdAt"`
}

// StakingReward stores a staking reward payout
type StakingReward struct {
	ID     int64           `json:"id"`
	Coin   string          `json:"coin"`
	Size   decimal.Decimal `json:"size"`
	Status string          `json:"status"`
	Time   time.Time       `json:"time"`
}

// Subaccount stores subaccount details
type Subaccount struct {
	Nickname    string `json:"nickname"`
	Deletable   bool   `json:"deletable"`
	Editable    bool   `json:"editable"`
	Competition bool   `json:"competition"`
}
