package ftx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rvugdt/ftxclient/common"
)

// GetOpenOrders gets open orders, optionally filtered by market
func (f *Ftx) GetOpenOrders(ctx context.Context, marketName string) ([]OrderData, error) {
	params := parameters{}.SetOptional("market", marketName)
	var resp []OrderData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, ordersPath, params.Values(), nil, &resp)
}

// GetOrderHistory gets the order history
func (f *Ftx) GetOrderHistory(ctx context.Context, marketName, side, orderType string, startTime, endTime time.Time) ([]OrderData, error) {
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("market", marketName).
		SetOptional("side", side).
		SetOptional("orderType", orderType).
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime)
	var resp []OrderData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getOrderHistory, params.Values(), nil, &resp)
}

// GetOrderStatus gets the order status of a given orderID
func (f *Ftx) GetOrderStatus(ctx context.Context, orderID int64) (*OrderData, error) {
	if orderID == 0 {
		return nil, errInvalidOrderID
	}
	var resp OrderData
	return &resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(orderByID, strconv.FormatInt(orderID, 10)), nil, nil, &resp)
}

// GetOrderStatusByClientID gets the order status of a given clientOrderID
func (f *Ftx) GetOrderStatusByClientID(ctx context.Context, clientOrderID string) (*OrderData, error) {
	if clientOrderID == "" {
		return nil, errInvalidOrderID
	}
	var resp OrderData
	return &resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(orderByClientID, url.PathEscape(clientOrderID)), nil, nil, &resp)
}

// PlaceOrder stores an order. Reduce only, IOC and post only flags are always
// sent so the exchange never applies its own defaults.
func (f *Ftx) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*OrderData, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: order request is nil", ErrInvalidRequest)
	}
	if req.Market == "" {
		return nil, errMarketNameEmpty
	}
	if req.Side != SideBuy && req.Side != SideSell {
		return nil, errInvalidSide
	}
	if !req.Size.IsPositive() {
		return nil, errInvalidSize
	}
	orderType := req.Type
	if orderType == "" {
		orderType = OrderTypeLimit
	}

	body := parameters{}.
		Set("market", req.Market).
		Set("side", req.Side).
		Set("type", orderType).
		Set("size", req.Size).
		Set("reduceOnly", req.ReduceOnly).
		Set("ioc", req.IOC).
		Set("postOnly", req.PostOnly).
		SetOptional("clientId", req.ClientID).
		SetOptional("rejectAfterTs", req.RejectAfter)
	switch orderType {
	case OrderTypeLimit:
		if !req.Price.IsPositive() {
			return nil, errInvalidPrice
		}
		body.Set("price", req.Price)
	case OrderTypeMarket:
		body.Set("price", nil)
	default:
		return nil, errInvalidOrderType
	}

	var resp OrderData
	return &resp, f.SendHTTPRequest(ctx, http.MethodPost, ordersPath, nil, body, &resp)
}

// ModifyOrder modifies the price and/or size of an existing order referenced
// by exactly one of its exchange id or client id
func (f *Ftx) ModifyOrder(ctx context.Context, req *ModifyOrderRequest) (*OrderData, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: modify request is nil", ErrInvalidRequest)
	}
	if (req.ExistingOrderID == 0) == (req.ExistingClientOrderID == "") {
		return nil, errOrderReference
	}
	if req.Price.IsZero() && req.Size.IsZero() {
		return nil, errModifyNothing
	}

	path := fmt.Sprintf(modifyOrderByClientID, url.PathEscape(req.ExistingClientOrderID))
	if req.ExistingOrderID != 0 {
		path = fmt.Sprintf(modifyOrderByID, strconv.FormatInt(req.ExistingOrderID, 10))
	}
	body := parameters{}.
		SetOptional("price", req.Price).
		SetOptional("size", req.Size).
		SetOptional("clientId", req.ClientOrderID)

	var resp OrderData
	return &resp, f.SendHTTPRequest(ctx, http.MethodPost, path, nil, body, &resp)
}

// CancelOrder cancels an order by its exchange id
func (f *Ftx) CancelOrder(ctx context.Context, orderID int64) (string, error) {
	if orderID == 0 {
		return "", errInvalidOrderID
	}
	var resp string
	return resp, f.SendHTTPRequest(ctx, http.MethodDelete, fmt.Sprintf(orderByID, strconv.FormatInt(orderID, 10)), nil, nil, &resp)
}

// CancelOrderByClientID cancels an order by its client id
func (f *Ftx) CancelOrderByClientID(ctx context.Context, clientOrderID string) (string, error) {
	if clientOrderID == "" {
		return "", errInvalidOrderID
	}
	var resp string
	return resp, f.SendHTTPRequest(ctx, http.MethodDelete, fmt.Sprintf(orderByClientID, url.PathEscape(clientOrderID)), nil, nil, &resp)
}

// CancelOrders cancels all open orders, optionally restricted to a market or
// to conditional or limit orders only
func (f *Ftx) CancelOrders(ctx context.Context, marketName string, conditionalOrdersOnly, limitOrdersOnly bool) (string, error) {
	body := parameters{}.
		SetOptional("market", marketName).
		Set("conditionalOrdersOnly", conditionalOrdersOnly).
		Set("limitOrdersOnly", limitOrdersOnly)
	var resp string
	return resp, f.SendHTTPRequest(ctx, http.MethodDelete, ordersPath, nil, body, &resp)
}

// GetFills gets fills' data
func (f *Ftx) GetFills(ctx context.Context, marketName string, startTime, endTime time.Time, minID, orderID int64) ([]FillsData, error) {
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("market", marketName).
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime).
		SetOptional("minId", minID).
		SetOptional("orderId", orderID)
	var resp []FillsData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getFills, params.Values(), nil, &resp)
}

// GetConditionalOrders gets open conditional orders, optionally filtered by
// market
func (f *Ftx) GetConditionalOrders(ctx context.Context, marketName string) ([]TriggerOrderData, error) {
	params := parameters{}.SetOptional("market", marketName)
	var resp []TriggerOrderData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, conditionalOrders, params.Values(), nil, &resp)
}

// GetConditionalOrderHistory gets conditional order history
func (f *Ftx) GetConditionalOrderHistory(ctx context.Context, marketName, side, triggerType, orderType string, startTime, endTime time.Time) ([]TriggerOrderData, error) {
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("market", marketName).
		SetOptional("side", side).
		SetOptional("type", triggerType).
		SetOptional("orderType", orderType).
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime)
	var resp []TriggerOrderData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, conditionalOrderHistory, params.Values(), nil, &resp)
}

// GetTriggerOrderHistory gets the full conditional order history of a market
func (f *Ftx) GetTriggerOrderHistory(ctx context.Context, marketName string) ([]TriggerOrderData, error) {
	return f.GetConditionalOrderHistory(ctx, marketName, "", "", "", time.Time{}, time.Time{})
}

// GetTriggerOrderTriggers gets the orders sent by a triggered conditional
// order
func (f *Ftx) GetTriggerOrderTriggers(ctx context.Context, conditionalOrderID int64) ([]TriggerData, error) {
	if conditionalOrderID == 0 {
		return nil, errInvalidOrderID
	}
	var resp []TriggerData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(conditionalTriggers, strconv.FormatInt(conditionalOrderID, 10)), nil, nil, &resp)
}

// PlaceConditionalOrder places a stop, take profit or trailing stop order.
// Stops and take profits require a trigger price. Trailing stops require a
// trail value and reject a trigger price.
func (f *Ftx) PlaceConditionalOrder(ctx context.Context, req *ConditionalOrderRequest) (*TriggerOrderData, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: conditional order request is nil", ErrInvalidRequest)
	}
	if req.Market == "" {
		return nil, errMarketNameEmpty
	}
	if req.Side != SideBuy && req.Side != SideSell {
		return nil, errInvalidSide
	}
	if !req.Size.IsPositive() {
		return nil, errInvalidSize
	}
	wireType, err := req.Type.wireType()
	if err != nil {
		return nil, err
	}
	switch req.Type {
	case ConditionalOrderStop, ConditionalOrderTakeProfit:
		if req.TriggerPrice.IsZero() {
			return nil, errTriggerPriceRequired
		}
	case ConditionalOrderTrailingStop:
		if req.TrailValue.IsZero() {
			return nil, errTrailValueRequired
		}
		if !req.TriggerPrice.IsZero() {
			return nil, errTrailingTrigger
		}
	}

	cancelLimit := true
	if req.CancelLimitOnTrigger != nil {
		cancelLimit = *req.CancelLimitOnTrigger
	}
	body := parameters{}.
		Set("market", req.Market).
		Set("side", req.Side).
		Set("size", req.Size).
		Set("type", wireType).
		Set("reduceOnly", req.ReduceOnly).
		Set("cancelLimitOnTrigger", cancelLimit).
		SetOptional("triggerPrice", req.TriggerPrice).
		SetOptional("orderPrice", req.LimitPrice).
		SetOptional("trailValue", req.TrailValue)

	var resp TriggerOrderData
	return &resp, f.SendHTTPRequest(ctx, http.MethodPost, conditionalOrders, nil, body, &resp)
}

// CancelConditionalOrder cancels a conditional order by its exchange id
func (f *Ftx) CancelConditionalOrder(ctx context.Context, conditionalOrderID int64) (string, error) {
	if conditionalOrderID == 0 {
		return "", errInvalidOrderID
	}
	var resp string
	return resp, f.SendHTTPRequest(ctx, http.MethodDelete, fmt.Sprintf(conditionalOrderByID, strconv.FormatInt(conditionalOrderID, 10)), nil, nil, &resp)
}
