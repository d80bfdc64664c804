package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rvugdt/ftxclient/exchanges/ftx"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var errOrderIDRequired = errors.New("either --id or --client-id is required")

var openOrdersCommand = &cli.Command{
	Name:      "open-orders",
	Usage:     "gets open orders, optionally for one market",
	ArgsUsage: "[market]",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "conditional", Usage: "list open conditional orders instead"},
	},
	Action: getOpenOrders,
}

func getOpenOrders(c *cli.Context) error {
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	var result interface{}
	if c.Bool("conditional") {
		result, err = s.exch.GetConditionalOrders(c.Context, c.Args().First())
	} else {
		result, err = s.exch.GetOpenOrders(c.Context, c.Args().First())
	}
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var orderHistoryCommand = &cli.Command{
	Name:  "order-history",
	Usage: "gets order history or the status of a single order",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "market"},
		&cli.StringFlag{Name: "side"},
		&cli.StringFlag{Name: "type", Usage: "limit or market"},
		&cli.Int64Flag{Name: "id", Usage: "status of a single order"},
		&cli.StringFlag{Name: "client-id", Usage: "status of a single order by client id"},
		&cli.BoolFlag{Name: "conditional", Usage: "conditional order history instead"},
	}, timeRangeFlags...),
	Action: getOrderHistory,
}

func getOrderHistory(c *cli.Context) error {
	start, end, err := timeRange(c)
	if err != nil {
		return err
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	var result interface{}
	switch {
	case c.IsSet("id"):
		result, err = s.exch.GetOrderStatus(c.Context, c.Int64("id"))
	case c.IsSet("client-id"):
		result, err = s.exch.GetOrderStatusByClientID(c.Context, c.String("client-id"))
	case c.Bool("conditional"):
		result, err = s.exch.GetConditionalOrderHistory(c.Context, c.String("market"), c.String("side"), "", c.String("type"), start, end)
	default:
		result, err = s.exch.GetOrderHistory(c.Context, c.String("market"), c.String("side"), c.String("type"), start, end)
	}
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var placeOrderCommand = &cli.Command{
	Name:      "place-order",
	Usage:     "places a limit or market order",
	ArgsUsage: "<market> <side> <size>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "market"},
		&cli.StringFlag{Name: "side", Usage: "buy or sell"},
		&cli.StringFlag{Name: "size"},
		&cli.StringFlag{Name: "price", Usage: "required for limit orders"},
		&cli.StringFlag{Name: "type", Value: ftx.OrderTypeLimit, Usage: "limit or market"},
		&cli.BoolFlag{Name: "reduce-only"},
		&cli.BoolFlag{Name: "ioc"},
		&cli.BoolFlag{Name: "post-only"},
		&cli.StringFlag{Name: "client-id", Usage: "defaults to a random UUID"},
	},
	Action: placeOrder,
}

func placeOrder(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	market, err := argOrFlag(c, "market", 0)
	if err != nil {
		return err
	}
	side, err := argOrFlag(c, "side", 1)
	if err != nil {
		return err
	}
	sizeStr, err := argOrFlag(c, "size", 2)
	if err != nil {
		return err
	}
	size, err := parseDecimal(sizeStr)
	if err != nil {
		return fmt.Errorf("invalid size: %w", err)
	}
	price, err := parseDecimal(c.String("price"))
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	clientID := c.String("client-id")
	if clientID == "" {
		if clientID, err = newClientOrderID(); err != nil {
			return err
		}
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	result, err := s.exch.PlaceOrder(c.Context, &ftx.PlaceOrderRequest{
		Market:     market,
		Side:       side,
		Price:      price,
		Size:       size,
		Type:       c.String("type"),
		ReduceOnly: c.Bool("reduce-only"),
		IOC:        c.Bool("ioc"),
		PostOnly:   c.Bool("post-only"),
		ClientID:   clientID,
	})
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var modifyOrderCommand = &cli.Command{
	Name:  "modify-order",
	Usage: "changes the price and/or size of an open order",
	Flags: []cli.Flag{
		&cli.Int64Flag{Name: "id"},
		&cli.StringFlag{Name: "client-id"},
		&cli.StringFlag{Name: "price"},
		&cli.StringFlag{Name: "size"},
		&cli.StringFlag{Name: "new-client-id"},
	},
	Action: modifyOrder,
}

func modifyOrder(c *cli.Context) error {
	if c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	price, err := parseDecimal(c.String("price"))
	if err != nil {
		return fmt.Errorf("invalid price: %w", err)
	}
	size, err := parseDecimal(c.String("size"))
	if err != nil {
		return fmt.Errorf("invalid size: %w", err)
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	result, err := s.exch.ModifyOrder(c.Context, &ftx.ModifyOrderRequest{
		ExistingOrderID:       c.Int64("id"),
		ExistingClientOrderID: c.String("client-id"),
		Price:                 price,
		Size:                  size,
		ClientOrderID:         c.String("new-client-id"),
	})
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var cancelOrderCommand = &cli.Command{
	Name:  "cancel-order",
	Usage: "cancels an order by id or client id, or every open order with --all",
	Flags: []cli.Flag{
		&cli.Int64Flag{Name: "id"},
		&cli.StringFlag{Name: "client-id"},
		&cli.BoolFlag{Name: "all"},
		&cli.StringFlag{Name: "market", Usage: "restricts --all to one market"},
		&cli.BoolFlag{Name: "conditional-only", Usage: "restricts --all to conditional orders"},
		&cli.BoolFlag{Name: "limit-only", Usage: "restricts --all to limit orders"},
	},
	Action: cancelOrder,
}

func cancelOrder(c *cli.Context) error {
	if c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	var result string
	switch {
	case c.Bool("all"):
		result, err = s.exch.CancelOrders(c.Context, c.String("market"), c.Bool("conditional-only"), c.Bool("limit-only"))
	case c.IsSet("id"):
		result, err = s.exch.CancelOrder(c.Context, c.Int64("id"))
	case c.IsSet("client-id"):
		result, err = s.exch.CancelOrderByClientID(c.Context, c.String("client-id"))
	default:
		return errOrderIDRequired
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, result)
	return err
}

var conditionalOrderCommand = &cli.Command{
	Name:      "conditional-order",
	Usage:     "places a stop, take_profit or trailing_stop order",
	ArgsUsage: "<market> <side> <size> <type>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "market"},
		&cli.StringFlag{Name: "side", Usage: "buy or sell"},
		&cli.StringFlag{Name: "size"},
		&cli.StringFlag{Name: "type", Usage: "stop, take_profit or trailing_stop"},
		&cli.StringFlag{Name: "trigger", Usage: "trigger price for stop and take_profit"},
		&cli.StringFlag{Name: "limit-price", Usage: "places a limit order once triggered"},
		&cli.StringFlag{Name: "trail", Usage: "trail value for trailing_stop, negative for sells"},
		&cli.BoolFlag{Name: "reduce-only"},
	},
	Action: placeConditionalOrder,
}

func placeConditionalOrder(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	market, err := argOrFlag(c, "market", 0)
	if err != nil {
		return err
	}
	side, err := argOrFlag(c, "side", 1)
	if err != nil {
		return err
	}
	sizeStr, err := argOrFlag(c, "size", 2)
	if err != nil {
		return err
	}
	orderType, err := argOrFlag(c, "type", 3)
	if err != nil {
		return err
	}
	req := &ftx.ConditionalOrderRequest{
		Market:     market,
		Side:       side,
		Type:       ftx.ConditionalOrderType(orderType),
		ReduceOnly: c.Bool("reduce-only"),
	}
	for _, d := range []struct {
		flag  string
		value string
		dst   *decimal.Decimal
	}{
		{"size", sizeStr, &req.Size},
		{"trigger", c.String("trigger"), &req.TriggerPrice},
		{"limit-price", c.String("limit-price"), &req.LimitPrice},
		{"trail", c.String("trail"), &req.TrailValue},
	} {
		v, err := parseDecimal(d.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.flag, err)
		}
		*d.dst = v
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	result, err := s.exch.PlaceConditionalOrder(c.Context, req)
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var cancelConditionalOrderCommand = &cli.Command{
	Name:      "cancel-conditional-order",
	Usage:     "cancels a conditional order or lists what it triggered with --triggers",
	ArgsUsage: "<id>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "triggers", Usage: "list the orders sent when it triggered instead"},
	},
	Action: cancelConditionalOrder,
}

func cancelConditionalOrder(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	if c.Bool("triggers") {
		triggers, err := s.exch.GetTriggerOrderTriggers(c.Context, id)
		if err != nil {
			return err
		}
		return jsonOutput(c.App.Writer, triggers)
	}
	result, err := s.exch.CancelConditionalOrder(c.Context, id)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, result)
	return err
}

var fillsCommand = &cli.Command{
	Name:  "fills",
	Usage: "gets fills",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "market"},
		&cli.Int64Flag{Name: "min-id"},
		&cli.Int64Flag{Name: "order-id"},
	}, timeRangeFlags...),
	Action: getFills,
}

func getFills(c *cli.Context) error {
	start, end, err := timeRange(c)
	if err != nil {
		return err
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	result, err := s.exch.GetFills(c.Context, c.String("market"), start, end, c.Int64("min-id"), c.Int64("order-id"))
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}
