package main

import (
	"github.com/urfave/cli/v2"
)

var timeRangeFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "start",
		Usage: "start time as unix seconds or RFC3339",
	},
	&cli.StringFlag{
		Name:  "end",
		Usage: "end time as unix seconds or RFC3339",
	},
}

var marketsCommand = &cli.Command{
	Name:      "markets",
	Usage:     "gets all markets or a single market",
	ArgsUsage: "[market]",
	Action:    getMarkets,
}

func getMarkets(c *cli.Context) error {
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	if market := c.Args().First(); market != "" {
		result, err := s.exch.GetMarket(c.Context, market)
		if err != nil {
			return err
		}
		return jsonOutput(c.App.Writer, result)
	}
	result, err := s.exch.GetMarkets(c.Context)
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var orderbookCommand = &cli.Command{
	Name:      "orderbook",
	Usage:     "gets the orderbook of a market",
	ArgsUsage: "<market>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "market"},
		&cli.Int64Flag{Name: "depth", Usage: "number of levels per side"},
	},
	Action: getOrderbook,
}

func getOrderbook(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	market, err := argOrFlag(c, "market", 0)
	if err != nil {
		return err
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	result, err := s.exch.GetOrderbook(c.Context, market, c.Int64("depth"))
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var tradesCommand = &cli.Command{
	Name:      "trades",
	Usage:     "gets trades of a market, walking the whole range with --all",
	ArgsUsage: "<market>",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "market"},
		&cli.Int64Flag{Name: "limit", Usage: "page size for a single request"},
		&cli.BoolFlag{Name: "all", Usage: "fetch every trade in the time range"},
	}, timeRangeFlags...),
	Action: getTrades,
}

func getTrades(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	market, err := argOrFlag(c, "market", 0)
	if err != nil {
		return err
	}
	start, end, err := timeRange(c)
	if err != nil {
		return err
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	if c.Bool("all") {
		result, err := s.exch.GetAllTrades(c.Context, market, start, end)
		if err != nil {
			return err
		}
		return jsonOutput(c.App.Writer, result)
	}
	result, err := s.exch.GetTrades(c.Context, market, start, end, c.Int64("limit"))
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var candlesCommand = &cli.Command{
	Name:      "candles",
	Usage:     "gets historical candles of a market",
	ArgsUsage: "<market>",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "market"},
		&cli.Int64Flag{Name: "resolution", Usage: "candle width in seconds", Value: 300},
		&cli.Int64Flag{Name: "limit"},
		&cli.BoolFlag{Name: "last", Usage: "only the most recent candle"},
	}, timeRangeFlags...),
	Action: getCandles,
}

func getCandles(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	market, err := argOrFlag(c, "market", 0)
	if err != nil {
		return err
	}
	start, end, err := timeRange(c)
	if err != nil {
		return err
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	if c.Bool("last") {
		result, err := s.exch.GetLastHistoricalPrices(c.Context, market, c.Int64("resolution"))
		if err != nil {
			return err
		}
		return jsonOutput(c.App.Writer, result)
	}
	result, err := s.exch.GetHistoricalPrices(c.Context, market, c.Int64("resolution"), c.Int64("limit"), start, end)
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var futuresCommand = &cli.Command{
	Name:      "futures",
	Usage:     "gets all futures, a single future or its stats",
	ArgsUsage: "[future]",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "stats", Usage: "show stats of the given future"},
		&cli.BoolFlag{Name: "expired", Usage: "list expired futures"},
	},
	Action: getFutures,
}

func getFutures(c *cli.Context) error {
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	var result interface{}
	future := c.Args().First()
	switch {
	case c.Bool("expired"):
		result, err = s.exch.GetExpiredFutures(c.Context)
	case future != "" && c.Bool("stats"):
		result, err = s.exch.GetFutureStats(c.Context, future)
	case future != "":
		result, err = s.exch.GetFuture(c.Context, future)
	default:
		result, err = s.exch.GetFutures(c.Context)
	}
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var fundingRatesCommand = &cli.Command{
	Name:  "funding-rates",
	Usage: "gets funding rates, optionally for a single future",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "future"},
	}, timeRangeFlags...),
	Action: getFundingRates,
}

func getFundingRates(c *cli.Context) error {
	start, end, err := timeRange(c)
	if err != nil {
		return err
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	result, err := s.exch.GetFundingRates(c.Context, c.String("future"), start, end)
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}
