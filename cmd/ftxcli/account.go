package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rvugdt/ftxclient/exchanges/ftx"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var accountCommand = &cli.Command{
	Name:   "account",
	Usage:  "gets account information",
	Action: getAccount,
}

func getAccount(c *cli.Context) error {
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	result, err := s.exch.GetAccountInfo(c.Context)
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var positionsCommand = &cli.Command{
	Name:      "positions",
	Usage:     "gets open positions or the position of a single future",
	ArgsUsage: "[future]",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "avgprice", Usage: "include average open prices"},
	},
	Action: getPositions,
}

func getPositions(c *cli.Context) error {
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	if future := c.Args().First(); future != "" {
		result, err := s.exch.GetPosition(c.Context, future, c.Bool("avgprice"))
		if err != nil {
			return err
		}
		if result == nil {
			_, err = fmt.Fprintf(c.App.Writer, "no position in %s\n", future)
			return err
		}
		return jsonOutput(c.App.Writer, result)
	}
	result, err := s.exch.GetPositions(c.Context, c.Bool("avgprice"))
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var balancesCommand = &cli.Command{
	Name:  "balances",
	Usage: "gets wallet balances",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "all", Usage: "include every subaccount"},
		&cli.StringFlag{Name: "subaccount", Usage: "only the given subaccount"},
	},
	Action: getBalances,
}

func getBalances(c *cli.Context) error {
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	var result interface{}
	switch {
	case c.IsSet("subaccount"):
		result, err = s.exch.GetSubaccountBalances(c.Context, c.String("subaccount"))
	case c.Bool("all"):
		result, err = s.exch.GetAllBalances(c.Context)
	default:
		result, err = s.exch.GetBalances(c.Context)
	}
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var totalUSDCommand = &cli.Command{
	Name:  "total-usd",
	Usage: "sums the USD value of the main account or of every account",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "all", Usage: "include every subaccount"},
	},
	Action: getTotalUSD,
}

func getTotalUSD(c *cli.Context) error {
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	var total decimal.Decimal
	if c.Bool("all") {
		total, err = s.exch.GetTotalAccountUSDBalance(c.Context)
	} else {
		total, err = s.exch.GetTotalUSDBalance(c.Context)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, total.StringFixed(2))
	return err
}

var depositAddressCommand = &cli.Command{
	Name:      "deposit-address",
	Usage:     "gets the deposit address of a coin",
	ArgsUsage: "<coin>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "coin"},
		&cli.StringFlag{Name: "method", Usage: "network, e.g. erc20, trx, sol"},
	},
	Action: getDepositAddress,
}

func getDepositAddress(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	coin, err := argOrFlag(c, "coin", 0)
	if err != nil {
		return err
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	result, err := s.exch.GetDepositAddress(c.Context, coin, c.String("method"))
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var withdrawCommand = &cli.Command{
	Name:      "withdraw",
	Usage:     "withdraws crypto to an address",
	ArgsUsage: "<coin> <size> <address>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "coin"},
		&cli.StringFlag{Name: "size"},
		&cli.StringFlag{Name: "address"},
		&cli.StringFlag{Name: "tag"},
		&cli.StringFlag{Name: "method"},
		&cli.StringFlag{Name: "password", Usage: "withdrawal password when enabled"},
		&cli.StringFlag{Name: "code", Usage: "2FA code, generated from otp_secret when omitted"},
		&cli.BoolFlag{Name: "no2fa", Usage: "send without a 2FA code"},
	},
	Action: withdraw,
}

func withdraw(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	coin, err := argOrFlag(c, "coin", 0)
	if err != nil {
		return err
	}
	sizeStr, err := argOrFlag(c, "size", 1)
	if err != nil {
		return err
	}
	size, err := parseDecimal(sizeStr)
	if err != nil {
		return fmt.Errorf("invalid size: %w", err)
	}
	address, err := argOrFlag(c, "address", 2)
	if err != nil {
		return err
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	var code string
	if !c.Bool("no2fa") {
		if code, err = otpCode(c.String("code"), s.otpSecret, time.Now()); err != nil {
			return err
		}
	}
	result, err := s.exch.Withdraw(c.Context, &ftx.WithdrawRequest{
		Coin:     coin,
		Size:     size,
		Address:  address,
		Tag:      c.String("tag"),
		Method:   c.String("method"),
		Password: c.String("password"),
		Code:     code,
	})
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var withdrawFiatCommand = &cli.Command{
	Name:      "withdraw-fiat",
	Usage:     "withdraws fiat to a saved bank address",
	ArgsUsage: "<coin> <size> <saved address id>",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "coin"},
		&cli.StringFlag{Name: "size"},
		&cli.StringFlag{Name: "address-id"},
		&cli.StringFlag{Name: "code", Usage: "2FA code, generated from otp_secret when omitted"},
	},
	Action: withdrawFiat,
}

func withdrawFiat(c *cli.Context) error {
	if c.NArg() == 0 && c.NumFlags() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	coin, err := argOrFlag(c, "coin", 0)
	if err != nil {
		return err
	}
	sizeStr, err := argOrFlag(c, "size", 1)
	if err != nil {
		return err
	}
	size, err := parseDecimal(sizeStr)
	if err != nil {
		return fmt.Errorf("invalid size: %w", err)
	}
	idStr, err := argOrFlag(c, "address-id", 2)
	if err != nil {
		return err
	}
	addressID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid saved address id: %w", err)
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	code, err := otpCode(c.String("code"), s.otpSecret, time.Now())
	if err != nil {
		return err
	}
	result, err := s.exch.SubmitFiatWithdrawal(c.Context, coin, size, addressID, code)
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var otpCommand = &cli.Command{
	Name:   "otp",
	Usage:  "prints the current 2FA code generated from otp_secret",
	Action: printOTP,
}

func printOTP(c *cli.Context) error {
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	code, err := otpCode("", s.otpSecret, time.Now())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, code)
	return err
}

var stakeCommand = &cli.Command{
	Name:      "stake",
	Usage:     "stakes a coin, SRM by default, or lists stakes",
	ArgsUsage: "[size]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "coin", Value: "SRM"},
		&cli.BoolFlag{Name: "rewards", Usage: "list staking rewards"},
		&cli.BoolFlag{Name: "balances", Usage: "list staking balances"},
	},
	Action: stake,
}

func stake(c *cli.Context) error {
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	var result interface{}
	switch {
	case c.Bool("rewards"):
		result, err = s.exch.GetStakingRewards(c.Context, time.Time{}, time.Time{})
	case c.Bool("balances"):
		result, err = s.exch.GetStakingBalances(c.Context)
	case c.Args().First() == "":
		result, err = s.exch.GetStakes(c.Context)
	default:
		size, perr := parseDecimal(c.Args().First())
		if perr != nil {
			return fmt.Errorf("invalid size: %w", perr)
		}
		result, err = s.exch.PlaceStakingRequest(c.Context, c.String("coin"), size)
	}
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}

var subaccountCommand = &cli.Command{
	Name:  "subaccount",
	Usage: "manages subaccounts",
	Subcommands: []*cli.Command{
		{
			Name:      "create",
			Usage:     "creates a subaccount",
			ArgsUsage: "<nickname>",
			Action:    createSubaccount,
		},
	},
}

func createSubaccount(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowSubcommandHelp(c)
	}
	s, cancel, err := setupClient(c)
	defer cancel()
	if err != nil {
		return err
	}
	result, err := s.exch.CreateSubaccount(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	return jsonOutput(c.App.Writer, result)
}
