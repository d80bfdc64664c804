package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rvugdt/ftxclient/config"
	"github.com/rvugdt/ftxclient/exchanges/ftx"
	"github.com/rvugdt/ftxclient/log"
	"github.com/urfave/cli/v2"
)

var (
	configPath    string
	envFile       string
	timeout       time.Duration
	verbose       bool
	ignoreTimeout bool
)

const defaultTimeout = time.Second * 30

func jsonOutput(w io.Writer, in interface{}) error {
	j, err := json.MarshalIndent(in, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(j))
	return err
}

// session carries what a command needs from the loaded settings
type session struct {
	exch      *ftx.Ftx
	otpSecret string
}

// setupClient loads the environment and settings file then builds an
// exchange client. The returned cancel func must always be called.
func setupClient(c *cli.Context) (*session, context.CancelFunc, error) {
	cancel := func() {}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, cancel, fmt.Errorf("unable to load %s: %w", envFile, err)
	}

	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultFilePath()
		if err != nil {
			return nil, cancel, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, cancel, err
	}
	if verbose {
		cfg.Verbose = true
	}
	if err := log.SetupGlobalLogger(&cfg.Logging); err != nil {
		return nil, cancel, err
	}

	exch, err := ftx.New(cfg)
	if err != nil {
		return nil, cancel, err
	}
	if !ignoreTimeout {
		c.Context, cancel = context.WithTimeout(c.Context, timeout)
	}
	return &session{exch: exch, otpSecret: cfg.OTPSecret}, cancel, nil
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ftxcli"
	app.Usage = "command line interface for the FTX REST API"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to the settings file, defaults to ~/.config/ftxclient/" + config.File,
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "env",
			Value:       ".env",
			Usage:       "dotenv file loaded before the settings file",
			Destination: &envFile,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Value:       defaultTimeout,
			Usage:       "the default context timeout value for requests",
			Destination: &timeout,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "logs every request and raw response",
			Destination: &verbose,
		},
		&cli.BoolFlag{
			Name:        "ignoretimeout",
			Aliases:     []string{"it"},
			Usage:       "ignores the context timeout for requests",
			Destination: &ignoreTimeout,
		},
	}
	app.Commands = []*cli.Command{
		marketsCommand,
		orderbookCommand,
		tradesCommand,
		candlesCommand,
		futuresCommand,
		fundingRatesCommand,
		accountCommand,
		positionsCommand,
		balancesCommand,
		totalUSDCommand,
		depositAddressCommand,
		openOrdersCommand,
		orderHistoryCommand,
		placeOrderCommand,
		modifyOrderCommand,
		cancelOrderCommand,
		conditionalOrderCommand,
		cancelConditionalOrderCommand,
		fillsCommand,
		withdrawCommand,
		withdrawFiatCommand,
		otpCommand,
		stakeCommand,
		subaccountCommand,
	}
	return app
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		if errors.Is(err, config.ErrConfigMissing) {
			fmt.Fprintln(os.Stderr, "Settings template created.", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
