package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var (
	errMissingArgument = errors.New("missing argument")
	errOTPSecretUnset  = errors.New("otp_secret is not set in the settings file")
)

// argOrFlag returns the named flag when set, otherwise the positional
// argument at index
func argOrFlag(c *cli.Context, name string, index int) (string, error) {
	if c.IsSet(name) {
		return c.String(name), nil
	}
	if v := c.Args().Get(index); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", errMissingArgument, name)
}

// parseTime accepts unix seconds or RFC3339. An empty string is the zero
// time.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	return time.Parse(time.RFC3339, s)
}

func timeRange(c *cli.Context) (start, end time.Time, err error) {
	start, err = parseTime(c.String("start"))
	if err != nil {
		return start, end, fmt.Errorf("invalid start: %w", err)
	}
	end, err = parseTime(c.String("end"))
	if err != nil {
		return start, end, fmt.Errorf("invalid end: %w", err)
	}
	return start, end, nil
}

// parseDecimal parses an optional decimal. An empty string is zero.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func newClientOrderID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// otpCode returns code when set, otherwise a fresh TOTP code generated from
// secret
func otpCode(code, secret string, now time.Time) (string, error) {
	if code != "" {
		return code, nil
	}
	if secret == "" {
		return "", errOTPSecretUnset
	}
	return totp.GenerateCode(secret, now)
}
