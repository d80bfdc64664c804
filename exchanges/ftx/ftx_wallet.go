package ftx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rvugdt/ftxclient/common"
	"github.com/shopspring/decimal"
)

// GetCoins gets coins' data in the account wallet
func (f *Ftx) GetCoins(ctx context.Context) ([]WalletCoinsData, error) {
	var resp []WalletCoinsData
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getCoins, nil, nil, &resp)
}

// GetBalances gets the balances of the main account
func (f *Ftx) GetBalances(ctx context.Context) ([]WalletBalance, error) {
	var resp []WalletBalance
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getBalances, nil, nil, &resp)
}

// GetAllBalances gets the balances of every account including subaccounts
func (f *Ftx) GetAllBalances(ctx context.Context) (AllWalletBalances, error) {
	var resp AllWalletBalances
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getAllBalances, nil, nil, &resp)
}

// GetDepositAddress gets the deposit address of a coin. Method selects the
// network for coins that support several and may be empty.
func (f *Ftx) GetDepositAddress(ctx context.Context, coin, method string) (*DepositAddress, error) {
	if coin == "" {
		return nil, errCoinEmpty
	}
	params := parameters{}.SetOptional("method", strings.ToLower(method))
	var resp DepositAddress
	return &resp, f.SendHTTPRequest(ctx, http.MethodGet, fmt.Sprintf(getDepositAddress, url.PathEscape(strings.ToUpper(coin))), params.Values(), nil, &resp)
}

// GetDepositHistory gets deposit history
func (f *Ftx) GetDepositHistory(ctx context.Context, startTime, endTime time.Time) ([]DepositItem, error) {
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime)
	var resp []DepositItem
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getDepositHistory, params.Values(), nil, &resp)
}

// GetWithdrawalFee gets the fee the exchange would charge for a withdrawal
func (f *Ftx) GetWithdrawalFee(ctx context.Context, coin string, size decimal.Decimal, address, method, tag string) (*WithdrawalFee, error) {
	if coin == "" {
		return nil, errCoinEmpty
	}
	if !size.IsPositive() {
		return nil, errInvalidSize
	}
	params := parameters{}.
		Set("coin", strings.ToUpper(coin)).
		Set("size", size).
		SetOptional("address", address).
		SetOptional("tag", tag).
		SetOptional("method", method)
	var resp WithdrawalFee
	return &resp, f.SendHTTPRequest(ctx, http.MethodGet, getWithdrawalFee, params.Values(), nil, &resp)
}

// GetWithdrawals gets withdrawal history
func (f *Ftx) GetWithdrawals(ctx context.Context, startTime, endTime time.Time) ([]WithdrawItem, error) {
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime)
	var resp []WithdrawItem
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, withdrawRequest, params.Values(), nil, &resp)
}

// GetSavedAddresses gets saved withdrawal addresses, optionally filtered by
// coin
func (f *Ftx) GetSavedAddresses(ctx context.Context, coin string) ([]SavedAddress, error) {
	params := parameters{}.SetOptional("coin", strings.ToUpper(coin))
	var resp []SavedAddress
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getSavedAddresses, params.Values(), nil, &resp)
}

// Withdraw sends a crypto withdrawal request
func (f *Ftx) Withdraw(ctx context.Context, req *WithdrawRequest) (*WithdrawItem, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: withdraw request is nil", ErrInvalidRequest)
	}
	if req.Coin == "" {
		return nil, errCoinEmpty
	}
	if req.Address == "" {
		return nil, errAddressEmpty
	}
	if !req.Size.IsPositive() {
		return nil, errInvalidSize
	}
	body := parameters{}.
		Set("coin", strings.ToUpper(req.Coin)).
		Set("size", req.Size).
		Set("address", req.Address).
		SetOptional("tag", req.Tag).
		SetOptional("method", req.Method).
		SetOptional("password", req.Password).
		SetOptional("code", req.Code)
	var resp WithdrawItem
	return &resp, f.SendHTTPRequest(ctx, http.MethodPost, withdrawRequest, nil, body, &resp)
}

// SubmitFiatWithdrawal withdraws fiat to a saved bank address. Code is the
// two factor code when the account requires one.
func (f *Ftx) SubmitFiatWithdrawal(ctx context.Context, coin string, size decimal.Decimal, savedAddressID int64, code string) (*WithdrawItem, error) {
	if coin == "" {
		return nil, errCoinEmpty
	}
	if !size.IsPositive() {
		return nil, errInvalidSize
	}
	if savedAddressID == 0 {
		return nil, fmt.Errorf("%w: saved address id must be set", ErrInvalidRequest)
	}
	body := parameters{}.
		Set("coin", strings.ToUpper(coin)).
		Set("size", size).
		Set("savedAddressId", savedAddressID).
		SetOptional("code", code)
	var resp WithdrawItem
	return &resp, f.SendHTTPRequest(ctx, http.MethodPost, fiatWithdrawalPath, nil, body, &resp)
}

// GetBorrowRates gets the current spot margin borrow rates
func (f *Ftx) GetBorrowRates(ctx context.Context) ([]BorrowRate, error) {
	var resp []BorrowRate
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getBorrowRates, nil, nil, &resp)
}

// GetBorrowHistory gets the account's spot margin borrow payments
func (f *Ftx) GetBorrowHistory(ctx context.Context, startTime, endTime time.Time) ([]BorrowHistory, error) {
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime)
	var resp []BorrowHistory
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getBorrowHistory, params.Values(), nil, &resp)
}

// GetLendingHistory gets the account's spot margin lending payouts
func (f *Ftx) GetLendingHistory(ctx context.Context, startTime, endTime time.Time) ([]LendingHistory, error) {
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime)
	var resp []LendingHistory
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getLendingHistory, params.Values(), nil, &resp)
}

// GetMarginMarketInfo gets borrow availability for the coins of a market
func (f *Ftx) GetMarginMarketInfo(ctx context.Context, marketName string) ([]MarginMarketInfo, error) {
	if marketName == "" {
		return nil, errMarketNameEmpty
	}
	params := parameters{}.Set("market", marketName)
	var resp []MarginMarketInfo
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getMarginMarketInfo, params.Values(), nil, &resp)
}

// GetStakingBalances gets staked balances
func (f *Ftx) GetStakingBalances(ctx context.Context) ([]StakingBalance, error) {
	var resp []StakingBalance
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getStakingBalances, nil, nil, &resp)
}

// GetStakes gets the account's stakes
func (f *Ftx) GetStakes(ctx context.Context) ([]Stake, error) {
	var resp []Stake
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getStakes, nil, nil, &resp)
}

// GetStakingRewards gets staking reward payouts
func (f *Ftx) GetStakingRewards(ctx context.Context, startTime, endTime time.Time) ([]StakingReward, error) {
	if err := common.StartEndTimeCheck(startTime, endTime); err != nil {
		return nil, errStartAfterEnd
	}
	params := parameters{}.
		SetOptional("start_time", startTime).
		SetOptional("end_time", endTime)
	var resp []StakingReward
	return resp, f.SendHTTPRequest(ctx, http.MethodGet, getStakingRewards, params.Values(), nil, &resp)
}

// PlaceStakingRequest stakes size of coin, defaulting to SRM
func (f *Ftx) PlaceStakingRequest(ctx context.Context, coin string, size decimal.Decimal) (*Stake, error) {
	if coin == "" {
		coin = defaultStakingCoin
	}
	if !size.IsPositive() {
		return nil, errInvalidSize
	}
	body := parameters{}.
		Set("coin", strings.ToUpper(coin)).
		Set("size", size)
	var resp Stake
	return &resp, f.SendHTTPRequest(ctx, http.MethodPost, srmStakes, nil, body, &resp)
}
