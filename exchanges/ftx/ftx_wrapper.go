package ftx

import (
	"context"
	"time"

	"github.com/rvugdt/ftxclient/log"
	"github.com/shopspring/decimal"
)

// GetAllTrades walks a market's trade history backwards from endTime until
// the exchange runs out of trades. Pages overlap at their time boundary so
// trades are deduplicated by id. Trades are returned in the order received.
func (f *Ftx) GetAllTrades(ctx context.Context, marketName string, startTime, endTime time.Time) ([]TradeData, error) {
	seen := make(map[int64]struct{})
	var trades []TradeData
	for {
		page, err := f.GetTrades(ctx, marketName, startTime, endTime, tradesPageLimit)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		var added int
		oldest := page[0].Time
		for i := range page {
			if page[i].Time.Before(oldest) {
				oldest = page[i].Time
			}
			if _, ok := seen[page[i].ID]; ok {
				continue
			}
			seen[page[i].ID] = struct{}{}
			trades = append(trades, page[i])
			added++
		}
		endTime = oldest
		log.Debugf(log.Trade, "Adding %d trades with end time %s", len(page), formatTimestamp(endTime))

		if len(page) < tradesPageLimit {
			break
		}
		if added == 0 {
			// a full page sharing one timestamp cannot move the cursor
			log.Warnf(log.Trade, "%s %s trade pagination stalled at end time %s", f.Name, marketName, formatTimestamp(endTime))
			break
		}
	}
	return trades, nil
}

// GetPosition returns the position of a single future or nil when the
// account holds none
func (f *Ftx) GetPosition(ctx context.Context, futureName string, showAveragePrice bool) (*PositionData, error) {
	if futureName == "" {
		return nil, errMarketNameEmpty
	}
	positions, err := f.GetPositions(ctx, showAveragePrice)
	if err != nil {
		return nil, err
	}
	for i := range positions {
		if positions[i].Future == futureName {
			return &positions[i], nil
		}
	}
	return nil, nil
}

// GetTotalUSDBalance sums the USD value of every coin in the main account
func (f *Ftx) GetTotalUSDBalance(ctx context.Context) (decimal.Decimal, error) {
	balances, err := f.GetBalances(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return sumUSDValue(balances), nil
}

// GetTotalAccountUSDBalance sums the USD value of every coin across the main
// account and all subaccounts
func (f *Ftx) GetTotalAccountUSDBalance(ctx context.Context) (decimal.Decimal, error) {
	all, err := f.GetAllBalances(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, balances := range all {
		total = total.Add(sumUSDValue(balances))
	}
	return total, nil
}

func sumUSDValue(balances []WalletBalance) decimal.Decimal {
	total := decimal.Zero
	for i := range balances {
		total = total.Add(balances[i].USDValue)
	}
	return total
}
