package domain

import "time"

// Trade is an executed buy/sell on an account.
type Trade struct {
	TradeID       int64
	Account       string
	AccountType   string
	BuyQuantity   *float64
	SellQuantity  *float64
	BuyPrice      *float64
	SellPrice     *float64
	TradeDate     *time.Time
	TradeSecurity string
	TradeStatus   string
	Trader        string
	Benchmark     string
	Book          string
	CreationName  string
	CreationDate  *time.Time
	RevisionName  string
	RevisionDate  *time.Time
	DealName      string
	DealType      string
	SourceListID  string
	Side          string
}
