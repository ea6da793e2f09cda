package domain

import "time"

// BidList is a bid on a security held in a trading book.
type BidList struct {
	BidListID    int64
	Account      string
	BidType      string
	BidQuantity  *float64
	AskQuantity  *float64
	Bid          *float64
	Ask          *float64
	Benchmark    string
	BidListDate  *time.Time
	Commentary   string
	BidSecurity  string
	BidStatus    string
	Trader       string
	Book         string
	CreationName string
	CreationDate *time.Time
	RevisionName string
	RevisionDate *time.Time
	DealName     string
	DealType     string
	SourceListID string
	Side         string
}
