package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/poseidon-api/internal/domain"
)

// TradeDTO is the wire form of a trade.
type TradeDTO struct {
	TradeID       int64      `json:"trade_id"`
	Account       string     `json:"account"`
	AccountType   string     `json:"account_type"`
	BuyQuantity   *float64   `json:"buy_quantity,omitempty"`
	SellQuantity  *float64   `json:"sell_quantity,omitempty"`
	BuyPrice      *float64   `json:"buy_price,omitempty"`
	SellPrice     *float64   `json:"sell_price,omitempty"`
	TradeDate     *time.Time `json:"trade_date,omitempty"`
	TradeSecurity string     `json:"trade_security"`
	TradeStatus   string     `json:"trade_status"`
	Trader        string     `json:"trader"`
	Benchmark     string     `json:"benchmark"`
	Book          string     `json:"book"`
	CreationName  string     `json:"creation_name"`
	CreationDate  *time.Time `json:"creation_date,omitempty"`
	RevisionName  string     `json:"revision_name"`
	RevisionDate  *time.Time `json:"revision_date,omitempty"`
	DealName      string     `json:"deal_name"`
	DealType      string     `json:"deal_type"`
	SourceListID  string     `json:"source_list_id"`
	Side          string     `json:"side"`
}

// Validate checks field limits.
func (d TradeDTO) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Account, validation.Required, validation.Length(1, 50)),
		validation.Field(&d.AccountType, validation.Required, validation.Length(1, 50)),
		validation.Field(&d.TradeSecurity, validation.Length(0, 50)),
		validation.Field(&d.TradeStatus, validation.Length(0, 10)),
		validation.Field(&d.Trader, validation.Length(0, 50)),
		validation.Field(&d.Benchmark, validation.Length(0, 50)),
		validation.Field(&d.Book, validation.Length(0, 50)),
		validation.Field(&d.CreationName, validation.Length(0, 50)),
		validation.Field(&d.RevisionName, validation.Length(0, 50)),
		validation.Field(&d.DealName, validation.Length(0, 50)),
		validation.Field(&d.DealType, validation.Length(0, 50)),
		validation.Field(&d.SourceListID, validation.Length(0, 50)),
		validation.Field(&d.Side, validation.Length(0, 10)),
	)
}

// Key returns the trade id carried by the payload.
func (d TradeDTO) Key() int64 { return d.TradeID }

// Apply copies every non-key field onto t.
func (d TradeDTO) Apply(t *domain.Trade) {
	t.Account = d.Account
	t.AccountType = d.AccountType
	t.BuyQuantity = d.BuyQuantity
	t.SellQuantity = d.SellQuantity
	t.BuyPrice = d.BuyPrice
	t.SellPrice = d.SellPrice
	t.TradeDate = d.TradeDate
	t.TradeSecurity = d.TradeSecurity
	t.TradeStatus = d.TradeStatus
	t.Trader = d.Trader
	t.Benchmark = d.Benchmark
	t.Book = d.Book
	t.CreationName = d.CreationName
	t.CreationDate = d.CreationDate
	t.RevisionName = d.RevisionName
	t.RevisionDate = d.RevisionDate
	t.DealName = d.DealName
	t.DealType = d.DealType
	t.SourceListID = d.SourceListID
	t.Side = d.Side
}

// ToTradeDTO maps a trade to its wire form.
func ToTradeDTO(t domain.Trade) TradeDTO {
	return TradeDTO{
		TradeID:       t.TradeID,
		Account:       t.Account,
		AccountType:   t.AccountType,
		BuyQuantity:   t.BuyQuantity,
		SellQuantity:  t.SellQuantity,
		BuyPrice:      t.BuyPrice,
		SellPrice:     t.SellPrice,
		TradeDate:     t.TradeDate,
		TradeSecurity: t.TradeSecurity,
		TradeStatus:   t.TradeStatus,
		Trader:        t.Trader,
		Benchmark:     t.Benchmark,
		Book:          t.Book,
		CreationName:  t.CreationName,
		CreationDate:  t.CreationDate,
		RevisionName:  t.RevisionName,
		RevisionDate:  t.RevisionDate,
		DealName:      t.DealName,
		DealType:      t.DealType,
		SourceListID:  t.SourceListID,
		Side:          t.Side,
	}
}
