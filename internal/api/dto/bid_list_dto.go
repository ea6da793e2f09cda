package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/poseidon-api/internal/domain"
)

// BidListDTO is the wire form of a bid list.
type BidListDTO struct {
	BidListID    int64      `json:"bid_list_id"`
	Account      string     `json:"account"`
	BidType      string     `json:"bid_type"`
	BidQuantity  *float64   `json:"bid_quantity,omitempty"`
	AskQuantity  *float64   `json:"ask_quantity,omitempty"`
	Bid          *float64   `json:"bid,omitempty"`
	Ask          *float64   `json:"ask,omitempty"`
	Benchmark    string     `json:"benchmark"`
	BidListDate  *time.Time `json:"bid_list_date,omitempty"`
	Commentary   string     `json:"commentary"`
	BidSecurity  string     `json:"bid_security"`
	BidStatus    string     `json:"bid_status"`
	Trader       string     `json:"trader"`
	Book         string     `json:"book"`
	CreationName string     `json:"creation_name"`
	CreationDate *time.Time `json:"creation_date,omitempty"`
	RevisionName string     `json:"revision_name"`
	RevisionDate *time.Time `json:"revision_date,omitempty"`
	DealName     string     `json:"deal_name"`
	DealType     string     `json:"deal_type"`
	SourceListID string     `json:"source_list_id"`
	Side         string     `json:"side"`
}

// Validate requires every text field and enforces column widths.
func (d BidListDTO) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Account, validation.Required, validation.Length(1, 50)),
		validation.Field(&d.BidType, validation.Required, validation.Length(1, 50)),
		validation.Field(&d.Benchmark, validation.Required, validation.Length(1, 50)),
		validation.Field(&d.Commentary, validation.Required, validation.Length(1, 255)),
		validation.Field(&d.BidSecurity, validation.Required, validation.Length(1, 50)),
		validation.Field(&d.BidStatus, validation.Required, validation.Length(1, 20)),
		validation.Field(&d.Trader, validation.Required, validation.Length(1, 50)),
		validation.Field(&d.Book, validation.Required, validation.Length(1, 50)),
		validation.Field(&d.CreationName, validation.Required, validation.Length(1, 100)),
		validation.Field(&d.RevisionName, validation.Required, validation.Length(1, 100)),
		validation.Field(&d.DealName, validation.Required, validation.Length(1, 100)),
		validation.Field(&d.DealType, validation.Required, validation.Length(1, 50)),
		validation.Field(&d.SourceListID, validation.Required, validation.Length(1, 50)),
		validation.Field(&d.Side, validation.Required, validation.Length(1, 10)),
	)
}

// Key returns the bid list id carried by the payload.
func (d BidListDTO) Key() int64 { return d.BidListID }

// Apply copies every non-key field onto b.
func (d BidListDTO) Apply(b *domain.BidList) {
	b.Account = d.Account
	b.BidType = d.BidType
	b.BidQuantity = d.BidQuantity
	b.AskQuantity = d.AskQuantity
	b.Bid = d.Bid
	b.Ask = d.Ask
	b.Benchmark = d.Benchmark
	b.BidListDate = d.BidListDate
	b.Commentary = d.Commentary
	b.BidSecurity = d.BidSecurity
	b.BidStatus = d.BidStatus
	b.Trader = d.Trader
	b.Book = d.Book
	b.CreationName = d.CreationName
	b.CreationDate = d.CreationDate
	b.RevisionName = d.RevisionName
	b.RevisionDate = d.RevisionDate
	b.DealName = d.DealName
	b.DealType = d.DealType
	b.SourceListID = d.SourceListID
	b.Side = d.Side
}

// ToBidListDTO maps a bid list to its wire form.
func ToBidListDTO(b domain.BidList) BidListDTO {
	return BidListDTO{
		BidListID:    b.BidListID,
		Account:      b.Account,
		BidType:      b.BidType,
		BidQuantity:  b.BidQuantity,
		AskQuantity:  b.AskQuantity,
		Bid:          b.Bid,
		Ask:          b.Ask,
		Benchmark:    b.Benchmark,
		BidListDate:  b.BidListDate,
		Commentary:   b.Commentary,
		BidSecurity:  b.BidSecurity,
		BidStatus:    b.BidStatus,
		Trader:       b.Trader,
		Book:         b.Book,
		CreationName: b.CreationName,
		CreationDate: b.CreationDate,
		RevisionName: b.RevisionName,
		RevisionDate: b.RevisionDate,
		DealName:     b.DealName,
		DealType:     b.DealType,
		SourceListID: b.SourceListID,
		Side:         b.Side,
	}
}
