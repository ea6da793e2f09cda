package repository

import "github.com/spec-kit/poseidon-api/internal/domain"

// BidListTable maps domain.BidList onto bid_lists.
var BidListTable = Table[domain.BidList, int64]{
	Name: "bid_lists",
	Key:  "bid_list_id",
	Columns: []string{
		"account", "bid_type", "bid_quantity", "ask_quantity", "bid", "ask", "benchmark",
		"bid_list_date", "commentary", "bid_security", "bid_status", "trader", "book",
		"creation_name", "creation_date", "revision_name", "revision_date", "deal_name",
		"deal_type", "source_list_id", "side",
	},
	KeyRef: func(b *domain.BidList) *int64 { return &b.BidListID },
	Values: func(b *domain.BidList) []any {
		return []any{
			b.Account, b.BidType, b.BidQuantity, b.AskQuantity, b.Bid, b.Ask, b.Benchmark,
			b.BidListDate, b.Commentary, b.BidSecurity, b.BidStatus, b.Trader, b.Book,
			b.CreationName, b.CreationDate, b.RevisionName, b.RevisionDate, b.DealName,
			b.DealType, b.SourceListID, b.Side,
		}
	},
	Targets: func(b *domain.BidList) []any {
		return []any{
			&b.Account, &b.BidType, &b.BidQuantity, &b.AskQuantity, &b.Bid, &b.Ask, &b.Benchmark,
			&b.BidListDate, &b.Commentary, &b.BidSecurity, &b.BidStatus, &b.Trader, &b.Book,
			&b.CreationName, &b.CreationDate, &b.RevisionName, &b.RevisionDate, &b.DealName,
			&b.DealType, &b.SourceListID, &b.Side,
		}
	},
}

// TradeTable maps domain.Trade onto trades.
var TradeTable = Table[domain.Trade, int64]{
	Name: "trades",
	Key:  "trade_id",
	Columns: []string{
		"account", "account_type", "buy_quantity", "sell_quantity", "buy_price", "sell_price",
		"trade_date", "trade_security", "trade_status", "trader", "benchmark", "book",
		"creation_name", "creation_date", "revision_name", "revision_date", "deal_name",
		"deal_type", "source_list_id", "side",
	},
	KeyRef: func(t *domain.Trade) *int64 { return &t.TradeID },
	Values: func(t *domain.Trade) []any {
		return []any{
			t.Account, t.AccountType, t.BuyQuantity, t.SellQuantity, t.BuyPrice, t.SellPrice,
			t.TradeDate, t.TradeSecurity, t.TradeStatus, t.Trader, t.Benchmark, t.Book,
			t.CreationName, t.CreationDate, t.RevisionName, t.RevisionDate, t.DealName,
			t.DealType, t.SourceListID, t.Side,
		}
	},
	Targets: func(t *domain.Trade) []any {
		return []any{
			&t.Account, &t.AccountType, &t.BuyQuantity, &t.SellQuantity, &t.BuyPrice, &t.SellPrice,
			&t.TradeDate, &t.TradeSecurity, &t.TradeStatus, &t.Trader, &t.Benchmark, &t.Book,
			&t.CreationName, &t.CreationDate, &t.RevisionName, &t.RevisionDate, &t.DealName,
			&t.DealType, &t.SourceListID, &t.Side,
		}
	},
}

// CurvePointTable maps domain.CurvePoint onto curve_points.
var CurvePointTable = Table[domain.CurvePoint, int64]{
	Name:    "curve_points",
	Key:     "id",
	Columns: []string{"curve_id", "as_of_date", "term", "curve_point_value", "creation_date"},
	KeyRef:  func(c *domain.CurvePoint) *int64 { return &c.ID },
	Values: func(c *domain.CurvePoint) []any {
		return []any{c.CurveID, c.AsOfDate, c.Term, c.CurvePointValue, c.CreationDate}
	},
	Targets: func(c *domain.CurvePoint) []any {
		return []any{&c.CurveID, &c.AsOfDate, &c.Term, &c.CurvePointValue, &c.CreationDate}
	},
}

// RatingTable maps domain.Rating onto ratings.
var RatingTable = Table[domain.Rating, int64]{
	Name:    "ratings",
	Key:     "id",
	Columns: []string{"moodys_rating", "sand_p_rating", "fitch_rating", "order_number"},
	KeyRef:  func(r *domain.Rating) *int64 { return &r.ID },
	Values: func(r *domain.Rating) []any {
		return []any{r.MoodysRating, r.SandPRating, r.FitchRating, r.OrderNumber}
	},
	Targets: func(r *domain.Rating) []any {
		return []any{&r.MoodysRating, &r.SandPRating, &r.FitchRating, &r.OrderNumber}
	},
}

// RuleNameTable maps domain.RuleName onto rule_names.
var RuleNameTable = Table[domain.RuleName, int64]{
	Name:    "rule_names",
	Key:     "id",
	Columns: []string{"name", "description", "json", "template", "sql_str", "sql_part"},
	KeyRef:  func(r *domain.RuleName) *int64 { return &r.ID },
	Values: func(r *domain.RuleName) []any {
		return []any{r.Name, r.Description, r.JSON, r.Template, r.SQLStr, r.SQLPart}
	},
	Targets: func(r *domain.RuleName) []any {
		return []any{&r.Name, &r.Description, &r.JSON, &r.Template, &r.SQLStr, &r.SQLPart}
	},
}
