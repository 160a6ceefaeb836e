package model

import "github.com/shopspring/decimal"

// Stock is a ticker's identity plus the price snapshot taken for one view.
// It cannot be changed after construction; build it with NewStock once the
// quote is known.
type Stock struct {
	ticker   string
	exchange string
	price    decimal.Decimal
	currency string
	usdPrice decimal.Decimal
}

// NewStock builds a Stock for a holding from its resolved quote.
// An empty currency defaults to USD.
func NewStock(h Holding, q Quote) Stock {
	currency := q.Currency
	if currency == "" {
		currency = USD
	}
	return Stock{
		ticker:   h.Ticker,
		exchange: h.Exchange,
		price:    q.Price,
		currency: currency,
		usdPrice: q.USDPrice,
	}
}

func (s Stock) Ticker() string            { return s.ticker }
func (s Stock) Exchange() string          { return s.exchange }
func (s Stock) Price() decimal.Decimal    { return s.price }
func (s Stock) Currency() string          { return s.currency }
func (s Stock) USDPrice() decimal.Decimal { return s.usdPrice }

// Position is a stock together with the number of units held.
type Position struct {
	Stock    Stock
	Quantity int64
}

// MarketValue returns quantity × USD price.
func (p Position) MarketValue() decimal.Decimal {
	return p.Stock.usdPrice.Mul(decimal.NewFromInt(p.Quantity))
}
