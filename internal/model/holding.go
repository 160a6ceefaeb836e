package model

import "github.com/shopspring/decimal"

// Holding represents one persisted row of stock_table: the exchange a ticker
// trades on and how many units are owned. Ticker is unique.
type Holding struct {
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
	Quantity int64  `json:"quantity"`
}

// USD is the currency every portfolio value is expressed in.
const USD = "USD"

// Quote is a point-in-time price observation for a ticker in its native
// currency, together with the price normalised to USD.
type Quote struct {
	Ticker   string
	Exchange string
	Price    decimal.Decimal
	Currency string
	USDPrice decimal.Decimal
}
