package request

// UpsertHoldingRequest represents the request body for creating or updating a holding.
// Quantity is a string on the CLI path and a JSON number over HTTP; both end
// up here after parsing.
type UpsertHoldingRequest struct {
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
	Quantity int64  `json:"quantity"`
}
