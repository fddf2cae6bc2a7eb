package model

// Trade is an executed futures trade as reported by Bitunix.
//
// Quantity, price and fee are kept as the exchange's decimal strings: the
// exporter never does arithmetic on them, and re-parsing through float64
// would mangle precision for no benefit.
type Trade struct {
	TradeID string // Exchange-assigned trade id
	Symbol  string // Contract symbol (e.g., "BTCUSDT")
	Side    string // "buy" or "sell" (exchange casing varies)
	Qty     string // Filled quantity, decimal string
	Price   string // Fill price, decimal string
	Fee     string // Trading fee, decimal string
	Ctime   int64  // Trade creation time (ms since epoch, UTC)
}
