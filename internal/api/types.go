package api

import (
	"bytes"
	"fmt"
	"strconv"
)

// HistoryTradesResponse from GET /api/v1/futures/trade/get_history_trades
type HistoryTradesResponse struct {
	Code  int               `json:"code"`
	Msg   string            `json:"msg"`
	Error string            `json:"error,omitempty"`
	Data  HistoryTradesData `json:"data"`
}

// HistoryTradesData is the data envelope around a page of trades.
type HistoryTradesData struct {
	TradeList []APITrade `json:"tradeList"`
}

// remoteErr returns a *RemoteError if the payload reports a failure.
// The envelope signals errors two ways depending on endpoint generation:
// a non-empty error field or a non-zero code.
func (r *HistoryTradesResponse) remoteErr() error {
	if r.Error != "" {
		return &RemoteError{Code: r.Code, Message: r.Error}
	}
	if r.Code != 0 {
		return &RemoteError{Code: r.Code, Message: r.Msg}
	}
	return nil
}

// APITrade represents a trade entry from the Bitunix API.
type APITrade struct {
	TradeID string `json:"tradeId"`
	Symbol  string `json:"symbol"`
	Side    string `json:"side"`
	Qty     string `json:"qty"`
	Price   string `json:"price"`
	Fee     string `json:"fee"`
	Ctime   Millis `json:"ctime"`
}

// HistoryTradesOptions configures a GetHistoryTrades request.
type HistoryTradesOptions struct {
	StartTime int64 // Lower bound (ms since epoch); server-side filter may be inclusive
	Skip      int   // Pagination offset
	Limit     int   // Page size
}

// Millis is a millisecond timestamp that the exchange serializes as either a
// JSON number or a numeric string.
type Millis int64

// UnmarshalJSON accepts 1700000000000, "1700000000000", null and "".
func (m *Millis) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*m = 0
		return nil
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse millisecond timestamp %q: %w", s, err)
	}

	*m = Millis(v)
	return nil
}
