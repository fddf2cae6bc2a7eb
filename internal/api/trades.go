package api

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/kaifri/BitunixTradezellaSync/internal/model"
)

// HistoryTradesPath is the futures trade-history endpoint.
const HistoryTradesPath = "/api/v1/futures/trade/get_history_trades"

// GetHistoryTrades fetches a single page of trade history.
func (c *Client) GetHistoryTrades(ctx context.Context, opts HistoryTradesOptions) (*HistoryTradesResponse, error) {
	query := map[string]string{
		"startTime": strconv.FormatInt(opts.StartTime, 10),
		"skip":      strconv.Itoa(opts.Skip),
		"limit":     strconv.Itoa(opts.Limit),
	}

	var resp HistoryTradesResponse
	if err := c.get(ctx, HistoryTradesPath, query, &resp); err != nil {
		return nil, fmt.Errorf("get history trades: %w", err)
	}

	if err := resp.remoteErr(); err != nil {
		return nil, fmt.Errorf("get history trades: %w", err)
	}

	return &resp, nil
}

// StopReason explains why FetchTrades stopped before exhausting the remote
// result set. StopNone means normal completion.
type StopReason int

const (
	StopNone StopReason = iota
	StopTransport
	StopRemote
	StopMalformed
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopTransport:
		return "transport"
	case StopRemote:
		return "remote"
	case StopMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// FetchResult carries the trades accumulated by FetchTrades together with
// the reason pagination stopped. A partial result is safe to export: the
// checkpoint only ever advances to the maximum timestamp actually written,
// so the next run picks up exactly where this one was interrupted.
type FetchResult struct {
	Trades []model.Trade
	Stop   StopReason
	Err    error // underlying cause when Stop != StopNone
}

// Complete reports whether pagination reached the end of the result set.
func (r FetchResult) Complete() bool {
	return r.Stop == StopNone
}

// FetchTrades retrieves every trade strictly newer than since (ms since
// epoch, UTC), walking pages with an advancing skip offset. Entries at or
// before since are dropped even if the server returns them: the server-side
// startTime filter may be inclusive or approximate.
//
// On a transport failure, a remote-reported error, or a malformed body the
// loop logs, stops, and returns what it has; it never fails the whole run.
func (c *Client) FetchTrades(ctx context.Context, since int64) FetchResult {
	var trades []model.Trade
	skip := 0

	for {
		resp, err := c.GetHistoryTrades(ctx, HistoryTradesOptions{
			StartTime: since,
			Skip:      skip,
			Limit:     c.pageLimit,
		})
		if err != nil {
			stop := classifyStop(err)
			c.logger.Error("trade fetch stopped early",
				"reason", stop.String(),
				"error", err,
				"fetched", len(trades),
				"skip", skip,
			)
			return FetchResult{Trades: trades, Stop: stop, Err: err}
		}

		page := resp.Data.TradeList
		if len(page) == 0 {
			break
		}

		for _, t := range page {
			if int64(t.Ctime) > since {
				trades = append(trades, t.ToModel())
			}
		}

		skip += len(page)
		if len(page) < c.pageLimit {
			break
		}
	}

	c.logger.Info("fetched trades", "count", len(trades), "since", since)
	return FetchResult{Trades: trades, Stop: StopNone}
}

// classifyStop maps a page-fetch error to a stop reason.
func classifyStop(err error) StopReason {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return StopRemote
	}
	if errors.Is(err, ErrMalformedResponse) {
		return StopMalformed
	}
	return StopTransport
}
