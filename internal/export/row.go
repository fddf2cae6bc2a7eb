package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kaifri/BitunixTradezellaSync/internal/model"
)

// Row is one record of the TradeZella Generic Template CSV. Column order
// follows the template and is fixed by field order here.
type Row struct {
	Date       string `csv:"Date"`       // M/D/YY, UTC, no zero padding
	Time       string `csv:"Time"`       // HH:MM:SS, 24-hour, UTC
	Symbol     string `csv:"Symbol"`
	Side       string `csv:"Buy/Sell"`   // uppercase
	Quantity   string `csv:"Quantity"`
	Price      string `csv:"Price"`
	Spread     string `csv:"Spread"`     // constant "Crypto"
	Expiration string `csv:"Expiration"` // blank, futures have no options fields
	Strike     string `csv:"Strike"`     // blank
	CallPut    string `csv:"Call/Put"`   // blank
	Commission string `csv:"Commission"` // exchange fee
	Fees       string `csv:"Fees"`       // blank
}

const spreadCrypto = "Crypto"

// Transform maps trades to output rows, sorted ascending by trade creation
// time so the output is chronological regardless of pagination arrival
// order. Pure and total: missing upstream fields become blank columns.
func Transform(trades []model.Trade) []Row {
	sorted := make([]model.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ctime < sorted[j].Ctime
	})

	rows := make([]Row, 0, len(sorted))
	for _, tr := range sorted {
		rows = append(rows, toRow(tr))
	}
	return rows
}

func toRow(tr model.Trade) Row {
	ts := time.UnixMilli(tr.Ctime).UTC()
	return Row{
		Date:       fmt.Sprintf("%d/%d/%02d", int(ts.Month()), ts.Day(), ts.Year()%100),
		Time:       ts.Format("15:04:05"),
		Symbol:     tr.Symbol,
		Side:       strings.ToUpper(tr.Side),
		Quantity:   tr.Qty,
		Price:      tr.Price,
		Spread:     spreadCrypto,
		Commission: tr.Fee,
	}
}
