package api

import (
	"github.com/kaifri/BitunixTradezellaSync/internal/model"
)

// ToModel converts an APITrade to model.Trade.
func (t *APITrade) ToModel() model.Trade {
	return model.Trade{
		TradeID: t.TradeID,
		Symbol:  t.Symbol,
		Side:    t.Side,
		Qty:     t.Qty,
		Price:   t.Price,
		Fee:     t.Fee,
		Ctime:   int64(t.Ctime),
	}
}
