package export

import (
	"testing"

	"github.com/kaifri/BitunixTradezellaSync/internal/model"
)

func TestTransform_Mapping(t *testing.T) {
	trades := []model.Trade{
		{
			TradeID: "t-1",
			Symbol:  "BTCUSDT",
			Side:    "buy",
			Qty:     "0.5",
			Price:   "43000.1",
			Fee:     "0.02",
			Ctime:   1705276800123, // 2024-01-15 00:00:00.123 UTC
		},
	}

	rows := Transform(trades)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.Date != "1/15/24" {
		t.Errorf("Date = %q, want %q", row.Date, "1/15/24")
	}
	if row.Time != "00:00:00" {
		t.Errorf("Time = %q, want %q", row.Time, "00:00:00")
	}
	if row.Symbol != "BTCUSDT" {
		t.Errorf("Symbol = %q, want %q", row.Symbol, "BTCUSDT")
	}
	if row.Side != "BUY" {
		t.Errorf("Side = %q, want %q (uppercased)", row.Side, "BUY")
	}
	if row.Quantity != "0.5" {
		t.Errorf("Quantity = %q, want %q", row.Quantity, "0.5")
	}
	if row.Price != "43000.1" {
		t.Errorf("Price = %q, want %q", row.Price, "43000.1")
	}
	if row.Spread != "Crypto" {
		t.Errorf("Spread = %q, want %q", row.Spread, "Crypto")
	}
	if row.Commission != "0.02" {
		t.Errorf("Commission = %q, want %q", row.Commission, "0.02")
	}
	if row.Expiration != "" || row.Strike != "" || row.CallPut != "" || row.Fees != "" {
		t.Errorf("options fields not blank: %q %q %q %q",
			row.Expiration, row.Strike, row.CallPut, row.Fees)
	}
}

func TestTransform_DateFormatting(t *testing.T) {
	tests := []struct {
		name     string
		ctime    int64
		wantDate string
		wantTime string
	}{
		// No zero padding on month/day, two-digit year, UTC.
		{"single digit month and day", 1709557323000, "3/4/24", "13:02:03"},   // 2024-03-04 13:02:03 UTC
		{"double digit month and day", 1734440400000, "12/17/24", "13:00:00"}, // 2024-12-17 13:00:00 UTC
		{"afternoon stays 24-hour", 1705341600000, "1/15/24", "18:00:00"},     // 2024-01-15 18:00:00 UTC
		{"year 2009 pads to 09", 1234567890000, "2/13/09", "23:31:30"},        // 2009-02-13 23:31:30 UTC
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Transform([]model.Trade{{Ctime: tt.ctime}})
			if rows[0].Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", rows[0].Date, tt.wantDate)
			}
			if rows[0].Time != tt.wantTime {
				t.Errorf("Time = %q, want %q", rows[0].Time, tt.wantTime)
			}
		})
	}
}

func TestTransform_StableOrderAndInputUntouched(t *testing.T) {
	trades := []model.Trade{
		{TradeID: "late", Symbol: "LATE", Ctime: 2000},
		{TradeID: "early", Symbol: "EARLY", Ctime: 1000},
		{TradeID: "tie-first", Symbol: "TIE1", Ctime: 1500},
		{TradeID: "tie-second", Symbol: "TIE2", Ctime: 1500},
	}

	rows := Transform(trades)

	gotSymbols := make([]string, len(rows))
	for i, r := range rows {
		gotSymbols[i] = r.Symbol
	}
	want := []string{"EARLY", "TIE1", "TIE2", "LATE"}
	for i := range want {
		if gotSymbols[i] != want[i] {
			t.Fatalf("row order = %v, want %v", gotSymbols, want)
		}
	}

	if trades[0].TradeID != "late" {
		t.Error("Transform mutated its input slice")
	}
}

func TestTransform_MissingFieldsStayBlank(t *testing.T) {
	rows := Transform([]model.Trade{{Ctime: 1705276800000}})
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	row := rows[0]
	if row.Symbol != "" || row.Side != "" || row.Quantity != "" || row.Price != "" || row.Commission != "" {
		t.Errorf("missing upstream fields should map to blanks, got %+v", row)
	}
	if row.Spread != "Crypto" {
		t.Errorf("Spread = %q, want constant %q", row.Spread, "Crypto")
	}
}

func TestTransform_Empty(t *testing.T) {
	if rows := Transform(nil); len(rows) != 0 {
		t.Errorf("Transform(nil) = %d rows, want 0", len(rows))
	}
}
