package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kaifri/BitunixTradezellaSync/internal/model"
)

func TestCSVWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	rows := Transform([]model.Trade{
		{
			TradeID: "t-2",
			Symbol:  "ETHUSDT",
			Side:    "sell",
			Qty:     "1.25",
			Price:   "2301.44",
			Fee:     "0.115",
			Ctime:   1705341600000, // 2024-01-15 18:00:00 UTC
		},
		{
			TradeID: "t-1",
			Symbol:  "BTCUSDT",
			Side:    "buy",
			Qty:     "0.5",
			Price:   "43000.1",
			Fee:     "0.02",
			Ctime:   1705276800000, // 2024-01-15 00:00:00 UTC
		},
	})

	if err := NewCSVWriter(nil).Write(path, rows); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3 (header + 2 rows)", len(lines))
	}

	wantHeader := "Date,Time,Symbol,Buy/Sell,Quantity,Price,Spread,Expiration,Strike,Call/Put,Commission,Fees"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}

	// Rows come out sorted ascending by trade time.
	wantFirst := "1/15/24,00:00:00,BTCUSDT,BUY,0.5,43000.1,Crypto,,,,0.02,"
	if lines[1] != wantFirst {
		t.Errorf("first row = %q, want %q", lines[1], wantFirst)
	}
	wantSecond := "1/15/24,18:00:00,ETHUSDT,SELL,1.25,2301.44,Crypto,,,,0.115,"
	if lines[2] != wantSecond {
		t.Errorf("second row = %q, want %q", lines[2], wantSecond)
	}
}

func TestCSVWriter_WriteBadPath(t *testing.T) {
	err := NewCSVWriter(nil).Write(filepath.Join(t.TempDir(), "missing", "out.csv"), nil)
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestDefaultFilename(t *testing.T) {
	ts := time.Date(2024, 1, 15, 18, 4, 5, 0, time.UTC)
	got := DefaultFilename(ts)
	want := "new_trades_20240115_180405.csv"
	if got != want {
		t.Errorf("DefaultFilename = %q, want %q", got, want)
	}
}
