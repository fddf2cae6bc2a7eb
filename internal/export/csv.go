package export

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// CSVWriter serializes rows to a TradeZella CSV file.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// Write creates path and writes the header plus all rows. The file is
// synced and closed before returning, so a subsequent checkpoint save never
// races a half-written output file.
func (w *CSVWriter) Write(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	w.logger.Info("wrote output file", "path", path, "rows", len(rows))
	return nil
}

// DefaultFilename derives an output filename from a timestamp, matching the
// new_trades_<yyyymmdd_hhmmss>.csv convention.
func DefaultFilename(t time.Time) string {
	return "new_trades_" + t.Format("20060102_150405") + ".csv"
}
