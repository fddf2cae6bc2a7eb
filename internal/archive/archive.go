package archive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaifri/BitunixTradezellaSync/internal/config"
	"github.com/kaifri/BitunixTradezellaSync/internal/model"
)

// Archive writes exported trades to the bitunix_trades table.
type Archive struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// Connect creates the connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*Archive, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Archive{db: pool, logger: logger}, nil
}

// Close closes the connection pool.
func (a *Archive) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// ArchiveTrades inserts a batch of trades with ON CONFLICT DO NOTHING on the
// trade id, so the same trade archived twice (e.g., around a partial-run
// boundary) stays a single row.
func (a *Archive) ArchiveTrades(ctx context.Context, trades []model.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	start := time.Now()
	archivedAt := time.Now().UnixMilli()

	batch := &pgx.Batch{}
	for _, tr := range trades {
		batch.Queue(`
			INSERT INTO bitunix_trades (trade_id, symbol, side, qty, price, fee, ctime, archived_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (trade_id) DO NOTHING
		`, tr.TradeID, tr.Symbol, tr.Side, tr.Qty, tr.Price, tr.Fee, tr.Ctime, archivedAt)
	}

	results := a.db.SendBatch(ctx, batch)
	defer results.Close()

	conflicts := 0
	for range trades {
		ct, err := results.Exec()
		if err != nil {
			return fmt.Errorf("batch insert: %w", err)
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}

	a.logger.Debug("archived trades",
		"count", len(trades),
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
	return nil
}
