package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	market "stockplus/internal/domain/entity/market"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TickRow is one archived tick as stored in price_ticks.
type TickRow struct {
	ID         uuid.UUID `json:"id"`
	StockCode  string    `json:"stockCode"`
	Venue      string    `json:"exchangeCode"`
	Price      float64   `json:"price"`
	Change     float64   `json:"change"`
	ChangeRate float64   `json:"changeRate"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// NewTickRow converts a buffered tick into an archive row.
func NewTickRow(t market.Tick, at time.Time) TickRow {
	return TickRow{
		ID:         uuid.New(),
		StockCode:  t.StockCode,
		Venue:      t.Venue().String(),
		Price:      t.CurrentPrice.FloatOr(0),
		Change:     t.Change.FloatOr(0),
		ChangeRate: t.ChangeRate.FloatOr(0),
		ReceivedAt: at.UTC(),
	}
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() {
	if r == nil || r.pool == nil {
		return
	}
	r.pool.Close()
}

const createTicksTable = `
	CREATE TABLE IF NOT EXISTS price_ticks (
		tick_id       UUID PRIMARY KEY,
		stock_code    TEXT NOT NULL,
		exchange_code TEXT NOT NULL,
		price         DOUBLE PRECISION NOT NULL,
		change        DOUBLE PRECISION NOT NULL,
		change_rate   DOUBLE PRECISION NOT NULL,
		received_at   TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS price_ticks_code_received_idx
		ON price_ticks (stock_code, exchange_code, received_at DESC)`

// EnsureSchema creates the archive table when it does not exist yet.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createTicksTable); err != nil {
		return fmt.Errorf("create price_ticks: %w", err)
	}
	return nil
}

var tickColumns = []string{"tick_id", "stock_code", "exchange_code", "price", "change", "change_rate", "received_at"}

func (r *Repository) AddTicks(ctx context.Context, ticks []TickRow) error {
	if len(ticks) == 0 {
		return nil
	}
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"price_ticks"},
		tickColumns,
		pgx.CopyFromRows(tickRows(ticks)),
	)
	return err
}

func tickRows(ticks []TickRow) [][]any {
	rows := make([][]any, 0, len(ticks))
	for i := range ticks {
		if ticks[i].ID == uuid.Nil {
			ticks[i].ID = uuid.New()
		}
		rows = append(rows, []any{
			ticks[i].ID,
			ticks[i].StockCode,
			ticks[i].Venue,
			ticks[i].Price,
			ticks[i].Change,
			ticks[i].ChangeRate,
			ticks[i].ReceivedAt,
		})
	}
	return rows
}

// LastTicks returns the newest archived ticks for a symbol on a venue,
// newest first.
func (r *Repository) LastTicks(ctx context.Context, code string, venue market.Venue, limit int) ([]TickRow, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	const query = `
		SELECT tick_id, stock_code, exchange_code, price, change, change_rate, received_at
		FROM price_ticks
		WHERE stock_code=$1 AND exchange_code=$2
		ORDER BY received_at DESC
		LIMIT $3`
	rows, err := r.pool.Query(ctx, query, code, venue.OrDefault().String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ticks []TickRow
	for rows.Next() {
		tick, err := scanTick(rows)
		if err != nil {
			return nil, err
		}
		ticks = append(ticks, tick)
	}
	return ticks, rows.Err()
}

func scanTick(row pgx.Row) (TickRow, error) {
	var t TickRow
	err := row.Scan(
		&t.ID,
		&t.StockCode,
		&t.Venue,
		&t.Price,
		&t.Change,
		&t.ChangeRate,
		&t.ReceivedAt,
	)
	if err != nil {
		return TickRow{}, err
	}
	return t, nil
}
