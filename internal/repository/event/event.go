package event

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Repository — append-only журнал действий участников. Сбой записи не
// должен срывать основную операцию, решение за вызывающим.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) LogEvent(ctx context.Context, actorID int64, role string, eventType string, orderID string, meta string) error {
	query := `
		INSERT INTO events (actor_id, role, event_type, order_id, meta)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.querier.Exec(ctx, query, actorID, role, eventType, orderID, meta)
	if err != nil {
		return fmt.Errorf("unexpected event repository insert error: %w", err)
	}
	return nil
}
