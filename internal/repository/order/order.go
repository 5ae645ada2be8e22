package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"easygo/internal/entities"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

const orderColumns = `id, created_at, status, price_krw, client_id,
	pickup_address, drop_address, door_code, recipient_contact,
	delivery_type, delivery_type_other, time_window, time_window_text,
	courier_id, courier_name, courier_phone,
	taken_at, en_route_at, done_requested_at, completed_at, proof_ref,
	canceled_at, canceled_by`

// InsertOrder — upsert по id: хранилище обязано переживать повторную
// вставку уже известного заказа без ошибки.
func (r *Repository) InsertOrder(ctx context.Context, order entities.Order) error {
	orderDB := FromDomain(&order)

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			courier_id = EXCLUDED.courier_id,
			courier_name = EXCLUDED.courier_name,
			courier_phone = EXCLUDED.courier_phone,
			taken_at = EXCLUDED.taken_at,
			en_route_at = EXCLUDED.en_route_at,
			done_requested_at = EXCLUDED.done_requested_at,
			completed_at = EXCLUDED.completed_at,
			proof_ref = EXCLUDED.proof_ref,
			canceled_at = EXCLUDED.canceled_at,
			canceled_by = EXCLUDED.canceled_by
	`

	_, err := r.querier.Exec(ctx, query, insertArgs(orderDB)...)
	if err != nil {
		return fmt.Errorf("unexpected order repository insert error: %w", err)
	}
	return nil
}

// UpdateOrder обновляет заказ, а если хранилище его не знает (дрейф между
// памятью и БД) — вставляет заново.
func (r *Repository) UpdateOrder(ctx context.Context, order entities.Order) error {
	orderDB := FromDomain(&order)

	query, args, err := updateBuilder(orderDB).ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository update error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected order repository update error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.InsertOrder(ctx, order)
	}
	return nil
}

// UpdateOrderFrom — условное обновление: строка меняется только если ее
// текущий статус равен from. Хранилище выступает арбитром гонки за заказ
// между процессами, проигравший получает фактический статус.
func (r *Repository) UpdateOrderFrom(ctx context.Context, order entities.Order, from entities.OrderStatusType) (bool, entities.OrderStatusType, error) {
	orderDB := FromDomain(&order)

	query, args, err := updateBuilder(orderDB).
		Where(sq.Eq{"status": from.String()}).
		ToSql()
	if err != nil {
		return false, "", fmt.Errorf("unexpected order repository conditional update error: %w", err)
	}

	tag, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return false, "", fmt.Errorf("unexpected order repository conditional update error: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return true, order.Status, nil
	}

	var current string
	err = r.querier.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, orderDB.ID).Scan(&current)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// хранилище отстало от памяти, строки еще нет — дописываем
		if insErr := r.InsertOrder(ctx, order); insErr != nil {
			return false, "", insErr
		}
		return true, order.Status, nil
	case err != nil:
		return false, "", fmt.Errorf("unexpected order repository conditional update error: %w", err)
	}
	return false, entities.OrderStatusType(current), nil
}

func updateBuilder(orderDB *OrderDB) sq.UpdateBuilder {
	return qb.
		Update("orders").
		Set("status", orderDB.Status).
		Set("courier_id", orderDB.CourierID).
		Set("courier_name", orderDB.CourierName).
		Set("courier_phone", orderDB.CourierPhone).
		Set("taken_at", orderDB.TakenAt).
		Set("en_route_at", orderDB.EnRouteAt).
		Set("done_requested_at", orderDB.DoneRequestedAt).
		Set("completed_at", orderDB.CompletedAt).
		Set("proof_ref", orderDB.ProofRef).
		Set("canceled_at", orderDB.CanceledAt).
		Set("canceled_by", orderDB.CanceledBy).
		Where(sq.Eq{"id": orderDB.ID})
}

func (r *Repository) LoadAllOrders(ctx context.Context) ([]entities.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository loadall error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 8)
	for rows.Next() {
		var orderDB OrderDB
		err := rows.Scan(
			&orderDB.ID,
			&orderDB.CreatedAt,
			&orderDB.Status,
			&orderDB.PriceKRW,
			&orderDB.ClientID,
			&orderDB.PickupAddress,
			&orderDB.DropAddress,
			&orderDB.DoorCode,
			&orderDB.RecipientContact,
			&orderDB.DeliveryType,
			&orderDB.DeliveryTypeOther,
			&orderDB.TimeWindow,
			&orderDB.TimeWindowText,
			&orderDB.CourierID,
			&orderDB.CourierName,
			&orderDB.CourierPhone,
			&orderDB.TakenAt,
			&orderDB.EnRouteAt,
			&orderDB.DoneRequestedAt,
			&orderDB.CompletedAt,
			&orderDB.ProofRef,
			&orderDB.CanceledAt,
			&orderDB.CanceledBy,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository loadall error: %w", err)
		}
		orderModels = append(orderModels, orderDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository loadall error: %w", err)
	}

	return ToDomainList(orderModels), nil
}

// NextOrderID — монотонно растущий числовой id из последовательности БД.
func (r *Repository) NextOrderID(ctx context.Context) (string, error) {
	var id string
	err := r.querier.QueryRow(ctx, `SELECT nextval('order_id_seq')::TEXT`).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("unexpected order repository nextid error: %w", err)
	}
	return id, nil
}

func insertArgs(o *OrderDB) []interface{} {
	return []interface{}{
		o.ID,
		o.CreatedAt,
		o.Status,
		o.PriceKRW,
		o.ClientID,
		o.PickupAddress,
		o.DropAddress,
		o.DoorCode,
		o.RecipientContact,
		o.DeliveryType,
		o.DeliveryTypeOther,
		o.TimeWindow,
		o.TimeWindowText,
		o.CourierID,
		o.CourierName,
		o.CourierPhone,
		o.TakenAt,
		o.EnRouteAt,
		o.DoneRequestedAt,
		o.CompletedAt,
		o.ProofRef,
		o.CanceledAt,
		o.CanceledBy,
	}
}
