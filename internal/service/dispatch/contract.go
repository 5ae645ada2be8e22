package dispatch

import (
	"context"

	"easygo/internal/entities"
)

type Persistence interface {
	InsertOrder(ctx context.Context, order entities.Order) error
	UpdateOrder(ctx context.Context, order entities.Order) error
	// UpdateOrderFrom меняет строку только если ее текущий статус равен
	// from; иначе возвращает фактический статус из хранилища. Хранилище —
	// арбитр гонки за заказ между процессами.
	UpdateOrderFrom(ctx context.Context, order entities.Order, from entities.OrderStatusType) (bool, entities.OrderStatusType, error)
	NextOrderID(ctx context.Context) (string, error)
}

type EventSink interface {
	LogEvent(ctx context.Context, actorID int64, role string, eventType string, orderID string, meta string) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type TransitionQueue interface {
	Publish(ctx context.Context, event entities.TransitionEvent) error
}
