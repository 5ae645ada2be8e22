//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_test
package courier

import (
	"context"

	"easygo/internal/entities"
)

type Persistence interface {
	UpsertCourier(ctx context.Context, profile entities.CourierProfile) error
}

type EventSink interface {
	LogEvent(ctx context.Context, actorID int64, role string, eventType string, orderID string, meta string) error
}

type Notifier interface {
	Notify(ctx context.Context, notification entities.Notification) error
}
