package notify

import (
	"context"

	"easygo/internal/entities"
)

type Notifier interface {
	Notify(ctx context.Context, notification entities.Notification) error
}
