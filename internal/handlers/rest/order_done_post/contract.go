//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_done_post_test
package order_done_post

import (
	"context"

	"easygo/internal/entities"
	"easygo/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	MarkDone(ctx context.Context, courierID int64, orderID string) (*entities.Order, error)
}
