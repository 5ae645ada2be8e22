package order_bad_address_post

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
	FlagBadAddress(ctx context.Context, courierID int64, orderID string) (*entities.Order, error)
}
