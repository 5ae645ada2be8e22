//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_create_post_test
package order_create_post

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
	CreateOrder(ctx context.Context, clientID int64, draft entities.OrderDraft) (*entities.Order, error)
}
