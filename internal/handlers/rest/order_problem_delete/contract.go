//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_problem_delete_test
package order_problem_delete

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
	DeleteProblemOrder(ctx context.Context, clientID int64, orderID string) (*entities.Order, error)
}
