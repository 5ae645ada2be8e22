//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_decision_post_test
package courier_decision_post

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
	Approve(ctx context.Context, operatorID, courierID int64) (*entities.CourierProfile, error)
	Reject(ctx context.Context, operatorID, courierID int64) (*entities.CourierProfile, error)
}
