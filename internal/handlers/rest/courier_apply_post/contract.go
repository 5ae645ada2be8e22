//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_apply_post_test
package courier_apply_post

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
	Apply(ctx context.Context, courierID int64, name, phone, transport string) (*entities.CourierProfile, error)
}
