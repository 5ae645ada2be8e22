//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_stats_get_test
package courier_stats_get

import (
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
	CourierStats(courierID int64) (*entities.CourierStats, error)
}
