//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_proof_post_test
package order_proof_post

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
	SubmitProof(ctx context.Context, courierID int64, orderID string, proofRef string) (*entities.Order, error)
}
