package store_flush

import (
	"context"
	"time"

	"easygo/pkg/logger"
)

type Service interface {
	FlushDirtyOrders(ctx context.Context) (int, error)
}

// StoreFlush дописывает в хранилище заказы, у которых write-through не прошел.
// Память остается источником истины, задача только догоняет базу.
type StoreFlush struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewStoreFlush(log logger.Logger, service Service, interval time.Duration) *StoreFlush {
	return &StoreFlush{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (s *StoreFlush) TTL() time.Duration {
	return s.interval
}

func (s *StoreFlush) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	flushed, err := s.service.FlushDirtyOrders(ctxWithTimeout)

	if flushed > 0 {
		s.log.With(
			logger.NewField("flushed_orders", flushed),
		).Info("store flush")
	}

	return err
}

func (s *StoreFlush) Info() string {
	return "store flush"
}
