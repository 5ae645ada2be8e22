//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	notifyGateway "easygo/internal/gateway/kafka/notify"
	"easygo/internal/handlers/rest/courier_apply_post"
	"easygo/internal/handlers/rest/courier_decision_post"
	"easygo/internal/handlers/rest/courier_get"
	"easygo/internal/handlers/rest/courier_stats_get"
	"easygo/internal/handlers/rest/couriers_get"
	"easygo/internal/handlers/rest/order_bad_address_post"
	"easygo/internal/handlers/rest/order_cancel_post"
	"easygo/internal/handlers/rest/order_claim_post"
	"easygo/internal/handlers/rest/order_create_post"
	"easygo/internal/handlers/rest/order_depart_post"
	"easygo/internal/handlers/rest/order_done_post"
	"easygo/internal/handlers/rest/order_get"
	"easygo/internal/handlers/rest/order_pickup_post"
	"easygo/internal/handlers/rest/order_problem_delete"
	"easygo/internal/handlers/rest/order_proof_post"
	"easygo/internal/handlers/rest/orders_get"
	"easygo/internal/handlers/tasks/store_flush"
	"easygo/internal/notify"
	"easygo/internal/pkg/config"
	"easygo/internal/pkg/factory/command_handle"
	"easygo/internal/state"

	courierRepo "easygo/internal/repository/courier"
	eventRepo "easygo/internal/repository/event"
	orderRepo "easygo/internal/repository/order"
	courierService "easygo/internal/service/courier"
	dispatchService "easygo/internal/service/dispatch"

	"easygo/pkg/background"
	"easygo/pkg/logger"
	"easygo/pkg/querier"
	"easygo/pkg/tx"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	FlushInterval time.Duration
)

type Application struct {
	ServiceDispatch   ServiceDispatch
	ServiceCourier    ServiceCourier
	Fanout            *notify.Fanout
	BackgroundWorkers *background.Worker
}

type ServiceDispatch interface {
	order_create_post.Service
	order_claim_post.Service
	order_bad_address_post.Service
	order_depart_post.Service
	order_pickup_post.Service
	order_done_post.Service
	order_proof_post.Service
	order_cancel_post.Service
	order_problem_delete.Service
	order_get.Service
	orders_get.Service
	courier_stats_get.Service
}

type ServiceCourier interface {
	courier_apply_post.Service
	courier_decision_post.Service
	courier_get.Service
	couriers_get.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideFlushInterval,

		provideOrderRepository,
		provideCourierRepository,
		provideEventRepository,

		provideStateContainer,
		provideNotifyGateway,
		provideFanout,

		provideServiceDispatch,
		provideServiceCourier,

		provideStoreFlushTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceDispatch), new(*dispatchService.Engine)),
		wire.Bind(new(ServiceCourier), new(*courierService.Service)),

		wire.Bind(new(dispatchService.Persistence), new(*orderRepo.Repository)),
		wire.Bind(new(dispatchService.EventSink), new(*eventRepo.Repository)),
		wire.Bind(new(dispatchService.TxManager), new(*tx.Manager)),
		wire.Bind(new(dispatchService.TransitionQueue), new(*notify.Fanout)),

		wire.Bind(new(courierService.Persistence), new(*courierRepo.Repository)),
		wire.Bind(new(courierService.EventSink), new(*eventRepo.Repository)),
		wire.Bind(new(courierService.Notifier), new(*notifyGateway.Gateway)),

		wire.Bind(new(notify.Notifier), new(*notifyGateway.Gateway)),

		wire.Bind(new(store_flush.Service), new(*dispatchService.Engine)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	CommandFactory *command_handle.CommandHandlerFactory
	Fanout         *notify.Fanout
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-bot-commands)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideOrderRepository,
		provideCourierRepository,
		provideEventRepository,

		provideStateContainer,
		provideNotifyGateway,
		provideFanout,

		provideServiceDispatch,
		provideServiceCourier,
		provideCommandHandlerFactory,

		wire.Bind(new(dispatchService.Persistence), new(*orderRepo.Repository)),
		wire.Bind(new(dispatchService.EventSink), new(*eventRepo.Repository)),
		wire.Bind(new(dispatchService.TxManager), new(*tx.Manager)),
		wire.Bind(new(dispatchService.TransitionQueue), new(*notify.Fanout)),

		wire.Bind(new(courierService.Persistence), new(*courierRepo.Repository)),
		wire.Bind(new(courierService.EventSink), new(*eventRepo.Repository)),
		wire.Bind(new(courierService.Notifier), new(*notifyGateway.Gateway)),

		wire.Bind(new(notify.Notifier), new(*notifyGateway.Gateway)),

		wire.Bind(new(command_handle.DispatchService), new(*dispatchService.Engine)),
		wire.Bind(new(command_handle.CourierService), new(*courierService.Service)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideCourierRepository(querier *querier.Querier) *courierRepo.Repository {
	return courierRepo.New(querier)
}

func provideEventRepository(querier *querier.Querier) *eventRepo.Repository {
	return eventRepo.New(querier)
}

// provideStateContainer строит in-memory контейнер и прогревает его полным
// снимком из базы: после холодного старта память снова источник истины.
func provideStateContainer(
	ctx context.Context,
	orderRepository *orderRepo.Repository,
	courierRepository *courierRepo.Repository,
) (*state.Container, error) {
	orders, err := orderRepository.LoadAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	couriers, err := courierRepository.LoadAllCouriers(ctx)
	if err != nil {
		return nil, err
	}

	container := state.NewContainer()
	container.Hydrate(orders, couriers)
	return container, nil
}

func provideNotifyGateway(producer sarama.SyncProducer, cfg *config.Config) *notifyGateway.Gateway {
	return notifyGateway.New(producer, cfg.Kafka.NotificationsTopic)
}

func provideFanout(
	container *state.Container,
	notifier notify.Notifier,
	cfg *config.Config,
	log logger.Logger,
) *notify.Fanout {
	return notify.New(container, notifier, cfg.Dispatch.OperatorIDs, log)
}

func provideServiceDispatch(
	container *state.Container,
	persistence dispatchService.Persistence,
	events dispatchService.EventSink,
	txManager dispatchService.TxManager,
	queue dispatchService.TransitionQueue,
	log logger.Logger,
) *dispatchService.Engine {
	return dispatchService.New(container, persistence, events, txManager, queue, log)
}

func provideServiceCourier(
	container *state.Container,
	persistence courierService.Persistence,
	events courierService.EventSink,
	notifier courierService.Notifier,
	cfg *config.Config,
	log logger.Logger,
) *courierService.Service {
	return courierService.New(container, persistence, events, notifier, cfg.Dispatch.OperatorIDs, log)
}

func provideCommandHandlerFactory(
	dispatchSvc command_handle.DispatchService,
	courierSvc command_handle.CourierService,
) *command_handle.CommandHandlerFactory {
	return command_handle.NewCommandHandlerFactory(dispatchSvc, courierSvc)
}

func provideFlushInterval(cfg *config.Config) FlushInterval {
	return FlushInterval(cfg.Tasks.StoreFlushInterval)
}

func provideStoreFlushTask(
	log logger.Logger,
	dispatchSvc store_flush.Service,
	interval FlushInterval,
) *store_flush.StoreFlush {
	return store_flush.NewStoreFlush(log, dispatchSvc, time.Duration(interval))
}

func provideTaskList(
	storeFlushTask *store_flush.StoreFlush,
) []background.Task {
	return []background.Task{
		storeFlushTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
