package dispatch

import (
	"context"
	"fmt"
	"time"

	"easygo/internal/entities"
	"easygo/internal/state"
	"easygo/pkg/logger"
)

// Engine — машина состояний заказа и логика подбора курьера. Все мутации
// заказов проходят через одну секцию взаимного исключения container.Mutate;
// запись в долговременное хранилище и fan-out уведомлений выполняются уже
// после фиксации перехода и блокировку не держат. Исключение — claim: его
// условная запись идет под блокировкой, потому что хранилище разрешает
// гонку за заказ между процессами (REST сервис и kafka-воркер).
type Engine struct {
	container   *state.Container
	persistence Persistence
	events      EventSink
	txManager   TxManager
	queue       TransitionQueue
	logger      logger.Logger
}

func New(
	container *state.Container,
	persistence Persistence,
	events EventSink,
	txManager TxManager,
	queue TransitionQueue,
	logger logger.Logger,
) *Engine {
	return &Engine{
		container:   container,
		persistence: persistence,
		events:      events,
		txManager:   txManager,
		queue:       queue,
		logger:      logger,
	}
}

func (e *Engine) CreateOrder(ctx context.Context, clientID int64, draft entities.OrderDraft) (*entities.Order, error) {
	if clientID <= 0 {
		return nil, ErrMissingRequiredFields
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	orderID, err := e.persistence.NextOrderID(ctx)
	if err != nil {
		return nil, fmt.Errorf("next order id: %w", err)
	}

	order := entities.Order{
		ID:                orderID,
		CreatedAt:         time.Now().UTC(),
		Status:            entities.OrderNew,
		PriceKRW:          draft.PriceKRW,
		ClientID:          clientID,
		PickupAddress:     draft.PickupAddress,
		DropAddress:       draft.DropAddress,
		DoorCode:          draft.DoorCode,
		RecipientContact:  draft.RecipientContact,
		DeliveryType:      draft.DeliveryType,
		DeliveryTypeOther: draft.DeliveryTypeOther,
		TimeWindow:        draft.TimeWindow,
		TimeWindowText:    draft.TimeWindowText,
	}

	_ = e.container.Mutate(func(s *state.Stores) error {
		s.SetOrder(order)
		return nil
	})

	e.writeThrough(ctx, order, true, clientID, entities.RoleClient, "order_created")
	e.announce(ctx, entities.TransitionCreated, order)

	return &order, nil
}

// ClaimOrder назначает заказ курьеру. Предусловия проверяются дважды:
// дешево вне блокировки, чтобы сразу отдать понятный отказ, и авторитетно
// внутри нее. Локальная блокировка закрывает гонку внутри процесса, а
// условная запись в хранилище — между процессами: побеждает тот, чей
// UPDATE застал заказ в NEW.
func (e *Engine) ClaimOrder(ctx context.Context, courierID int64, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrOrderNotFound
	}

	if err := e.checkCourierFree(courierID); err != nil {
		return nil, err
	}

	var (
		claimed entities.Order
		lost    *StateConflictError
	)
	err := e.container.Mutate(func(s *state.Stores) error {
		order, ok := s.Order(orderID)
		if !ok {
			return ErrOrderNotFound
		}
		if err := checkTransition(EventClaim, order.Status); err != nil {
			return err
		}

		courier, ok := s.Courier(courierID)
		if !ok {
			return ErrCourierNotFound
		}
		if courier.Status != entities.CourierApproved {
			return ErrCourierNotApproved
		}
		if _, busy := s.ActiveOrderFor(courierID); busy {
			return ErrCourierHasActiveOrder
		}

		order.Status = entities.OrderTaken
		order.CourierID = courier.ID
		order.CourierName = courier.Name
		order.CourierPhone = courier.Phone
		order.TakenAt = time.Now().UTC()

		won, current, werr := e.claimWriteThrough(ctx, order, courierID)
		if werr != nil {
			// инфраструктурный сбой: переход фиксируем, хранилище
			// догонит фоновая задача
			s.SetOrder(order)
			s.MarkDirty(order.ID)
			e.logger.Error("persistence write failed, in-memory and durable state diverged",
				logger.NewField("order_id", order.ID),
				logger.NewField("status", order.Status.String()),
				logger.NewField("event_type", "order_claimed"),
				logger.NewField("error", werr),
			)
			claimed = order
			return nil
		}
		if !won {
			// заказ уже увели через другой процесс; локальную копию не
			// трогаем, снимок победителя придет со следующей гидрацией
			lost = &StateConflictError{Event: EventClaim, Current: current.String()}
			return lost
		}

		s.SetOrder(order)
		claimed = order
		return nil
	})
	if err != nil {
		if lost != nil {
			e.auditClaimRejected(ctx, courierID, orderID, lost.Current)
		}
		return nil, err
	}

	e.announce(ctx, entities.TransitionClaimed, claimed)

	return &claimed, nil
}

// claimWriteThrough — условная запись claim вместе со строкой аудита в
// одной транзакции. Возвращает фактический статус заказа в хранилище,
// когда claim проигран.
func (e *Engine) claimWriteThrough(ctx context.Context, order entities.Order, courierID int64) (bool, entities.OrderStatusType, error) {
	var (
		won     bool
		current entities.OrderStatusType
	)
	err := e.txManager.Do(ctx, func(txCtx context.Context) error {
		var txErr error
		won, current, txErr = e.persistence.UpdateOrderFrom(txCtx, order, entities.OrderNew)
		if txErr != nil {
			return txErr
		}
		if !won {
			return nil
		}
		return e.events.LogEvent(txCtx, courierID, entities.RoleCourier.String(), "order_claimed", order.ID, "")
	})
	return won, current, err
}

// auditClaimRejected фиксирует проигранную гонку за заказ. Сбой записи
// аудита не влияет на ответ курьеру.
func (e *Engine) auditClaimRejected(ctx context.Context, courierID int64, orderID string, current string) {
	err := e.events.LogEvent(ctx, courierID, entities.RoleCourier.String(), "order_claim_rejected", orderID, current)
	if err != nil {
		e.logger.Warn("audit event write failed",
			logger.NewField("event_type", "order_claim_rejected"),
			logger.NewField("order_id", orderID),
			logger.NewField("error", err),
		)
	}
}

// FlagBadAddress убирает заказ из числа доступных для claim, не назначая
// курьера: клиенту предлагается удалить заявку и создать заново.
func (e *Engine) FlagBadAddress(ctx context.Context, courierID int64, orderID string) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrOrderNotFound
	}

	if err := e.checkCourierApproved(courierID); err != nil {
		return nil, err
	}

	var flagged entities.Order
	err := e.container.Mutate(func(s *state.Stores) error {
		order, ok := s.Order(orderID)
		if !ok {
			return ErrOrderNotFound
		}
		if err := checkTransition(EventBadAddress, order.Status); err != nil {
			return err
		}

		order.Status = entities.OrderProblem
		order.CanceledAt = time.Time{}
		order.CanceledBy = ""

		s.SetOrder(order)
		flagged = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.writeThrough(ctx, flagged, false, courierID, entities.RoleCourier, "order_bad_address")
	e.announce(ctx, entities.TransitionBadAddress, flagged)

	return &flagged, nil
}

func (e *Engine) MarkDeparted(ctx context.Context, courierID int64, orderID string) (*entities.Order, error) {
	order, err := e.advanceByCourier(ctx, courierID, orderID, EventDepart, "order_departed", func(o *entities.Order) {
		o.Status = entities.OrderEnRoute
		o.EnRouteAt = time.Now().UTC()
	})
	if err != nil {
		return nil, err
	}

	e.announce(ctx, entities.TransitionDeparted, *order)

	return order, nil
}

func (e *Engine) MarkPickedUp(ctx context.Context, courierID int64, orderID string) (*entities.Order, error) {
	order, err := e.advanceByCourier(ctx, courierID, orderID, EventPickup, "order_picked_up", func(o *entities.Order) {
		o.Status = entities.OrderPickedUp
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (e *Engine) MarkDone(ctx context.Context, courierID int64, orderID string) (*entities.Order, error) {
	order, err := e.advanceByCourier(ctx, courierID, orderID, EventDone, "order_done_requested", func(o *entities.Order) {
		o.Status = entities.OrderDonePending
		o.DoneRequestedAt = time.Now().UTC()
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (e *Engine) SubmitProof(ctx context.Context, courierID int64, orderID string, proofRef string) (*entities.Order, error) {
	if !isValidProofRef(proofRef) {
		return nil, ErrInvalidProofRef
	}

	order, err := e.advanceByCourier(ctx, courierID, orderID, EventProof, "order_completed", func(o *entities.Order) {
		o.Status = entities.OrderDone
		o.CompletedAt = time.Now().UTC()
		o.ProofRef = proofRef
	})
	if err != nil {
		return nil, err
	}

	e.announce(ctx, entities.TransitionCompleted, *order)

	return order, nil
}

func (e *Engine) CancelOrder(ctx context.Context, clientID int64, orderID string) (*entities.Order, error) {
	order, err := e.cancelByClient(ctx, clientID, orderID, EventCancel, entities.CanceledByClient, "order_canceled")
	if err != nil {
		return nil, err
	}

	e.announce(ctx, entities.TransitionCanceled, *order)

	return order, nil
}

// DeleteProblemOrder — мягкое удаление заявки со статусом PROBLEM ее
// владельцем. Заказ не стирается, а помечается отмененным с отдельным
// актором, чтобы отличать от обычной отмены.
func (e *Engine) DeleteProblemOrder(ctx context.Context, clientID int64, orderID string) (*entities.Order, error) {
	order, err := e.cancelByClient(ctx, clientID, orderID, EventDeleteProblem, entities.CanceledByClientDeleteProblem, "order_problem_deleted")
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (e *Engine) GetOrder(orderID string) (*entities.Order, error) {
	var (
		order entities.Order
		found bool
	)
	e.container.Read(func(s *state.Stores) {
		order, found = s.Order(orderID)
	})
	if !found {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

// ListClientOrders возвращает заказы клиента не старше since (нулевое
// значение — без ограничения по времени).
func (e *Engine) ListClientOrders(clientID int64, since time.Time) []entities.Order {
	var orders []entities.Order
	e.container.Read(func(s *state.Stores) {
		orders = s.Orders(func(o entities.Order) bool {
			if o.ClientID != clientID {
				return false
			}
			return since.IsZero() || !o.CreatedAt.Before(since)
		})
	})
	return orders
}

// ListOpenOrders — лента доступных для claim заказов.
func (e *Engine) ListOpenOrders() []entities.Order {
	var orders []entities.Order
	e.container.Read(func(s *state.Stores) {
		orders = s.Orders(func(o entities.Order) bool {
			return o.Status == entities.OrderNew
		})
	})
	return orders
}

// ListActiveOrders — операторский срез: все незавершенные заказы.
func (e *Engine) ListActiveOrders() []entities.Order {
	var orders []entities.Order
	e.container.Read(func(s *state.Stores) {
		orders = s.Orders(func(o entities.Order) bool {
			return !o.Status.Terminal()
		})
	})
	return orders
}

func (e *Engine) CourierStats(courierID int64) (*entities.CourierStats, error) {
	stats := entities.CourierStats{CourierID: courierID}
	var found bool

	e.container.Read(func(s *state.Stores) {
		_, found = s.Courier(courierID)
		if !found {
			return
		}
		for _, o := range s.Orders(func(o entities.Order) bool {
			return o.CourierID == courierID && o.Status == entities.OrderDone
		}) {
			stats.DoneCount++
			stats.EarnedKRW += o.PriceKRW
			if o.CompletedAt.After(stats.LastDoneAt) {
				stats.LastDoneAt = o.CompletedAt
			}
		}
	})
	if !found {
		return nil, ErrCourierNotFound
	}
	return &stats, nil
}

// FlushDirtyOrders повторяет write-through для заказов, у которых запись в
// хранилище не прошла. Возвращает число успешно дописанных заказов.
func (e *Engine) FlushDirtyOrders(ctx context.Context) (int, error) {
	var (
		dirtyIDs []string
		orders   []entities.Order
	)
	e.container.Read(func(s *state.Stores) {
		dirtyIDs = s.DirtyOrders()
		for _, id := range dirtyIDs {
			if o, ok := s.Order(id); ok {
				orders = append(orders, o)
			}
		}
	})
	if len(orders) == 0 {
		return 0, nil
	}

	flushed := 0
	var lastErr error
	for _, order := range orders {
		if err := e.persistence.UpdateOrder(ctx, order); err != nil {
			lastErr = fmt.Errorf("flush order %s: %w", order.ID, err)
			continue
		}

		orderID := order.ID
		_ = e.container.Mutate(func(s *state.Stores) error {
			s.ClearDirty(orderID)
			return nil
		})
		flushed++
	}
	return flushed, lastErr
}

// advanceByCourier — общий каркас переходов, выполняемых назначенным
// курьером: авторизация, проверка таблицы переходов, мутация и write-through.
func (e *Engine) advanceByCourier(
	ctx context.Context,
	courierID int64,
	orderID string,
	event TransitionEventType,
	auditType string,
	apply func(*entities.Order),
) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrOrderNotFound
	}

	var advanced entities.Order
	err := e.container.Mutate(func(s *state.Stores) error {
		order, ok := s.Order(orderID)
		if !ok {
			return ErrOrderNotFound
		}
		if order.CourierID != courierID {
			return ErrUnauthorized
		}
		if err := checkTransition(event, order.Status); err != nil {
			return err
		}

		apply(&order)
		s.SetOrder(order)
		advanced = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.writeThrough(ctx, advanced, false, courierID, entities.RoleCourier, auditType)

	return &advanced, nil
}

func (e *Engine) cancelByClient(
	ctx context.Context,
	clientID int64,
	orderID string,
	event TransitionEventType,
	actor entities.CancelActor,
	auditType string,
) (*entities.Order, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrOrderNotFound
	}

	var canceled entities.Order
	err := e.container.Mutate(func(s *state.Stores) error {
		order, ok := s.Order(orderID)
		if !ok {
			return ErrOrderNotFound
		}
		if order.ClientID != clientID {
			return ErrUnauthorized
		}
		if err := checkTransition(event, order.Status); err != nil {
			return err
		}

		order.Status = entities.OrderCanceled
		order.CanceledAt = time.Now().UTC()
		order.CanceledBy = actor

		s.SetOrder(order)
		canceled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.writeThrough(ctx, canceled, false, clientID, entities.RoleClient, auditType)

	return &canceled, nil
}

// checkCourierFree — дешевая проверка вне блокировки: курьер одобрен и не
// занят другим заказом.
func (e *Engine) checkCourierFree(courierID int64) error {
	if err := e.checkCourierApproved(courierID); err != nil {
		return err
	}

	var busy bool
	e.container.Read(func(s *state.Stores) {
		_, busy = s.ActiveOrderFor(courierID)
	})
	if busy {
		return ErrCourierHasActiveOrder
	}
	return nil
}

func (e *Engine) checkCourierApproved(courierID int64) error {
	var (
		courier entities.CourierProfile
		found   bool
	)
	e.container.Read(func(s *state.Stores) {
		courier, found = s.Courier(courierID)
	})
	if !found {
		return ErrCourierNotFound
	}
	if courier.Status != entities.CourierApproved {
		return ErrCourierNotApproved
	}
	return nil
}

// writeThrough зеркалирует зафиксированный переход в долговременное
// хранилище: снимок заказа и строка журнала событий уходят одной
// транзакцией. In-memory переход не откатывается: участникам уже сообщен
// новый статус, поэтому при сбое заказ помечается dirty и дописывается
// фоновой задачей.
func (e *Engine) writeThrough(
	ctx context.Context,
	order entities.Order,
	insert bool,
	actorID int64,
	role entities.RecipientRole,
	eventType string,
) {
	err := e.txManager.Do(ctx, func(txCtx context.Context) error {
		var writeErr error
		if insert {
			writeErr = e.persistence.InsertOrder(txCtx, order)
		} else {
			writeErr = e.persistence.UpdateOrder(txCtx, order)
		}
		if writeErr != nil {
			return writeErr
		}
		return e.events.LogEvent(txCtx, actorID, role.String(), eventType, order.ID, "")
	})
	if err == nil {
		return
	}

	e.logger.Error("persistence write failed, in-memory and durable state diverged",
		logger.NewField("order_id", order.ID),
		logger.NewField("status", order.Status.String()),
		logger.NewField("event_type", eventType),
		logger.NewField("error", err),
	)

	orderID := order.ID
	_ = e.container.Mutate(func(s *state.Stores) error {
		s.MarkDirty(orderID)
		return nil
	})
}

func (e *Engine) announce(ctx context.Context, kind entities.TransitionKind, order entities.Order) {
	event := entities.TransitionEvent{
		Kind:  kind,
		Order: order,
		At:    time.Now().UTC(),
	}
	if err := e.queue.Publish(ctx, event); err != nil {
		e.logger.Warn("transition event publish failed",
			logger.NewField("kind", kind.String()),
			logger.NewField("order_id", order.ID),
			logger.NewField("error", err),
		)
	}
}
