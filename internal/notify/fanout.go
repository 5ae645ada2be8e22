package notify

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"easygo/internal/entities"
	"easygo/internal/state"
	"easygo/pkg/logger"
)

const (
	queueCapacity   = 256
	sendConcurrency = 8
)

var ErrQueueFull = errors.New("notification queue is full")

// Fanout — асинхронная стадия рассылки уведомлений. Читает очередь событий
// "переход совершился" и раскладывает каждое в набор сообщений по
// получателям. Доставка best-effort: сбой по одному получателю не трогает
// остальных и никогда не влияет на уже зафиксированный переход.
type Fanout struct {
	container *state.Container
	notifier  Notifier
	operators []int64
	queue     chan entities.TransitionEvent
	logger    logger.Logger
}

func New(container *state.Container, notifier Notifier, operatorIDs []int64, logger logger.Logger) *Fanout {
	return &Fanout{
		container: container,
		notifier:  notifier,
		operators: operatorIDs,
		queue:     make(chan entities.TransitionEvent, queueCapacity),
		logger:    logger,
	}
}

// Publish кладет событие в очередь, не блокируя вызывающего: движок держит
// переходы короткими и ждать рассылку не обязан.
func (f *Fanout) Publish(_ context.Context, event entities.TransitionEvent) error {
	select {
	case f.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run — цикл рассылки, живет до отмены контекста.
func (f *Fanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-f.queue:
			f.process(ctx, event)
		}
	}
}

func (f *Fanout) process(ctx context.Context, event entities.TransitionEvent) {
	notifications := f.buildNotifications(event)

	eg := errgroup.Group{}
	eg.SetLimit(sendConcurrency)

	for _, notification := range notifications {
		notification := notification
		eg.Go(func() error {
			f.send(ctx, notification)
			return nil
		})
	}
	_ = eg.Wait()
}

func (f *Fanout) send(ctx context.Context, notification entities.Notification) {
	outcome := "ok"
	if err := f.notifier.Notify(ctx, notification); err != nil {
		outcome = "error"
		f.logger.Warn("notification delivery failed",
			logger.NewField("recipient_id", notification.RecipientID),
			logger.NewField("role", notification.Role.String()),
			logger.NewField("order_id", notification.OrderID),
			logger.NewField("error", err),
		)
	}
	NotificationsTotal.WithLabelValues(notification.Kind.String(), notification.Role.String(), outcome).Inc()
}

func (f *Fanout) buildNotifications(event entities.TransitionEvent) []entities.Notification {
	order := event.Order

	switch event.Kind {
	case entities.TransitionCreated:
		text := fmt.Sprintf("🆕 Новый заказ #%s\n\n%s → %s\nЦена: %d KRW",
			order.ID, order.PickupAddress, order.DropAddress, order.PriceKRW)
		return f.broadcast(event, text, entities.ActionClaim)

	case entities.TransitionClaimed:
		text := fmt.Sprintf("✅ Заказ #%s взят курьером %s %s", order.ID, order.CourierName, order.CourierPhone)
		return f.toOperators(event, text)

	case entities.TransitionBadAddress:
		notifications := f.toOperators(event,
			fmt.Sprintf("⚠️ Заказ #%s помечен как проблемный: курьер не нашел адрес.", order.ID))
		return append(notifications, entities.Notification{
			RecipientID: order.ClientID,
			Role:        entities.RoleClient,
			Kind:        event.Kind,
			OrderID:     order.ID,
			Text:        fmt.Sprintf("⚠️ Курьер не смог найти адрес по заказу #%s.\nУдалите заявку и создайте новую с верным адресом.", order.ID),
			Action:      entities.ActionDeleteProblem,
		})

	case entities.TransitionDeparted:
		text := fmt.Sprintf("🚗 Заказ #%s - курьер в пути.", order.ID)
		notifications := f.toOperators(event, text)
		return append(notifications, entities.Notification{
			RecipientID: order.ClientID,
			Role:        entities.RoleClient,
			Kind:        event.Kind,
			OrderID:     order.ID,
			Text:        text,
		})

	case entities.TransitionCompleted:
		notifications := f.toOperators(event, fmt.Sprintf("✅ Заказ #%s завершен.", order.ID))
		return append(notifications, entities.Notification{
			RecipientID: order.ClientID,
			Role:        entities.RoleClient,
			Kind:        event.Kind,
			OrderID:     order.ID,
			Text:        fmt.Sprintf("📸 Заказ #%s доставлен. Фото-подтверждение приложено.", order.ID),
			ProofRef:    order.ProofRef,
		})

	case entities.TransitionCanceled:
		return f.broadcast(event, fmt.Sprintf("❌ Заказ #%s отменен.", order.ID), "")

	default:
		f.logger.Warn("unknown transition kind, skipping fan-out",
			logger.NewField("kind", event.Kind.String()),
			logger.NewField("order_id", order.ID),
		)
		return nil
	}
}

// broadcast — операторы плюс все одобренные на данный момент курьеры.
func (f *Fanout) broadcast(event entities.TransitionEvent, text string, action entities.NotificationAction) []entities.Notification {
	notifications := f.toOperators(event, text)

	var approved []entities.CourierProfile
	f.container.Read(func(s *state.Stores) {
		approved = s.Couriers(func(p entities.CourierProfile) bool {
			return p.Status == entities.CourierApproved
		})
	})

	for _, courier := range approved {
		// разовое напоминание перед первым предложением заказа;
		// к рассылкам об отмене оно не привязано
		if event.Kind == entities.TransitionCreated && f.container.MarkAdvisorySent(courier.ID) {
			notifications = append(notifications, entities.Notification{
				RecipientID: courier.ID,
				Role:        entities.RoleCourier,
				Text:        "❗ Перед принятием заказа проверьте маршрут через Naver.",
			})
		}

		notifications = append(notifications, entities.Notification{
			RecipientID: courier.ID,
			Role:        entities.RoleCourier,
			Kind:        event.Kind,
			OrderID:     event.Order.ID,
			Text:        text,
			Action:      action,
		})
	}
	return notifications
}

func (f *Fanout) toOperators(event entities.TransitionEvent, text string) []entities.Notification {
	notifications := make([]entities.Notification, 0, len(f.operators)+8)
	for _, operatorID := range f.operators {
		notifications = append(notifications, entities.Notification{
			RecipientID: operatorID,
			Role:        entities.RoleOperator,
			Kind:        event.Kind,
			OrderID:     event.Order.ID,
			Text:        text,
		})
	}
	return notifications
}
