package bot_command

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"

	"easygo/internal/entities"
	"easygo/internal/service/dispatch"
	"easygo/pkg/logger"
)

type Handler struct {
	factory                  HandlerFactory
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, factory HandlerFactory, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		factory:                  factory,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				// Messages() закрыт — выходим
				h.log.Info("bot.command: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			// Сессия закрыта (rebalance или остановка consumer group) — выходим
			h.log.Info("bot.command: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно прервать ConsumeClaim (при отмене контекста).
// Возвращает false для продолжения обработки следующих сообщений.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var cmd entities.BotCommand
	err := json.Unmarshal(message.Value, &cmd)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("bot.command handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("command", cmd.Type.String()),
		logger.NewField("actor", cmd.ActorID),
		logger.NewField("order", cmd.OrderID),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Info("bot.command processing")

	execute, err := h.factory.GetHandler(cmd.Type)
	if err != nil {
		msgLog.With(
			logger.NewField("error", err),
		).Warn("bot.command handler unknown command type")
		sess.MarkMessage(message, "")
		return false
	}

	err = execute(ctx, cmd)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("bot.command handler context cancelled, message will be reprocessed")
			return true

		// проигрыш гонки за заказ — штатный исход при нескольких курьерах
		case errors.Is(err, dispatch.ErrStateConflict):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("bot.command handler rejected by transition table")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("bot.command handler failed to process command")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("bot.command: processed")

	sess.MarkMessage(message, "")
	return false
}
