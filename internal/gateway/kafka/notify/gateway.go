package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"

	"easygo/internal/entities"
	retrierconfig "easygo/pkg/retrier"
	"easygo/pkg/retrier/backoff_adapter"
)

const (
	gatewayName = "notify-kafka"
)

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 1 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

// Gateway публикует уведомления в Kafka, по одному сообщению на получателя.
// Транспорт доставки (бот) читает топик на своей стороне.
type Gateway struct {
	producer producer
	topic    string
	retrier  retrier
}

func New(producer producer, topic string) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryableKafkaError,
	}

	return &Gateway{
		producer: producer,
		topic:    topic,
		retrier:  backoff_adapter.New(retryConfig),
	}
}

type notificationMessage struct {
	RecipientID int64  `json:"recipient_id"`
	Role        string `json:"role"`
	Kind        string `json:"kind,omitempty"`
	OrderID     string `json:"order_id,omitempty"`
	Text        string `json:"text"`
	ProofRef    string `json:"proof_ref,omitempty"`
	Action      string `json:"action,omitempty"`
}

func (g *Gateway) Notify(ctx context.Context, notification entities.Notification) error {
	payload, err := json.Marshal(notificationMessage{
		RecipientID: notification.RecipientID,
		Role:        notification.Role.String(),
		Kind:        notification.Kind.String(),
		OrderID:     notification.OrderID,
		Text:        notification.Text,
		ProofRef:    notification.ProofRef,
		Action:      string(notification.Action),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: g.topic,
		// ключ — получатель, чтобы сообщения одному участнику шли по порядку
		Key:   sarama.StringEncoder(strconv.FormatInt(notification.RecipientID, 10)),
		Value: sarama.ByteEncoder(payload),
	}

	err = g.executeWithMetrics(ctx, "SendMessage", func(_ context.Context) error {
		_, _, sendErr := g.producer.SendMessage(msg)
		return sendErr
	})
	if err != nil {
		return fmt.Errorf("gateway notify, send to %d: %w", notification.RecipientID, err)
	}

	return nil
}

func isRetryableKafkaError(err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, sarama.ErrLeaderNotAvailable),
		errors.Is(err, sarama.ErrNotEnoughReplicas),
		errors.Is(err, sarama.ErrRequestTimedOut),
		errors.Is(err, sarama.ErrNetworkException):
		return true
	default:
		return false
	}
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	GatewayRequestDuration.WithLabelValues(gatewayName, method, outcome).Observe(time.Since(start).Seconds())

	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(gatewayName, method, outcome).Inc()
	}

	return err
}
