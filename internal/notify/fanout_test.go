package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easygo/internal/entities"
	"easygo/internal/notify"
	"easygo/internal/state"
	"easygo/pkg/logger"
)

type recordingNotifier struct {
	mu       sync.Mutex
	sent     []entities.Notification
	failFor  map[int64]error
	attempts int
}

func (r *recordingNotifier) Notify(_ context.Context, n entities.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attempts++
	if err, ok := r.failFor[n.RecipientID]; ok {
		return err
	}
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) delivered() []entities.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Notification(nil), r.sent...)
}

func countByRole(notifications []entities.Notification, role entities.RecipientRole) int {
	n := 0
	for _, notification := range notifications {
		if notification.Role == role {
			n++
		}
	}
	return n
}

func runFanout(t *testing.T, f *notify.Fanout) context.CancelFunc {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = f.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func TestFanout_OrderCreated(t *testing.T) {
	t.Parallel()

	container := state.NewContainer()
	container.Hydrate(nil, []entities.CourierProfile{
		{ID: 1, Status: entities.CourierApproved},
		{ID: 2, Status: entities.CourierApproved},
		{ID: 3, Status: entities.CourierPending},
		{ID: 4, Status: entities.CourierRejected},
	})

	notifier := &recordingNotifier{}
	fanout := notify.New(container, notifier, []int64{1000, 1001}, logger.NewNop())
	runFanout(t, fanout)

	event := entities.TransitionEvent{
		Kind: entities.TransitionCreated,
		Order: entities.Order{
			ID:            "101",
			Status:        entities.OrderNew,
			ClientID:      10,
			PriceKRW:      4000,
			PickupAddress: "서울시 강남구 테헤란로 123",
			DropAddress:   "서울시 마포구 월드컵로 45",
		},
		At: time.Now().UTC(),
	}
	require.NoError(t, fanout.Publish(context.Background(), event))

	require.Eventually(t, func() bool {
		// 2 оператора + 2 одобренных курьера + 2 разовых напоминания
		return len(notifier.delivered()) == 6
	}, 2*time.Second, 10*time.Millisecond)

	delivered := notifier.delivered()
	assert.Equal(t, 2, countByRole(delivered, entities.RoleOperator))
	assert.Equal(t, 4, countByRole(delivered, entities.RoleCourier))

	var courierOffers, advisories int
	for _, n := range delivered {
		if n.Role != entities.RoleCourier {
			continue
		}
		if n.Kind == entities.TransitionCreated {
			courierOffers++
			assert.Equal(t, entities.ActionClaim, n.Action)
			assert.Equal(t, "101", n.OrderID)
		} else {
			advisories++
			assert.Contains(t, n.Text, "Naver")
		}
	}
	assert.Equal(t, 2, courierOffers, "оффер получают только одобренные курьеры")
	assert.Equal(t, 2, advisories)
}

func TestFanout_AdvisorySentOncePerCourier(t *testing.T) {
	t.Parallel()

	container := state.NewContainer()
	container.Hydrate(nil, []entities.CourierProfile{{ID: 1, Status: entities.CourierApproved}})

	notifier := &recordingNotifier{}
	fanout := notify.New(container, notifier, nil, logger.NewNop())
	runFanout(t, fanout)

	for _, orderID := range []string{"101", "102"} {
		require.NoError(t, fanout.Publish(context.Background(), entities.TransitionEvent{
			Kind:  entities.TransitionCreated,
			Order: entities.Order{ID: orderID, Status: entities.OrderNew, ClientID: 10},
		}))
	}

	require.Eventually(t, func() bool {
		// 2 оффера + 1 напоминание
		return len(notifier.delivered()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	advisories := 0
	for _, n := range notifier.delivered() {
		if n.Kind == "" {
			advisories++
		}
	}
	assert.Equal(t, 1, advisories, "напоминание уходит курьеру не больше одного раза")
}

func TestFanout_AdvisoryOnlyOnNewOrderOffer(t *testing.T) {
	t.Parallel()

	container := state.NewContainer()
	container.Hydrate(nil, []entities.CourierProfile{{ID: 1, Status: entities.CourierApproved}})

	notifier := &recordingNotifier{}
	fanout := notify.New(container, notifier, nil, logger.NewNop())
	runFanout(t, fanout)

	// курьер еще ни разу не получал напоминание, но рассылка об отмене
	// его не несет
	require.NoError(t, fanout.Publish(context.Background(), entities.TransitionEvent{
		Kind:  entities.TransitionCanceled,
		Order: entities.Order{ID: "101", Status: entities.OrderCanceled, ClientID: 10},
	}))

	require.Eventually(t, func() bool {
		return len(notifier.delivered()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, entities.TransitionCanceled, notifier.delivered()[0].Kind)

	// напоминание приходит вместе с первым оффером нового заказа
	require.NoError(t, fanout.Publish(context.Background(), entities.TransitionEvent{
		Kind:  entities.TransitionCreated,
		Order: entities.Order{ID: "102", Status: entities.OrderNew, ClientID: 10},
	}))

	require.Eventually(t, func() bool {
		return len(notifier.delivered()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	advisories := 0
	for _, n := range notifier.delivered() {
		if n.Kind == "" {
			advisories++
		}
	}
	assert.Equal(t, 1, advisories)
}

func TestFanout_FailureIsolatedPerRecipient(t *testing.T) {
	t.Parallel()

	container := state.NewContainer()
	container.Hydrate(nil, []entities.CourierProfile{
		{ID: 1, Status: entities.CourierApproved},
		{ID: 2, Status: entities.CourierApproved},
	})

	notifier := &recordingNotifier{
		failFor: map[int64]error{1: errors.New("recipient unreachable")},
	}
	fanout := notify.New(container, notifier, []int64{1000}, logger.NewNop())
	runFanout(t, fanout)

	require.NoError(t, fanout.Publish(context.Background(), entities.TransitionEvent{
		Kind:  entities.TransitionCanceled,
		Order: entities.Order{ID: "101", Status: entities.OrderCanceled, ClientID: 10},
	}))

	require.Eventually(t, func() bool {
		delivered := notifier.delivered()
		// оператор и курьер 2 получили, курьер 1 — нет
		return len(delivered) == 2
	}, 2*time.Second, 10*time.Millisecond)

	for _, n := range notifier.delivered() {
		assert.NotEqual(t, int64(1), n.RecipientID)
	}
}

func TestFanout_BadAddressPointsClientAtDeletion(t *testing.T) {
	t.Parallel()

	container := state.NewContainer()
	notifier := &recordingNotifier{}
	fanout := notify.New(container, notifier, []int64{1000}, logger.NewNop())
	runFanout(t, fanout)

	require.NoError(t, fanout.Publish(context.Background(), entities.TransitionEvent{
		Kind:  entities.TransitionBadAddress,
		Order: entities.Order{ID: "9", Status: entities.OrderProblem, ClientID: 10},
	}))

	require.Eventually(t, func() bool {
		return len(notifier.delivered()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	var clientNotification entities.Notification
	var found bool
	for _, n := range notifier.delivered() {
		if n.Role == entities.RoleClient {
			clientNotification = n
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, int64(10), clientNotification.RecipientID)
	assert.Equal(t, entities.ActionDeleteProblem, clientNotification.Action)
}

func TestFanout_CompletedCarriesProofToClient(t *testing.T) {
	t.Parallel()

	container := state.NewContainer()
	notifier := &recordingNotifier{}
	fanout := notify.New(container, notifier, []int64{1000}, logger.NewNop())
	runFanout(t, fanout)

	require.NoError(t, fanout.Publish(context.Background(), entities.TransitionEvent{
		Kind:  entities.TransitionCompleted,
		Order: entities.Order{ID: "7", Status: entities.OrderDone, ClientID: 10, ProofRef: "file123"},
	}))

	require.Eventually(t, func() bool {
		return len(notifier.delivered()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	for _, n := range notifier.delivered() {
		if n.Role == entities.RoleClient {
			assert.Equal(t, "file123", n.ProofRef)
		}
	}
}

func TestFanout_PublishQueueFull(t *testing.T) {
	t.Parallel()

	container := state.NewContainer()
	notifier := &recordingNotifier{}
	// Run не запущен: очередь никто не вычитывает
	fanout := notify.New(container, notifier, nil, logger.NewNop())

	event := entities.TransitionEvent{
		Kind:  entities.TransitionCreated,
		Order: entities.Order{ID: "101", ClientID: 10},
	}

	var err error
	for i := 0; i < 1000; i++ {
		if err = fanout.Publish(context.Background(), event); err != nil {
			break
		}
	}
	require.ErrorIs(t, err, notify.ErrQueueFull)
}
