package courier_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"easygo/internal/entities"
	"easygo/internal/service/courier"
	"easygo/internal/state"
	"easygo/pkg/logger"
)

const operatorID int64 = 1000

type mock struct {
	*MockPersistence
	*MockEventSink
	*MockNotifier
}

func newMock(ctrl *gomock.Controller) *mock {
	return &mock{
		MockPersistence: NewMockPersistence(ctrl),
		MockEventSink:   NewMockEventSink(ctrl),
		MockNotifier:    NewMockNotifier(ctrl),
	}
}

func newService(container *state.Container, m *mock) *courier.Service {
	return courier.New(
		container,
		m.MockPersistence,
		m.MockEventSink,
		m.MockNotifier,
		[]int64{operatorID},
		logger.NewNop(),
	)
}

func TestService_Apply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		courierID      int64
		courierName    string
		phone          string
		transport      string
		mockSetup      func(m *mock)
		errorAssertion require.ErrorAssertionFunc
		wantTransport  entities.TransportType
	}{
		{
			name:        "Успешная заявка с нормализуемым транспортом",
			courierID:   7,
			courierName: "Ким Чхольсу",
			phone:       "010-1234-5678",
			transport:   "  Scooter ",
			mockSetup: func(m *mock) {
				m.MockPersistence.EXPECT().
					UpsertCourier(gomock.Any(), gomock.Any()).
					Return(nil)
				m.MockEventSink.EXPECT().
					LogEvent(gomock.Any(), int64(7), "courier", "courier_applied", "", "").
					Return(nil)
			},
			errorAssertion: require.NoError,
			wantTransport:  entities.TransportScooter,
		},
		{
			name:        "Синоним auto нормализуется в car",
			courierID:   8,
			courierName: "Ли Минхо",
			phone:       "+82 10 9876 5432",
			transport:   "auto",
			mockSetup: func(m *mock) {
				m.MockPersistence.EXPECT().
					UpsertCourier(gomock.Any(), gomock.Any()).
					Return(nil)
				m.MockEventSink.EXPECT().
					LogEvent(gomock.Any(), int64(8), "courier", "courier_applied", "", "").
					Return(nil)
			},
			errorAssertion: require.NoError,
			wantTransport:  entities.TransportCar,
		},
		{
			name:        "Неизвестный транспорт отклоняется без сохранения профиля",
			courierID:   9,
			courierName: "Пак Чимин",
			phone:       "010-1111-2222",
			transport:   "helicopter",
			mockSetup:   func(m *mock) {},
			errorAssertion: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, courier.ErrInvalidTransport)
			},
		},
		{
			name:        "Пустое имя отклоняется",
			courierID:   9,
			courierName: "   ",
			phone:       "010-1111-2222",
			transport:   "car",
			mockSetup:   func(m *mock) {},
			errorAssertion: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, courier.ErrInvalidName)
			},
		},
		{
			name:        "Телефон с буквами отклоняется",
			courierID:   9,
			courierName: "Пак Чимин",
			phone:       "010-abcd-5678",
			transport:   "car",
			mockSetup:   func(m *mock) {},
			errorAssertion: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, courier.ErrInvalidPhone)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			m := newMock(ctrl)
			tt.mockSetup(m)

			container := state.NewContainer()
			svc := newService(container, m)

			profile, err := svc.Apply(context.Background(), tt.courierID, tt.courierName, tt.phone, tt.transport)
			tt.errorAssertion(t, err)

			if err != nil {
				container.Read(func(s *state.Stores) {
					_, ok := s.Courier(tt.courierID)
					assert.False(t, ok, "частичный профиль не должен сохраняться")
				})
				return
			}

			require.NotNil(t, profile)
			assert.Equal(t, entities.CourierPending, profile.Status)
			assert.Equal(t, tt.wantTransport, profile.Transport)
			assert.False(t, profile.AppliedAt.IsZero())
		})
	}
}

func TestService_Apply_AfterRejectionResetsDecision(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	m := newMock(ctrl)
	m.MockPersistence.EXPECT().UpsertCourier(gomock.Any(), gomock.Any()).Return(nil)
	m.MockEventSink.EXPECT().LogEvent(gomock.Any(), int64(7), "courier", "courier_applied", "", "").Return(nil)

	container := state.NewContainer()
	container.Hydrate(nil, []entities.CourierProfile{{
		ID:         7,
		Name:       "Ким Чхольсу",
		Phone:      "010-1234-5678",
		Transport:  entities.TransportCar,
		Status:     entities.CourierRejected,
		RejectedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}})

	svc := newService(container, m)

	profile, err := svc.Apply(context.Background(), 7, "Ким Чхольсу", "010-1234-5678", "scooter")
	require.NoError(t, err)

	assert.Equal(t, entities.CourierPending, profile.Status)
	assert.True(t, profile.RejectedAt.IsZero(), "повторная заявка сбрасывает прежний отказ")
	assert.Equal(t, entities.TransportScooter, profile.Transport)
}

func TestService_ApproveReject(t *testing.T) {
	t.Parallel()

	pending := entities.CourierProfile{
		ID:        7,
		Name:      "Ким Чхольсу",
		Phone:     "010-1234-5678",
		Transport: entities.TransportScooter,
		Status:    entities.CourierPending,
		AppliedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name           string
		operatorID     int64
		courierID      int64
		seed           []entities.CourierProfile
		decide         func(svc *courier.Service) (*entities.CourierProfile, error)
		mockSetup      func(m *mock)
		errorAssertion require.ErrorAssertionFunc
		check          func(t *testing.T, profile *entities.CourierProfile)
	}{
		{
			name:       "Оператор одобряет заявку",
			operatorID: operatorID,
			courierID:  7,
			seed:       []entities.CourierProfile{pending},
			decide: func(svc *courier.Service) (*entities.CourierProfile, error) {
				return svc.Approve(context.Background(), operatorID, 7)
			},
			mockSetup: func(m *mock) {
				m.MockPersistence.EXPECT().UpsertCourier(gomock.Any(), gomock.Any()).Return(nil)
				m.MockEventSink.EXPECT().
					LogEvent(gomock.Any(), operatorID, "operator", "courier_approved", "", "").
					Return(nil)
				m.MockNotifier.EXPECT().
					Notify(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n entities.Notification) error {
						assert.Equal(t, int64(7), n.RecipientID)
						assert.Equal(t, entities.RoleCourier, n.Role)
						assert.NotEmpty(t, n.Text)
						return nil
					})
			},
			errorAssertion: require.NoError,
			check: func(t *testing.T, profile *entities.CourierProfile) {
				assert.Equal(t, entities.CourierApproved, profile.Status)
				assert.False(t, profile.ApprovedAt.IsZero())
				assert.True(t, profile.RejectedAt.IsZero())
			},
		},
		{
			name:       "Оператор отклоняет заявку",
			operatorID: operatorID,
			courierID:  7,
			seed:       []entities.CourierProfile{pending},
			decide: func(svc *courier.Service) (*entities.CourierProfile, error) {
				return svc.Reject(context.Background(), operatorID, 7)
			},
			mockSetup: func(m *mock) {
				m.MockPersistence.EXPECT().UpsertCourier(gomock.Any(), gomock.Any()).Return(nil)
				m.MockEventSink.EXPECT().
					LogEvent(gomock.Any(), operatorID, "operator", "courier_rejected", "", "").
					Return(nil)
				m.MockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)
			},
			errorAssertion: require.NoError,
			check: func(t *testing.T, profile *entities.CourierProfile) {
				assert.Equal(t, entities.CourierRejected, profile.Status)
				assert.False(t, profile.RejectedAt.IsZero())
				assert.True(t, profile.ApprovedAt.IsZero())
			},
		},
		{
			name:       "Не-оператор получает отказ в доступе",
			operatorID: 42,
			courierID:  7,
			seed:       []entities.CourierProfile{pending},
			decide: func(svc *courier.Service) (*entities.CourierProfile, error) {
				return svc.Approve(context.Background(), 42, 7)
			},
			mockSetup: func(m *mock) {},
			errorAssertion: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, courier.ErrUnauthorized)
			},
		},
		{
			name:       "Решение по неизвестному курьеру",
			operatorID: operatorID,
			courierID:  99,
			seed:       nil,
			decide: func(svc *courier.Service) (*entities.CourierProfile, error) {
				return svc.Approve(context.Background(), operatorID, 99)
			},
			mockSetup: func(m *mock) {},
			errorAssertion: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, courier.ErrCourierNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			m := newMock(ctrl)
			tt.mockSetup(m)

			container := state.NewContainer()
			container.Hydrate(nil, tt.seed)

			svc := newService(container, m)

			profile, err := tt.decide(svc)
			tt.errorAssertion(t, err)

			if tt.check != nil && err == nil {
				require.NotNil(t, profile)
				tt.check(t, profile)
			}
		})
	}
}

func TestService_ReApprovalClearsRejection(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	m := newMock(ctrl)
	m.MockPersistence.EXPECT().UpsertCourier(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.MockEventSink.EXPECT().LogEvent(gomock.Any(), operatorID, "operator", gomock.Any(), "", "").Return(nil).Times(2)
	m.MockNotifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	container := state.NewContainer()
	container.Hydrate(nil, []entities.CourierProfile{{
		ID:        7,
		Name:      "Ким Чхольсу",
		Phone:     "010-1234-5678",
		Transport: entities.TransportScooter,
		Status:    entities.CourierPending,
	}})

	svc := newService(container, m)
	ctx := context.Background()

	profile, err := svc.Reject(ctx, operatorID, 7)
	require.NoError(t, err)
	require.Equal(t, entities.CourierRejected, profile.Status)

	profile, err = svc.Approve(ctx, operatorID, 7)
	require.NoError(t, err)
	assert.Equal(t, entities.CourierApproved, profile.Status)
	assert.True(t, profile.RejectedAt.IsZero(), "повторное одобрение сбрасывает отметку об отказе")
}

func TestService_ListCouriers(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	m := newMock(ctrl)

	container := state.NewContainer()
	container.Hydrate(nil, []entities.CourierProfile{
		{ID: 1, Status: entities.CourierApproved},
		{ID: 2, Status: entities.CourierPending},
		{ID: 3, Status: entities.CourierApproved},
	})

	svc := newService(container, m)

	all, err := svc.ListCouriers(operatorID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	approved, err := svc.ListCouriers(operatorID, entities.CourierApproved)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, int64(1), approved[0].ID)
	assert.Equal(t, int64(3), approved[1].ID)

	_, err = svc.ListCouriers(42, "")
	require.ErrorIs(t, err, courier.ErrUnauthorized)
}
