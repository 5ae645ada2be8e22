package courier

import (
	"context"
	"time"

	"easygo/internal/entities"
	"easygo/internal/state"
	"easygo/pkg/logger"
)

// Service реализует подпроцесс одобрения курьеров: заявка, решение
// оператора, выборки реестра. Первичный источник правды — Courier Registry
// в разделяемом состоянии, хранилище зеркалирует его write-through.
type Service struct {
	container   *state.Container
	persistence Persistence
	events      EventSink
	notifier    Notifier
	operators   map[int64]struct{}
	logger      logger.Logger
}

func New(
	container *state.Container,
	persistence Persistence,
	events EventSink,
	notifier Notifier,
	operatorIDs []int64,
	logger logger.Logger,
) *Service {
	operators := make(map[int64]struct{}, len(operatorIDs))
	for _, id := range operatorIDs {
		operators[id] = struct{}{}
	}

	return &Service{
		container:   container,
		persistence: persistence,
		events:      events,
		notifier:    notifier,
		operators:   operators,
		logger:      logger,
	}
}

func (s *Service) IsOperator(actorID int64) bool {
	_, ok := s.operators[actorID]
	return ok
}

// Apply создает или перезаписывает заявку курьера. Повторная подача после
// отказа разрешена и возвращает профиль в PENDING, сбрасывая прежнее решение.
func (s *Service) Apply(ctx context.Context, courierID int64, name, phone, transport string) (*entities.CourierProfile, error) {
	if courierID <= 0 {
		return nil, ErrMissingRequiredFields
	}
	if !isValidName(name) {
		return nil, ErrInvalidName
	}
	if !isValidPhone(phone) {
		return nil, ErrInvalidPhone
	}
	transportType, ok := normalizeTransport(transport)
	if !ok {
		return nil, ErrInvalidTransport
	}

	profile := entities.CourierProfile{
		ID:        courierID,
		Name:      name,
		Phone:     phone,
		Transport: transportType,
		Status:    entities.CourierPending,
		AppliedAt: time.Now().UTC(),
	}

	_ = s.container.Mutate(func(st *state.Stores) error {
		st.SetCourier(profile)
		return nil
	})

	s.writeThrough(ctx, profile)
	s.logEvent(ctx, courierID, "courier_applied")

	return &profile, nil
}

// Approve — решение оператора. Повторное одобрение после отказа сбрасывает
// отметку об отказе.
func (s *Service) Approve(ctx context.Context, operatorID, courierID int64) (*entities.CourierProfile, error) {
	profile, err := s.decide(ctx, operatorID, courierID, func(p *entities.CourierProfile) {
		p.Status = entities.CourierApproved
		p.ApprovedAt = time.Now().UTC()
		p.RejectedAt = time.Time{}
	})
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx, operatorID, "courier_approved")
	s.notifyCourier(ctx, courierID, "✅ Вы одобрены как курьер. Новые заказы будут приходить автоматически.")

	return profile, nil
}

func (s *Service) Reject(ctx context.Context, operatorID, courierID int64) (*entities.CourierProfile, error) {
	profile, err := s.decide(ctx, operatorID, courierID, func(p *entities.CourierProfile) {
		p.Status = entities.CourierRejected
		p.RejectedAt = time.Now().UTC()
		p.ApprovedAt = time.Time{}
	})
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx, operatorID, "courier_rejected")
	s.notifyCourier(ctx, courierID, "К сожалению, ваша заявка отклонена.")

	return profile, nil
}

func (s *Service) GetCourier(courierID int64) (*entities.CourierProfile, error) {
	var (
		profile entities.CourierProfile
		found   bool
	)
	s.container.Read(func(st *state.Stores) {
		profile, found = st.Courier(courierID)
	})
	if !found {
		return nil, ErrCourierNotFound
	}
	return &profile, nil
}

// ListCouriers — операторская выборка реестра, опционально по статусу.
func (s *Service) ListCouriers(operatorID int64, status entities.CourierStatusType) ([]entities.CourierProfile, error) {
	if !s.IsOperator(operatorID) {
		return nil, ErrUnauthorized
	}

	var profiles []entities.CourierProfile
	s.container.Read(func(st *state.Stores) {
		profiles = st.Couriers(func(p entities.CourierProfile) bool {
			return status == "" || p.Status == status
		})
	})
	return profiles, nil
}

func (s *Service) decide(
	ctx context.Context,
	operatorID, courierID int64,
	apply func(*entities.CourierProfile),
) (*entities.CourierProfile, error) {
	if !s.IsOperator(operatorID) {
		return nil, ErrUnauthorized
	}

	var decided entities.CourierProfile
	err := s.container.Mutate(func(st *state.Stores) error {
		profile, ok := st.Courier(courierID)
		if !ok {
			return ErrCourierNotFound
		}

		apply(&profile)
		st.SetCourier(profile)
		decided = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.writeThrough(ctx, decided)

	return &decided, nil
}

func (s *Service) writeThrough(ctx context.Context, profile entities.CourierProfile) {
	if err := s.persistence.UpsertCourier(ctx, profile); err != nil {
		s.logger.Error("courier write-through failed",
			logger.NewField("courier_id", profile.ID),
			logger.NewField("status", profile.Status.String()),
			logger.NewField("error", err),
		)
	}
}

func (s *Service) logEvent(ctx context.Context, actorID int64, eventType string) {
	role := entities.RoleCourier
	if s.IsOperator(actorID) {
		role = entities.RoleOperator
	}

	if err := s.events.LogEvent(ctx, actorID, role.String(), eventType, "", ""); err != nil {
		s.logger.Warn("audit event write failed",
			logger.NewField("event_type", eventType),
			logger.NewField("error", err),
		)
	}
}

func (s *Service) notifyCourier(ctx context.Context, courierID int64, text string) {
	notification := entities.Notification{
		RecipientID: courierID,
		Role:        entities.RoleCourier,
		Text:        text,
	}
	if err := s.notifier.Notify(ctx, notification); err != nil {
		s.logger.Warn("courier notification failed",
			logger.NewField("courier_id", courierID),
			logger.NewField("error", err),
		)
	}
}
