package entities

import "time"

// CourierProfile — профиль курьера. Повторная заявка после отказа
// перезаписывает профиль целиком (upsert по ID).
type CourierProfile struct {
	ID         int64
	Name       string
	Phone      string
	Transport  TransportType
	Status     CourierStatusType
	AppliedAt  time.Time
	ApprovedAt time.Time
	RejectedAt time.Time
}

type TransportType string

const (
	TransportCar     TransportType = "car"
	TransportScooter TransportType = "scooter"
)

func (t TransportType) String() string {
	return string(t)
}

type CourierStatusType string

const (
	CourierPending  CourierStatusType = "PENDING"
	CourierApproved CourierStatusType = "APPROVED"
	CourierRejected CourierStatusType = "REJECTED"
)

func (s CourierStatusType) String() string {
	return string(s)
}

// CourierStats — агрегат по завершенным заказам курьера.
type CourierStats struct {
	CourierID  int64
	DoneCount  int
	EarnedKRW  int64
	LastDoneAt time.Time
}
