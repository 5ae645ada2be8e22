package entities

import "time"

// Order — одна заявка на доставку. Статус плюс соответствующий timestamp
// вместе образуют историю заказа, отдельного журнала не требуется.
type Order struct {
	ID        string
	CreatedAt time.Time
	Status    OrderStatusType

	PriceKRW int64
	ClientID int64

	PickupAddress    string
	DropAddress      string
	DoorCode         string
	RecipientContact string

	DeliveryType      DeliveryType
	DeliveryTypeOther string
	TimeWindow        TimeWindowType
	TimeWindowText    string

	// Снимок профиля курьера на момент взятия заказа. Профиль может
	// измениться позже, исторические заказы это не затрагивает.
	CourierID    int64
	CourierName  string
	CourierPhone string

	TakenAt         time.Time
	EnRouteAt       time.Time
	DoneRequestedAt time.Time
	CompletedAt     time.Time
	ProofRef        string

	CanceledAt time.Time
	CanceledBy CancelActor
}

type OrderStatusType string

const (
	OrderNew         OrderStatusType = "NEW"
	OrderTaken       OrderStatusType = "TAKEN"
	OrderEnRoute     OrderStatusType = "EN_ROUTE"
	OrderPickedUp    OrderStatusType = "PICKED_UP"
	OrderDonePending OrderStatusType = "DONE_PENDING_PROOF"
	OrderDone        OrderStatusType = "DONE"
	OrderCanceled    OrderStatusType = "CANCELED"
	OrderProblem     OrderStatusType = "PROBLEM"
)

func (s OrderStatusType) String() string {
	return string(s)
}

// Active сообщает, занимает ли заказ курьера.
func (s OrderStatusType) Active() bool {
	switch s {
	case OrderTaken, OrderEnRoute, OrderPickedUp, OrderDonePending:
		return true
	default:
		return false
	}
}

// Terminal — из этих статусов переходов больше нет.
func (s OrderStatusType) Terminal() bool {
	return s == OrderDone || s == OrderCanceled
}

type CancelActor string

const (
	CanceledByClient              CancelActor = "client"
	CanceledByClientDeleteProblem CancelActor = "client_delete_problem"
)

func (a CancelActor) String() string {
	return string(a)
}

type DeliveryType string

const (
	DeliveryFood      DeliveryType = "food"
	DeliveryDocuments DeliveryType = "documents"
	DeliveryParcel    DeliveryType = "parcel"
	DeliveryOther     DeliveryType = "other"
)

func (t DeliveryType) String() string {
	return string(t)
}

type TimeWindowType string

const (
	TimeWindowNow    TimeWindowType = "now"
	TimeWindowToday  TimeWindowType = "today"
	TimeWindowCustom TimeWindowType = "custom"
)

func (t TimeWindowType) String() string {
	return string(t)
}

// OrderDraft — валидированные поля нового заказа, приходят из внешнего
// слоя сбора данных. ID и статус назначает движок диспетчеризации.
type OrderDraft struct {
	PriceKRW          int64
	PickupAddress     string
	DropAddress       string
	DoorCode          string
	RecipientContact  string
	DeliveryType      DeliveryType
	DeliveryTypeOther string
	TimeWindow        TimeWindowType
	TimeWindowText    string
}
