package order

import "time"

type OrderDB struct {
	ID        string
	CreatedAt time.Time
	Status    string

	PriceKRW int64
	ClientID int64

	PickupAddress    string
	DropAddress      string
	DoorCode         string
	RecipientContact string

	DeliveryType      string
	DeliveryTypeOther string
	TimeWindow        string
	TimeWindowText    string

	CourierID    int64
	CourierName  string
	CourierPhone string

	TakenAt         *time.Time
	EnRouteAt       *time.Time
	DoneRequestedAt *time.Time
	CompletedAt     *time.Time
	ProofRef        string

	CanceledAt *time.Time
	CanceledBy string
}
