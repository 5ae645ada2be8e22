package dto

import "time"

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type OrderCreateRequest struct {
	ClientID          int64  `json:"client_id"`
	PriceKRW          int64  `json:"price_krw"`
	PickupAddress     string `json:"pickup_address"`
	DropAddress       string `json:"drop_address"`
	DoorCode          string `json:"door_code,omitempty"`
	RecipientContact  string `json:"recipient_contact"`
	DeliveryType      string `json:"delivery_type"`
	DeliveryTypeOther string `json:"delivery_type_other,omitempty"`
	TimeWindow        string `json:"time_window"`
	TimeWindowText    string `json:"time_window_text,omitempty"`
}

type OrderResponse struct {
	ID                string     `json:"id"`
	CreatedAt         time.Time  `json:"created_at"`
	Status            string     `json:"status"`
	PriceKRW          int64      `json:"price_krw"`
	ClientID          int64      `json:"client_id"`
	PickupAddress     string     `json:"pickup_address"`
	DropAddress       string     `json:"drop_address"`
	DoorCode          string     `json:"door_code,omitempty"`
	RecipientContact  string     `json:"recipient_contact"`
	DeliveryType      string     `json:"delivery_type"`
	DeliveryTypeOther string     `json:"delivery_type_other,omitempty"`
	TimeWindow        string     `json:"time_window"`
	TimeWindowText    string     `json:"time_window_text,omitempty"`
	CourierID         int64      `json:"courier_id,omitempty"`
	CourierName       string     `json:"courier_name,omitempty"`
	CourierPhone      string     `json:"courier_phone,omitempty"`
	TakenAt           *time.Time `json:"taken_at,omitempty"`
	EnRouteAt         *time.Time `json:"en_route_at,omitempty"`
	DoneRequestedAt   *time.Time `json:"done_requested_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	ProofRef          string     `json:"proof_ref,omitempty"`
	CanceledAt        *time.Time `json:"canceled_at,omitempty"`
	CanceledBy        string     `json:"canceled_by,omitempty"`
}

type OrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type OrderCourierActionRequest struct {
	CourierID int64 `json:"courier_id"`
}

type OrderProofRequest struct {
	CourierID int64  `json:"courier_id"`
	ProofRef  string `json:"proof_ref"`
}

type OrderClientActionRequest struct {
	ClientID int64 `json:"client_id"`
}

type CourierApplyRequest struct {
	CourierID int64  `json:"courier_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Transport string `json:"transport"`
}

type CourierResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Transport  string     `json:"transport"`
	Status     string     `json:"status"`
	AppliedAt  *time.Time `json:"applied_at,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
}

type CouriersResponse struct {
	Couriers []CourierResponse `json:"couriers"`
}

type CourierDecisionRequest struct {
	OperatorID int64  `json:"operator_id"`
	Decision   string `json:"decision"` // approve | reject
}

type CourierStatsResponse struct {
	CourierID  int64      `json:"courier_id"`
	DoneCount  int        `json:"done_count"`
	EarnedKRW  int64      `json:"earned_krw"`
	LastDoneAt *time.Time `json:"last_done_at,omitempty"`
}
