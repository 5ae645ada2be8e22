package order

import (
	"time"

	"github.com/AlekSi/pointer"

	"easygo/internal/entities"
)

func ToDomain(o *OrderDB) *entities.Order {
	if o == nil {
		return nil
	}

	return &entities.Order{
		ID:                o.ID,
		CreatedAt:         o.CreatedAt,
		Status:            entities.OrderStatusType(o.Status),
		PriceKRW:          o.PriceKRW,
		ClientID:          o.ClientID,
		PickupAddress:     o.PickupAddress,
		DropAddress:       o.DropAddress,
		DoorCode:          o.DoorCode,
		RecipientContact:  o.RecipientContact,
		DeliveryType:      entities.DeliveryType(o.DeliveryType),
		DeliveryTypeOther: o.DeliveryTypeOther,
		TimeWindow:        entities.TimeWindowType(o.TimeWindow),
		TimeWindowText:    o.TimeWindowText,
		CourierID:         o.CourierID,
		CourierName:       o.CourierName,
		CourierPhone:      o.CourierPhone,
		TakenAt:           pointer.GetTime(o.TakenAt),
		EnRouteAt:         pointer.GetTime(o.EnRouteAt),
		DoneRequestedAt:   pointer.GetTime(o.DoneRequestedAt),
		CompletedAt:       pointer.GetTime(o.CompletedAt),
		ProofRef:          o.ProofRef,
		CanceledAt:        pointer.GetTime(o.CanceledAt),
		CanceledBy:        entities.CancelActor(o.CanceledBy),
	}
}

func FromDomain(order *entities.Order) *OrderDB {
	if order == nil {
		return nil
	}

	return &OrderDB{
		ID:                order.ID,
		CreatedAt:         order.CreatedAt,
		Status:            order.Status.String(),
		PriceKRW:          order.PriceKRW,
		ClientID:          order.ClientID,
		PickupAddress:     order.PickupAddress,
		DropAddress:       order.DropAddress,
		DoorCode:          order.DoorCode,
		RecipientContact:  order.RecipientContact,
		DeliveryType:      order.DeliveryType.String(),
		DeliveryTypeOther: order.DeliveryTypeOther,
		TimeWindow:        order.TimeWindow.String(),
		TimeWindowText:    order.TimeWindowText,
		CourierID:         order.CourierID,
		CourierName:       order.CourierName,
		CourierPhone:      order.CourierPhone,
		TakenAt:           toNullableTime(order.TakenAt),
		EnRouteAt:         toNullableTime(order.EnRouteAt),
		DoneRequestedAt:   toNullableTime(order.DoneRequestedAt),
		CompletedAt:       toNullableTime(order.CompletedAt),
		ProofRef:          order.ProofRef,
		CanceledAt:        toNullableTime(order.CanceledAt),
		CanceledBy:        order.CanceledBy.String(),
	}
}

func ToDomainList(ordersDB []OrderDB) []entities.Order {
	if len(ordersDB) == 0 {
		return []entities.Order{}
	}

	result := make([]entities.Order, len(ordersDB))
	for i, orderDB := range ordersDB {
		result[i] = *ToDomain(&orderDB)
	}
	return result
}

// нулевое время хранится как NULL, а не как 0001-01-01
func toNullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return pointer.ToTime(t)
}
