package dto

import (
	"time"

	"github.com/AlekSi/pointer"

	"easygo/internal/entities"
)

func OrderFromDomain(order *entities.Order) OrderResponse {
	return OrderResponse{
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
		TakenAt:           optionalTime(order.TakenAt),
		EnRouteAt:         optionalTime(order.EnRouteAt),
		DoneRequestedAt:   optionalTime(order.DoneRequestedAt),
		CompletedAt:       optionalTime(order.CompletedAt),
		ProofRef:          order.ProofRef,
		CanceledAt:        optionalTime(order.CanceledAt),
		CanceledBy:        order.CanceledBy.String(),
	}
}

func OrdersFromDomain(orders []entities.Order) OrdersResponse {
	res := OrdersResponse{Orders: make([]OrderResponse, 0, len(orders))}
	for i := range orders {
		res.Orders = append(res.Orders, OrderFromDomain(&orders[i]))
	}
	return res
}

func CourierFromDomain(profile *entities.CourierProfile) CourierResponse {
	return CourierResponse{
		ID:         profile.ID,
		Name:       profile.Name,
		Phone:      profile.Phone,
		Transport:  profile.Transport.String(),
		Status:     profile.Status.String(),
		AppliedAt:  optionalTime(profile.AppliedAt),
		ApprovedAt: optionalTime(profile.ApprovedAt),
		RejectedAt: optionalTime(profile.RejectedAt),
	}
}

func CouriersFromDomain(profiles []entities.CourierProfile) CouriersResponse {
	res := CouriersResponse{Couriers: make([]CourierResponse, 0, len(profiles))}
	for i := range profiles {
		res.Couriers = append(res.Couriers, CourierFromDomain(&profiles[i]))
	}
	return res
}

func StatsFromDomain(stats *entities.CourierStats) CourierStatsResponse {
	return CourierStatsResponse{
		CourierID:  stats.CourierID,
		DoneCount:  stats.DoneCount,
		EarnedKRW:  stats.EarnedKRW,
		LastDoneAt: optionalTime(stats.LastDoneAt),
	}
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return pointer.ToTime(t)
}
