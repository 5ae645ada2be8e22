package order_create_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"easygo/internal/dto"
	"easygo/internal/entities"
	"easygo/internal/service/dispatch"
	"easygo/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var orderCreateDTO dto.OrderCreateRequest
	err := json.NewDecoder(r.Body).Decode(&orderCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	draft := entities.OrderDraft{
		PriceKRW:          orderCreateDTO.PriceKRW,
		PickupAddress:     orderCreateDTO.PickupAddress,
		DropAddress:       orderCreateDTO.DropAddress,
		DoorCode:          orderCreateDTO.DoorCode,
		RecipientContact:  orderCreateDTO.RecipientContact,
		DeliveryType:      entities.DeliveryType(orderCreateDTO.DeliveryType),
		DeliveryTypeOther: orderCreateDTO.DeliveryTypeOther,
		TimeWindow:        entities.TimeWindowType(orderCreateDTO.TimeWindow),
		TimeWindowText:    orderCreateDTO.TimeWindowText,
	}

	order, err := h.service.CreateOrder(r.Context(), orderCreateDTO.ClientID, draft)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrMissingRequiredFields),
			errors.Is(err, dispatch.ErrInvalidPrice),
			errors.Is(err, dispatch.ErrInvalidAddress):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.OrderFromDomain(order)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
