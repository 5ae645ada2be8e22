package order_bad_address_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"easygo/internal/dto"
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
	orderID := mux.Vars(r)["id"]

	var flagDTO dto.OrderCourierActionRequest
	err := json.NewDecoder(r.Body).Decode(&flagDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	order, err := h.service.FlagBadAddress(r.Context(), flagDTO.CourierID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrOrderNotFound),
			errors.Is(err, dispatch.ErrCourierNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, dispatch.ErrStateConflict),
			errors.Is(err, dispatch.ErrCourierNotApproved):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.OrderFromDomain(order)

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
