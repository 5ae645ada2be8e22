package courier_stats_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	courierID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || courierID <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	stats, err := h.service.CourierStats(courierID)
	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrCourierNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.StatsFromDomain(stats)

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
