package courier_decision_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"easygo/internal/dto"
	"easygo/internal/entities"
	"easygo/internal/service/courier"
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

	var decisionDTO dto.CourierDecisionRequest
	err = json.NewDecoder(r.Body).Decode(&decisionDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var profile *entities.CourierProfile

	switch decisionDTO.Decision {
	case "approve":
		profile, err = h.service.Approve(r.Context(), decisionDTO.OperatorID, courierID)
	case "reject":
		profile, err = h.service.Reject(r.Context(), decisionDTO.OperatorID, courierID)
	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, courier.ErrCourierNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, courier.ErrUnauthorized):
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.CourierFromDomain(profile)

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
