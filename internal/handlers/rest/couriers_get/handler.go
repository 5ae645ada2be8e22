package couriers_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

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
	query := r.URL.Query()

	operatorID, err := strconv.ParseInt(query.Get("operator_id"), 10, 64)
	if err != nil || operatorID <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	status, ok := parseStatus(query.Get("status"))
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	profiles, err := h.service.ListCouriers(operatorID, status)
	if err != nil {
		switch {
		case errors.Is(err, courier.ErrUnauthorized):
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.CouriersFromDomain(profiles)

	w.Header().Set("Content-Type", "application/json")
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// parseStatus: пустая строка — без фильтра по статусу.
func parseStatus(raw string) (entities.CourierStatusType, bool) {
	switch entities.CourierStatusType(strings.ToUpper(raw)) {
	case "":
		return "", true
	case entities.CourierPending:
		return entities.CourierPending, true
	case entities.CourierApproved:
		return entities.CourierApproved, true
	case entities.CourierRejected:
		return entities.CourierRejected, true
	default:
		return "", false
	}
}
