package courier_apply_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"easygo/internal/dto"
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
	var applyDTO dto.CourierApplyRequest
	err := json.NewDecoder(r.Body).Decode(&applyDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	profile, err := h.service.Apply(
		r.Context(),
		applyDTO.CourierID,
		applyDTO.Name,
		applyDTO.Phone,
		applyDTO.Transport,
	)
	if err != nil {
		switch {
		case errors.Is(err, courier.ErrMissingRequiredFields),
			errors.Is(err, courier.ErrInvalidName),
			errors.Is(err, courier.ErrInvalidPhone),
			errors.Is(err, courier.ErrInvalidTransport):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.CourierFromDomain(profile)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
