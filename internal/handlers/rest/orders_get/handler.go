package orders_get

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"easygo/internal/dto"
	"easygo/internal/entities"
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

	var orders []entities.Order

	switch {
	case query.Get("view") == "open":
		orders = h.service.ListOpenOrders()
	case query.Get("view") == "active":
		orders = h.service.ListActiveOrders()
	case query.Has("client_id"):
		clientID, err := strconv.ParseInt(query.Get("client_id"), 10, 64)
		if err != nil || clientID <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		since, ok := periodStart(query.Get("period"))
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		orders = h.service.ListClientOrders(clientID, since)
	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	response := dto.OrdersFromDomain(orders)

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

// periodStart переводит период выборки в нижнюю границу по времени создания.
func periodStart(period string) (time.Time, bool) {
	now := time.Now()

	switch period {
	case "today":
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "", "all":
		return time.Time{}, true
	default:
		return time.Time{}, false
	}
}
