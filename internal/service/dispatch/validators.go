package dispatch

import (
	"regexp"
	"strings"

	"easygo/internal/entities"
)

const (
	minPriceKRW = 1_000
	maxPriceKRW = 300_000
)

var (
	hangulRegexp   = regexp.MustCompile(`[가-힣]`)
	latinRegexp    = regexp.MustCompile(`[A-Za-z]`)
	cyrillicRegexp = regexp.MustCompile(`[А-Яа-яЁё]`)
)

func isValidPrice(priceKRW int64) bool {
	return priceKRW >= minPriceKRW && priceKRW <= maxPriceKRW
}

// isValidAddress — адрес обязан содержать хангыль и не содержать латиницу
// или кириллицу: сервис работает в одном регионе, смешанные адреса почти
// всегда означают ошибку ввода.
func isValidAddress(address string) bool {
	address = strings.TrimSpace(address)
	if address == "" {
		return false
	}
	if !hangulRegexp.MatchString(address) {
		return false
	}
	if latinRegexp.MatchString(address) || cyrillicRegexp.MatchString(address) {
		return false
	}
	return true
}

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}

func isValidProofRef(proofRef string) bool {
	return strings.TrimSpace(proofRef) != ""
}

func validateDraft(draft entities.OrderDraft) error {
	if strings.TrimSpace(draft.RecipientContact) == "" ||
		draft.DeliveryType == "" || draft.TimeWindow == "" {
		return ErrMissingRequiredFields
	}
	if !isValidPrice(draft.PriceKRW) {
		return ErrInvalidPrice
	}
	if !isValidAddress(draft.PickupAddress) || !isValidAddress(draft.DropAddress) {
		return ErrInvalidAddress
	}
	return nil
}
