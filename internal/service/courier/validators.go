package courier

import (
	"strings"

	"easygo/internal/entities"
)

func isValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}

func isValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	digits := 0
	for i, char := range phone {
		switch {
		case char >= '0' && char <= '9':
			digits++
		case char == '+' && i == 0:
		case char == '-' || char == ' ':
		default:
			return false
		}
	}
	return digits >= 9
}

// normalizeTransport приводит пользовательский ввод к известному виду
// транспорта. Частичный профиль не сохраняется: неизвестный транспорт —
// отказ всей заявки.
func normalizeTransport(transport string) (entities.TransportType, bool) {
	switch strings.ToLower(strings.TrimSpace(transport)) {
	case "car", "auto":
		return entities.TransportCar, true
	case "scooter", "motorbike", "bike":
		return entities.TransportScooter, true
	default:
		return "", false
	}
}
